// SPDX-License-Identifier: EPL-2.0

package audtrim

import (
	"context"
	"fmt"
	"time"

	"github.com/ik5/audtrim/export"
	"github.com/ik5/audtrim/source"
)

// ExportOptions tunes ExportFile. The zero value writes WAV and MP3 into the
// working directory.
type ExportOptions struct {
	// Formats to write; wav and mp3 when empty.
	Formats []string
	// Dir receives the files.
	Dir string
	// BaseFilename overrides the name derived from the locator.
	BaseFilename string
	// Resolver loads the source; a default resolver is used when nil.
	Resolver *source.Resolver
	// Encoders replace or add encoders by format.
	Encoders map[string]export.Encoder
	// Progress receives the overall percentage.
	Progress func(float64)
	// ReleaseDelay keeps the written files open for this long after
	// delivery before ExportFile returns. Zero releases them on return.
	ReleaseDelay time.Duration
}

// ExportFile is a high-level convenience function that cuts the range
// [start, end) seconds out of the source at locator and writes it to disk in
// every requested format.
//
// It builds the whole pipeline in one call:
//  1. Fetches and fully decodes locator (no prefix, no placeholder)
//  2. Extracts the range at the source sample rate
//  3. Encodes each format
//  4. Writes <base>_<MMmSSs>_<MMmSSs>.<ext> files into opts.Dir
//
// Example:
//
//	res, err := audtrim.ExportFile(ctx, "interview.mp3", 65, 130, audtrim.ExportOptions{
//	    Formats: []string{"wav"},
//	    Dir:     "clips",
//	})
//	// clips/interview_01m05s_02m10s.wav
//
// A *export.PartialError is returned together with the result when only
// some formats were written.
func ExportFile(ctx context.Context, locator string, start, end float64, opts ExportOptions) (*export.Result, error) {
	formats := opts.Formats
	if len(formats) == 0 {
		formats = []string{"wav", "mp3"}
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	resolver := opts.Resolver
	if resolver == nil {
		resolver = source.NewResolver(nil)
	}

	o := export.New(
		export.WithResolver(resolver),
		export.WithSink(export.DirSink{Dir: dir}),
		export.WithReleaseDelay(max(opts.ReleaseDelay, 0)),
	)
	for f, enc := range opts.Encoders {
		o.RegisterEncoder(f, enc)
	}

	base := opts.BaseFilename
	if base == "" {
		base = locator
	}

	res, err := o.Export(ctx, export.Request{
		Locator:      locator,
		Start:        start,
		End:          end,
		BaseFilename: base,
		Formats:      formats,
		Progress:     opts.Progress,
	})

	if opts.ReleaseDelay > 0 {
		// a canceled wait leaves the rest to Close
		_ = o.WaitReleased(ctx)
	}

	if cerr := o.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("release exported files: %w", cerr)
	}

	return res, err
}
