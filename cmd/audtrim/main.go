// SPDX-License-Identifier: EPL-2.0

// Command audtrim cuts a segment out of an audio file.
//
// With -start and -end it exports the segment and exits:
//
//	audtrim -in song.mp3 -start 1:05 -end 2:10 -formats wav,mp3
//
// Without them it opens an interactive trimmer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/ik5/audtrim"
	"github.com/ik5/audtrim/engine"
	"github.com/ik5/audtrim/export"
	"github.com/ik5/audtrim/formats/mp3"
	"github.com/ik5/audtrim/internal/config"
	"github.com/ik5/audtrim/internal/ui"
	"github.com/ik5/audtrim/source"
)

var (
	input    = flag.String("in", "", "audio file, URL or blob: locator")
	startArg = flag.String("start", "", "segment start, seconds or [h:]mm:ss")
	endArg   = flag.String("end", "", "segment end, seconds or [h:]mm:ss")
	noTUI    = flag.Bool("no-tui", false, "log to stdout instead of the log file only")
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if *input == "" && flag.NArg() > 0 {
		*input = flag.Arg(0)
	}
	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: audtrim -in <file> [-start t -end t] [flags]")
		flag.PrintDefaults()
		return 2
	}

	batch := *startArg != "" || *endArg != ""
	useTUI := !batch && !*noTUI

	// Set up logging
	f, err := os.OpenFile(cfg.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening log file: %v\n", err)
		return 1
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		log.SetOutput(f)
	} else {
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}

	if err := cfg.Validate(); err != nil {
		log.Print(err)
		return 2
	}

	settings, err := config.LoadSettings(cfg.SettingsPath)
	if err != nil {
		log.Printf("Warning: %v; using default settings", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng := engine.New(engine.WithSampleRate(cfg.DeviceRate))
	defer eng.Close()

	resolver := source.NewResolver(eng.Registry(),
		source.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		source.WithBlobDir(cfg.BlobDir),
		source.WithFolderHint(settings.AudioFolderPath),
		source.WithDefaultPrefix(cfg.PrefixBytes),
	)
	mp3Enc := mp3.Encoder{BitRate: cfg.BitRate}

	if batch {
		return runBatch(ctx, cfg, resolver, mp3Enc)
	}

	if err := runTUI(cfg, settings, eng, resolver, mp3Enc); err != nil {
		log.Printf("TUI error: %v", err)
		return 1
	}
	return 0
}

func runBatch(ctx context.Context, cfg config.Config, resolver *source.Resolver, mp3Enc mp3.Encoder) int {
	start, err := parseTime(*startArg)
	if err != nil {
		log.Printf("invalid -start: %v", err)
		return 2
	}
	end, err := parseTime(*endArg)
	if err != nil {
		log.Printf("invalid -end: %v", err)
		return 2
	}

	p := mpb.New(mpb.WithWidth(64))
	bar := p.AddBar(100,
		mpb.PrependDecorators(
			decor.Name("Exporting: "),
		),
		mpb.AppendDecorators(
			decor.Percentage(),
		),
	)

	res, err := audtrim.ExportFile(ctx, *input, start, end, audtrim.ExportOptions{
		Formats:      cfg.Formats,
		Dir:          cfg.OutputDir,
		Resolver:     resolver,
		Encoders:     map[string]export.Encoder{"mp3": mp3Enc},
		Progress:     func(v float64) { bar.SetCurrent(int64(v)) },
		ReleaseDelay: cfg.ReleaseDelay,
	})
	if !bar.Completed() {
		bar.Abort(false)
	}
	p.Wait()

	var partial *export.PartialError
	if err != nil && !errors.As(err, &partial) {
		log.Printf("%s", export.NoticeFor(err).Message)
		log.Printf("export failed: %v", err)
		return 1
	}

	for _, a := range res.Artifacts {
		fmt.Printf("%s (%d bytes)\n", a.Filename, len(a.Data))
	}
	if partial != nil {
		log.Printf("%s", export.NoticeFor(err).Message)
		return 1
	}
	return 0
}

func runTUI(cfg config.Config, settings config.Settings, eng *engine.Engine, resolver *source.Resolver, mp3Enc mp3.Encoder) error {
	bridge := &ui.Bridge{}

	exporter := export.New(
		export.WithResolver(resolver),
		export.WithSink(export.DirSink{Dir: cfg.OutputDir}),
		export.WithReleaseDelay(cfg.ReleaseDelay),
		export.WithEncoder("mp3", mp3Enc),
		export.WithNoticeHook(bridge.Notice),
	)
	defer exporter.Close()

	session := audtrim.NewSession(
		audtrim.WithEngine(eng),
		audtrim.WithResolver(resolver),
		audtrim.WithExporter(exporter),
		audtrim.WithNoticeHook(bridge.Notice),
		audtrim.WithPlayerHook(bridge.PlayerState),
	)
	defer session.Close()

	log.Printf("Starting audtrim: %s", *input)

	prog := ui.Run(ui.NewModel(session, bridge, *input, cfg.Formats, settings))
	_, err := prog.Run()
	return err
}
