// SPDX-License-Identifier: EPL-2.0

// Command audmeta prints the sample rate, frame count and duration of audio
// files without decoding them.
//
// Usage:
//
//	audmeta [-json] [-v] [-ogg granule|summation|decode] [-mp4-fallthrough] file...
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"text/tabwriter"

	"github.com/ik5/audmeta"
	"github.com/ik5/audmeta/audio"
	"github.com/ik5/audmeta/formats/vorbis"
	"github.com/ik5/audmeta/internal/logging"
	pionlogging "github.com/pion/logging"
	"golang.org/x/sync/errgroup"
)

var (
	errMissingPath  = errors.New("missing path argument")
	errUnrecognized = errors.New("some files were not recognized")
)

var log = logging.NewLogger("audmeta/cmd")

func main() {
	err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == nil:
		return
	case errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	case errors.Is(err, errMissingPath):
		fmt.Fprintln(os.Stderr, "usage: audmeta [flags] file...")
		os.Exit(2)
	case errors.Is(err, errUnrecognized):
		os.Exit(1)
	}

	log.Error(err.Error())
	os.Exit(1)
}

type result struct {
	Path   string `json:"path"`
	Format string `json:"format,omitempty"`
	*Stream
	Error string `json:"error,omitempty"`
}

// Stream is set on every successful result, so its zero values are printed.
type Stream struct {
	SampleRate   uint32  `json:"sample_rate"`
	SampleLength uint32  `json:"sample_length"`
	Seconds      float64 `json:"seconds"`
}

func run(ctx context.Context, args []string, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("audmeta", flag.ContinueOnError)
	fs.SetOutput(errOut)

	asJSON := fs.Bool("json", false, "print results as JSON")
	verbose := fs.Bool("v", false, "trace every probe attempt")
	oggStrategy := fs.String("ogg", vorbis.Granule.String(), "Ogg Vorbis length strategy: granule, summation or decode")
	mp4FallThrough := fs.Bool("mp4-fallthrough", false, "try later formats when an MP4 lacks duration or sample rate")

	if err := fs.Parse(args); err != nil {
		return err
	}

	paths := fs.Args()
	if len(paths) == 0 {
		return errMissingPath
	}

	strategy, err := vorbis.ParseStrategy(*oggStrategy)
	if err != nil {
		return err
	}

	opts := []audmeta.Option{audmeta.WithOggStrategy(strategy)}
	if *mp4FallThrough {
		opts = append(opts, audmeta.WithMP4FallThrough())
	}
	if *verbose {
		opts = append(opts, audmeta.WithLogger(
			pionlogging.NewDefaultLeveledLoggerForScope("audmeta", pionlogging.LogLevelTrace, errOut),
		))
	}

	results, err := probeFiles(ctx, audmeta.NewRegistry(opts...), paths)
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else if err := printTable(out, results); err != nil {
		return err
	}

	for _, r := range results {
		if r.Error != "" {
			return errUnrecognized
		}
	}

	return nil
}

// probeFiles reads and probes paths concurrently. Results keep the order of
// paths. A file that cannot be read fails the whole run; a file that is not
// recognized is reported in its result.
func probeFiles(ctx context.Context, reg *audio.Registry, paths []string) ([]result, error) {
	results := make([]result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			buf, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			results[i] = probe(reg, path, buf)
			if r := results[i]; r.Stream != nil {
				log.Debugf("%s: %s %+v", path, r.Format, *r.Stream)
			} else {
				log.Debugf("%s: %s", path, r.Error)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func probe(reg *audio.Registry, path string, buf []byte) result {
	format, meta, err := reg.Probe(buf)
	if err != nil {
		r := result{Path: path, Error: err.Error()}
		if format != audio.Unknown {
			r.Format = format.String()
		}
		return r
	}

	return result{
		Path:   path,
		Format: format.String(),
		Stream: &Stream{
			SampleRate:   meta.SampleRate,
			SampleLength: meta.SampleLength,
			Seconds:      meta.Duration().Seconds(),
		},
	}
}

func printTable(out io.Writer, results []result) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	for _, r := range results {
		if r.Stream == nil {
			fmt.Fprintf(w, "%s\t%s\n", r.Path, r.Error)
			continue
		}

		fmt.Fprintf(w, "%s\t%s\t%d Hz\t%d frames\t%.3fs\n",
			r.Path, r.Format, r.SampleRate, r.SampleLength, r.Seconds)
	}

	return w.Flush()
}
