package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/fsnotify/fsnotify"
	trajectory "github.com/tphakala/go-trajectory"
	"github.com/tphakala/go-trajectory/internal/simdops"
	"github.com/tphakala/go-trajectory/internal/waypoints"
)

// sampleOptions holds the sampling settings from the command line.
type sampleOptions struct {
	rate       float64
	start, end float64
	order      int
	speed      bool
}

// header returns the CSV column names for a track.
func header(tr *waypoints.Track, opts sampleOptions) []string {
	n := tr.Channels()
	prefix := "c"
	if opts.order > 0 {
		n = tr.RateChannels()
		prefix = "d" + strconv.Itoa(opts.order) + "_"
	}
	cols := make([]string, 0, n+2)
	cols = append(cols, "time")
	for i := range n {
		cols = append(cols, prefix+strconv.Itoa(i))
	}
	if opts.speed {
		cols = append(cols, "speed")
	}
	return cols
}

// writeCSV samples tr on the grid described by opts and writes one row per
// sample. It returns the number of data rows written.
func writeCSV(w io.Writer, tr *waypoints.Track, opts sampleOptions) (int, error) {
	cfg := trajectory.SampleConfig{Rate: opts.rate, Start: opts.start, End: opts.end}
	times, err := cfg.Times(tr.Start(), tr.End())
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header(tr, opts)); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	for _, t := range times {
		values, err := sampleAt(tr, t, opts.order)
		if err != nil {
			return 0, fmt.Errorf("failed to sample t=%g: %w", t, err)
		}

		row := make([]string, 0, len(values)+2)
		row = append(row, formatFloat(t))
		for _, v := range values {
			row = append(row, formatFloat(v))
		}
		if opts.speed {
			vel, err := tr.Derivative(t, 1)
			if err != nil {
				return 0, fmt.Errorf("failed to sample velocity t=%g: %w", t, err)
			}
			row = append(row, formatFloat(simdops.Norm(vel)))
		}
		if err := cw.Write(row); err != nil {
			return 0, fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("failed to flush output: %w", err)
	}
	return len(times), nil
}

// sampleAt returns the value (order 0) or derivative of tr at t.
func sampleAt(tr *waypoints.Track, t float64, order int) ([]float64, error) {
	if order == 0 {
		return tr.Evaluate(t)
	}
	return tr.Derivative(t, order)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// watchFile calls onChange each time the file at path is written or
// replaced, until ctx is cancelled. The parent directory is watched so that
// editors that save through a rename are followed.
func watchFile(ctx context.Context, path string, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				onChange()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch failed: %w", err)
		}
	}
}
