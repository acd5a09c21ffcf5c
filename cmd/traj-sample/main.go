// Command traj-sample samples a waypoint file on a uniform time grid and
// writes the result as CSV.
//
// Usage:
//
//	traj-sample -rate 100 waypoints.yaml
//	traj-sample -rate 50 -order 1 -speed waypoints.yaml   # velocities plus speed column
//	traj-sample -watch waypoints.yaml                      # re-sample on every save
//
// Each row holds the time followed by one column per value component. With
// -order N the columns hold the N-th derivative instead.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tphakala/go-trajectory/internal/simdops"
	"github.com/tphakala/go-trajectory/internal/waypoints"
)

const (
	// CLI defaults
	defaultRate     = 100.0
	minRequiredArgs = 1
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	rate := flag.Float64("rate", defaultRate, "Samples per unit of time")
	order := flag.Int("order", 0, "Derivative order to output (0 for values)")
	start := flag.Float64("start", 0, "Grid start time (default: first waypoint)")
	end := flag.Float64("end", 0, "Grid end time (default: last waypoint)")
	speed := flag.Bool("speed", false, "Append a column with the norm of the first derivative")
	watch := flag.Bool("watch", false, "Re-sample whenever the waypoint file changes")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] waypoints.yaml\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -rate 100 arm.yaml             # Positions at 100 Hz\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -order 1 -speed arm.yaml       # Velocities and speed\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -watch arm.yaml > arm.csv      # Keep output in sync\n", os.Args[0])
		return errors.New("insufficient arguments")
	}
	if *order < 0 {
		return fmt.Errorf("invalid derivative order %d", *order)
	}

	path := args[0]
	opts := sampleOptions{
		rate:  *rate,
		start: *start,
		end:   *end,
		order: *order,
		speed: *speed,
	}

	if *verbose {
		log.Printf("Input: %s", path)
		log.Printf("Rate: %g", opts.rate)
		log.Printf("Order: %d", opts.order)
		log.Printf("SIMD: %s", simdops.Info())
	}

	render := func() error {
		f, err := waypoints.Load(path)
		if err != nil {
			return err
		}
		tr, err := waypoints.NewTrack(f)
		if err != nil {
			return err
		}
		rows, err := writeCSV(os.Stdout, tr, opts)
		if err != nil {
			return err
		}
		if *verbose {
			log.Printf("Wrote %d rows (%s, %d channels)", rows, tr.Kind(), tr.Channels())
		}
		return nil
	}

	if err := render(); err != nil {
		if !*watch {
			return err
		}
		log.Printf("Error: %v", err)
	}
	if !*watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *verbose {
		log.Printf("Watching %s", path)
	}
	return watchFile(ctx, path, func() {
		if err := render(); err != nil {
			log.Printf("Error: %v", err)
		}
	})
}
