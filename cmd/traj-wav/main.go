// Command traj-wav renders a waypoint file as a multi-channel WAV control
// signal, one channel per value component.
//
// Usage:
//
//	traj-wav -rate 48000 waypoints.yaml out.wav
//	traj-wav -rate 1000 -bits 16 -scale 0.1 arm.yaml arm.wav   # scale values into [-1, 1]
//	traj-wav -order 1 arm.yaml arm_velocity.wav                  # render velocities
//
// Samples are multiplied by -scale and clipped to [-1, 1] before conversion
// to integer PCM. One second of output covers one unit of trajectory time.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/tphakala/go-trajectory/internal/simdops"
	"github.com/tphakala/go-trajectory/internal/waypoints"
)

const (
	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Conversion constants
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	// WAV format tag for integer PCM
	wavFormatPCM = 1

	// CLI defaults
	defaultRate     = 48000
	defaultBits     = 24
	defaultScale    = 1.0
	minRequiredArgs = 2

	// minChunkSamples is the smallest grid slice handed to one worker.
	minChunkSamples = 4096
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	rate := flag.Int("rate", defaultRate, "Output sample rate in Hz (samples per unit of time)")
	bits := flag.Int("bits", defaultBits, "Bit depth: 16, 24 or 32")
	scale := flag.Float64("scale", defaultScale, "Gain applied before clipping to [-1, 1]")
	order := flag.Int("order", 0, "Derivative order to render (0 for values)")
	workers := flag.Int("workers", runtime.NumCPU(), "Number of parallel render workers")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] waypoints.yaml output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -rate 48000 arm.yaml arm.wav          # 24-bit control signal\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -bits 16 -scale 0.5 arm.yaml arm.wav  # Attenuate and use 16-bit\n", os.Args[0])
		return errors.New("insufficient arguments")
	}
	if err := validateBitDepth(*bits); err != nil {
		return err
	}
	if *rate <= 0 {
		return fmt.Errorf("invalid sample rate %d", *rate)
	}
	if *order < 0 {
		return fmt.Errorf("invalid derivative order %d", *order)
	}

	inputPath := args[0]
	outputPath := args[1]

	if *verbose {
		log.Printf("Input: %s", inputPath)
		log.Printf("Output: %s", outputPath)
		log.Printf("Rate: %d Hz, %d-bit", *rate, *bits)
		log.Printf("Workers: %d", *workers)
		log.Printf("SIMD: %s", simdops.Info())
	}

	f, err := waypoints.Load(inputPath)
	if err != nil {
		return err
	}
	tr, err := waypoints.NewTrack(f)
	if err != nil {
		return err
	}

	start := time.Now()
	channels, err := renderTrack(tr, float64(*rate), *order, *workers)
	if err != nil {
		return err
	}
	data := interleave(channels, *scale, *bits)
	if err := writeWAV(outputPath, data, *rate, *bits, len(channels)); err != nil {
		return err
	}
	elapsed := time.Since(start)

	samples := 0
	if len(channels) > 0 {
		samples = len(channels[0])
	}
	fmt.Printf("Rendered %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %s track, %d channels, %d-bit\n", tr.Kind(), len(channels), *bits)
	fmt.Printf("  %d samples at %d Hz (%.3fs)\n", samples, *rate, float64(samples)/float64(*rate))
	fmt.Printf("  Duration: %.2fs\n", elapsed.Seconds())
	return nil
}
