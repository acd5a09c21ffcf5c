package main

import (
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	trajectory "github.com/tphakala/go-trajectory"
	"github.com/tphakala/go-trajectory/internal/waypoints"
)

// validateBitDepth rejects bit depths the encoder does not support.
func validateBitDepth(bits int) error {
	switch bits {
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
		return nil
	default:
		return fmt.Errorf("unsupported bit depth %d (want 16, 24 or 32)", bits)
	}
}

// getMaxValue returns the full-scale integer value for a bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// renderTrack samples tr on a grid of rate samples per unit of time and
// returns one slice per channel. The grid is split into chunks rendered
// concurrently, each on its own clone of the track.
func renderTrack(tr *waypoints.Track, rate float64, order, workers int) ([][]float64, error) {
	cfg := trajectory.SampleConfig{Rate: rate}
	times, err := cfg.Times(tr.Start(), tr.End())
	if err != nil {
		return nil, err
	}

	numChannels := tr.Channels()
	if order > 0 {
		numChannels = tr.RateChannels()
	}
	channels := make([][]float64, numChannels)
	for ch := range channels {
		channels[ch] = make([]float64, len(times))
	}

	chunks := splitChunks(len(times), workers)
	if len(chunks) == 1 {
		return channels, renderChunk(tr, times, channels, chunks[0], order)
	}

	var wg sync.WaitGroup
	var renderErr error
	var errMu sync.Mutex

	for _, c := range chunks {
		wg.Add(1)
		go func(c chunk) {
			defer wg.Done()
			err := func() error {
				local, err := tr.Clone()
				if err != nil {
					return err
				}
				return renderChunk(local, times, channels, c, order)
			}()
			if err != nil {
				errMu.Lock()
				if renderErr == nil {
					renderErr = err
				}
				errMu.Unlock()
			}
		}(c)
	}
	wg.Wait()

	if renderErr != nil {
		return nil, renderErr
	}
	return channels, nil
}

// chunk is a half-open range [lo, hi) of grid indices.
type chunk struct {
	lo, hi int
}

// splitChunks divides n grid points among at most workers chunks of at least
// minChunkSamples each.
func splitChunks(n, workers int) []chunk {
	count := max(1, min(workers, n/minChunkSamples))
	size := (n + count - 1) / count
	chunks := make([]chunk, 0, count)
	for lo := 0; lo < n || len(chunks) == 0; lo += size {
		chunks = append(chunks, chunk{lo: lo, hi: min(lo+size, n)})
	}
	return chunks
}

// renderChunk fills channels at the grid indices of c.
func renderChunk(tr *waypoints.Track, times []float64, channels [][]float64, c chunk, order int) error {
	for i := c.lo; i < c.hi; i++ {
		var (
			v   []float64
			err error
		)
		if order == 0 {
			v, err = tr.Evaluate(times[i])
		} else {
			v, err = tr.Derivative(times[i], order)
		}
		if err != nil {
			return fmt.Errorf("failed to render t=%g: %w", times[i], err)
		}
		for ch := range channels {
			channels[ch][i] = v[ch]
		}
	}
	return nil
}

// interleave scales samples, clips them to [-1, 1] and converts them to
// interleaved integer PCM.
func interleave(channels [][]float64, scale float64, bitDepth int) []int {
	if len(channels) == 0 || len(channels[0]) == 0 {
		return nil
	}

	numChannels := len(channels)
	samplesPerChannel := len(channels[0])
	maxVal := getMaxValue(bitDepth)
	result := make([]int, samplesPerChannel*numChannels)

	for i := range samplesPerChannel {
		for ch := range numChannels {
			sample := channels[ch][i] * scale
			if sample > 1.0 {
				sample = 1.0
			} else if sample < -1.0 || math.IsNaN(sample) {
				sample = -1.0
			}
			result[i*numChannels+ch] = int(math.Round(sample * maxVal))
		}
	}
	return result
}

// writeWAV writes interleaved PCM samples to a new WAV file at path.
func writeWAV(path string, data []int, sampleRate, bitDepth, channels int) error {
	outputFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	enc := wav.NewEncoder(outputFile, sampleRate, bitDepth, channels, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		_ = outputFile.Close()
		return fmt.Errorf("failed to write samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = outputFile.Close()
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return outputFile.Close()
}
