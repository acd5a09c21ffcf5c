package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	trajectory "github.com/tphakala/go-trajectory"
	"github.com/tphakala/go-trajectory/internal/waypoints"
)

const scalarYAML = `kind: scalar
points:
  - {time: 0, value: [0]}
  - {time: 1, value: [10]}
  - {time: 2, value: [0]}
`

func scalarTrack(t *testing.T) *waypoints.Track {
	t.Helper()
	f, err := waypoints.Parse([]byte(scalarYAML))
	require.NoError(t, err)
	tr, err := waypoints.NewTrack(f)
	require.NoError(t, err)
	return tr
}

func TestHeader(t *testing.T) {
	tr := scalarTrack(t)

	assert.Equal(t, []string{"time", "c0"}, header(tr, sampleOptions{}))
	assert.Equal(t, []string{"time", "d1_0", "speed"}, header(tr, sampleOptions{order: 1, speed: true}))
}

func TestWriteCSV_Values(t *testing.T) {
	tr := scalarTrack(t)

	var buf bytes.Buffer
	rows, err := writeCSV(&buf, tr, sampleOptions{rate: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, rows)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.Equal(t, []string{"time", "c0"}, records[0])
	assert.Equal(t, []string{"0", "0"}, records[1])
	assert.Equal(t, []string{"1", "10"}, records[3])

	mid, err := strconv.ParseFloat(records[2][1], 64)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, mid, 1e-12)
}

func TestWriteCSV_DerivativeWithSpeed(t *testing.T) {
	tr := scalarTrack(t)

	var buf bytes.Buffer
	_, err := writeCSV(&buf, tr, sampleOptions{rate: 2, order: 1, speed: true})
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)

	// Row for t=1.5: velocity -15, speed 15.
	vel, err := strconv.ParseFloat(records[4][1], 64)
	require.NoError(t, err)
	speed, err := strconv.ParseFloat(records[4][2], 64)
	require.NoError(t, err)
	assert.InDelta(t, -15.0, vel, 1e-9)
	assert.InDelta(t, 15.0, speed, 1e-9)
}

func TestWriteCSV_InvalidRate(t *testing.T) {
	tr := scalarTrack(t)

	var buf bytes.Buffer
	_, err := writeCSV(&buf, tr, sampleOptions{rate: 0})
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestWriteCSV_InfiniteRange(t *testing.T) {
	tr := scalarTrack(t)

	var buf bytes.Buffer
	var err error
	require.NotPanics(t, func() {
		_, err = writeCSV(&buf, tr, sampleOptions{rate: 1, start: math.Inf(1), end: math.Inf(1)})
	})
	require.ErrorIs(t, err, trajectory.ErrInvalidConfig)
	assert.Zero(t, buf.Len())
}

func TestWatchFile_CallsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scalarYAML), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for waiting := true; waiting; {
		select {
		case <-changed:
			waiting = false
		case <-ticker.C:
			require.NoError(t, os.WriteFile(path, []byte(scalarYAML), 0o600))
		case <-ctx.Done():
			t.Fatal("no change notification received")
		}
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestWatchFile_MissingDirectory(t *testing.T) {
	err := watchFile(context.Background(), "/nonexistent/dir/track.yaml", func() {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}
