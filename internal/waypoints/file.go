// Package waypoints reads waypoint files and turns them into trajectories
// whose values are exposed as flat float64 channels.
package waypoints

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

// Errors returned when loading waypoint files.
var (
	// ErrInvalidFile indicates a waypoint file that cannot describe a trajectory.
	ErrInvalidFile = errors.New("invalid waypoint file")

	// ErrUnknownKind indicates an unsupported value kind.
	ErrUnknownKind = errors.New("unknown waypoint kind")

	// ErrEmptyTrack indicates a Track that was not built by NewTrack.
	ErrEmptyTrack = errors.New("track has no waypoints")
)

// Kind names the value type of a waypoint file.
type Kind string

// Supported kinds.
const (
	KindScalar     Kind = "scalar"
	KindVector     Kind = "vector"
	KindQuaternion Kind = "quaternion"
	KindMatrix     Kind = "matrix"
	KindPose       Kind = "pose"
	KindForce      Kind = "force"
	KindMotion     Kind = "motion"
)

// width returns the number of components per value. Vectors have no fixed
// width and report 0.
func (k Kind) width() (int, error) {
	switch k {
	case KindScalar:
		return scalarWidth, nil
	case KindVector:
		return 0, nil
	case KindQuaternion:
		return quaternionWidth, nil
	case KindMatrix:
		return matrixWidth, nil
	case KindPose:
		return poseWidth, nil
	case KindForce, KindMotion:
		return spatialWidth, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
	}
}

// Point is one timestamped value.
//
// Value layouts:
//   - scalar: [v]
//   - vector: [v0, v1, ...]
//   - quaternion: [w, x, y, z]
//   - matrix: 9 elements, row-major
//   - pose: [qw, qx, qy, qz, x, y, z]
//   - force: [cx, cy, cz, fx, fy, fz]
//   - motion: [wx, wy, wz, vx, vy, vz]
type Point struct {
	Time  float64   `yaml:"time"`
	Value []float64 `yaml:"value"`
}

// File is the content of a waypoint file.
type File struct {
	Kind   Kind    `yaml:"kind"`
	Points []Point `yaml:"points"`
}

// Load reads and validates the waypoint file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read waypoint file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates waypoint YAML.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Width returns the number of components per value.
func (f *File) Width() int {
	if w, err := f.Kind.width(); err == nil && w > 0 {
		return w
	}
	if len(f.Points) == 0 {
		return 0
	}
	return len(f.Points[0].Value)
}

// Validate checks that the file describes a trajectory.
func (f *File) Validate() error {
	want, err := f.Kind.width()
	if err != nil {
		return err
	}
	if len(f.Points) < minPoints {
		return fmt.Errorf("%w: need at least %d points, got %d", ErrInvalidFile, minPoints, len(f.Points))
	}
	if want == 0 {
		want = len(f.Points[0].Value)
		if want == 0 {
			return fmt.Errorf("%w: point 0 has an empty value", ErrInvalidFile)
		}
	}

	times := make([]float64, len(f.Points))
	for i, p := range f.Points {
		if len(p.Value) != want {
			return fmt.Errorf("%w: point %d has %d components, want %d", ErrInvalidFile, i, len(p.Value), want)
		}
		if floats.HasNaN(p.Value) || math.IsNaN(p.Time) {
			return fmt.Errorf("%w: point %d contains NaN", ErrInvalidFile, i)
		}
		if err := validateValue(f.Kind, p.Value); err != nil {
			return fmt.Errorf("%w: point %d: %w", ErrInvalidFile, i, err)
		}
		times[i] = p.Time
	}

	slices.Sort(times)
	for i := 1; i < len(times); i++ {
		if times[i] == times[i-1] {
			return fmt.Errorf("%w: duplicate time %g", ErrInvalidFile, times[i])
		}
	}
	return nil
}

// validateValue checks kind-specific constraints on a single value.
func validateValue(kind Kind, v []float64) error {
	switch kind {
	case KindQuaternion, KindPose:
		if floats.Norm(v[:quaternionWidth], 2) == 0 {
			return errors.New("zero quaternion")
		}
	case KindMatrix:
		r := mat.NewDense(3, 3, slices.Clone(v))
		var rtr mat.Dense
		rtr.Mul(r.T(), r)
		eye := mat.NewDiagDense(3, []float64{1, 1, 1})
		if !mat.EqualApprox(&rtr, eye, orthonormalTolerance) {
			return errors.New("matrix is not orthonormal")
		}
		if mat.Det(r) < 0 {
			return errors.New("matrix is a reflection")
		}
	}
	return nil
}
