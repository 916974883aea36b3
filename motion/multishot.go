// MODUL: multishot
// ZWECK: Bewegungssimulation fuer Multi-Shot kartesische MRI-Aufnahmen
// INPUT: komplexes Bild [..., H, W], Anzahl Shots, Transform-Generator, Trajectory
// OUTPUT: zusammengesetzter k-space, jede Zeile stammt aus genau einem Shot
// NEBENEFFEKTE: jeder Shot fordert eine neue Transformation vom Generator an
// ABHAENGIGKEITEN: golang.org/x/sync/errgroup (extern), cplx, fft
// HINWEISE: Phase-Encode Richtung ist die Breite (letzte Achse).
//           Transformationen werden immer seriell in Shot-Reihenfolge gezogen,
//           nur Anwendung und FFT laufen optional parallel.

package motion

import (
	"fmt"
	"log/slog"

	"github.com/pdevine/tensor"
	"golang.org/x/sync/errgroup"

	"github.com/7blacky7/mrimotion/cplx"
	"github.com/7blacky7/mrimotion/fft"
	"github.com/7blacky7/mrimotion/logutil"
)

// Transform bewegt ein Bild. Implementierungen muessen zustandslos sein,
// ApplyImage kann nebenlaeufig aufgerufen werden.
type Transform interface {
	ApplyImage(img *cplx.Array) *cplx.Array
}

// TransformGenerator liefert pro Aufruf eine (neu gezogene) Transformation
type TransformGenerator interface {
	GetTransform(img *cplx.Array) (Transform, error)
}

// GeneratorFunc adaptiert eine Funktion an TransformGenerator
type GeneratorFunc func(img *cplx.Array) (Transform, error)

func (f GeneratorFunc) GetTransform(img *cplx.Array) (Transform, error) {
	return f(img)
}

type options struct {
	workers int
}

// Option konfiguriert AddMotionCorruption
type Option func(*options)

// WithWorkers verteilt Anwendung und FFT der Shots auf n Goroutinen.
// n <= 1 rechnet seriell. Das Ergebnis ist in beiden Faellen bit-identisch.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// AddMotionCorruption simuliert Patientenbewegung zwischen den Shots.
// Jeder Shot bekommt eine eigene Transformation von gen, wird in den
// k-space transformiert und liefert die ihm per traj zugeordneten Zeilen.
func AddMotionCorruption(image *tensor.Dense, nshots int, gen TransformGenerator, traj Trajectory, opts ...Option) (*tensor.Dense, error) {
	x, err := cplx.FromDense(image)
	if err != nil {
		return nil, err
	}

	out, err := MotionCorruption(x, nshots, gen, traj, opts...)
	if err != nil {
		return nil, err
	}
	return out.Dense(), nil
}

// MotionCorruption ist AddMotionCorruption auf einem dekodierten Array
func MotionCorruption(x *cplx.Array, nshots int, gen TransformGenerator, traj Trajectory, opts ...Option) (*cplx.Array, error) {
	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}

	if gen == nil {
		return nil, ErrNoGenerator
	}
	if x.Rank() < 2 {
		return nil, fmt.Errorf("%w: rank %d", ErrInvalidShape, x.Rank())
	}

	width := x.Width()
	assignment, err := traj.Assignment(nshots, width)
	if err != nil {
		return nil, err
	}

	slog.Debug("multi-shot motion", "shots", nshots, "trajectory", traj, "shape", x.Shape, "workers", o.workers)

	counts := make([]int, nshots)
	for _, shot := range assignment {
		counts[shot]++
	}

	// Zuege seriell, damit die Reihenfolge unabhaengig von der Parallelitaet ist
	transforms := make([]Transform, nshots)
	for shot := range transforms {
		t, err := gen.GetTransform(x)
		if err != nil {
			return nil, fmt.Errorf("shot %d: %w", shot, err)
		}
		if t == nil {
			return nil, fmt.Errorf("shot %d: %w", shot, ErrNoGenerator)
		}
		transforms[shot] = t
		logutil.Trace("shot transform", "shot", shot, "lines", counts[shot])
	}

	kspace := cplx.ZerosLike(x)

	var g errgroup.Group
	g.SetLimit(max(o.workers, 1))
	for shot, t := range transforms {
		g.Go(func() error {
			moved := t.ApplyImage(x)
			if moved == nil {
				return fmt.Errorf("shot %d: %w: transform returned nil", shot, ErrInvalidShape)
			}
			if !cplx.SameShape(moved, x) {
				return fmt.Errorf("shot %d: %w: transform returned %v, want %v", shot, ErrInvalidShape, moved.Shape, x.Shape)
			}
			copyLines(kspace, fft.FFT2c(moved), assignment, shot)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return kspace, nil
}

// copyLines ueberschreibt in dst alle Spalten (Zeilen entlang W), die shot zugeordnet sind
func copyLines(dst, src *cplx.Array, assignment []int, shot int) {
	width := len(assignment)
	for row := 0; row < len(dst.Data); row += width {
		for l, s := range assignment {
			if s == shot {
				dst.Data[row+l] = src.Data[row+l]
			}
		}
	}
}
