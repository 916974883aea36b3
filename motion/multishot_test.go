package motion

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pdevine/tensor"

	"github.com/7blacky7/mrimotion/affine"
	"github.com/7blacky7/mrimotion/cplx"
	"github.com/7blacky7/mrimotion/fft"
	"github.com/7blacky7/mrimotion/logutil"
	"github.com/7blacky7/mrimotion/rng"
)

// gainTransform multipliziert das Bild mit einem festen Faktor
type gainTransform complex128

func (g gainTransform) ApplyImage(img *cplx.Array) *cplx.Array {
	out := img.Clone()
	for i := range out.Data {
		out.Data[i] *= complex128(g)
	}
	return out
}

// countingGenerator liefert fuer den n-ten Aufruf den Faktor n
type countingGenerator struct {
	calls int
}

func (g *countingGenerator) GetTransform(*cplx.Array) (Transform, error) {
	g.calls++
	return gainTransform(complex(float64(g.calls), 0)), nil
}

func randomAffine(seed uint64) TransformGenerator {
	r := &affine.RandomAffine{
		Degrees:    8,
		Translate:  [2]float64{0.1, 0.1},
		ScaleRange: [2]float64{0.95, 1.05},
		Rand:       rng.New(seed),
	}
	return GeneratorFunc(func(img *cplx.Array) (Transform, error) {
		t, err := r.GetTransform(img)
		if err != nil {
			return nil, err
		}
		return t, nil
	})
}

func TestMotionLinesComeFromAssignedShot(t *testing.T) {
	for _, traj := range []Trajectory{Blocked, Interleaved} {
		x := randomKspace(3, 2, 6, 10)
		gen := &countingGenerator{}

		got, err := MotionCorruption(x, 3, gen, traj)
		if err != nil {
			t.Fatal(err)
		}
		if gen.calls != 3 {
			t.Errorf("%v: %d Transformationen angefordert, erwartet 3", traj, gen.calls)
		}

		assignment, _ := traj.Assignment(3, 10)
		shots := make([]*cplx.Array, 3)
		for s := range shots {
			shots[s] = fft.FFT2c(gainTransform(complex(float64(s+1), 0)).ApplyImage(x))
		}

		w := x.Width()
		for i, v := range got.Data {
			shot := assignment[i%w]
			if want := shots[shot].Data[i]; v != want {
				t.Fatalf("%v: Element %d (Zeile %d) = %v, erwartet Shot %d Wert %v", traj, i, i%w, v, shot, want)
			}
		}
	}
}

func TestMotionSingleShot(t *testing.T) {
	x := randomKspace(4, 1, 8, 8)

	for _, traj := range []Trajectory{Blocked, Interleaved} {
		got, err := MotionCorruption(x, 1, randomAffine(10), traj)
		if err != nil {
			t.Fatal(err)
		}

		tr, err := randomAffine(10).GetTransform(x)
		if err != nil {
			t.Fatal(err)
		}
		want := fft.FFT2c(tr.ApplyImage(x))
		if diff := cmp.Diff(want.Data, got.Data); diff != "" {
			t.Errorf("%v: ein Shot ist nicht fft2c(transform(x)) (-want +got):\n%s", traj, diff)
		}
	}
}

func TestMotionDeterministic(t *testing.T) {
	x := randomKspace(5, 2, 12, 12)

	a, err := MotionCorruption(x, 4, randomAffine(77), Interleaved)
	if err != nil {
		t.Fatal(err)
	}
	b, err := MotionCorruption(x, 4, randomAffine(77), Interleaved)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a.Data, b.Data); diff != "" {
		t.Errorf("gleicher Seed, unterschiedliche Ergebnisse:\n%s", diff)
	}
}

func TestMotionParallelMatchesSerial(t *testing.T) {
	x := randomKspace(6, 3, 10, 16)

	serial, err := MotionCorruption(x, 5, randomAffine(9), Blocked)
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := MotionCorruption(x, 5, randomAffine(9), Blocked, WithWorkers(4))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(serial.Data, parallel.Data); diff != "" {
		t.Errorf("parallel != seriell:\n%s", diff)
	}
}

func TestMotionMoreShotsThanLines(t *testing.T) {
	x := randomKspace(7, 4, 3)
	gen := &countingGenerator{}

	got, err := MotionCorruption(x, 5, gen, Blocked)
	if err != nil {
		t.Fatal(err)
	}
	if gen.calls != 5 {
		t.Errorf("%d Transformationen, erwartet 5", gen.calls)
	}

	// offset = 1: Zeilen 0..2 aus Shot 0..2, Shots 3 und 4 schreiben nichts
	for s := range 3 {
		k := fft.FFT2c(gainTransform(complex(float64(s+1), 0)).ApplyImage(x))
		for row := range 4 {
			if got.Data[row*3+s] != k.Data[row*3+s] {
				t.Errorf("Zeile %d stammt nicht aus Shot %d", s, s)
			}
		}
	}
}

func TestMotionInvalidTrajectory(t *testing.T) {
	x := randomKspace(8, 4, 4)
	gen := &countingGenerator{}

	got, err := MotionCorruption(x, 2, gen, Trajectory(42))
	if !errors.Is(err, ErrUnsupportedTrajectory) {
		t.Fatalf("Fehler = %v, erwartet ErrUnsupportedTrajectory", err)
	}
	if got != nil {
		t.Error("Teilergebnis trotz Fehler")
	}
	if gen.calls != 0 {
		t.Errorf("%d Transformationen vor dem Fehler angefordert", gen.calls)
	}

	if _, err := ParseTrajectory("spiral"); !errors.Is(err, ErrUnsupportedTrajectory) {
		t.Errorf("ParseTrajectory(spiral) = %v", err)
	}
}

func TestMotionInvalidInput(t *testing.T) {
	x := randomKspace(9, 4, 4)

	if _, err := MotionCorruption(x, 0, &countingGenerator{}, Blocked); !errors.Is(err, ErrInvalidShots) {
		t.Errorf("nshots=0: %v", err)
	}
	if _, err := MotionCorruption(x, 2, nil, Blocked); !errors.Is(err, ErrNoGenerator) {
		t.Errorf("ohne Generator: %v", err)
	}
	if _, err := MotionCorruption(cplx.New(4), 2, &countingGenerator{}, Blocked); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("Rang 1: %v", err)
	}

	realTensor := tensor.New(tensor.WithShape(4, 3), tensor.WithBacking(make([]float64, 12)))
	if _, err := AddMotionCorruption(realTensor, 2, &countingGenerator{}, Blocked); !errors.Is(err, cplx.ErrNotComplex) {
		t.Errorf("reeller Tensor: %v", err)
	}
}

type failingGenerator struct {
	calls int
	err   error
}

func (g *failingGenerator) GetTransform(*cplx.Array) (Transform, error) {
	g.calls++
	if g.calls == 2 {
		return nil, g.err
	}
	return gainTransform(1), nil
}

func TestMotionGeneratorError(t *testing.T) {
	boom := errors.New("boom")
	got, err := MotionCorruption(randomKspace(1, 4, 4), 3, &failingGenerator{err: boom}, Interleaved)
	if !errors.Is(err, boom) {
		t.Fatalf("Fehler = %v, erwartet boom", err)
	}
	if got != nil {
		t.Error("Teilergebnis trotz Fehler")
	}
}

type cropTransform struct{}

func (cropTransform) ApplyImage(img *cplx.Array) *cplx.Array {
	return cplx.New(img.Height()-1, img.Width())
}

func TestMotionTransformShapeMismatch(t *testing.T) {
	gen := GeneratorFunc(func(*cplx.Array) (Transform, error) { return cropTransform{}, nil })
	if _, err := MotionCorruption(randomKspace(1, 4, 4), 2, gen, Blocked); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("Fehler = %v, erwartet ErrInvalidShape", err)
	}
}

type nilTransform struct{}

func (nilTransform) ApplyImage(*cplx.Array) *cplx.Array { return nil }

func TestMotionTransformNilResult(t *testing.T) {
	gen := GeneratorFunc(func(*cplx.Array) (Transform, error) { return nilTransform{}, nil })
	out, err := MotionCorruption(randomKspace(1, 4, 4), 2, gen, Blocked)
	if !errors.Is(err, ErrInvalidShape) {
		t.Errorf("Fehler = %v, erwartet ErrInvalidShape", err)
	}
	if out != nil {
		t.Errorf("Teilergebnis trotz Fehler: %v", out.Shape)
	}
}

func TestMotionParallelTransformErrors(t *testing.T) {
	tests := []struct {
		name      string
		transform Transform
	}{
		{"nil Ergebnis", nilTransform{}},
		{"falsche Shape", cropTransform{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := GeneratorFunc(func(*cplx.Array) (Transform, error) { return tt.transform, nil })
			out, err := MotionCorruption(randomKspace(2, 6, 9), 5, gen, Interleaved, WithWorkers(3))
			if !errors.Is(err, ErrInvalidShape) {
				t.Errorf("Fehler = %v, erwartet ErrInvalidShape", err)
			}
			if out != nil {
				t.Errorf("Teilergebnis trotz Fehler: %v", out.Shape)
			}
		})
	}
}

func TestMotionTracesShotLines(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(logutil.NewLogger(&buf, logutil.LevelTrace))
	t.Cleanup(func() { slog.SetDefault(prev) })

	if _, err := MotionCorruption(randomKspace(1, 4, 10), 3, randomAffine(1), Blocked); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if n := strings.Count(out, "level=TRACE"); n != 3 {
		t.Errorf("%d TRACE-Zeilen, erwartet 3:\n%s", n, out)
	}
	for _, want := range []string{"shot=0 lines=4", "shot=1 lines=4", "shot=2 lines=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("Ausgabe ohne %q:\n%s", want, out)
		}
	}
}

func TestAddMotionCorruptionPreservesRepresentation(t *testing.T) {
	x := randomKspace(2, 2, 6, 8)
	x.Dtype = tensor.Complex64
	in := x.Dense()

	out, err := AddMotionCorruption(in, 2, randomAffine(3), Interleaved)
	if err != nil {
		t.Fatal(err)
	}
	if out.Dtype() != tensor.Complex64 {
		t.Errorf("Dtype = %v, erwartet complex64", out.Dtype())
	}
	if diff := cmp.Diff([]int(in.Shape()), []int(out.Shape())); diff != "" {
		t.Errorf("Shape (-want +got):\n%s", diff)
	}

	asReal := make([]float32, 2*6*8*2)
	for i := range asReal {
		asReal[i] = float32(i % 5)
	}
	in = tensor.New(tensor.WithShape(2, 6, 8, 2), tensor.WithBacking(asReal))
	out, err = AddMotionCorruption(in, 3, randomAffine(3), Blocked)
	if err != nil {
		t.Fatal(err)
	}
	if out.Dtype() != tensor.Float32 || !cmp.Equal([]int(out.Shape()), []int{2, 6, 8, 2}) {
		t.Errorf("complex-as-real: Dtype %v Shape %v", out.Dtype(), out.Shape())
	}
}
