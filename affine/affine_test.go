package affine

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/7blacky7/mrimotion/cplx"
	"github.com/7blacky7/mrimotion/rng"
)

func rampImage(shape ...int) *cplx.Array {
	a := cplx.New(shape...)
	for i := range a.Data {
		a.Data[i] = complex(float64(i+1), -float64(i))
	}
	return a
}

func TestIdentityIsExact(t *testing.T) {
	img := rampImage(2, 5, 6)
	tr, err := NewTransform(Identity)
	if err != nil {
		t.Fatal(err)
	}

	got := tr.ApplyImage(img)
	if diff := cmp.Diff(img.Data, got.Data); diff != "" {
		t.Errorf("Identitaet veraendert das Bild (-want +got):\n%s", diff)
	}

	got.Data[0] = 0
	if img.Data[0] == 0 {
		t.Error("ApplyImage teilt den Puffer mit der Eingabe")
	}
}

func TestIntegerTranslation(t *testing.T) {
	h, w := 4, 5
	img := rampImage(h, w)
	tr, err := NewTransform(Params{TX: 1, TY: 2, Scale: 1})
	if err != nil {
		t.Fatal(err)
	}

	got := tr.ApplyImage(img)
	for y := range h {
		for x := range w {
			var want complex128
			if sx, sy := x-1, y-2; sx >= 0 && sy >= 0 {
				want = img.Data[sy*w+sx]
			}
			if v := got.Data[y*w+x]; v != want {
				t.Errorf("(%d,%d) = %v, erwartet %v", y, x, v, want)
			}
		}
	}
}

func TestRotation180(t *testing.T) {
	h, w := 3, 5
	img := rampImage(h, w)
	tr, err := NewTransform(Params{Angle: 180, Scale: 1})
	if err != nil {
		t.Fatal(err)
	}

	got := tr.ApplyImage(img)
	for y := range h {
		for x := range w {
			want := img.Data[(h-1-y)*w+(w-1-x)]
			if v := got.Data[y*w+x]; cmplx.Abs(v-want) > 1e-9 {
				t.Errorf("(%d,%d) = %v, erwartet %v", y, x, v, want)
			}
		}
	}
}

func TestSameTransformForAllPlanes(t *testing.T) {
	img := rampImage(3, 4, 4)
	copy(img.Plane(1), img.Plane(0))
	copy(img.Plane(2), img.Plane(0))

	tr, err := NewTransform(Params{Angle: 17, TX: 1, Scale: 1.1, Shear: 5})
	if err != nil {
		t.Fatal(err)
	}
	got := tr.ApplyImage(img)
	if diff := cmp.Diff(got.Plane(0), got.Plane(2)); diff != "" {
		t.Errorf("Ebenen unterschiedlich bewegt:\n%s", diff)
	}
}

func TestSingular(t *testing.T) {
	_, err := NewTransform(Params{Scale: 0})
	if !errors.Is(err, ErrSingular) {
		t.Errorf("Fehler = %v, erwartet ErrSingular", err)
	}
}

func TestRandomAffineDeterministic(t *testing.T) {
	img := rampImage(8, 8)
	mk := func() *RandomAffine {
		return &RandomAffine{
			Degrees:    10,
			Translate:  [2]float64{0.1, 0.1},
			ScaleRange: [2]float64{0.9, 1.1},
			Shear:      3,
			Rand:       rng.New(123),
		}
	}

	a, b := mk(), mk()
	for range 3 {
		ta, err := a.GetTransform(img)
		if err != nil {
			t.Fatal(err)
		}
		tb, err := b.GetTransform(img)
		if err != nil {
			t.Fatal(err)
		}
		if ta.Params != tb.Params {
			t.Errorf("Parameter %+v != %+v", ta.Params, tb.Params)
		}
	}
}

func TestRandomAffineRanges(t *testing.T) {
	r := &RandomAffine{
		Degrees:    15,
		Translate:  [2]float64{0.25, 0.5},
		ScaleRange: [2]float64{0.8, 1.2},
		Rand:       rng.New(4),
	}
	for range 200 {
		p := r.Sample(16, 20)
		if math.Abs(p.Angle) > 15 {
			t.Fatalf("Winkel %v ausserhalb", p.Angle)
		}
		if math.Abs(p.TX) > 5 || math.Abs(p.TY) > 8 {
			t.Fatalf("Translation (%v, %v) ausserhalb", p.TX, p.TY)
		}
		if p.TX != math.Round(p.TX) || p.TY != math.Round(p.TY) {
			t.Fatalf("Translation (%v, %v) nicht ganzzahlig", p.TX, p.TY)
		}
		if p.Scale < 0.8 || p.Scale >= 1.2 {
			t.Fatalf("Skalierung %v ausserhalb", p.Scale)
		}
		if p.Shear != 0 {
			t.Fatalf("Scherung %v, erwartet 0", p.Shear)
		}
	}
}

func TestRandomAffineZeroRangesIsIdentity(t *testing.T) {
	r := &RandomAffine{Rand: rng.New(1)}
	tr, err := r.GetTransform(rampImage(4, 4))
	if err != nil {
		t.Fatal(err)
	}
	if tr.Params != Identity {
		t.Errorf("Parameter %+v, erwartet Identitaet", tr.Params)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		r    RandomAffine
		err  error
	}{
		{"ohne Quelle", RandomAffine{}, ErrNoSource},
		{"negativer Winkel", RandomAffine{Degrees: -1, Rand: rng.New(1)}, ErrInvalidRange},
		{"Scherung 90", RandomAffine{Shear: 90, Rand: rng.New(1)}, ErrInvalidRange},
		{"negative Translation", RandomAffine{Translate: [2]float64{-0.1, 0}, Rand: rng.New(1)}, ErrInvalidRange},
		{"Skalierung 0", RandomAffine{ScaleRange: [2]float64{0, 1}, Rand: rng.New(1)}, ErrInvalidRange},
		{"Skalierung vertauscht", RandomAffine{ScaleRange: [2]float64{1.2, 0.8}, Rand: rng.New(1)}, ErrInvalidRange},
		{"gueltig", RandomAffine{Degrees: 5, ScaleRange: [2]float64{1, 1}, Rand: rng.New(1)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.r.Validate(); !errors.Is(err, tt.err) {
				t.Errorf("Validate() = %v, erwartet %v", err, tt.err)
			}
		})
	}
}
