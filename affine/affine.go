// MODUL: affine
// ZWECK: Zufaellige affine Bewegung (Rotation, Translation, Skalierung, Scherung) fuer komplexe Bilder
// INPUT: cplx.Array [..., H, W], Parameter-Bereiche, rng.Source
// OUTPUT: Transform Instanzen und transformierte Bilder
// NEBENEFFEKTE: GetTransform verbraucht genau fuenf Zuege aus der Zufallsquelle
// ABHAENGIGKEITEN: gonum.org/v1/gonum/mat (extern)
// HINWEISE: Alle Ebenen eines Arrays werden mit derselben Transformation bewegt,
//           bilineare Interpolation, ausserhalb wird mit 0 aufgefuellt

package affine

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/7blacky7/mrimotion/cplx"
	"github.com/7blacky7/mrimotion/rng"
)

var (
	// ErrInvalidRange wird bei negativen oder vertauschten Bereichen zurueckgegeben
	ErrInvalidRange = errors.New("affine: invalid parameter range")

	// ErrSingular wird zurueckgegeben wenn die lineare Abbildung nicht invertierbar ist
	ErrSingular = errors.New("affine: transform is not invertible")

	// ErrNoSource wird zurueckgegeben wenn keine Zufallsquelle gesetzt ist
	ErrNoSource = errors.New("affine: no random source")
)

// Params beschreibt eine konkrete Transformation.
// Winkel in Grad, Translation in Pixeln, Drehpunkt ist die Bildmitte.
type Params struct {
	Angle float64
	TX    float64
	TY    float64
	Scale float64
	Shear float64
}

// Identity sind die Parameter ohne Bewegung
var Identity = Params{Scale: 1}

// Transform ist eine feste, bereits gezogene affine Abbildung
type Transform struct {
	Params

	// inv ist die Inverse des linearen 2x2 Anteils
	inv *mat.Dense
}

// NewTransform invertiert den linearen Anteil von p
func NewTransform(p Params) (*Transform, error) {
	theta := p.Angle * math.Pi / 180
	phi := p.Shear * math.Pi / 180
	cos, sin := math.Cos(theta), math.Sin(theta)

	rot := mat.NewDense(2, 2, []float64{cos, -sin, sin, cos})
	shear := mat.NewDense(2, 2, []float64{1, math.Tan(phi), 0, 1})

	var lin mat.Dense
	lin.Mul(rot, shear)
	lin.Scale(p.Scale, &lin)

	if det := mat.Det(&lin); det == 0 || math.IsNaN(det) {
		return nil, fmt.Errorf("%w: %+v", ErrSingular, p)
	}

	var inv mat.Dense
	if err := inv.Inverse(&lin); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, fmt.Errorf("%w: %v", ErrSingular, err)
		}
	}

	return &Transform{Params: p, inv: &inv}, nil
}

// ApplyImage bewegt jede HxW Ebene von img und gibt ein neues Array zurueck
func (t *Transform) ApplyImage(img *cplx.Array) *cplx.Array {
	if t.Params == Identity {
		return img.Clone()
	}

	out := cplx.ZerosLike(img)
	h, w := img.Height(), img.Width()
	cx, cy := float64(w-1)/2, float64(h-1)/2

	a, b := t.inv.At(0, 0), t.inv.At(0, 1)
	c, d := t.inv.At(1, 0), t.inv.At(1, 1)

	for p := range img.Planes() {
		src, dst := img.Plane(p), out.Plane(p)
		for y := range h {
			dy := float64(y) - cy - t.TY
			for x := range w {
				dx := float64(x) - cx - t.TX
				sx := a*dx + b*dy + cx
				sy := c*dx + d*dy + cy
				dst[y*w+x] = bilinear(src, h, w, sx, sy)
			}
		}
	}
	return out
}

func bilinear(plane []complex128, h, w int, x, y float64) complex128 {
	x0, y0 := math.Floor(x), math.Floor(y)
	fx, fy := x-x0, y-y0
	ix, iy := int(x0), int(y0)

	at := func(px, py int) complex128 {
		if px < 0 || py < 0 || px >= w || py >= h {
			return 0
		}
		return plane[py*w+px]
	}

	var v complex128
	if wgt := (1 - fx) * (1 - fy); wgt != 0 {
		v += complex(wgt, 0) * at(ix, iy)
	}
	if wgt := fx * (1 - fy); wgt != 0 {
		v += complex(wgt, 0) * at(ix+1, iy)
	}
	if wgt := (1 - fx) * fy; wgt != 0 {
		v += complex(wgt, 0) * at(ix, iy+1)
	}
	if wgt := fx * fy; wgt != 0 {
		v += complex(wgt, 0) * at(ix+1, iy+1)
	}
	return v
}

// RandomAffine zieht pro GetTransform Aufruf eine neue Transformation.
// Degrees und Shear sind symmetrische Maximalwerte in Grad,
// Translate ist der Anteil an (W, H), ScaleRange das Intervall der Skalierung.
type RandomAffine struct {
	Degrees    float64
	Translate  [2]float64
	ScaleRange [2]float64
	Shear      float64

	Rand rng.Source
}

// Validate prueft die Parameter-Bereiche
func (r *RandomAffine) Validate() error {
	if r.Rand == nil {
		return ErrNoSource
	}
	if r.Degrees < 0 || r.Shear < 0 || r.Shear >= 90 {
		return fmt.Errorf("%w: degrees=%v shear=%v", ErrInvalidRange, r.Degrees, r.Shear)
	}
	if r.Translate[0] < 0 || r.Translate[1] < 0 {
		return fmt.Errorf("%w: translate=%v", ErrInvalidRange, r.Translate)
	}
	if lo, hi := r.scaleRange(); lo <= 0 || hi < lo {
		return fmt.Errorf("%w: scale=%v", ErrInvalidRange, r.ScaleRange)
	}
	return nil
}

func (r *RandomAffine) scaleRange() (float64, float64) {
	if r.ScaleRange == [2]float64{} {
		return 1, 1
	}
	return r.ScaleRange[0], r.ScaleRange[1]
}

// Sample zieht Parameter fuer ein Bild der Groesse HxW.
// Reihenfolge der Zuege: Winkel, TX, TY, Skalierung, Scherung.
func (r *RandomAffine) Sample(h, w int) Params {
	lo, hi := r.scaleRange()
	return Params{
		Angle: rng.Symmetric(r.Rand, r.Degrees),
		TX:    math.Round(rng.Symmetric(r.Rand, r.Translate[0]*float64(w))),
		TY:    math.Round(rng.Symmetric(r.Rand, r.Translate[1]*float64(h))),
		Scale: rng.Uniform(r.Rand, lo, hi),
		Shear: rng.Symmetric(r.Rand, r.Shear),
	}
}

// GetTransform zieht eine neue Transformation passend zur Bildgroesse von img
func (r *RandomAffine) GetTransform(img *cplx.Array) (*Transform, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return NewTransform(r.Sample(img.Height(), img.Width()))
}
