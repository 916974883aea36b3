// MODUL: evenodd
// ZWECK: Gerade/ungerade Phasenfehler pro k-space Zeile (Ghosting-Artefakte)
// INPUT: k-space (komplex oder complex-as-real), Staerke scale, Achsen-Layout, Zufallsquelle
// OUTPUT: korrumpierter k-space in Shape, Dtype und Darstellung der Eingabe
// NEBENEFFEKTE: genau zwei Zuege aus der Zufallsquelle (erst ungerade, dann gerade)
// ABHAENGIGKEITEN: github.com/pdevine/tensor (extern), cplx, rng
// HINWEISE: Zeilenachse in logischer Shape: channels-last [..., H, W, C] -> rank-2,
//           channel-first [..., C, H, W] -> rank-1

package motion

import (
	"fmt"
	"log/slog"
	"math"
	"math/cmplx"

	"github.com/pdevine/tensor"

	"github.com/7blacky7/mrimotion/cplx"
	"github.com/7blacky7/mrimotion/rng"
)

// PhaseErrors sind die gezogenen Fehlerwinkel in Radiant
type PhaseErrors struct {
	Even float64
	Odd  float64
}

// SamplePhaseErrors zieht odd, dann even aus [-pi*scale, pi*scale)
func SamplePhaseErrors(src rng.Source, scale float64) PhaseErrors {
	r := math.Pi * scale
	odd := rng.Symmetric(src, r)
	even := rng.Symmetric(src, r)
	return PhaseErrors{Even: even, Odd: odd}
}

// Mask gibt den Maskenwert fuer Zeile line zurueck: exp(-i*err)
func (p PhaseErrors) Mask(line int) complex128 {
	if line%2 == 0 {
		return cmplx.Exp(complex(0, -p.Even))
	}
	return cmplx.Exp(complex(0, -p.Odd))
}

// LineAxis gibt die Zeilenachse fuer eine logische Shape vom Rang rank zurueck
func LineAxis(rank int, channelFirst bool) (int, error) {
	if rank < 2 {
		return 0, fmt.Errorf("%w: rank %d", ErrInvalidShape, rank)
	}
	if channelFirst {
		return rank - 1, nil
	}
	return rank - 2, nil
}

// AddEvenOddMotion korrumpiert kspace mit einem Phasenfehler pro Zeilen-Paritaet.
// Fuer einen festen Seed: AddEvenOddMotion(k, s, cf, rng.New(seed)).
func AddEvenOddMotion(kspace *tensor.Dense, scale float64, channelFirst bool, src rng.Source) (*tensor.Dense, error) {
	x, err := cplx.FromDense(kspace)
	if err != nil {
		return nil, err
	}

	out, err := EvenOddMotion(x, scale, channelFirst, src)
	if err != nil {
		return nil, err
	}
	return out.Dense(), nil
}

// EvenOddMotion ist AddEvenOddMotion auf einem dekodierten Array
func EvenOddMotion(x *cplx.Array, scale float64, channelFirst bool, src rng.Source) (*cplx.Array, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	axis, err := LineAxis(x.Rank(), channelFirst)
	if err != nil {
		return nil, err
	}

	errs := SamplePhaseErrors(src, scale)
	slog.Debug("even/odd phase error", "scale", scale, "even", errs.Even, "odd", errs.Odd, "shape", x.Shape)

	masks := [2]complex128{errs.Mask(0), errs.Mask(1)}
	stride, lines := x.Stride(axis), x.Shape[axis]

	out := cplx.ZerosLike(x)
	for i, v := range x.Data {
		line := (i / stride) % lines
		out.Data[i] = v * masks[line%2]
	}
	return out, nil
}
