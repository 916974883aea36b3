// MODUL: array
// ZWECK: Komplexes N-dimensionales Array als Arbeitsformat fuer k-space und Bilddaten
// INPUT: Shape, komplexe Werte oder *tensor.Dense
// OUTPUT: Array Struktur mit flachem complex128-Puffer (row-major)
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: github.com/pdevine/tensor (extern)
// HINWEISE: Shape ist immer die logische komplexe Shape, die letzten zwei Achsen sind H und W

package cplx

import (
	"fmt"

	"github.com/pdevine/tensor"
)

// Repr beschreibt wie komplexe Werte im Ursprungstensor abgelegt waren
type Repr int

const (
	// Native: complex64 oder complex128 Elemente
	Native Repr = iota
	// AsReal: float32/float64 mit abschliessender Achse der Groesse 2 (real, imag)
	AsReal
)

func (r Repr) String() string {
	switch r {
	case Native:
		return "native"
	case AsReal:
		return "complex-as-real"
	default:
		return fmt.Sprintf("Repr(%d)", int(r))
	}
}

// Array haelt komplexe Daten in logischer Shape.
// Dtype und Repr merken sich die Darstellung des Eingabetensors, damit
// Dense() das Ergebnis in derselben Form zurueckgibt.
type Array struct {
	Shape []int
	Data  []complex128
	Dtype tensor.Dtype
	Repr  Repr
}

// New erzeugt ein mit Nullen gefuelltes complex128 Array
func New(shape ...int) *Array {
	return &Array{
		Shape: append([]int(nil), shape...),
		Data:  make([]complex128, numel(shape)),
		Dtype: tensor.Complex128,
		Repr:  Native,
	}
}

// FromSlice erzeugt ein Array ueber einem vorhandenen Puffer
func FromSlice(data []complex128, shape ...int) (*Array, error) {
	if n := numel(shape); n != len(data) {
		return nil, fmt.Errorf("%w: shape %v needs %d values, got %d", ErrShapeMismatch, shape, n, len(data))
	}
	return &Array{
		Shape: append([]int(nil), shape...),
		Data:  data,
		Dtype: tensor.Complex128,
		Repr:  Native,
	}, nil
}

// ZerosLike erzeugt ein Null-Array mit gleicher Shape und Darstellung
func ZerosLike(a *Array) *Array {
	return &Array{
		Shape: append([]int(nil), a.Shape...),
		Data:  make([]complex128, len(a.Data)),
		Dtype: a.Dtype,
		Repr:  a.Repr,
	}
}

// Clone kopiert Shape und Daten
func (a *Array) Clone() *Array {
	out := ZerosLike(a)
	copy(out.Data, a.Data)
	return out
}

func (a *Array) Rank() int { return len(a.Shape) }

func (a *Array) Len() int { return len(a.Data) }

// Height ist die vorletzte Achse
func (a *Array) Height() int {
	if len(a.Shape) < 2 {
		return 1
	}
	return a.Shape[len(a.Shape)-2]
}

// Width ist die letzte Achse (Phase-Encode Richtung)
func (a *Array) Width() int {
	if len(a.Shape) == 0 {
		return 1
	}
	return a.Shape[len(a.Shape)-1]
}

// Planes gibt die Anzahl der HxW Ebenen ueber alle fuehrenden Achsen zurueck
func (a *Array) Planes() int {
	hw := a.Height() * a.Width()
	if hw == 0 {
		return 0
	}
	return len(a.Data) / hw
}

// Plane gibt eine Sicht auf die p-te HxW Ebene zurueck (kein Kopieren)
func (a *Array) Plane(p int) []complex128 {
	hw := a.Height() * a.Width()
	return a.Data[p*hw : (p+1)*hw]
}

// Stride gibt den row-major Stride der Achse axis zurueck
func (a *Array) Stride(axis int) int {
	stride := 1
	for i := len(a.Shape) - 1; i > axis; i-- {
		stride *= a.Shape[i]
	}
	return stride
}

// SameShape prueft ob beide Arrays identische logische Shapes haben
func SameShape(a, b *Array) bool {
	if len(a.Shape) != len(b.Shape) {
		return false
	}
	for i := range a.Shape {
		if a.Shape[i] != b.Shape[i] {
			return false
		}
	}
	return true
}

func numel(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}
