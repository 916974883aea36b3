// MODUL: dense
// ZWECK: Komplex-Praedikate und Konvertierung zwischen *tensor.Dense und Array
// INPUT: *tensor.Dense (complex64/complex128 oder float32/float64 mit Achse 2)
// OUTPUT: Array bzw. *tensor.Dense in Ursprungsdarstellung
// NEBENEFFEKTE: keine, Eingaben werden nie veraendert
// ABHAENGIGKEITEN: github.com/pdevine/tensor (extern)
// HINWEISE: complex-as-real erwartet (real, imag) in der letzten Achse

package cplx

import (
	"errors"
	"fmt"

	"github.com/pdevine/tensor"
)

var (
	// ErrNotComplex wird zurueckgegeben wenn ein Tensor weder komplex noch complex-as-real ist
	ErrNotComplex = errors.New("cplx: tensor is neither complex nor complex-as-real")

	// ErrShapeMismatch wird bei inkonsistenter Shape/Puffer-Laenge zurueckgegeben
	ErrShapeMismatch = errors.New("cplx: shape does not match data length")
)

// IsComplex meldet native komplexe Dtypes
func IsComplex(t *tensor.Dense) bool {
	if t == nil {
		return false
	}
	dt := t.Dtype()
	return dt == tensor.Complex64 || dt == tensor.Complex128
}

// IsComplexAsReal meldet reelle Tensoren mit abschliessender Achse der Groesse 2
func IsComplexAsReal(t *tensor.Dense) bool {
	if t == nil {
		return false
	}
	dt := t.Dtype()
	if dt != tensor.Float32 && dt != tensor.Float64 {
		return false
	}
	shape := t.Shape()
	return len(shape) > 0 && shape[len(shape)-1] == 2
}

// FromDense dekodiert einen Tensor in ein Array.
// Die Daten werden immer kopiert.
func FromDense(t *tensor.Dense) (*Array, error) {
	native, asReal := IsComplex(t), IsComplexAsReal(t)
	if !native && !asReal {
		if t == nil {
			return nil, fmt.Errorf("%w: nil tensor", ErrNotComplex)
		}
		return nil, fmt.Errorf("%w: dtype %v shape %v", ErrNotComplex, t.Dtype(), t.Shape())
	}

	if t.IsView() {
		if m, ok := t.Materialize().(*tensor.Dense); ok {
			t = m
		}
	}

	shape := append([]int(nil), t.Shape()...)
	a := &Array{Dtype: t.Dtype(), Repr: Native}

	switch data := t.Data().(type) {
	case []complex128:
		a.Data = append([]complex128(nil), data...)
	case []complex64:
		a.Data = make([]complex128, len(data))
		for i, v := range data {
			a.Data[i] = complex128(v)
		}
	case []float64:
		a.Repr = AsReal
		shape = shape[:len(shape)-1]
		a.Data = make([]complex128, len(data)/2)
		for i := range a.Data {
			a.Data[i] = complex(data[2*i], data[2*i+1])
		}
	case []float32:
		a.Repr = AsReal
		shape = shape[:len(shape)-1]
		a.Data = make([]complex128, len(data)/2)
		for i := range a.Data {
			a.Data[i] = complex(float64(data[2*i]), float64(data[2*i+1]))
		}
	default:
		return nil, fmt.Errorf("%w: unsupported backing %T", ErrNotComplex, data)
	}

	a.Shape = shape
	if numel(shape) != len(a.Data) {
		return nil, fmt.Errorf("%w: shape %v, %d values", ErrShapeMismatch, shape, len(a.Data))
	}
	return a, nil
}

// Dense kodiert das Array zurueck in Dtype und Darstellung des Ursprungstensors
func (a *Array) Dense() *tensor.Dense {
	switch a.Repr {
	case AsReal:
		shape := append(append([]int(nil), a.Shape...), 2)
		if a.Dtype == tensor.Float32 {
			backing := make([]float32, 2*len(a.Data))
			for i, v := range a.Data {
				backing[2*i] = float32(real(v))
				backing[2*i+1] = float32(imag(v))
			}
			return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(backing))
		}
		backing := make([]float64, 2*len(a.Data))
		for i, v := range a.Data {
			backing[2*i] = real(v)
			backing[2*i+1] = imag(v)
		}
		return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(backing))
	default:
		if a.Dtype == tensor.Complex64 {
			backing := make([]complex64, len(a.Data))
			for i, v := range a.Data {
				backing[i] = complex64(v)
			}
			return tensor.New(tensor.WithShape(a.Shape...), tensor.WithBacking(backing))
		}
		backing := append([]complex128(nil), a.Data...)
		return tensor.New(tensor.WithShape(a.Shape...), tensor.WithBacking(backing))
	}
}

// Round rundet die Werte auf die Praezision des Ursprungs-Dtypes.
// Damit liefern Array-Pfad und Dense-Pfad identische Ergebnisse.
func (a *Array) Round() {
	if a.Dtype != tensor.Complex64 && a.Dtype != tensor.Float32 {
		return
	}
	for i, v := range a.Data {
		a.Data[i] = complex128(complex64(v))
	}
}
