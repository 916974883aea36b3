// MODUL: fft
// ZWECK: Zentrierte orthonormale 2D-Fouriertransformation ueber die letzten zwei Achsen
// INPUT: cplx.Array mit Shape [..., H, W]
// OUTPUT: neues cplx.Array gleicher Shape und Darstellung
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: gonum.org/v1/gonum/dsp/fourier (extern)
// HINWEISE: FFT2c = fftshift(fft2(ifftshift(x))) mit Normierung 1/sqrt(H*W)

package fft

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/7blacky7/mrimotion/cplx"
)

// FFT2c bildet Bilddaten in den zentrierten k-space ab
func FFT2c(x *cplx.Array) *cplx.Array {
	return transform2c(x, false)
}

// IFFT2c bildet zentrierten k-space zurueck in den Bildraum
func IFFT2c(x *cplx.Array) *cplx.Array {
	return transform2c(x, true)
}

// Plan haelt die 1D-Plaene fuer eine feste Ebenengroesse.
// Ein Plan ist nicht nebenlaeufig nutzbar, jede Goroutine braucht einen eigenen.
type Plan struct {
	h, w   int
	rows   *fourier.CmplxFFT
	cols   *fourier.CmplxFFT
	row    []complex128
	col    []complex128
	colOut []complex128
	tmp    []complex128
	scale  float64
}

// NewPlan erzeugt einen Plan fuer HxW Ebenen
func NewPlan(h, w int) *Plan {
	return &Plan{
		h:      h,
		w:      w,
		rows:   fourier.NewCmplxFFT(w),
		cols:   fourier.NewCmplxFFT(h),
		row:    make([]complex128, w),
		col:    make([]complex128, h),
		colOut: make([]complex128, h),
		tmp:    make([]complex128, h*w),
		scale:  1 / math.Sqrt(float64(h*w)),
	}
}

// Forward transformiert eine HxW Ebene von src nach dst (zentriert, ortho).
// dst und src duerfen identisch sein.
func (p *Plan) Forward(dst, src []complex128) {
	p.run(dst, src, false)
}

// Inverse ist die Umkehrung von Forward
func (p *Plan) Inverse(dst, src []complex128) {
	p.run(dst, src, true)
}

func (p *Plan) run(dst, src []complex128, inverse bool) {
	h, w := p.h, p.w

	// ifftshift: Element (y, x) wandert nach ((y+ceil(h/2))%h, (x+ceil(w/2))%w)
	for y := range h {
		sy := (y + (h+1)/2) % h
		for x := range w {
			sx := (x + (w+1)/2) % w
			p.tmp[sy*w+sx] = src[y*w+x]
		}
	}

	for y := range h {
		line := p.tmp[y*w : (y+1)*w]
		copy(p.row, line)
		if inverse {
			p.rows.Sequence(line, p.row)
		} else {
			p.rows.Coefficients(line, p.row)
		}
	}

	for x := range w {
		for y := range h {
			p.col[y] = p.tmp[y*w+x]
		}
		if inverse {
			p.cols.Sequence(p.colOut, p.col)
		} else {
			p.cols.Coefficients(p.colOut, p.col)
		}
		for y := range h {
			p.tmp[y*w+x] = p.colOut[y]
		}
	}

	// fftshift: Element (y, x) wandert nach ((y+h/2)%h, (x+w/2)%w)
	for y := range h {
		dy := (y + h/2) % h
		for x := range w {
			dx := (x + w/2) % w
			dst[dy*w+dx] = p.tmp[y*w+x] * complex(p.scale, 0)
		}
	}
}

func transform2c(x *cplx.Array, inverse bool) *cplx.Array {
	out := cplx.ZerosLike(x)
	h, w := x.Height(), x.Width()
	if h == 0 || w == 0 {
		return out
	}

	p := NewPlan(h, w)
	for i := range x.Planes() {
		if inverse {
			p.Inverse(out.Plane(i), x.Plane(i))
		} else {
			p.Forward(out.Plane(i), x.Plane(i))
		}
	}
	return out
}
