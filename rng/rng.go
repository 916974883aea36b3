// MODUL: rng
// ZWECK: Austauschbare Zufallsquelle fuer alle Korruptions-Operationen
// INPUT: Seed (uint64) oder vorhandene Quelle
// OUTPUT: Source mit gleichverteilten Werten in [0,1)
// NEBENEFFEKTE: Jeder Float64-Aufruf veraendert den internen Zustand
// ABHAENGIGKEITEN: math/rand/v2 (Standard-Library)
// HINWEISE: Gleicher Seed ergibt bit-identische Zahlenfolgen (PCG)

package rng

import "math/rand/v2"

// Source liefert gleichverteilte Werte in [0,1).
// *rand.Rand aus math/rand/v2 erfuellt das Interface direkt.
type Source interface {
	Float64() float64
}

// New erzeugt eine frisch geseedete Quelle
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Uniform zieht einen Wert aus [lo, hi) mit genau einem Zug aus src
func Uniform(src Source, lo, hi float64) float64 {
	return lo + (hi-lo)*src.Float64()
}

// Symmetric zieht einen Wert aus [-r, r) mit genau einem Zug aus src
func Symmetric(src Source, r float64) float64 {
	return 2*r*src.Float64() - r
}
