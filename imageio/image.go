// MODUL: image
// ZWECK: Bilder als komplexe Arrays laden und Betragsbilder speichern
// INPUT: Dateipfad, Bytes oder io.Reader; cplx.Array zum Speichern
// OUTPUT: cplx.Array [1, H, W] (Realteil = Luminanz in [0,1]), PNG-Dateien
// NEBENEFFEKTE: Dateisystem-Zugriff bei LoadImage und SaveMagnitude
// ABHAENGIGKEITEN: golang.org/x/image/draw, bmp, tiff, webp (extern), image/jpeg, image/png
// HINWEISE: Alle Bilder werden in 16-bit Graustufen konvertiert,
//           Betragsbilder werden auf das Maximum normiert

package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"math/cmplx"
	"os"

	// Standard-Decoder registrieren
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/7blacky7/mrimotion/cplx"
)

// ErrInvalidSize wird bei nicht-positiver Zielgroesse zurueckgegeben
var ErrInvalidSize = errors.New("imageio: invalid size")

// LoadImage laedt ein Bild von einem Dateipfad
func LoadImage(path string) (*cplx.Array, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return LoadImageFromBytes(data)
}

// LoadImageFromBytes dekodiert ein Bild aus Byte-Daten
func LoadImageFromBytes(data []byte) (*cplx.Array, error) {
	if format := DetectFormat(data); format == FormatUnknown {
		return nil, ErrUnknownFormat
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return FromImage(img), nil
}

// DecodeImage dekodiert ein Bild aus einem io.Reader
func DecodeImage(reader io.Reader) (*cplx.Array, error) {
	// Erst Daten puffern fuer Format-Erkennung
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return LoadImageFromBytes(data)
}

// toGray konvertiert ein beliebiges image.Image zu *image.Gray16 mit Ursprung (0,0)
func toGray(img image.Image) *image.Gray16 {
	bounds := img.Bounds()
	if g, ok := img.(*image.Gray16); ok && bounds.Min == (image.Point{}) {
		return g
	}

	gray := image.NewGray16(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)
	return gray
}

// FromImage wandelt ein Bild in ein komplexes Array der Shape [1, H, W]
func FromImage(img image.Image) *cplx.Array {
	gray := toGray(img)
	h, w := gray.Bounds().Dy(), gray.Bounds().Dx()

	a := cplx.New(1, h, w)
	for y := range h {
		for x := range w {
			v := gray.Gray16At(x, y).Y
			a.Data[y*w+x] = complex(float64(v)/math.MaxUint16, 0)
		}
	}
	return a
}

// Resize skaliert ein Bild bilinear auf width x height
func Resize(img image.Image, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	dst := image.NewGray16(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst, nil
}

// Magnitude bildet den Betrag der p-ten Ebene auf ein Graustufenbild ab.
// Normiert wird auf das Maximum der Ebene, eine Null-Ebene bleibt schwarz.
func Magnitude(a *cplx.Array, p int) *image.Gray16 {
	h, w := a.Height(), a.Width()
	plane := a.Plane(p)

	var peak float64
	for _, v := range plane {
		peak = math.Max(peak, cmplx.Abs(v))
	}

	gray := image.NewGray16(image.Rect(0, 0, w, h))
	if peak == 0 {
		return gray
	}
	for y := range h {
		for x := range w {
			v := cmplx.Abs(plane[y*w+x]) / peak
			gray.SetGray16(x, y, color.Gray16{Y: uint16(math.Round(v * math.MaxUint16))})
		}
	}
	return gray
}

// EncodeMagnitude schreibt das Betragsbild der ersten Ebene als PNG
func EncodeMagnitude(w io.Writer, a *cplx.Array) error {
	if a.Planes() == 0 {
		return fmt.Errorf("%w: empty array %v", ErrInvalidSize, a.Shape)
	}
	return png.Encode(w, Magnitude(a, 0))
}

// SaveMagnitude schreibt das Betragsbild der ersten Ebene als PNG-Datei
func SaveMagnitude(path string, a *cplx.Array) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}

	if err := EncodeMagnitude(f, a); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
