package tonemap

import(
	"image"
	"image/color"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/tonemapper/pkg/ecolor"
)

// LinearImage is an in-memory grid of linear RGB. Implements the
// image.Image and hdr.Image interfaces.
type LinearImage struct {
	Rect    image.Rectangle
	Pixels  []hdrcolor.RGB // row-major
}

var _ hdr.Image = (*LinearImage)(nil)

func NewLinearImage(r image.Rectangle) *LinearImage {
	return &LinearImage{
		Rect:   r,
		Pixels: make([]hdrcolor.RGB, r.Dx() * r.Dy()),
	}
}

// NewLinearImageFrom converts a regular (e.g. 16-bit TIFF) image whose
// values are already linear.
func NewLinearImageFrom(img image.Image) *LinearImage {
	b := img.Bounds()
	li := NewLinearImage(b)
	for y:=b.Min.Y; y<b.Max.Y; y++ {
		for x:=b.Min.X; x<b.Max.X; x++ {
			li.Set(x, y, ecolor.NewLinearRGB(img.At(x, y)))
		}
	}
	return li
}

// Implement image.Image
func (li *LinearImage)ColorModel() color.Model       { return hdrcolor.RGBModel }
func (li *LinearImage)Bounds() image.Rectangle       { return li.Rect }
func (li *LinearImage)At(x, y int) color.Color       { return li.HDRAt(x, y) }

// Implement hdr.Image
func (li *LinearImage)HDRAt(x, y int) hdrcolor.Color { return li.Pixels[li.offset(x, y)] }
func (li *LinearImage)Size() int                     { return li.Rect.Dx() * li.Rect.Dy() }

func (li *LinearImage)Set(x, y int, c hdrcolor.RGB)  { li.Pixels[li.offset(x, y)] = c }

func (li *LinearImage)offset(x, y int) int {
	return (y - li.Rect.Min.Y) * li.Rect.Dx() + (x - li.Rect.Min.X)
}

// ScaledImage presents an HDR image with an exposure baked in.
type ScaledImage struct {
	hdr.Image
	Exposure float64
}

func (si ScaledImage)HDRAt(x, y int) hdrcolor.Color {
	return ecolor.Scale(si.Image.HDRAt(x, y), si.Exposure)
}
func (si ScaledImage)At(x, y int) color.Color { return si.HDRAt(x, y) }
