package uncharted

import(
	"image"
)

// BufferSize is how many bytes Process needs for an image of this size.
func BufferSize(b image.Rectangle) int {
	return 3 * b.Dx() * b.Dy()
}

// Process tonemaps the whole image into dst, as packed 8-bit R,G,B
// triples in row-major order (row 0 first, left to right). dst must hold
// at least BufferSize(img.Bounds()) bytes. progress is reset to 0, and
// grows by 1/(width*height) after each pixel.
func (op *Operator)Process(img Image, dst []byte, exposure float64, progress *Progress) {
	b := img.Bounds()
	progress.Reset()

	pl := op.pipeline()
	delta := 1.0 / float64(b.Dx() * b.Dy())
	pl.rows(img, dst, exposure, 0, b.Dy(), progress, delta)
}

// rows processes rows [from, to) of img, relative to img.Bounds().Min,
// writing into the matching region of dst.
func (pl pipeline)rows(img Image, dst []byte, exposure float64, from, to int, progress *Progress, delta float64) {
	b := img.Bounds()
	off := 3 * from * b.Dx()

	for i:=from; i<to; i++ {
		for j:=0; j<b.Dx(); j++ {
			c := pl.pixel(img.HDRAt(b.Min.X + j, b.Min.Y + i), exposure)
			rgb := c.Quantize8()
			dst[off+0] = rgb[0]
			dst[off+1] = rgb[1]
			dst[off+2] = rgb[2]
			off += 3
			progress.Add(delta)
		}
	}
}

// ToRGBA wraps a Process buffer up as an image; alpha is opaque.
func ToRGBA(b image.Rectangle, buf []byte) *image.RGBA {
	out := image.NewRGBA(image.Rectangle{Max: image.Point{b.Dx(), b.Dy()}})

	for i, j := 0, 0; i+2 < len(buf) && j+3 < len(out.Pix); i, j = i+3, j+4 {
		out.Pix[j+0] = buf[i+0]
		out.Pix[j+1] = buf[i+1]
		out.Pix[j+2] = buf[i+2]
		out.Pix[j+3] = 0xFF
	}

	return out
}
