package tonemap

// A few helper routines for golang's image libraries

import(
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/nfnt/resize"

	"github.com/abworrall/tonemapper/pkg/uncharted"
)

func WritePNG(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img)
	}
}

// WriteToHDR outputs a HDR image. You can load this into photoshop or other HDR tools.
func WriteToHDR(img hdr.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("WriteToHDR, open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		if err := rgbe.Encode(writer, img); err != nil {
			return fmt.Errorf("WriteToHDR, encoding RGBE file '%s': %v", filename, err)
		}
		return nil
	}
}

// Resize scales img to the given width, keeping the aspect ratio. A
// width of 0 leaves it alone.
func Resize(img image.Image, width int) image.Image {
	if width <= 0 || width == img.Bounds().Dx() {
		return img
	}
	return resize.Resize(uint(width), 0, img, resize.Lanczos3)
}

// WriteShader writes the vertex and fragment sources as <name>.vert and
// <name>.frag, for use with an external renderer or glslangValidator.
func WriteShader(s uncharted.Shader, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("mkdir '%s': %v", dir, err)
	}

	written := []string{}
	for ext, src := range map[string]string{".vert": s.Vertex, ".frag": s.Fragment} {
		filename := filepath.Join(dir, s.Name + ext)
		if err := os.WriteFile(filename, []byte(src + "\n"), 0644); err != nil {
			return written, fmt.Errorf("write shader '%s': %v", filename, err)
		}
		written = append(written, filename)
	}

	return written, nil
}
