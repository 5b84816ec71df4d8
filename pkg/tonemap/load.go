package tonemap

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdouchement/hdr"
	_ "github.com/mdouchement/hdr/codec/rgbe" // registers the Radiance .hdr format
	"golang.org/x/image/tiff"
)

// An Input is one HDR image waiting to be tonemapped.
type Input struct {
	LoadFilename string
	hdr.Image

	// From EXIF, if the file had any; nil otherwise.
	ExposureValue *ExposureValue
}

func (in Input)String() string {
	s := fmt.Sprintf("%s: %s", in.Filename(), in.Bounds())
	if in.ExposureValue != nil {
		s += fmt.Sprintf(" [%s]", in.ExposureValue)
	}
	return s
}

func (in Input)Filename() string {
	return filepath.Base(in.LoadFilename)
}

func (j *Job)LoadFilesAndDirs(args ...string) error {
	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {

		case err != nil:
			return fmt.Errorf("load %s: %v", arg, err)

		case item.IsDir():
			// Is a dir, recurse into contents
			contents, err := os.ReadDir(arg)
			if err != nil {
				return fmt.Errorf("readdir %s: %v", arg, err)
			}
			for _, content := range contents {
				if err := j.LoadFilesAndDirs(filepath.Join(arg, content.Name())); err != nil {
					return fmt.Errorf("load %s: %v", arg, err)
				}
			}

		default: // is a file, load it
			if err := j.loadFile(arg); err != nil {
				return fmt.Errorf("loadfile %s: %v", arg, err)
			}
		}
	}

	return nil
}

func (j *Job)loadFile(filename string) error {
	ext := filepath.Ext(filename)

	switch strings.ToLower(ext) {

	case ".hdr", ".pic":
		img, err := loadHDR(filename)
		if err != nil {
			return fmt.Errorf("Loading %s as Radiance HDR failed: %v", filename, err)
		}
		j.Inputs = append(j.Inputs, Input{LoadFilename: filename, Image: img})

	case ".tif", ".tiff":
		in, err := loadTIFF(filename)
		if err != nil {
			return fmt.Errorf("Loading %s as TIFF failed: %v", filename, err)
		}
		j.Inputs = append(j.Inputs, in)

	case ".yaml":
		cfg, err := loadConfig(filename)
		if err != nil {
			return fmt.Errorf("Loading %s as config YAML failed: %v", filename, err)
		}
		j.Config = cfg
		log.Printf("Loaded base configuration from %s\n", filename)
	}

	return nil
}

func loadConfig(filename string) (Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read %s: %v", filename, err)
	}

	return newConfigFromYaml(contents)
}

func loadHDR(filename string) (hdr.Image, error) {
	reader, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open+r '%s': %v", filename, err)
	}
	defer reader.Close()

	img, _, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("decoding '%s': %v", filename, err)
	}

	hdrImg, ok := img.(hdr.Image)
	if !ok {
		return nil, fmt.Errorf("'%s' decoded as %T, not an HDR image", filename, img)
	}
	return hdrImg, nil
}

// loadTIFF reads a 16-bit TIFF, assumed to be linear (no tone curve). The
// camera's exposure settings are read from EXIF when present; a TIFF
// without them still loads.
func loadTIFF(filename string) (Input, error) {
	in := Input{LoadFilename: filename}

	// First, try to load the EXIF metadata.
	if reader, err := os.Open(filename); err != nil {
		return in, fmt.Errorf("open+r exif '%s': %v", filename, err)
	} else {
		ev, err := ReadExposureValue(reader)
		reader.Close()
		if err != nil {
			log.Printf("%s: no exposure info: %v\n", filepath.Base(filename), err)
		} else {
			in.ExposureValue = &ev
		}
	}

	// Re-open the file, now for the image data
	reader, err := os.Open(filename)
	if err != nil {
		return in, fmt.Errorf("open+r img '%s': %v", filename, err)
	}
	defer reader.Close()

	img, err := tiff.Decode(reader)
	if err != nil {
		return in, fmt.Errorf("tiff loading '%s': %v", filename, err)
	}

	in.Image = NewLinearImageFrom(img)
	return in, nil
}
