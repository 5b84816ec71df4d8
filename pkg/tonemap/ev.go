package tonemap

import(
	"fmt"
	"io"
	"math"

	"github.com/rwcarlsen/goexif/exif"
)

type rat64 [2]int64

func (r rat64)Float() float64 {
	return float64(r[0]) / float64(r[1])
}

// An ExposureValue is how the camera exposed the photograph. It lets us
// undo the camera's exposure, so that different shots land on a common
// scale.
type ExposureValue struct {
	ISO           int64   // 100, 800, etc.
	FNumber       rat64   // f/5.6 is {56,10}
	ShutterSpeed  rat64   // 1/500, 1/1000, etc.
}

func (ev ExposureValue)String() string {
	s := fmt.Sprintf("f/%.1f", ev.FNumber.Float())
	if ev.ShutterSpeed[1] != 1 {
		s += fmt.Sprintf(", %d/%d", ev.ShutterSpeed[0], ev.ShutterSpeed[1])
	} else {
		s += fmt.Sprintf(", %d", ev.ShutterSpeed[0])
	}
	return s + fmt.Sprintf(", ISO%d, EV100 %.2f", ev.ISO, ev.EV100())
}

func (ev ExposureValue)Validate() error {
	if ev.ISO <= 0 || ev.FNumber[0] <= 0 || ev.FNumber[1] <= 0 || ev.ShutterSpeed[0] <= 0 || ev.ShutterSpeed[1] <= 0 {
		return fmt.Errorf("exposure info incomplete: ISO %d, FNumber %v, ShutterSpeed %v", ev.ISO, ev.FNumber, ev.ShutterSpeed)
	}
	return nil
}

// EV100 is the exposure value normalized to ISO 100:
// log2(N^2/t) - log2(ISO/100). https://en.wikipedia.org/wiki/Exposure_value
func (ev ExposureValue)EV100() float64 {
	n := ev.FNumber.Float()
	t := ev.ShutterSpeed.Float()
	return math.Log2(n*n/t) - math.Log2(float64(ev.ISO)/100.0)
}

// ExposureFor returns the scale factor that takes pixel values exposed
// at this EV to pixel values as if exposed at refEV. Each stop the
// camera stopped down beyond refEV doubles it.
func (ev ExposureValue)ExposureFor(refEV float64) float64 {
	return math.Exp2(ev.EV100() - refEV)
}

// ReadExposureValue pulls ISO, FNumber and ExposureTime out of the EXIF
// data in r (a JPEG or TIFF stream).
func ReadExposureValue(r io.Reader) (ExposureValue, error) {
	ev := ExposureValue{}

	ex, err := exif.Decode(r)
	if err != nil {
		return ev, fmt.Errorf("exif parsing: %v", err)
	}

	if tag,err := ex.Get(exif.ISOSpeedRatings); err != nil {
		return ev, fmt.Errorf("exif ISO: %v", err)
	} else if val,err := tag.Int64(0); err != nil {
		return ev, fmt.Errorf("exif ISO: %v", err)
	} else {
		ev.ISO = val
	}

	if tag,err := ex.Get(exif.FNumber); err != nil {
		return ev, fmt.Errorf("exif FNumber: %v", err)
	} else if num,denom,err := tag.Rat2(0); err != nil {
		return ev, fmt.Errorf("exif FNumber: %v", err)
	} else {
		ev.FNumber = rat64{num, denom}
	}

	if tag,err := ex.Get(exif.ExposureTime); err != nil {
		return ev, fmt.Errorf("exif ExposureTime: %v", err)
	} else if num,denom,err := tag.Rat2(0); err != nil {
		return ev, fmt.Errorf("exif ExposureTime: %v", err)
	} else {
		ev.ShutterSpeed = rat64{num, denom}
	}

	// Exposure compensation is ignored; the other three fully define how
	// much light reached the sensor.

	return ev, ev.Validate()
}
