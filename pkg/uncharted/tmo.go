package uncharted

import(
	"image"

	"github.com/mdouchement/hdr/tmo"
)

var _ tmo.ToneMappingOperator = (*TMO)(nil)

// TMO adapts an Operator to the github.com/mdouchement/hdr/tmo interface,
// so it can be used wherever the tmo package's operators are.
type TMO struct {
	*Operator
	Input     Image
	Exposure  float64
	Progress  *Progress // optional
}

func NewDefaultTMO(img Image) *TMO {
	return &TMO{
		Operator: NewOperator(),
		Input:    img,
		Exposure: 1.0,
	}
}

// Perform implements tmo.ToneMappingOperator.
func (t *TMO)Perform() image.Image {
	b := t.Input.Bounds()
	buf := make([]byte, BufferSize(b))
	t.Process(t.Input, buf, t.Exposure, t.Progress)
	return ToRGBA(b, buf)
}
