package uncharted

import(
	"math"
	"sync/atomic"
)

// Progress is a [0,1] completion counter. Process writes it; anything,
// including another goroutine, may read it. A nil *Progress is allowed
// and ignores updates.
type Progress struct {
	bits atomic.Uint64
}

func (p *Progress)Value() float64 {
	if p == nil {
		return 0
	}
	return math.Float64frombits(p.bits.Load())
}

func (p *Progress)Reset() {
	if p != nil {
		p.bits.Store(0)
	}
}

func (p *Progress)Add(delta float64) {
	if p == nil {
		return
	}
	for {
		old := p.bits.Load()
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if p.bits.CompareAndSwap(old, next) {
			return
		}
	}
}
