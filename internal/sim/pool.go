package sim

import (
	"sync"

	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
)

// StatePool recycles equally-sized state buffers. The live viewers
// use it for their history rings so scrubbing does not churn the
// allocator.
type StatePool struct {
	pool sync.Pool
	size int
}

func NewStatePool(stateSize int) *StatePool {
	return &StatePool{
		size: stateSize,
		pool: sync.Pool{
			New: func() interface{} {
				return make(quantum.State, stateSize)
			},
		},
	}
}

func (p *StatePool) Get() quantum.State {
	return p.pool.Get().(quantum.State)
}

func (p *StatePool) Put(s quantum.State) {
	if len(s) == p.size {
		for i := range s {
			s[i] = 0
		}
		p.pool.Put(s)
	}
}

func (p *StatePool) GetAndCopy(src quantum.State) quantum.State {
	dst := p.Get()
	copy(dst, src)
	return dst
}
