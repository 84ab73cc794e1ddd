package loadtest

import (
	"fmt"
	"math/rand"
)

// Mix decides the kind of each operation a worker issues: a fixed kind,
// or a probabilistic read/write blend.
type Mix struct {
	fixed     OperationKind
	readRatio float64
	blended   bool
}

// WriteOnly issues writes exclusively.
func WriteOnly() Mix { return Mix{fixed: OpWrite} }

// ReadOnly issues reads exclusively.
func ReadOnly() Mix { return Mix{fixed: OpRead} }

// ReadRatio draws each operation's kind independently: reads with
// probability ratio, writes otherwise.
func ReadRatio(ratio float64) Mix {
	return Mix{readRatio: ratio, blended: true}
}

func (m Mix) validate() error {
	if m.blended {
		if m.readRatio < 0 || m.readRatio > 1 {
			return fmt.Errorf("%w: read ratio must be in [0,1], got %v", ErrInvalidConfiguration, m.readRatio)
		}
		return nil
	}
	if m.fixed != OpRead && m.fixed != OpWrite {
		return fmt.Errorf("%w: operation mix is required", ErrInvalidConfiguration)
	}
	return nil
}

// pick selects the next operation kind using the worker's own source, so
// workers never share random state.
func (m Mix) pick(r *rand.Rand) OperationKind {
	if !m.blended {
		return m.fixed
	}
	if r.Float64() < m.readRatio {
		return OpRead
	}
	return OpWrite
}

func (m Mix) String() string {
	if !m.blended {
		return string(m.fixed)
	}
	return fmt.Sprintf("mixed(read=%.2f)", m.readRatio)
}
