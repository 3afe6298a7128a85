package expando

import "sync"

// scratchPool recycles the scratch buffers used while rendering a tree,
// mirroring the teacher's encoderPool in encoding.go. Per spec.md §5,
// the pool is process-wide, lazily initialised, and assumed to be used
// single-threaded like the rest of the engine.
var scratchPool = &sync.Pool{
	New: func() any {
		return &renderScratch{
			out:   make(buffer, 0, 256),
			predi: make(buffer, 0, 64),
			left:  make(buffer, 0, 128),
			right: make(buffer, 0, 128),
		}
	},
}

// renderScratch bundles the buffers a single render() call needs:
// an out scratch a Container, Condition or colour-wrapped Expando
// renders into before framing, a predicate-evaluation scratch (its
// bytes are discarded, only truthiness matters), and left/right
// scratch for the two children a Padding node renders into before
// combining them.
type renderScratch struct {
	out   buffer
	predi buffer
	left  buffer
	right buffer
}

func (s *renderScratch) reset() {
	s.out.Reset()
	s.predi.Reset()
	s.left.Reset()
	s.right.Reset()
}

func getScratch() *renderScratch {
	s := scratchPool.Get().(*renderScratch)
	s.reset()
	return s
}

func putScratch(s *renderScratch) {
	if s == nil {
		return
	}
	scratchPool.Put(s)
}
