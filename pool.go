package consoledump

import (
	"sync"

	"github.com/willibrandon/consoledump/internal/script"
)

// maxPooledWriter bounds the buffers kept for reuse, so one huge dump does
// not pin its memory.
const maxPooledWriter = 64 << 10

var writers = sync.Pool{
	New: func() any {
		return script.NewWriter()
	},
}

// getWriter gets an empty script writer from the pool.
func getWriter() *script.Writer {
	w := writers.Get().(*script.Writer)
	w.Reset()
	return w
}

// putWriter returns a writer to the pool.
func putWriter(w *script.Writer) {
	if w.Len() > maxPooledWriter {
		return
	}
	writers.Put(w)
}
