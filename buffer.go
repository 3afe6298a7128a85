package expando

import (
	"io"
	"strconv"
	"time"
)

// buffer is an owned, append-only byte slice with helpers for writing
// the primitive types the renderer and encoder deal with, mirroring the
// teacher's buffer type (see buffer_test.go in console-slog, whose
// source file was not itself retrieved but whose contract is pinned
// down exactly by its tests).
type buffer []byte

// Appender is buffer's exported name, so a GetStringFunc implemented
// in another package (see registry.go) has something to spell the
// "out" parameter's type as.
type Appender = buffer

func (b *buffer) Reset() {
	*b = (*b)[:0]
}

func (b *buffer) Append(bs []byte) *buffer {
	*b = append(*b, bs...)
	return b
}

func (b *buffer) AppendByte(c byte) *buffer {
	*b = append(*b, c)
	return b
}

func (b *buffer) AppendString(s string) *buffer {
	*b = append(*b, s...)
	return b
}

func (b *buffer) AppendBool(v bool) *buffer {
	*b = strconv.AppendBool(*b, v)
	return b
}

func (b *buffer) AppendInt(i int64) *buffer {
	*b = strconv.AppendInt(*b, i, 10)
	return b
}

func (b *buffer) AppendUint(i uint64) *buffer {
	*b = strconv.AppendUint(*b, i, 10)
	return b
}

func (b *buffer) AppendFloat(f float64) *buffer {
	*b = strconv.AppendFloat(*b, f, 'g', -1, 64)
	return b
}

func (b *buffer) AppendDuration(d time.Duration) *buffer {
	*b = append(*b, d.String()...)
	return b
}

func (b *buffer) AppendTime(t time.Time, format string) *buffer {
	*b = t.AppendFormat(*b, format)
	return b
}

// Pad appends n copies of c. A no-op for n <= 0.
func (b *buffer) Pad(n int, c byte) *buffer {
	for i := 0; i < n; i++ {
		*b = append(*b, c)
	}
	return b
}

func (b *buffer) String() string {
	return string(*b)
}

func (b *buffer) Len() int {
	return len(*b)
}

// WriteTo implements io.WriterTo, matching the teacher's buffer so it
// can be handed directly to an io.Writer destination (the host's
// terminal, a test bytes.Buffer, ...).
func (b *buffer) WriteTo(w io.Writer) (int64, error) {
	if len(*b) == 0 {
		return 0, nil
	}
	n, err := w.Write(*b)
	if err == nil && n < len(*b) {
		err = io.ErrShortWrite
	}
	*b = (*b)[:0]
	return int64(n), err
}
