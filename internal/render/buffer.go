package render

import "sync"

// Buffer is a growing byte buffer used to assemble one formatted entry so it
// can be handed to a writer in a single Write call.
type Buffer struct{ B []byte }

func (buf *Buffer) Write(p []byte) (int, error) {
	buf.B = append(buf.B, p...)
	return len(p), nil
}

func (buf *Buffer) WriteString(s string) (int, error) {
	buf.B = append(buf.B, s...)
	return len(s), nil
}

func (buf *Buffer) WriteByte(c byte) error {
	buf.B = append(buf.B, c)
	return nil
}

func (buf *Buffer) Len() int       { return len(buf.B) }
func (buf *Buffer) String() string { return string(buf.B) }

var bufPool = sync.Pool{New: func() any { return &Buffer{B: make([]byte, 0, 512)} }}

// GetBuffer returns an empty pooled buffer.
func GetBuffer() *Buffer {
	buf := bufPool.Get().(*Buffer)
	buf.B = buf.B[:0]
	return buf
}

// PutBuffer returns buf to the pool. Very large buffers are dropped so the
// pool does not pin their backing arrays.
func PutBuffer(buf *Buffer) {
	if cap(buf.B) <= 64*1024 {
		bufPool.Put(buf)
	}
}
