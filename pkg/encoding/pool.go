package encoding

import (
	"bytes"
	"sync"
)

// maxPooledBufferSize keeps outlier buffers from pinning memory in the pool
const maxPooledBufferSize = 64 * 1024

// BufferPool pools bytes.Buffer for request document encoding
var BufferPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

// GetBuffer retrieves an empty bytes.Buffer from the pool
func GetBuffer() *bytes.Buffer {
	buf := BufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns a bytes.Buffer to the pool
func PutBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBufferSize {
		return
	}
	buf.Reset()
	BufferPool.Put(buf)
}

// CopyBytes returns a copy of the buffer contents that stays valid after PutBuffer
func CopyBytes(buf *bytes.Buffer) []byte {
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result
}
