package utils

import (
	"bytes"
	"io"
	"sync"
)

// DeferredWriter holds writes in memory while a full-screen program owns the
// terminal. Release flushes the held bytes to w and makes every later write go
// straight to w. Safe for concurrent use.
type DeferredWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
	out io.Writer
}

// Write stores p, or forwards it once the writer has been released.
func (d *DeferredWriter) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.out != nil {
		return d.out.Write(p)
	}
	return d.buf.Write(p)
}

// Release writes all held data to w and switches to pass-through mode.
func (d *DeferredWriter) Release(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.out = w
	if d.buf.Len() == 0 {
		return nil
	}

	_, err := d.buf.WriteTo(w)
	return err
}

// Held reports how many bytes are waiting for Release.
func (d *DeferredWriter) Held() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Len()
}
