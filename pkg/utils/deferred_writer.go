package utils

import (
	"bytes"
	"io"
	"sync"
)

// DeferredWriter forwards writes to a destination, except while held: held
// writes are buffered in memory and written out in order on Release.
// Safe for concurrent use.
type DeferredWriter struct {
	mu   sync.Mutex
	dst  io.Writer
	held bool
	buf  bytes.Buffer
}

// NewDeferredWriter creates a writer forwarding to dst.
func NewDeferredWriter(dst io.Writer) *DeferredWriter {
	return &DeferredWriter{dst: dst}
}

// Write forwards p, or buffers it while the writer is held.
func (d *DeferredWriter) Write(p []byte) (n int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.held {
		return d.buf.Write(p)
	}
	return d.dst.Write(p)
}

// Hold starts buffering writes.
func (d *DeferredWriter) Hold() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.held = true
}

// Release writes all buffered data to the destination and resumes
// forwarding.
func (d *DeferredWriter) Release() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.held = false
	if d.buf.Len() == 0 {
		return nil
	}

	_, err := d.buf.WriteTo(d.dst)
	return err
}

// Held reports whether writes are being buffered.
func (d *DeferredWriter) Held() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.held
}
