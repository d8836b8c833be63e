// Package utils contains small helpers shared by the CLI entrypoint.
package utils

import (
	"io"
	"sync"
)

// DeferredWriter buffers writes in memory until Flush is called. It is used to
// hold log lines while the TUI owns the terminal. Each Write is kept as a
// separate entry so line-oriented writers (like zerolog.ConsoleWriter) see one
// event per call when flushed.
type DeferredWriter struct {
	mu      sync.Mutex
	entries [][]byte
}

// Write copies p into the buffer. It never fails.
func (d *DeferredWriter) Write(p []byte) (int, error) {
	entry := make([]byte, len(p))
	copy(entry, p)

	d.mu.Lock()
	d.entries = append(d.entries, entry)
	d.mu.Unlock()

	return len(p), nil
}

// Len returns the number of buffered writes.
func (d *DeferredWriter) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

// Flush writes all buffered entries to w in order and clears the buffer.
func (d *DeferredWriter) Flush(w io.Writer) error {
	d.mu.Lock()
	entries := d.entries
	d.entries = nil
	d.mu.Unlock()

	for _, entry := range entries {
		if _, err := w.Write(entry); err != nil {
			return err
		}
	}
	return nil
}
