package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Rotator implements io.Writer and rotates the log file once it grows past
// MaxSize bytes, keeping at most MaxBackups numbered backups.
type Rotator struct {
	Filename   string
	MaxSize    int64
	MaxBackups int
	file       *os.File
	size       int64
	mu         sync.Mutex
}

// Setup points the standard logger at both stdout and a rotating file.
// On file errors the watcher keeps running with stdout only.
func Setup(filename string, maxSizeMB int64, maxBackups int) {
	rotator := &Rotator{
		Filename:   filename,
		MaxSize:    maxSizeMB * 1024 * 1024,
		MaxBackups: maxBackups,
	}

	if err := rotator.openExistingOrNew(); err != nil {
		log.Printf("Failed to open log file, using stdout only: %v", err)
		return
	}

	log.SetOutput(io.MultiWriter(os.Stdout, rotator))
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

func (r *Rotator) openExistingOrNew() error {
	info, err := os.Stat(r.Filename)
	if os.IsNotExist(err) {
		return r.openNew()
	}
	if err != nil {
		return err
	}

	f, err := os.OpenFile(r.Filename, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	r.file = f
	r.size = info.Size()
	return nil
}

func (r *Rotator) openNew() error {
	f, err := os.OpenFile(r.Filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	r.file = f
	r.size = 0
	return nil
}

// Write satisfies io.Writer. It checks size and rotates if needed.
func (r *Rotator) Write(p []byte) (n int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		if err = r.openExistingOrNew(); err != nil {
			return 0, err
		}
	}

	if r.size+int64(len(p)) > r.MaxSize {
		if err := r.rotate(); err != nil {
			// Keep writing to the old handle rather than dropping log lines.
			fmt.Fprintf(os.Stderr, "Log rotation failed: %v\n", err)
		}
	}

	n, err = r.file.Write(p)
	r.size += int64(n)
	return n, err
}

// rotate closes the current file, shifts backups up by one, and opens a
// fresh file: log.2 -> log.3, log.1 -> log.2, log -> log.1.
func (r *Rotator) rotate() error {
	if r.file != nil {
		r.file.Close()
	}

	for i := r.MaxBackups - 1; i >= 1; i-- {
		oldPath := fmt.Sprintf("%s.%d", r.Filename, i)
		if _, err := os.Stat(oldPath); os.IsNotExist(err) {
			continue
		}
		os.Rename(oldPath, fmt.Sprintf("%s.%d", r.Filename, i+1))
	}

	if _, err := os.Stat(r.Filename); err == nil {
		os.Rename(r.Filename, fmt.Sprintf("%s.1", r.Filename))
	}

	return r.openNew()
}
