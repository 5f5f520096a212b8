package store

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/adrianowead/wead/pkg/codec"
	"github.com/adrianowead/wead/pkg/fsutil"
)

const dataFilePerm = 0o644

// LineWriter appends record lines to the data file and replaces it wholesale.
// The file is opened per call so that a rename from Rewrite is always seen by
// the next Append.
type LineWriter struct {
	config LineWriterConfig
	mutex  sync.Mutex
}

// NewLineWriter creates a new line writer with the given configuration
func NewLineWriter(config LineWriterConfig) *LineWriter {
	return &LineWriter{config: config}
}

// Init writes a header-only file if none exists yet, creating parent
// directories as needed. It reports whether the file was created.
func (w *LineWriter) Init() (bool, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if _, err := os.Stat(w.config.FilePath); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	if err := fsutil.AtomicWriteFile(w.config.FilePath, []byte(codec.Header+"\n"), dataFilePerm, w.config.Sync); err != nil {
		return false, err
	}
	return true, nil
}

// Append writes one encoded line at the end of the file.
// The file must already exist.
func (w *LineWriter) Append(line string) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	f, err := os.OpenFile(w.config.FilePath, os.O_APPEND|os.O_WRONLY, dataFilePerm)
	if err != nil {
		return err
	}

	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return err
	}

	if w.config.Sync {
		if err := f.Sync(); err != nil {
			_ = f.Close()
			return err
		}
	}

	return f.Close()
}

// Rewrite replaces the file with the header followed by lines
func (w *LineWriter) Rewrite(lines []string) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	size := len(codec.Header) + 1
	for _, l := range lines {
		size += len(l)
	}

	var b strings.Builder
	b.Grow(size)
	b.WriteString(codec.Header)
	b.WriteByte('\n')
	for _, l := range lines {
		b.WriteString(l)
	}

	return fsutil.AtomicWriteFile(w.config.FilePath, []byte(b.String()), dataFilePerm, w.config.Sync)
}

// Path returns the file path
func (w *LineWriter) Path() string {
	return w.config.FilePath
}
