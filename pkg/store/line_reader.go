package store

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/adrianowead/wead/pkg/codec"
)

const defaultMaxRecordSize = 1024 * 1024

// RawRecord is one logical record as found in the file, fields still escaped
type RawRecord struct {
	Line   int      // 1-based physical line where the record starts
	Fields []string // Raw fields as returned by codec.Split
}

// RecordIterator provides streaming access to records
type RecordIterator interface {
	Next() bool
	Record() *RawRecord
	Err() error
	Close() error
}

// physicalLine is one line of the file without its terminator
type physicalLine struct {
	text string
	num  int
}

// LineReader provides sequential access to the records of a data file.
// The first physical line is the header and is never returned. Blank lines
// are skipped, and a record whose quoted field holds a newline is joined back
// into a single logical record. When a quoted field is never closed, or the
// joined record would outgrow MaxRecordSize, the line is read on its own and
// the lines after it are read as records again.
type LineReader struct {
	file    *os.File
	reader  *bufio.Reader
	config  LineReaderConfig
	maxSize int
	read    int            // Physical lines taken from the file
	pending []physicalLine // Lines read ahead by a failed join
}

// NewLineReader opens the data file for reading
func NewLineReader(config LineReaderConfig) (*LineReader, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, err
	}

	return &LineReader{
		file:    file,
		reader:  bufio.NewReader(file),
		config:  config,
		maxSize: maxRecordSize(config.MaxRecordSize),
	}, nil
}

func maxRecordSize(configured int) int {
	if configured <= 0 {
		return defaultMaxRecordSize
	}
	return configured
}

// ReadNext returns the next record, or io.EOF when the file is exhausted
func (r *LineReader) ReadNext() (*RawRecord, error) {
	for {
		pl, err := r.nextLine()
		if err != nil {
			return nil, err
		}

		if pl.num == 1 {
			continue // header
		}
		if strings.TrimSpace(pl.text) == "" {
			continue
		}

		if codec.Balanced(pl.text) {
			return &RawRecord{Line: pl.num, Fields: codec.Split(pl.text)}, nil
		}
		return r.join(pl)
	}
}

// join extends the quoted field left open by first over the lines after it
func (r *LineReader) join(first physicalLine) (*RawRecord, error) {
	var record strings.Builder
	record.WriteString(first.text)

	var ahead []physicalLine
	for {
		pl, err := r.nextLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		ahead = append(ahead, pl)
		record.WriteByte('\n')
		record.WriteString(pl.text)

		if record.Len() > r.maxSize {
			break
		}
		if codec.Balanced(record.String()) {
			return &RawRecord{Line: first.num, Fields: codec.Split(record.String())}, nil
		}
	}

	r.pending = append(ahead, r.pending...)
	return &RawRecord{Line: first.num, Fields: codec.Split(first.text)}, nil
}

// nextLine returns the next physical line, read-ahead lines first.
// Lines have no length limit.
func (r *LineReader) nextLine() (physicalLine, error) {
	if len(r.pending) > 0 {
		pl := r.pending[0]
		r.pending = r.pending[1:]
		return pl, nil
	}

	text, err := r.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return physicalLine{}, err
	}
	if err != nil && text == "" {
		return physicalLine{}, io.EOF
	}

	r.read++
	text = strings.TrimSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\r")
	return physicalLine{text: text, num: r.read}, nil
}

// Iterator returns a streaming iterator for records
func (r *LineReader) Iterator() RecordIterator {
	return &lineRecordIterator{reader: r}
}

// Close closes the underlying file
func (r *LineReader) Close() error {
	return r.file.Close()
}

// lineRecordIterator implements RecordIterator for streaming access
type lineRecordIterator struct {
	reader *LineReader
	record *RawRecord
	err    error
}

func (it *lineRecordIterator) Next() bool {
	it.record, it.err = it.reader.ReadNext()
	return it.err == nil
}

func (it *lineRecordIterator) Record() *RawRecord {
	return it.record
}

// Err returns the error that stopped iteration, nil at a clean end of file
func (it *lineRecordIterator) Err() error {
	if it.err == io.EOF {
		return nil
	}
	return it.err
}

func (it *lineRecordIterator) Close() error {
	// the reader is owned by the caller
	return nil
}
