package store

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// RepositoryConfig holds configuration for a Repository
type RepositoryConfig struct {
	FilePath      string      // Path to the data file
	Sync          bool        // fsync after every append and before every rename
	MaxRecordSize int         // Largest encoded record accepted on write, 0 = default
	Logger        *zap.Logger // nil disables logging
}

// LineWriterConfig holds configuration for the line writer
type LineWriterConfig struct {
	FilePath string // Path to the data file
	Sync     bool   // fsync after every write
}

// LineReaderConfig holds configuration for the line reader
type LineReaderConfig struct {
	FilePath      string // Path to the data file
	MaxRecordSize int    // Largest logical record accepted, 0 = default
}

// ScanResult describes the scan done when a Repository is constructed
type ScanResult struct {
	FileCreated  bool  // The file did not exist and was initialized with a header
	LinesScanned int64 // Non-blank physical lines read after the header
	LinesSkipped int64 // Lines whose leading field is not an id
	LastID       int64 // Highest id found
}

// Stats holds statistics about the repository
type Stats struct {
	Path     string      `json:"path"`
	Records  int         `json:"records"`
	LastID   int64       `json:"last_id"`
	FileSize int64       `json:"file_size_bytes"`
	Scan     *ScanResult `json:"scan"`
}

// Errors
var (
	ErrConfig   = errors.New("invalid repository configuration")
	ErrNotFound = errors.New("record not found")
	ErrIO       = errors.New("repository i/o failure")
)

// ConfigError reports invalid construction input
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// NotFoundError reports an update or delete aimed at an absent id
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("record with id %d not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IOError wraps a failure to open, read, create or write the data file
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

func ioError(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}
