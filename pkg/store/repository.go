package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/adrianowead/wead/pkg/codec"
	"github.com/adrianowead/wead/pkg/person"
)

// Repository persists Person records in a single line-oriented file
type Repository struct {
	config RepositoryConfig
	writer *LineWriter
	logger *zap.Logger
	lastID int64
	scan   *ScanResult
	mutex  sync.Mutex
}

// Open creates a repository backed by path with default settings
func Open(path string) (*Repository, error) {
	return NewRepository(RepositoryConfig{FilePath: path})
}

// NewRepository binds a repository to config.FilePath. A missing file is
// created with only the header line; an existing file is scanned once to
// find the highest id in use.
func NewRepository(config RepositoryConfig) (*Repository, error) {
	if strings.TrimSpace(config.FilePath) == "" {
		return nil, &ConfigError{Message: "file path cannot be empty"}
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	repo := &Repository{
		config: config,
		writer: NewLineWriter(LineWriterConfig{
			FilePath: config.FilePath,
			Sync:     config.Sync,
		}),
		logger: logger.With(zap.String("path", config.FilePath)),
	}

	created, err := repo.writer.Init()
	if err != nil {
		return nil, ioError("create", config.FilePath, err)
	}

	scan, err := repo.scanLastID()
	if err != nil {
		return nil, err
	}
	scan.FileCreated = created

	repo.scan = scan
	repo.lastID = scan.LastID

	repo.logger.Info("repository opened",
		zap.Bool("created", created),
		zap.Int64("last_id", scan.LastID),
		zap.Int64("records", scan.LinesScanned),
		zap.Int64("skipped", scan.LinesSkipped))

	return repo, nil
}

// Create appends p under the next id and assigns that id to p
func (r *Repository) Create(p *person.Person) (int64, error) {
	if p == nil {
		return 0, &person.ValidationError{Message: "person cannot be nil"}
	}
	if p.IsPersisted() {
		return 0, &person.ValidationError{
			Field:   "id",
			Message: fmt.Sprintf("person already has id %d", p.ID),
		}
	}
	if err := p.Validate(); err != nil {
		return 0, err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	id := r.lastID + 1
	line, err := r.encode(id, p)
	if err != nil {
		return 0, err
	}
	if err := r.writer.Append(line); err != nil {
		return 0, ioError("append", r.config.FilePath, err)
	}

	r.lastID = id
	p.SetID(id)

	r.logger.Debug("record created", zap.Int64("id", id))
	return id, nil
}

// FindByID returns the first record with the given id.
// found is false, with a nil error, when no record matches.
func (r *Repository) FindByID(id int64) (*person.Person, bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	people, err := r.readAll()
	if err != nil {
		return nil, false, err
	}

	for _, p := range people {
		if p.ID == id {
			return p, true, nil
		}
	}
	return nil, false, nil
}

// ListAll returns every well-formed record in file order
func (r *Repository) ListAll() ([]*person.Person, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.readAll()
}

// Update replaces the name, email and phone of the record carrying p.ID
func (r *Repository) Update(p *person.Person) error {
	if p == nil {
		return &person.ValidationError{Message: "person cannot be nil"}
	}
	if !p.IsPersisted() {
		return &person.ValidationError{Field: "id", Message: "person must have an id to be updated"}
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if _, err := r.encode(p.ID, p); err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	people, err := r.readAll()
	if err != nil {
		return err
	}

	found := false
	for i, existing := range people {
		if existing.ID == p.ID {
			people[i] = p.Clone()
			found = true
			break
		}
	}
	if !found {
		return &NotFoundError{ID: p.ID}
	}

	if err := r.rewrite(people); err != nil {
		return err
	}

	r.logger.Debug("record updated", zap.Int64("id", p.ID))
	return nil
}

// Delete removes every record carrying id
func (r *Repository) Delete(id int64) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	people, err := r.readAll()
	if err != nil {
		return err
	}

	kept := people[:0]
	for _, p := range people {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	removed := len(people) - len(kept)
	if removed == 0 {
		return &NotFoundError{ID: id}
	}

	if err := r.rewrite(kept); err != nil {
		return err
	}

	r.logger.Debug("record deleted", zap.Int64("id", id), zap.Int("removed", removed))
	return nil
}

// SearchByName returns records whose name contains substr, ignoring case
func (r *Repository) SearchByName(substr string) ([]*person.Person, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	people, err := r.readAll()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(substr)
	matches := make([]*person.Person, 0)
	for _, p := range people {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// Count returns the number of well-formed records
func (r *Repository) Count() (int, error) {
	people, err := r.ListAll()
	if err != nil {
		return 0, err
	}
	return len(people), nil
}

// ClearAll removes every record. Ids already handed out are not reused.
func (r *Repository) ClearAll() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if err := r.writer.Rewrite(nil); err != nil {
		return ioError("rewrite", r.config.FilePath, err)
	}

	r.logger.Info("repository cleared", zap.Int64("last_id", r.lastID))
	return nil
}

// Path returns the backing file path
func (r *Repository) Path() string {
	return r.writer.Path()
}

// LastID returns the highest id assigned or found so far
func (r *Repository) LastID() int64 {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.lastID
}

// Stats returns current statistics about the repository
func (r *Repository) Stats() (*Stats, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	people, err := r.readAll()
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(r.config.FilePath)
	if err != nil {
		return nil, ioError("stat", r.config.FilePath, err)
	}

	scan := *r.scan
	return &Stats{
		Path:     r.config.FilePath,
		Records:  len(people),
		LastID:   r.lastID,
		FileSize: info.Size(),
		Scan:     &scan,
	}, nil
}

// scanLastID reads the leading field of every physical line and returns the
// highest id found. Lines are not joined, so an unbalanced quote elsewhere in
// the file cannot hide an id.
func (r *Repository) scanLastID() (*ScanResult, error) {
	reader, err := r.newReader()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	result := &ScanResult{}
	for {
		pl, err := reader.nextLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, ioError("read", r.config.FilePath, err)
		}
		if pl.num == 1 || strings.TrimSpace(pl.text) == "" {
			continue
		}
		result.LinesScanned++

		lead, _, _ := strings.Cut(pl.text, ",")
		id, err := strconv.ParseInt(lead, 10, 64)
		if err != nil {
			result.LinesSkipped++
			r.logger.Debug("unparsable id ignored", zap.Int("line", pl.num))
			continue
		}
		if id > result.LastID {
			result.LastID = id
		}
	}

	return result, nil
}

// readAll decodes the file. The caller must hold the mutex.
func (r *Repository) readAll() ([]*person.Person, error) {
	reader, err := r.newReader()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	it := reader.Iterator()
	defer it.Close()

	people := make([]*person.Person, 0)
	for it.Next() {
		rec := it.Record()
		if len(rec.Fields) < 4 {
			r.logger.Debug("short record skipped",
				zap.Int("line", rec.Line),
				zap.Int("fields", len(rec.Fields)))
			continue
		}

		// unparsable ids decode as 0, the same as an unpersisted record
		id, _ := strconv.ParseInt(rec.Fields[0], 10, 64)

		people = append(people, &person.Person{
			ID:    id,
			Name:  codec.Unescape(rec.Fields[1]),
			Email: codec.Unescape(rec.Fields[2]),
			Phone: codec.Unescape(rec.Fields[3]),
		})
	}
	if err := it.Err(); err != nil {
		return nil, ioError("read", r.config.FilePath, err)
	}

	return people, nil
}

func (r *Repository) newReader() (*LineReader, error) {
	reader, err := NewLineReader(LineReaderConfig{
		FilePath:      r.config.FilePath,
		MaxRecordSize: r.config.MaxRecordSize,
	})
	if err != nil {
		return nil, ioError("open", r.config.FilePath, err)
	}
	return reader, nil
}

// encode renders p under id, refusing records the reader could not join back
func (r *Repository) encode(id int64, p *person.Person) (string, error) {
	line := codec.EncodeLine(id, p.Name, p.Email, p.Phone)
	if limit := maxRecordSize(r.config.MaxRecordSize); len(line)-1 > limit {
		return "", &person.ValidationError{
			Message: fmt.Sprintf("record is %d bytes, limit is %d", len(line)-1, limit),
		}
	}
	return line, nil
}

// rewrite replaces the file with people. The caller must hold the mutex.
func (r *Repository) rewrite(people []*person.Person) error {
	lines := make([]string, 0, len(people))
	for _, p := range people {
		lines = append(lines, codec.EncodeLine(p.ID, p.Name, p.Email, p.Phone))
	}

	if err := r.writer.Rewrite(lines); err != nil {
		return ioError("rewrite", r.config.FilePath, err)
	}
	return nil
}
