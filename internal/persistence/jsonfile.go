// Package persistence keeps the lead store in a JSON document on disk.
//
// The document is a bare JSON array with one object per lead, keyed by the
// field names shown in the UI ("Name", "Referred By", "Lead Status", ...).
// There is no version field; a missing file is an empty database.
package persistence

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"contractor-leads/internal/logger"
	"contractor-leads/internal/models"
)

// DefaultPath is the data file used when nothing else is configured.
const DefaultPath = "leads_data.json"

// LoadState describes what Load found on disk
type LoadState int

const (
	StateLoaded LoadState = iota
	StateMissing
	StateCorrupt
)

func (s LoadState) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateMissing:
		return "missing"
	case StateCorrupt:
		return "corrupt"
	default:
		return "unknown"
	}
}

// LoadReport is returned alongside the store so callers can tell an empty
// file from a discarded one.
type LoadReport struct {
	State      LoadState
	Count      int
	BackupPath string
	Cause      error
}

// ErrReadOnly is returned by Save on a file opened with ReadOnly.
var ErrReadOnly = errors.New("data file opened read-only")

// JSONFile loads and saves the store at a fixed path
type JSONFile struct {
	path     string
	logger   logger.Logger
	readOnly bool
}

type Option func(*JSONFile)

// ReadOnly makes Load leave the disk untouched: no data directory is created
// and a corrupt document stays where it is. Save is refused.
func ReadOnly() Option {
	return func(f *JSONFile) {
		f.readOnly = true
	}
}

func NewJSONFile(path string, log logger.Logger, opts ...Option) *JSONFile {
	if path == "" {
		path = DefaultPath
	}
	if log == nil {
		log = logger.NoOpLogger{}
	}
	f := &JSONFile{path: path, logger: log}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Path returns the data file location
func (f *JSONFile) Path() string {
	return f.path
}

// Load reads the data file. A missing or unreadable document yields an empty
// store; the corrupt document is moved aside so the next Save cannot clobber it.
func (f *JSONFile) Load() (*models.LeadStore, LoadReport) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		if f.readOnly {
			return models.NewLeadStore(), LoadReport{State: StateMissing}
		}
		if mkErr := f.ensureDir(); mkErr != nil {
			f.logger.Error("Persistence", mkErr, map[string]interface{}{"path": f.path})
		}
		f.logger.Info("Persistence", "no data file, starting empty", map[string]interface{}{
			"path": f.path,
		})
		return models.NewLeadStore(), LoadReport{State: StateMissing}
	}
	if err == nil {
		var leads []models.Lead
		leads, err = Decode(bytes.NewReader(data))
		if err == nil {
			f.logger.Info("Persistence", "leads loaded", map[string]interface{}{
				"path":  f.path,
				"count": len(leads),
			})
			return models.NewLeadStoreFrom(leads), LoadReport{State: StateLoaded, Count: len(leads)}
		}
	}

	report := LoadReport{State: StateCorrupt, Cause: err}
	if f.readOnly {
		f.logger.Warning("Persistence", "data file unreadable, left in place", map[string]interface{}{
			"path":  f.path,
			"error": err.Error(),
		})
		return models.NewLeadStore(), report
	}
	backup := fmt.Sprintf("%s.corrupt-%d", f.path, time.Now().Unix())
	if renameErr := os.Rename(f.path, backup); renameErr == nil {
		report.BackupPath = backup
	} else {
		f.logger.Error("Persistence", renameErr, map[string]interface{}{"path": f.path})
	}

	f.logger.Warning("Persistence", "data file unreadable, starting empty", map[string]interface{}{
		"path":   f.path,
		"error":  err.Error(),
		"backup": report.BackupPath,
	})
	return models.NewLeadStore(), report
}

// Save overwrites the data file with the full ordered store.
func (f *JSONFile) Save(store models.Reader) error {
	if f.readOnly {
		return fmt.Errorf("%w: %s", ErrReadOnly, f.path)
	}
	leads := store.All()

	var buf bytes.Buffer
	if err := Encode(&buf, leads); err != nil {
		return err
	}
	if err := f.ensureDir(); err != nil {
		return err
	}
	if err := os.WriteFile(f.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}

	f.logger.Info("Persistence", "leads saved", map[string]interface{}{
		"path":  f.path,
		"count": len(leads),
	})
	return nil
}

func (f *JSONFile) ensureDir() error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory %s: %w", dir, err)
	}
	return nil
}

// Decode parses a lead document and applies record defaults. Anything after
// the array other than whitespace makes the document invalid.
func Decode(r io.Reader) ([]models.Lead, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read leads: %w", err)
	}
	var leads []models.Lead
	if err := json.Unmarshal(data, &leads); err != nil {
		return nil, fmt.Errorf("decode leads: %w", err)
	}
	for i := range leads {
		leads[i].Normalize()
	}
	return leads, nil
}

// Encode writes leads as a JSON array, one object per lead.
func Encode(w io.Writer, leads []models.Lead) error {
	if leads == nil {
		leads = []models.Lead{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(leads); err != nil {
		return fmt.Errorf("encode leads: %w", err)
	}
	return nil
}
