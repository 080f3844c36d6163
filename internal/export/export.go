// Package export renders the lead store into files for sharing outside the app.
//
// Every format uses the same narrow projection of a lead (see Columns). The
// pipeline status and referral fields stay inside the application.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"contractor-leads/internal/logger"
	"contractor-leads/internal/models"
)

var ErrUnknownFormat = errors.New("unknown export format")

type Format string

const (
	FormatCSV   Format = "csv"
	FormatPDF   Format = "pdf"
	FormatText  Format = "txt"
	FormatTable Format = "table"
	FormatXLSX  Format = "xlsx"
)

// Formats lists the supported formats in menu order.
var Formats = []Format{FormatCSV, FormatPDF, FormatText, FormatTable, FormatXLSX}

// Columns is the ordered field projection shared by every format.
var Columns = []models.Field{
	models.FieldName,
	models.FieldAddress,
	models.FieldPhone,
	models.FieldEmail,
	models.FieldNotes,
	models.FieldJobType,
}

// Extension returns the file suffix a format is saved with.
func (f Format) Extension() string {
	switch f {
	case FormatTable:
		return ".tbl.txt"
	case FormatText:
		return ".txt"
	default:
		return "." + string(f)
	}
}

// Title is the label used on buttons and dialogs.
func (f Format) Title() string {
	switch f {
	case FormatCSV:
		return "CSV"
	case FormatPDF:
		return "PDF"
	case FormatText:
		return "TXT"
	case FormatTable:
		return "Text Table"
	case FormatXLSX:
		return "Excel"
	default:
		return strings.ToUpper(string(f))
	}
}

// ParseFormat accepts a format name as typed on the command line.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "."))
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	switch name {
	case "text":
		return FormatText, nil
	case "tbl":
		return FormatTable, nil
	case "excel":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath picks a format from the destination file name.
func FormatFromPath(path string) (Format, error) {
	lower := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(lower, FormatTable.Extension()) {
		return FormatTable, nil
	}
	ext := filepath.Ext(lower)
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Header returns the column titles.
func Header() []string {
	header := make([]string, len(Columns))
	for i, field := range Columns {
		header[i] = string(field)
	}
	return header
}

// Rows projects every lead onto Columns, in store order.
func Rows(leads []models.Lead) [][]string {
	rows := make([][]string, len(leads))
	for i, lead := range leads {
		row := make([]string, len(Columns))
		for j, field := range Columns {
			row[j] = lead.Value(field)
		}
		rows[i] = row
	}
	return rows
}

// Exporter writes read-only snapshots of the store
type Exporter struct {
	logger   logger.Logger
	pageSize string
}

type Option func(*Exporter)

// WithPageSize sets the PDF page size ("Letter", "A4", ...).
func WithPageSize(size string) Option {
	return func(e *Exporter) {
		if size != "" {
			e.pageSize = size
		}
	}
}

func NewExporter(log logger.Logger, opts ...Option) *Exporter {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	e := &Exporter{logger: log, pageSize: "Letter"}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export writes the store in the given format.
func (e *Exporter) Export(format Format, src models.Reader, w io.Writer) error {
	leads := src.All()
	header, rows := Header(), Rows(leads)

	var err error
	switch format {
	case FormatCSV:
		err = writeCSV(w, header, rows)
	case FormatText:
		err = writeText(w, header, rows)
	case FormatTable:
		err = writeTable(w, header, rows)
	case FormatPDF:
		err = writePDF(w, header, rows, e.pageSize)
	case FormatXLSX:
		err = writeXLSX(w, header, rows)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		e.logger.Error("Exporter", err, map[string]interface{}{"format": string(format)})
		return fmt.Errorf("export %s: %w", format, err)
	}

	e.logger.Info("Exporter", "leads exported", map[string]interface{}{
		"format": string(format),
		"count":  len(leads),
	})
	return nil
}

// ExportToPath renders into memory and then writes path. An empty path means
// the user cancelled the destination choice: nothing is written and the
// result is false with no error.
func (e *Exporter) ExportToPath(format Format, src models.Reader, path string) (bool, error) {
	if path == "" {
		e.logger.Debug("Exporter", "export cancelled", map[string]interface{}{"format": string(format)})
		return false, nil
	}

	var buf bytes.Buffer
	if err := e.Export(format, src, &buf); err != nil {
		return false, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
