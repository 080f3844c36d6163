package services

import (
	"fmt"
	"io"
	"time"

	"contractor-leads/internal/export"
	"contractor-leads/internal/logger"
	"contractor-leads/internal/models"
)

// ExportService writes the store to destinations picked by the user.
type ExportService struct {
	exporter *export.Exporter
	source   models.Reader
	logger   logger.Logger
}

func NewExportService(exporter *export.Exporter, source models.Reader, log logger.Logger) *ExportService {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &ExportService{exporter: exporter, source: source, logger: log}
}

// SuggestedName is the default file name offered by the save dialog.
func (es *ExportService) SuggestedName(format export.Format) string {
	return "leads" + format.Extension()
}

// ExportToWriter writes one export and closes the writer. A nil writer is a
// cancelled selection and does nothing. An empty format is resolved from name.
func (es *ExportService) ExportToWriter(w io.WriteCloser, name string, format export.Format) error {
	if w == nil {
		es.logger.Debug("ExportService", "export cancelled", nil)
		return nil
	}
	defer w.Close()

	if format == "" {
		var err error
		if format, err = export.FormatFromPath(name); err != nil {
			return err
		}
	}

	start := time.Now()
	if err := es.exporter.Export(format, es.source, w); err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}

	es.logger.Info("ExportService", "export written", map[string]interface{}{
		"format":      string(format),
		"destination": name,
		"records":     es.source.Len(),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

// ExportToPath is the headless variant. An empty path is a cancellation.
func (es *ExportService) ExportToPath(format export.Format, path string) (bool, error) {
	return es.exporter.ExportToPath(format, es.source, path)
}
