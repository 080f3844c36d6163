package services

import (
	"fmt"
	"sync"

	"contractor-leads/internal/logger"
	"contractor-leads/internal/models"
	"contractor-leads/internal/persistence"
)

// LeadInput is what the entry form collects.
type LeadInput struct {
	Name       string
	Address    string
	Phone      string
	Email      string
	Notes      string
	ReferredBy string
	JobType    models.JobType
}

// LeadService owns the store for the application's lifetime and its file.
type LeadService struct {
	file   *persistence.JSONFile
	store  *models.LeadStore
	logger logger.Logger

	mu       sync.Mutex
	report   persistence.LoadReport
	shutdown sync.Once
	final    error
}

// NewLeadService loads the store from file. Load never fails; a missing or
// unreadable file starts an empty store and is described by LoadReport.
func NewLeadService(file *persistence.JSONFile, log logger.Logger) *LeadService {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	store, report := file.Load()
	return &LeadService{
		file:   file,
		store:  store,
		logger: log,
		report: report,
	}
}

func (s *LeadService) Store() *models.LeadStore {
	return s.store
}

func (s *LeadService) LoadReport() persistence.LoadReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report
}

// AddLead appends a new lead from form input exactly as typed. Status starts
// at In System.
func (s *LeadService) AddLead(in LeadInput) models.Lead {
	jobType := in.JobType
	if jobType == "" {
		jobType = models.JobResidential
	}

	lead := s.store.Append(models.Lead{
		Name:       in.Name,
		Address:    in.Address,
		Phone:      in.Phone,
		Email:      in.Email,
		Notes:      in.Notes,
		ReferredBy: in.ReferredBy,
		JobType:    jobType,
		Status:     models.DefaultStatus,
	})

	s.logger.Info("LeadService", "lead added", map[string]interface{}{
		"id":    lead.ID,
		"count": s.store.Len(),
	})
	return lead
}

// Save writes the whole store to disk.
func (s *LeadService) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.file.Save(s.store); err != nil {
		s.logger.Error("LeadService", err, map[string]interface{}{"path": s.file.Path()})
		return fmt.Errorf("save leads: %w", err)
	}
	s.logger.Info("LeadService", "leads saved", map[string]interface{}{
		"path":  s.file.Path(),
		"count": s.store.Len(),
	})
	return nil
}

// Shutdown performs the final save. Later calls return the first result.
func (s *LeadService) Shutdown() {
	s.shutdown.Do(func() {
		s.final = s.Save()
	})
}

// ShutdownErr reports the outcome of the final save
func (s *LeadService) ShutdownErr() error {
	return s.final
}
