package controllers

import (
	"errors"
	"fmt"
	"sync"

	"contractor-leads/internal/export"
	"contractor-leads/internal/logger"
	"contractor-leads/internal/models"
	"contractor-leads/internal/projection"
	"contractor-leads/internal/services"

	"fyne.io/fyne/v2"
)

// Event names emitted by the controller
const (
	EventLeadAdded    = "lead_added"
	EventLeadDeleted  = "lead_deleted"
	EventLeadsSaved   = "leads_saved"
	EventLeadsExport  = "leads_exported"
	EventEditModeFlip = "edit_mode_changed"
)

// View is what the controller needs from the main view.
type View interface {
	SetSubmitHandler(func(models.Lead))
	SetRefreshHandler(func())
	SetExportHandler(func(export.Format))
	SetEditModeHandler(func(bool))
	SetDeleteHandler(func(string))
	SetSaveHandler(func())

	RenderRows([]projection.Row)
	UpdateStatus(string)
	SetEditMode(bool)
	ShowError(title string, err error)
	ShowInfo(title, message string)
	ShowConfirm(title, message string, callback func(bool))
	ShowSaveDialog(fileName string, callback func(fyne.URIWriteCloser, error))
}

// MainController routes UI events to the lead and export services.
type MainController struct {
	leadService   *services.LeadService
	exportService *services.ExportService
	projection    *projection.Projection
	logger        logger.Logger

	mainView View

	eventHandlers map[string][]EventHandler
	eventMu       sync.RWMutex
}

// EventHandler represents a function that handles application events
type EventHandler func(data interface{}) error

func NewMainController(
	leadService *services.LeadService,
	exportService *services.ExportService,
	proj *projection.Projection,
	log logger.Logger,
) *MainController {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	controller := &MainController{
		leadService:   leadService,
		exportService: exportService,
		projection:    proj,
		logger:        log,
		eventHandlers: make(map[string][]EventHandler),
	}

	controller.initializeEventHandlers()
	return controller
}

// SetMainView associates the main view with this controller
func (mc *MainController) SetMainView(view View) {
	mc.mainView = view
	mc.setupViewEventHandlers()
	mc.projection.OnChange(view.RenderRows)
	view.RenderRows(mc.projection.Rows())
	view.SetEditMode(mc.projection.EditMode())
}

// AddLead appends a lead entered in the form and refreshes the table.
func (mc *MainController) AddLead(lead models.Lead) {
	added := mc.leadService.AddLead(services.LeadInput{
		Name:       lead.Name,
		Address:    lead.Address,
		Phone:      lead.Phone,
		Email:      lead.Email,
		Notes:      lead.Notes,
		ReferredBy: lead.ReferredBy,
		JobType:    lead.JobType,
	})
	mc.projection.Refresh()
	mc.emitEvent(EventLeadAdded, added)
}

// RefreshTable rebuilds the table. It waits behind an open cell editor.
func (mc *MainController) RefreshTable() {
	if !mc.projection.Refresh() {
		mc.updateStatus("Refresh will run when the current edit finishes")
		return
	}
	mc.updateStatus("Table refreshed")
}

// SetEditMode opens or closes the Name, Address, Phone and Email columns.
func (mc *MainController) SetEditMode(enabled bool) {
	mc.projection.SetEditMode(enabled)
	if mc.mainView != nil {
		mc.mainView.SetEditMode(enabled)
	}
	mc.emitEvent(EventEditModeFlip, enabled)
}

// DeleteLead asks for confirmation before removing a row.
func (mc *MainController) DeleteLead(rowID string) {
	req, err := mc.projection.RequestDelete(rowID)
	if err != nil {
		mc.handleError("Delete failed", err)
		return
	}
	if mc.mainView == nil {
		req.Cancel()
		return
	}

	mc.mainView.ShowConfirm("Delete Lead", "Delete this lead? This cannot be undone.", func(confirmed bool) {
		mc.resolveDelete(req, confirmed)
	})
}

func (mc *MainController) resolveDelete(req *projection.DeleteRequest, confirmed bool) {
	if !confirmed {
		req.Cancel()
		return
	}
	if err := req.Confirm(); err != nil {
		mc.handleError("Delete failed", err)
		return
	}
	mc.emitEvent(EventLeadDeleted, req.RowID())
}

// Export asks for a destination and writes the chosen format there.
func (mc *MainController) Export(format export.Format) {
	if mc.mainView == nil {
		return
	}
	mc.mainView.ShowSaveDialog(mc.exportService.SuggestedName(format), func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mc.handleError("Export failed", err)
			return
		}
		if writer == nil {
			return
		}
		go mc.exportToWriter(writer, format)
	})
}

func (mc *MainController) exportToWriter(writer fyne.URIWriteCloser, format export.Format) {
	mc.updateStatus(fmt.Sprintf("Exporting %s...", format.Title()))

	name := writer.URI().Name()
	if err := mc.exportService.ExportToWriter(writer, name, format); err != nil {
		mc.handleError("Export failed", err)
		mc.updateStatus("Export failed")
		return
	}

	mc.updateStatus(fmt.Sprintf("Exported %s", name))
	mc.emitEvent(EventLeadsExport, name)
}

// Save persists the store now.
func (mc *MainController) Save() {
	if err := mc.leadService.Save(); err != nil {
		mc.handleError("Save failed", err)
		return
	}
	mc.updateStatus("Leads saved")
	mc.emitEvent(EventLeadsSaved, mc.leadService.Store().Len())
}

// initializeEventHandlers sets up default event handlers
func (mc *MainController) initializeEventHandlers() {
	mc.addEventListener(EventLeadAdded, mc.onLeadAdded)
	mc.addEventListener(EventLeadDeleted, mc.onLeadDeleted)
	mc.addEventListener(EventLeadsExport, mc.onLeadsExported)
}

// setupViewEventHandlers connects view callbacks to controller methods
func (mc *MainController) setupViewEventHandlers() {
	if mc.mainView == nil {
		return
	}

	mc.mainView.SetSubmitHandler(mc.AddLead)
	mc.mainView.SetRefreshHandler(mc.RefreshTable)
	mc.mainView.SetExportHandler(mc.Export)
	mc.mainView.SetEditModeHandler(mc.SetEditMode)
	mc.mainView.SetDeleteHandler(mc.DeleteLead)
	mc.mainView.SetSaveHandler(mc.Save)
}

// addEventListener adds an event handler for a specific event type
func (mc *MainController) addEventListener(eventType string, handler EventHandler) {
	mc.eventMu.Lock()
	defer mc.eventMu.Unlock()

	mc.eventHandlers[eventType] = append(mc.eventHandlers[eventType], handler)
}

// emitEvent runs the handlers for eventType in order
func (mc *MainController) emitEvent(eventType string, data interface{}) {
	mc.eventMu.RLock()
	handlers := mc.eventHandlers[eventType]
	mc.eventMu.RUnlock()

	for _, handler := range handlers {
		if err := handler(data); err != nil {
			mc.logger.Error("MainController", err, map[string]interface{}{"event": eventType})
		}
	}
}

func (mc *MainController) onLeadAdded(data interface{}) error {
	lead, ok := data.(models.Lead)
	if !ok {
		return fmt.Errorf("invalid data type for %s event", EventLeadAdded)
	}
	mc.updateStatus(fmt.Sprintf("Added lead %q", lead.Name))
	return nil
}

func (mc *MainController) onLeadDeleted(data interface{}) error {
	if _, ok := data.(string); !ok {
		return fmt.Errorf("invalid data type for %s event", EventLeadDeleted)
	}
	mc.updateStatus("Lead deleted")
	return nil
}

func (mc *MainController) onLeadsExported(data interface{}) error {
	name, ok := data.(string)
	if !ok {
		return fmt.Errorf("invalid data type for %s event", EventLeadsExport)
	}
	mc.logger.Debug("MainController", "export event", map[string]interface{}{"destination": name})
	return nil
}

func (mc *MainController) updateStatus(status string) {
	if mc.mainView != nil {
		mc.mainView.UpdateStatus(status)
	}
}

// handleError logs err and shows it to the user.
func (mc *MainController) handleError(title string, err error) {
	fields := map[string]interface{}{"title": title}
	if errors.Is(err, projection.ErrRowNotFound) {
		mc.logger.Warning("MainController", err.Error(), fields)
	} else {
		mc.logger.Error("MainController", err, fields)
	}

	if mc.mainView != nil {
		mc.mainView.ShowError(title, err)
	}
}

// Shutdown performs the final save; it runs at most once.
func (mc *MainController) Shutdown() {
	mc.leadService.Shutdown()
	if err := mc.leadService.ShutdownErr(); err != nil {
		mc.logger.Error("MainController", err, map[string]interface{}{"stage": "shutdown save"})
	}
}
