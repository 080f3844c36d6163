package app

import (
	"fmt"

	"contractor-leads/internal/config"
	"contractor-leads/internal/controllers"
	"contractor-leads/internal/export"
	"contractor-leads/internal/logger"
	"contractor-leads/internal/persistence"
	"contractor-leads/internal/projection"
	"contractor-leads/internal/services"
	"contractor-leads/internal/shutdown"
	"contractor-leads/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName    = "Contractor Leads"
	AppID      = "com.contractorleads.desktop"
	AppVersion = "1.0.0"
)

type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	config  *config.Config
	logger  logger.Logger

	leadService *services.LeadService
	controller  *controllers.MainController
	view        *views.MainView
	lifecycle   *Lifecycle
}

// NewApplication loads the store and wires models, services, controller and view.
func NewApplication(cfg *config.Config, log logger.Logger) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if log == nil {
		log = logger.NoOpLogger{}
	}

	fyneApp := app.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(float32(cfg.WindowWidth), float32(cfg.WindowHeight)))
	window.CenterOnScreen()
	window.SetMaster()

	log.Info("Application", "starting application", map[string]interface{}{
		"version":   AppVersion,
		"data_file": cfg.DataFile,
		"log_level": cfg.LogLevel,
	})

	leadService := services.NewLeadService(persistence.NewJSONFile(cfg.DataFile, log), log)
	exportService := services.NewExportService(
		export.NewExporter(log, export.WithPageSize(cfg.PDFPageSize)),
		leadService.Store(),
		log,
	)
	proj := projection.New(leadService.Store(), log)

	controller := controllers.NewMainController(leadService, exportService, proj, log)
	view := views.NewMainView(window, proj)
	controller.SetMainView(view)
	view.SetDataFile(cfg.DataFile)

	manager := shutdown.NewManager(log)
	manager.Register("controller", controller)

	application := &Application{
		fyneApp:     fyneApp,
		window:      window,
		config:      cfg,
		logger:      log,
		leadService: leadService,
		controller:  controller,
		view:        view,
		lifecycle:   NewLifecycle(manager, log),
	}

	application.setupWindowEvents()
	return application, nil
}

// Run blocks until the window is closed or a signal arrives, then makes
// sure the final save has happened.
func (a *Application) Run() error {
	a.lifecycle.Listen(func() {
		fyne.Do(a.fyneApp.Quit)
	})

	a.view.Show()
	a.reportLoad()

	a.fyneApp.Run()

	a.lifecycle.Shutdown()
	if err := a.leadService.ShutdownErr(); err != nil {
		return fmt.Errorf("final save: %w", err)
	}
	a.logger.Info("Application", "application stopped", nil)
	return nil
}

func (a *Application) reportLoad() {
	report := a.leadService.LoadReport()
	if report.State != persistence.StateCorrupt {
		return
	}
	msg := fmt.Sprintf("%s could not be read and was moved to %s. Starting with an empty list.",
		a.config.DataFile, report.BackupPath)
	if report.BackupPath == "" {
		msg = fmt.Sprintf("%s could not be read. Starting with an empty list.", a.config.DataFile)
	}
	a.view.ShowInfo("Data file unreadable", msg)
}

func (a *Application) setupWindowEvents() {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "window close requested", nil)

		if !a.config.ConfirmExit {
			a.closeWindow()
			return
		}
		a.view.ShowConfirm("Exit", "Save leads and exit?", func(confirmed bool) {
			if confirmed {
				a.closeWindow()
			}
		})
	})
}

func (a *Application) closeWindow() {
	a.lifecycle.Shutdown()
	a.window.Close()
}
