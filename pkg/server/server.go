package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	compliancehandlers "github.com/grc-tools/control-atlas/pkg/handlers/compliance"
	registerhandlers "github.com/grc-tools/control-atlas/pkg/handlers/registers"
	scanhandlers "github.com/grc-tools/control-atlas/pkg/handlers/scans"
	controlatlasmiddleware "github.com/grc-tools/control-atlas/pkg/server/middleware"
	"github.com/grc-tools/control-atlas/pkg/services/compliance"
	"github.com/grc-tools/control-atlas/pkg/services/registers"
	"github.com/grc-tools/control-atlas/pkg/services/scan"
	"github.com/rs/zerolog"
)

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server
}

type Dependencies struct {
	Registers  registers.Explorer
	Compliance compliance.Explorer
	Scans      scan.Controller
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	router := ConfigureRouter(logger, config)

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
	}
}

func ConfigureRouter(logger zerolog.Logger, config Config) *chi.Mux {
	registerHandler := registerhandlers.NewHandler(config.Dependencies.Registers)
	complianceHandler := compliancehandlers.NewHandler(config.Dependencies.Compliance)
	scanHandler := scanhandlers.NewHandler(config.Dependencies.Scans)

	router := chi.NewRouter()

	router.Use(controlatlasmiddleware.Logger(&logger))
	router.Use(chimiddleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/registers", registerHandler.ListRegisters)
		r.Get("/registers/{register}/records", registerHandler.ListRecords)
		r.Post("/registers/{register}/records", registerHandler.CreateRecord)
		r.Get("/registers/{register}/summary", registerHandler.GetSummary)
		r.Get("/registers/{register}/export", registerHandler.ExportRecords)

		r.Get("/compliance/platforms", complianceHandler.ListPlatforms)
		r.Get("/compliance/frameworks", complianceHandler.ListFrameworks)
		r.Get("/compliance/scoreboard", complianceHandler.GetScoreboard)
		r.Get("/compliance/platforms/{platform}/snapshot", complianceHandler.GetSnapshot)
		r.Get("/compliance/platforms/{platform}/report", complianceHandler.GetReport)

		r.Get("/scans", scanHandler.ListScans)
		r.Post("/scans", scanHandler.StartScan)
		r.Get("/scans/{profile}/results", scanHandler.GetScanResults)
		r.Delete("/scans/{profile}", scanHandler.CancelScan)
	})

	return router
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
