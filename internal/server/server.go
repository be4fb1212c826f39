// Package server assembles the injected boundary around the core:
// database handle, configuration, structured logger, signing key ring,
// metrics counter, and error-reporting sink. Nothing in this package is
// exercised by the core's own unit tests; it exists so the ambient
// dependencies the core relies on have a concrete home.
package server

import (
	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/fatcat-project/fatcat/internal/auth"
	"github.com/fatcat-project/fatcat/internal/catalog"
	"github.com/fatcat-project/fatcat/internal/config"
)

// Counter is the metrics sink interface, incremented by a string key. The
// catalog core holds no Counter and calls Inc nowhere; New only assembles
// a default implementation.
type Counter interface {
	Inc(key string)
}

// Reporter is the error-reporting sink interface. The catalog core holds
// no Reporter and calls Report nowhere; the default implementation logs
// each error from a new goroutine without blocking the caller.
type Reporter interface {
	Report(err error)
}

// Server holds every dependency the core is injected with.
type Server struct {
	DB      *gorm.DB
	Config  *config.Config
	Logger  hclog.Logger
	Keys    *auth.KeyRing
	Catalog *catalog.Catalog

	Metrics  Counter
	Reporter Reporter
}

// New assembles a Server from its already-constructed dependencies.
func New(db *gorm.DB, cfg *config.Config, logger hclog.Logger) *Server {
	keys := auth.NewKeyRing(cfg.SigningKeys, cfg.ActiveKeyID)
	return &Server{
		DB:       db,
		Config:   cfg,
		Logger:   logger,
		Keys:     keys,
		Catalog:  catalog.New(db),
		Metrics:  &loggingCounter{logger: logger.Named("metrics")},
		Reporter: &loggingReporter{logger: logger.Named("reporter")},
	}
}

// loggingCounter is the default Counter: it logs each increment rather
// than forwarding to a metrics vendor, since none of the retrieval pack's
// non-search, non-tracing dependencies fit a plain counter better than
// logging it (see DESIGN.md).
type loggingCounter struct {
	logger hclog.Logger
}

func (c *loggingCounter) Inc(key string) {
	c.logger.Debug("counter increment", "key", key)
}

// loggingReporter is the default Reporter: fire-and-forget goroutine
// dispatch for non-blocking side effects.
type loggingReporter struct {
	logger hclog.Logger
}

func (r *loggingReporter) Report(err error) {
	go r.logger.Error("reportable error", "error", err)
}
