package server

import (
	"context"
	"expvar"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"supplycore/internal/backup"
	"supplycore/internal/core"
	"supplycore/pkg/domain"
)

// Deps collects everything the router serves.
type Deps struct {
	Service  *core.Service
	Session  *core.Session
	Archiver *backup.Archiver
	Tokens   *TokenService
	Metrics  *core.PromMetrics // nil disables /metrics
	Logger   *zap.Logger
}

// NewRouter builds the HTTP surface: operational endpoints, auth, and the
// authenticated /v1 API.
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	store := deps.Service.Store()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if deps.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Metrics.Registry(), promhttp.HandlerOpts{}))
	}
	r.Handle("/debug/vars", expvar.Handler())

	r.Post("/v1/auth/login", loginHandler(deps.Session, deps.Tokens))

	r.Route("/v1", func(r chi.Router) {
		r.Use(authMiddleware(deps.Tokens, logger))

		r.Post("/auth/logout", logoutHandler(deps.Session))
		r.Get("/session/preferences", preferencesHandler(deps.Session))
		r.Put("/session/preferences", updatePreferencesHandler(deps.Session))

		svc := deps.Service
		r.Route("/products", resource[domain.Product]{
			list:   store.Products,
			get:    store.ResolveProduct,
			create: svc.CreateProduct,
			update: svc.UpdateProduct,
			remove: svc.DeleteProduct,
			setID:  func(p *domain.Product, id string) { p.ID = id },
		}.mount)
		r.Route("/customers", resource[domain.Customer]{
			list:   store.Customers,
			get:    store.ResolveCustomer,
			create: svc.CreateCustomer,
			update: svc.UpdateCustomer,
			remove: svc.DeleteCustomer,
			setID:  func(c *domain.Customer, id string) { c.ID = id },
		}.mount)
		r.Route("/shipments", resource[domain.Shipment]{
			list:   store.Shipments,
			get:    store.ResolveShipment,
			create: svc.CreateShipment,
			update: svc.UpdateShipment,
			remove: svc.DeleteShipment,
			setID:  func(s *domain.Shipment, id string) { s.ID = id },
		}.mount)
		r.Route("/factories", resource[domain.Factory]{
			list:   store.Factories,
			get:    store.ResolveFactory,
			create: svc.CreateFactory,
			update: svc.UpdateFactory,
			remove: svc.DeleteFactory,
			setID:  func(f *domain.Factory, id string) { f.ID = id },
		}.mount)
		r.Route("/jobs", resource[domain.Job]{
			list:   store.Jobs,
			get:    store.ResolveJob,
			create: svc.CreateJob,
			update: svc.UpdateJob,
			remove: svc.DeleteJob,
			setID:  func(j *domain.Job, id string) { j.ID = id },
		}.mount)
		r.Route("/samples", resource[domain.SampleRequest]{
			list:   store.Samples,
			get:    store.ResolveSample,
			create: svc.CreateSample,
			update: svc.UpdateSample,
			remove: svc.DeleteSample,
			setID:  func(s *domain.SampleRequest, id string) { s.ID = id },
		}.mount)
		r.Route("/users", resource[domain.User]{
			list:   store.Users,
			get:    store.ResolveUser,
			create: createUserWithPassword(svc),
			update: svc.UpdateUser,
			remove: svc.DeleteUser,
			setID:  func(u *domain.User, id string) { u.ID = id },
		}.mount)

		r.Get("/audit", auditQueryHandler(store))
		r.Get("/audit/modules", auditModulesHandler(store))
		r.Get("/audit/export.csv", auditCSVHandler(svc))
		r.Get("/audit/export.xlsx", auditXLSXHandler(svc))

		r.Get("/backup", backupExportHandler(svc))
		r.Post("/backup/import", backupImportHandler(svc))
		if deps.Archiver != nil {
			r.Get("/backup/archives", archiveListHandler(deps.Archiver))
			r.Post("/backup/archives", archiveSnapshotHandler(deps.Archiver, svc))
			r.Post("/backup/archives/restore", archiveRestoreHandler(deps.Archiver, svc))
		}

		r.Post("/system/reset", resetHandler(svc))
	})

	return r
}

// createUserWithPassword hashes the plaintext password carried on the draft
// before it reaches the store; the hash never round-trips to clients.
func createUserWithPassword(svc *core.Service) func(ctx context.Context, u domain.User) (domain.User, error) {
	return func(ctx context.Context, u domain.User) (domain.User, error) {
		if u.PasswordHash != "" {
			hashed, err := core.HashPassword(u.PasswordHash)
			if err != nil {
				return domain.User{}, err
			}
			u.PasswordHash = hashed
		}
		created, err := svc.CreateUser(ctx, u)
		if err != nil {
			return domain.User{}, err
		}
		created.PasswordHash = ""
		return created, nil
	}
}
