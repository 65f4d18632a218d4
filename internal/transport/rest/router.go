package rest

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi"

	"github.com/ropereralk/enterprise-directory/internal/auth"
	"github.com/ropereralk/enterprise-directory/internal/company"
	"github.com/ropereralk/enterprise-directory/internal/person"
	"github.com/ropereralk/enterprise-directory/internal/site"
	"github.com/ropereralk/enterprise-directory/internal/timezone"
	"github.com/ropereralk/enterprise-directory/internal/transport/middleware"
	"github.com/ropereralk/enterprise-directory/internal/user"
)

// RegisterAllRoutes wires every handler under /api/v1. Login and health
// stay public; everything else sits behind the auth middleware.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	companyHandler *company.Handler,
	siteHandler *site.Handler,
	personHandler *person.Handler,
	userHandler *user.Handler,
	timezoneHandler *timezone.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", authHandler.Login)
			sr.Post("/refresh", authHandler.RefreshToken)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Route("/companies", func(cr chi.Router) {
				cr.Post("/", companyHandler.CreateCompany)
				cr.Get("/", companyHandler.GetCompanies)
				cr.Get("/{id}", companyHandler.GetCompany)
				cr.Put("/{id}", companyHandler.UpdateCompany)
				cr.Patch("/{id}", companyHandler.PatchCompany)
				cr.Delete("/{id}", companyHandler.DeleteCompany)
				cr.Get("/{companyID}/sites", siteHandler.GetCompanySites)
			})

			pr.Route("/sites", func(sr chi.Router) {
				sr.Post("/", siteHandler.CreateSite)
				sr.Get("/{id}", siteHandler.GetSite)
				sr.Put("/{id}", siteHandler.UpdateSite)
				sr.Patch("/{id}", siteHandler.PatchSite)
				sr.Delete("/{id}", siteHandler.DeleteSite)
			})

			pr.Route("/people", func(per chi.Router) {
				per.Post("/", personHandler.CreatePerson)
				per.Get("/", personHandler.GetPeople)
				per.Get("/{id}", personHandler.GetPerson)
				per.Put("/{id}", personHandler.UpdatePerson)
				per.Patch("/{id}", personHandler.PatchPerson)
				per.Delete("/{id}", personHandler.DeletePerson)
			})

			pr.Route("/users", func(ur chi.Router) {
				ur.Post("/", userHandler.CreateUser)
				ur.Get("/", userHandler.GetUsers)
				ur.Get("/{id}", userHandler.GetUser)
				ur.Delete("/{id}", userHandler.DeleteUser)
				ur.Post("/{id}/roles", userHandler.AssignRole)
				ur.Get("/{id}/roles", userHandler.GetEffectiveRoles)
			})

			pr.Route("/roles", func(rr chi.Router) {
				rr.Post("/", userHandler.CreateRole)
				rr.Get("/", userHandler.GetRoles)
			})

			pr.Route("/timezones", func(tr chi.Router) {
				tr.Get("/", timezoneHandler.GetTimeZones)
				tr.Get("/{id}", timezoneHandler.GetTimeZone)
				tr.Get("/by-zone/*", timezoneHandler.GetTimeZoneByZoneID)
			})
		})
	})
}
