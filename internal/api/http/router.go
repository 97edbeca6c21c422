package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staff-roster/internal/api/http/handlers"
	"github.com/spec-kit/staff-roster/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Roster         *handlers.RosterHandler
	Selections     *handlers.SelectionHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	rosterGroup := app.Group("/roster", cfg.AuthMiddleware.Handle)
	rosterGroup.Get("/codes", cfg.Roster.UsedCodes)
	rosterGroup.Get("/members", cfg.Roster.ListMembers)
	rosterGroup.Post("/members", cfg.Roster.CreateMember)
	rosterGroup.Get("/members/:id", cfg.Roster.GetMember)
	rosterGroup.Put("/members/:id", cfg.Roster.UpdateMember)
	rosterGroup.Delete("/members/:id", cfg.Roster.DeleteMember)
	rosterGroup.Get("/members/:id/history", cfg.Roster.GetHistory)
	rosterGroup.Post("/members/:id/history/clear", cfg.Roster.ClearHistory)
	rosterGroup.Post("/members/:id/discounts", cfg.Roster.AddDiscount)
	rosterGroup.Post("/members/:id/discounts/:discountId/cancel", cfg.Roster.CancelDiscount)
	rosterGroup.Post("/members/:id/sales", cfg.Roster.RecordSale)
	rosterGroup.Post("/members/:id/sales/:saleId/commission", cfg.Roster.SetCommission)

	uiGroup := app.Group("/ui", cfg.AuthMiddleware.Handle)
	uiGroup.Get("/selections", cfg.Selections.List)
	uiGroup.Get("/selections/:kind", cfg.Selections.Get)
	uiGroup.Put("/selections/:kind", cfg.Selections.Open)
	uiGroup.Delete("/selections/:kind", cfg.Selections.Close)
}
