package router

import (
	"github.com/go-chi/chi/v5"

	"guesthouse/internal/handlers/auth"
	"guesthouse/internal/handlers/booking"
	"guesthouse/internal/handlers/room"
	"guesthouse/transport/http/middleware"
)

type DomainHandlers struct {
	Auth    auth.Handler
	Room    room.Handler
	Booking booking.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthMiddleware middleware.Auth
}

// SetupRoutes mounts the public API under /v1 and the operator API under /v1/admin.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)

		routerGroup.Route("/admin", func(admin chi.Router) {
			admin.Use(r.AuthMiddleware.Admin)

			r.DomainHandlers.Room.AdminRouter(admin)
			r.DomainHandlers.Booking.AdminRouter(admin)
		})
	})
}

func New(domainHandlers DomainHandlers, authMiddleware middleware.Auth) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthMiddleware: authMiddleware,
	}
}
