package router

import (
	"github.com/go-chi/chi/v5"

	"taskpad/internal/handlers/auth"
	"taskpad/internal/handlers/todo"
	"taskpad/internal/handlers/user"
)

type DomainHandlers struct {
	Auth auth.Handler
	User user.Handler
	Todo todo.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Todo.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
