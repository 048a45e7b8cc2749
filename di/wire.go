//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"taskpad/config"
	"taskpad/infras/jwt"
	"taskpad/infras/kafka"
	"taskpad/infras/otel"
	"taskpad/infras/postgres"
	"taskpad/infras/redis"
	"taskpad/permissions"
	"taskpad/shared/cache"
	"taskpad/transport/http"
	"taskpad/transport/http/middleware"
	"taskpad/transport/http/router"

	authService "taskpad/internal/domains/auth/service"
	todoRepository "taskpad/internal/domains/todo/repository"
	todoService "taskpad/internal/domains/todo/service"
	userRepository "taskpad/internal/domains/user/repository"
	userService "taskpad/internal/domains/user/service"

	authHandler "taskpad/internal/handlers/auth"
	todoHandler "taskpad/internal/handlers/todo"
	userHandler "taskpad/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var userDomain = wire.NewSet(
	userService.New,
)

var todoDomain = wire.NewSet(
	todoRepository.New,
	todoService.New,
)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	todoDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	todoHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
