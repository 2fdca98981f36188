//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"guesthouse/config"
	"guesthouse/infras/firestore"
	"guesthouse/infras/jwt"
	"guesthouse/infras/kafka"
	"guesthouse/infras/otel"
	"guesthouse/infras/postgres"
	"guesthouse/infras/redis"
	authService "guesthouse/internal/domains/auth/service"
	bookingRepository "guesthouse/internal/domains/booking/repository"
	bookingService "guesthouse/internal/domains/booking/service"
	calendarService "guesthouse/internal/domains/calendar/service"
	"guesthouse/internal/domains/calendar/snapshot"
	notificationService "guesthouse/internal/domains/notification/service"
	roomRepository "guesthouse/internal/domains/room/repository"
	roomService "guesthouse/internal/domains/room/service"
	authHandler "guesthouse/internal/handlers/auth"
	bookingHandler "guesthouse/internal/handlers/booking"
	roomHandler "guesthouse/internal/handlers/room"
	"guesthouse/shared/cache"
	"guesthouse/transport/http"
	"guesthouse/transport/http/middleware"
	"guesthouse/transport/http/router"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	firestore.New,
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

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	snapshot.New,
	notificationService.New,
	bookingService.New,
)

var calendarDomain = wire.NewSet(
	calendarService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var domains = wire.NewSet(
	roomDomain,
	bookingDomain,
	calendarDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomHandler.New,
	bookingHandler.New,
	router.New,
)

func InitializeServer() *Server {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(Server), "*"),
	)

	return &Server{}
}

func InitializeListener() *notificationService.Listener {
	wire.Build(
		configurations,
		kafka.New,
		notificationService.NewListener,
	)

	return &notificationService.Listener{}
}
