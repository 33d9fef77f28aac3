//go:build wireinject
// +build wireinject

package di

import (
	"hotelledger/config"
	"hotelledger/infras/jwt"
	"hotelledger/infras/kafka"
	"hotelledger/infras/otel"
	"hotelledger/infras/postgres"
	"hotelledger/infras/redis"
	"hotelledger/infras/s3"
	"hotelledger/internal/events"
	"hotelledger/permissions"
	"hotelledger/shared/cache"
	"hotelledger/transport/http"
	"hotelledger/transport/http/middleware"
	"hotelledger/transport/http/router"

	bookingRepository "hotelledger/internal/domains/booking/repository"
	bookingService "hotelledger/internal/domains/booking/service"
	categoryRepository "hotelledger/internal/domains/category/repository"
	categoryService "hotelledger/internal/domains/category/service"
	hotelRepository "hotelledger/internal/domains/hotel/repository"
	hotelService "hotelledger/internal/domains/hotel/service"
	roomRepository "hotelledger/internal/domains/room/repository"
	roomService "hotelledger/internal/domains/room/service"
	statementRepository "hotelledger/internal/domains/statement/repository"
	statementService "hotelledger/internal/domains/statement/service"

	bookingHandler "hotelledger/internal/handlers/booking"
	categoryHandler "hotelledger/internal/handlers/category"
	hotelHandler "hotelledger/internal/handlers/hotel"
	roomHandler "hotelledger/internal/handlers/room"
	statementHandler "hotelledger/internal/handlers/statement"

	"github.com/google/wire"
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
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	events.NewPublisher,
)

var hotelDomain = wire.NewSet(
	hotelRepository.New,
	hotelService.New,
)

var categoryDomain = wire.NewSet(
	categoryRepository.New,
	categoryService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var statementDomain = wire.NewSet(
	statementRepository.NewEntry,
	statementRepository.NewSummary,
	statementService.New,
)

var domains = wire.NewSet(
	hotelDomain,
	categoryDomain,
	roomDomain,
	bookingDomain,
	statementDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	statementHandler.New,
	roomHandler.New,
	categoryHandler.New,
	hotelHandler.New,
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

func InitializeWorker() *events.Consumer {
	wire.Build(
		config.Get,
		otel.New,
		redis.New,
		kafka.New,
		cache.NewRedisCache,
		provideConsumer,
	)

	return &events.Consumer{}
}
