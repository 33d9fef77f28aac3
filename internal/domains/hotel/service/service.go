package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"hotelledger/config"
	"hotelledger/infras/otel"
	"hotelledger/internal/domains/hotel/model"
	"hotelledger/internal/domains/hotel/model/dto"
	"hotelledger/internal/domains/hotel/repository"
	"hotelledger/shared"
	"hotelledger/shared/cache"
	"hotelledger/shared/constant"
	gDto "hotelledger/shared/dto"
	"hotelledger/shared/failure"
	"hotelledger/shared/session"
	"hotelledger/shared/timezone"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	cacheGetHotel    = "hotel:get"
	cacheGetAllHotel = "hotel:gets"
	cacheCountHotel  = "hotel:count"
)

var (
	errHotelNotFound = failure.NotFound("hotel not found")

	maxRating  = decimal.NewFromInt(5)
	maxPercent = decimal.NewFromInt(100)
)

type Hotel interface {
	Create(ctx context.Context, sess session.Session, req dto.CreateHotelRequest) (dto.HotelResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetHotelsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.HotelResponse, error)
	Update(ctx context.Context, sess session.Session, req dto.UpdateHotelRequest, id string) error
	// UpdateDetails replaces the web detail page of a hotel.
	UpdateDetails(ctx context.Context, sess session.Session, req dto.HotelDetailsRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Hotel
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Hotel, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Hotel {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, sess session.Session, req dto.CreateHotelRequest) (res dto.HotelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotel.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = checkListing(&req.Price, &req.Rating, &req.Discount); err != nil {
		return res, err
	}

	hotel := req.ToModel(sess.Actor())

	if err = s.repo.Insert(ctx, hotel); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeUniqueViolation {
			return res, failure.Conflict("hotel already exists") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create hotel")

		return res, failure.Transport(err) // nolint:wrapcheck
	}

	res.FromModel(hotel)

	s.invalidate(ctx, constant.Empty)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetHotelsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotel.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.QueryCacheKey(cacheGetAllHotel, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hotels")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count hotels: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotels")

		return res, failure.Transport(err) // nolint:wrapcheck
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save hotels to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotel.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.QueryCacheKey(cacheCountHotel, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count hotels")

		return res, failure.Transport(err) // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save hotel count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.HotelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotel.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetHotel, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	hotel, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("hotelID", id).Msg("failed to get hotel")

		return res, failure.Transport(err) // nolint:wrapcheck
	}

	if hotel.ID == constant.Empty {
		return res, errHotelNotFound
	}

	res.FromModel(hotel)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save hotel to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, sess session.Session, req dto.UpdateHotelRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotel.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = checkListing(req.Price, req.Rating, req.Discount); err != nil {
		return err
	}

	filter, err := s.ownHotel(ctx, sess, id)
	if err != nil {
		return err
	}

	if err = s.repo.Update(ctx, shared.ChangedColumns(req, sess.Actor()), filter); err != nil {
		log.Error().Err(err).Str("hotelID", id).Msg("failed to update hotel")

		return failure.Transport(err) // nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) UpdateDetails(ctx context.Context, sess session.Session, req dto.HotelDetailsRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotel.UpdateDetails")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	for _, price := range req.Prices() {
		if price.IsNegative() {
			return failure.BadRequestFromString("room option prices must not be negative") // nolint:wrapcheck
		}
	}

	filter, err := s.ownHotel(ctx, sess, id)
	if err != nil {
		return err
	}

	fields := map[string]any{
		model.FieldDetails:       req.ToModel(),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: sess.Actor(),
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Str("hotelID", id).Msg("failed to update hotel details")

		return failure.Transport(err) // nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotel.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return failure.Transport(err) // nolint:wrapcheck
	}

	if !exist {
		return errHotelNotFound
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeFkViolation {
			return failure.Conflict("hotel still has room categories, rooms or bookings") // nolint:wrapcheck
		}

		log.Error().Err(err).Str("hotelID", id).Msg("failed to delete hotel")

		return failure.Transport(err) // nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	return nil
}

// ownHotel checks that the hotel exists and that the operator may change it.
func (s *serviceImpl) ownHotel(ctx context.Context, sess session.Session, id string) (gDto.FilterGroup, error) {
	if sess.HotelScope(id) != id {
		return gDto.FilterGroup{}, failure.ResourceRestrictedError
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("hotelID", id).Msg("failed to check hotel existence")

		return filter, failure.Transport(err) // nolint:wrapcheck
	}

	if !exist {
		return filter, errHotelNotFound
	}

	return filter, nil
}

// checkListing validates the listing figures that are set.
func checkListing(price, rating, discount *decimal.Decimal) error {
	if price != nil && price.IsNegative() {
		return failure.BadRequestFromString("price must not be negative") // nolint:wrapcheck
	}

	if rating != nil && (rating.IsNegative() || rating.GreaterThan(maxRating)) {
		return failure.BadRequestFromString("rating must be between 0 and 5") // nolint:wrapcheck
	}

	if discount != nil && (discount.IsNegative() || discount.GreaterThan(maxPercent)) {
		return failure.BadRequestFromString("discount must be between 0 and 100 percent") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetHotel, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete hotel from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllHotel)
		shared.InvalidateCaches(c, s.cache, cacheCountHotel)
	}()
}
