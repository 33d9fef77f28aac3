package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"hotelledger/config"
	"hotelledger/infras/otel"
	"hotelledger/internal/domains/category/model"
	"hotelledger/internal/domains/category/model/dto"
	"hotelledger/internal/domains/category/repository"
	"hotelledger/shared"
	"hotelledger/shared/cache"
	"hotelledger/shared/constant"
	gDto "hotelledger/shared/dto"
	"hotelledger/shared/failure"
	"hotelledger/shared/session"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetCategory    = "category:get"
	cacheGetAllCategory = "category:gets"
	cacheCountCategory  = "category:count"
)

var errCategoryNotFound = failure.NotFound("room category not found")

type Category interface {
	Create(ctx context.Context, sess session.Session, req dto.CreateCategoryRequest) (dto.CategoryResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCategoriesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.CategoryResponse, error)
	Update(ctx context.Context, sess session.Session, req dto.UpdateCategoryRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Category
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Category, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Category {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, sess session.Session, req dto.CreateCategoryRequest) (res dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".category.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.BasePrice.IsNegative() {
		return res, failure.BadRequestFromString("base price must not be negative") // nolint:wrapcheck
	}

	req.HotelID = sess.HotelScope(req.HotelID)
	category := req.ToModel(sess.Actor())

	if err = s.repo.Insert(ctx, category); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeUniqueViolation {
			return res, failure.Conflict("room category already exists") // nolint:wrapcheck
		}

		if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeFkViolation {
			return res, failure.BadRequestFromString("hotel not found") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create room category")

		return res, failure.Transport(err) // nolint:wrapcheck
	}

	res.FromModel(category)

	s.invalidate(ctx, constant.Empty)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCategoriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".category.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.QueryCacheKey(cacheGetAllCategory, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room categories")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count room categories: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room categories")

		return res, failure.Transport(err) // nolint:wrapcheck
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room categories to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".category.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.QueryCacheKey(cacheCountCategory, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count room categories")

		return res, failure.Transport(err) // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room category count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".category.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetCategory, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	category, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room category")

		return res, failure.Transport(err) // nolint:wrapcheck
	}

	if category.ID == constant.Empty {
		return res, errCategoryNotFound
	}

	res.FromModel(category)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room category to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, sess session.Session, req dto.UpdateCategoryRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".category.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.BasePrice != nil && req.BasePrice.IsNegative() {
		return failure.BadRequestFromString("base price must not be negative") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room category existence")

		return failure.Transport(err) // nolint:wrapcheck
	}

	if !exist {
		return errCategoryNotFound
	}

	if err = s.repo.Update(ctx, shared.ChangedColumns(req, sess.Actor()), filter); err != nil {
		log.Error().Err(err).Msg("failed to update room category")

		return failure.Transport(err) // nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".category.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return failure.Transport(err) // nolint:wrapcheck
	}

	if !exist {
		return errCategoryNotFound
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeFkViolation {
			return failure.Conflict("room category still has rooms") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete room category")

		return failure.Transport(err) // nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetCategory, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete room category from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllCategory)
		shared.InvalidateCaches(c, s.cache, cacheCountCategory)
	}()
}
