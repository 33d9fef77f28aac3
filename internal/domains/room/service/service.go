package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"hotelledger/config"
	"hotelledger/infras/otel"
	"hotelledger/internal/domains/room/availability"
	"hotelledger/internal/domains/room/model"
	"hotelledger/internal/domains/room/model/dto"
	"hotelledger/internal/domains/room/repository"
	"hotelledger/shared"
	"hotelledger/shared/cache"
	"hotelledger/shared/constant"
	gDto "hotelledger/shared/dto"
	"hotelledger/shared/failure"
	"hotelledger/shared/session"
	"hotelledger/shared/timezone"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom    = "room:get"
	cacheGetAllRoom = "room:gets"
	cacheCountRoom  = "room:count"
)

var errRoomNotFound = failure.NotFound("room not found")

type Room interface {
	Create(ctx context.Context, sess session.Session, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, sess session.Session, req dto.UpdateRoomRequest, id string) error
	Delete(ctx context.Context, id string) error
	Available(ctx context.Context, sess session.Session, req dto.AvailableRoomsRequest) ([]dto.RoomResponse, error)
	// Lookup reads a room straight from the store, bypassing the cache.
	Lookup(ctx context.Context, id string) (model.Room, error)
	Commit(ctx context.Context, sess session.Session, roomID string, dates []string) error
	Release(ctx context.Context, sess session.Session, roomID string, dates []string) error
	CommitByNames(ctx context.Context, sess session.Session, req dto.CommitInventoryRequest) error
	ReleaseByNames(ctx context.Context, sess session.Session, req dto.ReleaseInventoryRequest) error
}

type serviceImpl struct {
	repo  repository.Room
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Room {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, sess session.Session, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.HotelID = sess.HotelScope(req.HotelID)
	room := req.ToModel(sess.Actor())

	if err = s.repo.Insert(ctx, room); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeFkViolation {
			if pqErr.Constraint == model.ConstraintHotel {
				return res, failure.BadRequestFromString("hotel not found") // nolint:wrapcheck
			}

			return res, failure.BadRequestFromString("room category not found") // nolint:wrapcheck
		}

		if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeUniqueViolation {
			return res, failure.Conflict("room name already exists in this category") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create room")

		return res, failure.Transport(err) // nolint:wrapcheck
	}

	res.FromModel(room)

	s.invalidate(ctx, constant.Empty)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.QueryCacheKey(cacheGetAllRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, failure.Transport(err) // nolint:wrapcheck
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.QueryCacheKey(cacheCountRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, failure.Transport(err) // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.Lookup(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Lookup(ctx context.Context, id string) (res model.Room, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Lookup")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("roomID", id).Msg("failed to get room")

		return res, failure.Transport(err) // nolint:wrapcheck
	}

	if res.ID == constant.Empty {
		return res, errRoomNotFound
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, sess session.Session, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return failure.Transport(err) // nolint:wrapcheck
	}

	if !exist {
		return errRoomNotFound
	}

	if err = s.repo.Update(ctx, shared.ChangedColumns(req, sess.Actor()), filter); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		return failure.Transport(err) // nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.Lookup(ctx, id)
	if err != nil {
		return err
	}

	if len(room.BookedDates) > 0 {
		return failure.Conflict("room still holds booked dates") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete room")

		return failure.Transport(err) // nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Available(ctx context.Context, sess session.Session, req dto.AvailableRoomsRequest) (res []dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Available")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	checkIn, err := timezone.ParseDay(req.CheckIn)
	if err != nil {
		return nil, failure.BadRequest(err) // nolint:wrapcheck
	}

	checkOut, err := timezone.ParseDay(req.CheckOut)
	if err != nil {
		return nil, failure.BadRequest(err) // nolint:wrapcheck
	}

	if checkOut.Before(checkIn) {
		return nil, failure.BadRequestFromString("check-out date must not be before check-in date") // nolint:wrapcheck
	}

	filters := []any{
		gDto.Filter{Field: model.FieldCategoryID, Value: req.CategoryID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{Field: model.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
	}

	if hotelID := sess.HotelScope(req.HotelID); hotelID != constant.Empty {
		filters = append(filters, gDto.Filter{Field: model.FieldHotelID, Value: hotelID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldName, SortDir: gDto.SortDirAsc}

	rooms, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{Filters: filters, Operator: gDto.FilterGroupOperatorAnd})
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms for availability")

		return nil, failure.Transport(err) // nolint:wrapcheck
	}

	available := availability.FilterAvailable(rooms, checkIn, checkOut, func(r model.Room) []string { return r.BookedDates })

	res = make([]dto.RoomResponse, len(available))
	for i, room := range available {
		res[i].FromModel(room)
	}

	return res, nil
}

func (s *serviceImpl) Commit(ctx context.Context, sess session.Session, roomID string, dates []string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Commit")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("dates", dates)

	ok, err := s.repo.CommitDates(ctx, roomID, dates, sess.Actor(), timezone.Now())
	if err != nil {
		log.Error().Err(err).Str("roomID", roomID).Msg("failed to commit room dates")

		return failure.Transport(err) // nolint:wrapcheck
	}

	if !ok {
		exist, err := s.repo.Exist(ctx, shared.FilterByID(roomID, model.FieldID, model.TableName))
		if err != nil {
			return failure.Transport(err) // nolint:wrapcheck
		}

		if !exist {
			return errRoomNotFound
		}

		return failure.InventoryConflict("room is no longer available for the selected dates") // nolint:wrapcheck
	}

	s.invalidate(ctx, roomID)

	return nil
}

func (s *serviceImpl) Release(ctx context.Context, sess session.Session, roomID string, dates []string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Release")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("dates", dates)

	ok, err := s.repo.ReleaseDates(ctx, roomID, dates, sess.Actor(), timezone.Now())
	if err != nil {
		log.Error().Err(err).Str("roomID", roomID).Msg("failed to release room dates")

		return failure.Transport(err) // nolint:wrapcheck
	}

	if !ok {
		return errRoomNotFound
	}

	s.invalidate(ctx, roomID)

	return nil
}

func (s *serviceImpl) findByNames(ctx context.Context, hotelID, categoryName, roomName string) (model.Room, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldHotelID, Value: hotelID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{ArgName: "category_name", Field: model.FieldCategoryName, Value: categoryName, Operator: gDto.FilterOperatorEq, Table: model.CategoryTableName},
			gDto.Filter{Field: model.FieldName, Value: roomName, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	room, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("room", roomName).Msg("failed to find room by name")

		return room, failure.Transport(err) // nolint:wrapcheck
	}

	if room.ID == constant.Empty {
		return room, errRoomNotFound
	}

	return room, nil
}

func (s *serviceImpl) CommitByNames(ctx context.Context, sess session.Session, req dto.CommitInventoryRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.CommitByNames")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.findByNames(ctx, sess.HotelScope(req.HotelID), req.CategoryName, req.RoomName)
	if err != nil {
		return err
	}

	return s.Commit(ctx, sess, room.ID, req.Booking.BookedDates)
}

func (s *serviceImpl) ReleaseByNames(ctx context.Context, sess session.Session, req dto.ReleaseInventoryRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.ReleaseByNames")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.findByNames(ctx, sess.HotelScope(req.HotelID), req.CategoryName, req.RoomName)
	if err != nil {
		return err
	}

	return s.Release(ctx, sess, room.ID, req.DatesToDelete)
}

// invalidate drops the cached room (when id is set) and every cached listing.
func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete room from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
	}()
}
