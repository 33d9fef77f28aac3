package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"hotelledger/config"
	"hotelledger/infras/otel"
	"hotelledger/internal/domains/booking/calculator"
	"hotelledger/internal/domains/booking/model"
	"hotelledger/internal/domains/booking/model/dto"
	"hotelledger/internal/domains/booking/repository"
	"hotelledger/internal/domains/room/availability"
	roomModel "hotelledger/internal/domains/room/model"
	roomService "hotelledger/internal/domains/room/service"
	statementModel "hotelledger/internal/domains/statement/model"
	statementRepo "hotelledger/internal/domains/statement/repository"
	statementService "hotelledger/internal/domains/statement/service"
	"hotelledger/internal/events"
	"hotelledger/shared"
	"hotelledger/shared/cache"
	"hotelledger/shared/constant"
	gDto "hotelledger/shared/dto"
	"hotelledger/shared/failure"
	gModel "hotelledger/shared/model"
	"hotelledger/shared/session"
	"hotelledger/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	cacheGetBooking    = constant.CachePrefixBooking
	cacheGetAllBooking = constant.CachePrefixBookings
	cacheCountBooking  = "booking:count"
)

var errBookingNotFound = failure.NotFound("booking not found")

// sortable lists the columns a booking listing may be ordered by.
var sortable = []string{
	constant.FieldCreatedAt,
	model.FieldCheckInDate,
	model.FieldCheckOutDate,
	model.FieldBookingNo,
	model.FieldFullName,
	model.FieldTotalBill,
	model.FieldDuePayment,
}

type Booking interface {
	Quote(ctx context.Context, req dto.QuoteRequest) (dto.QuoteResponse, error)
	Create(ctx context.Context, sess session.Session, req dto.BookingRequest) (dto.BookingResponse, error)
	Edit(ctx context.Context, sess session.Session, id string, req dto.BookingRequest) (dto.BookingResponse, error)
	Cancel(ctx context.Context, sess session.Session, id string, req dto.CancelBookingRequest) error
	Confirm(ctx context.Context, sess session.Session, id string) error
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, sess session.Session, req gDto.QueryParams, filter dto.ListFilter) (dto.GetBookingsResponse, error)
	// GetByBookingNo returns every booking carrying the number, canceled ones included.
	GetByBookingNo(ctx context.Context, sess session.Session, bookingNo string) ([]dto.BookingResponse, error)
	Dashboard(ctx context.Context, sess session.Session) (dto.DashboardResponse, error)
}

type serviceImpl struct {
	repo      repository.Booking
	rooms     roomService.Room
	entries   statementRepo.Entry
	ledger    statementService.Statement
	publisher events.Publisher
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Booking,
	rooms roomService.Room,
	entries statementRepo.Entry,
	ledger statementService.Statement,
	publisher events.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:      repo,
		rooms:     rooms,
		entries:   entries,
		ledger:    ledger,
		publisher: publisher,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteRequest) (res dto.QuoteResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Quote")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	result, _, err := s.compute(req, decimal.Zero)
	if err != nil {
		return res, err
	}

	res.FromResult(result)

	return res, nil
}

// compute runs the calculator and maps its errors to validation failures.
func (s *serviceImpl) compute(req dto.QuoteRequest, priorCredits decimal.Decimal) (calculator.Result, calculator.Input, error) {
	in, err := req.Input(s.cfg.Ledger.MaxPayments, priorCredits)
	if err != nil {
		return calculator.Result{}, in, failure.BadRequest(err) // nolint:wrapcheck
	}

	res, err := calculator.Compute(in)
	if err != nil {
		return calculator.Result{}, in, failure.BadRequest(err) // nolint:wrapcheck
	}

	return res, in, nil
}

func (s *serviceImpl) Create(ctx context.Context, sess session.Session, req dto.BookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	result, in, err := s.compute(req.QuoteRequest, decimal.Zero)
	if err != nil {
		return res, err
	}

	room, err := s.bookableRoom(ctx, sess, req.HotelID, req.RoomID)
	if err != nil {
		return res, err
	}

	if !availability.IsAvailable(in.CheckIn, in.CheckOut, room.BookedDates) {
		return res, failure.InventoryConflict("room is already booked for the selected dates") // nolint:wrapcheck
	}

	booking := req.ToModel(sess, result, s.cfg.Ledger.BookingNoPrefix)
	booking.HotelID = room.HotelID
	booking.SetRoom(room.Category(), room.Ref())

	dates := availability.BookedDates(in.CheckIn, in.CheckOut)

	if err = s.rooms.Commit(ctx, sess, room.ID, dates); err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Str("roomID", room.ID).Msg("failed to create booking, releasing room dates")

		if relErr := s.rooms.Release(ctx, sess, room.ID, dates); relErr != nil {
			log.Error().Err(relErr).Str("roomID", room.ID).Strs("dates", dates).Msg("failed to release room dates of unsaved booking")

			return res, failure.Reconciliation("booking was not saved and its room dates are still held", errors.Join(err, relErr)) // nolint:wrapcheck
		}

		return res, failure.Transport(err) // nolint:wrapcheck
	}

	if err = s.recordEntry(ctx, booking, statementModel.EntryKindAdvance, booking.AdvancePayment); err != nil {
		return res, failure.Reconciliation("booking was saved but its advance was not recorded", err) // nolint:wrapcheck
	}

	if !booking.AdvancePayment.IsZero() {
		if err = s.ledger.Rechain(ctx, sess, booking.HotelID, timezone.Today()); err != nil {
			return res, failure.Reconciliation("booking was saved but the daily summaries were not refreshed", err) // nolint:wrapcheck
		}
	}

	res.FromModel(booking)

	events.PublishAsync(ctx, s.publisher, events.TopicBookingCreated, booking.ID, events.NewBookingEvent(booking, sess.Actor()))
	s.invalidate(ctx, booking.HotelID, constant.Empty)

	return res, nil
}

func (s *serviceImpl) Edit(ctx context.Context, sess session.Session, id string, req dto.BookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Edit")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.StatusID == model.StatusCanceled {
		return res, failure.BadRequestFromString("a canceled booking cannot be edited") // nolint:wrapcheck
	}

	result, in, err := s.compute(req.QuoteRequest, booking.PriorCredits())
	if err != nil {
		return res, err
	}

	room, err := s.bookableRoom(ctx, sess, booking.HotelID, req.RoomID)
	if err != nil {
		return res, err
	}

	released := availability.ReleaseDates(booking.CheckInDate, booking.CheckOutDate, s.cfg.Ledger.LegacyMonthStartRelease)

	held := []string(room.BookedDates)
	if room.ID == booking.RoomNumberID {
		held = availability.Subtract(held, released)
	}

	if !availability.IsAvailable(in.CheckIn, in.CheckOut, held) {
		return res, failure.InventoryConflict("room is already booked for the selected dates") // nolint:wrapcheck
	}

	if err = s.rooms.Release(ctx, sess, booking.RoomNumberID, released); err != nil {
		return res, err
	}

	dates := availability.BookedDates(in.CheckIn, in.CheckOut)

	if err = s.rooms.Commit(ctx, sess, room.ID, dates); err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Strs("released", released).Msg("failed to commit new dates after release")

		return res, failure.Reconciliation("room dates were released but the new dates could not be committed", err) // nolint:wrapcheck
	}

	oldAdvance := booking.AdvancePayment

	req.ApplyTo(&booking, sess, result)
	booking.SetRoom(room.Category(), room.Ref())

	if err = s.repo.Update(ctx, ledgerColumns(booking), shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to update booking after moving its dates")

		return res, failure.Reconciliation("room dates were moved but the booking was not updated", err) // nolint:wrapcheck
	}

	if delta := booking.AdvancePayment.Sub(oldAdvance); !delta.IsZero() {
		if err = s.recordEntry(ctx, booking, statementModel.EntryKindAdjustment, delta); err != nil {
			return res, failure.Reconciliation("booking was updated but its payment change was not recorded", err) // nolint:wrapcheck
		}

		if err = s.ledger.Rechain(ctx, sess, booking.HotelID, timezone.Today()); err != nil {
			return res, failure.Reconciliation("booking was updated but the daily summaries were not refreshed", err) // nolint:wrapcheck
		}
	}

	res.FromModel(booking)

	events.PublishAsync(ctx, s.publisher, events.TopicBookingUpdated, booking.ID, events.NewBookingEvent(booking, sess.Actor()))
	s.invalidate(ctx, booking.HotelID, booking.ID)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, sess session.Session, id string, req dto.CancelBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if !model.CanTransition(booking.StatusID, model.StatusCanceled) {
		return failure.BadRequest(fmt.Errorf("%w: %s to %s", model.ErrInvalidTransition, booking.StatusID, model.StatusCanceled)) // nolint:wrapcheck
	}

	canceledBy := req.CanceledBy
	if canceledBy == constant.Empty {
		canceledBy = sess.Actor()
	}

	booking.StatusID = model.StatusCanceled
	booking.CanceledBy = canceledBy
	booking.CancelReason = req.Reason

	fields := statusColumns(booking, sess.Actor())
	fields[model.FieldCanceledBy] = canceledBy
	fields[model.FieldCancelReason] = req.Reason

	if err = s.repo.Update(ctx, fields, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to cancel booking")

		return failure.Transport(err) // nolint:wrapcheck
	}

	released := availability.ReleaseDates(booking.CheckInDate, booking.CheckOutDate, s.cfg.Ledger.LegacyMonthStartRelease)

	if err = s.rooms.Release(ctx, sess, booking.RoomNumberID, released); err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Strs("dates", released).Msg("failed to release dates of canceled booking")

		return failure.Reconciliation("booking was canceled but its room dates are still held", err) // nolint:wrapcheck
	}

	events.PublishAsync(ctx, s.publisher, events.TopicBookingCanceled, booking.ID, events.NewBookingEvent(booking, canceledBy))
	s.invalidate(ctx, booking.HotelID, booking.ID)

	return nil
}

func (s *serviceImpl) Confirm(ctx context.Context, sess session.Session, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Confirm")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if !model.CanTransition(booking.StatusID, model.StatusConfirmed) {
		return failure.BadRequest(fmt.Errorf("%w: %s to %s", model.ErrInvalidTransition, booking.StatusID, model.StatusConfirmed)) // nolint:wrapcheck
	}

	booking.StatusID = model.StatusConfirmed

	if err = s.repo.Update(ctx, statusColumns(booking, sess.Actor()), shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to confirm booking")

		return failure.Transport(err) // nolint:wrapcheck
	}

	events.PublishAsync(ctx, s.publisher, events.TopicBookingConfirmed, booking.ID, events.NewBookingEvent(booking, sess.Actor()))
	s.invalidate(ctx, booking.HotelID, booking.ID)

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, sess session.Session, req gDto.QueryParams, filter dto.ListFilter) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Sanitize(model.TableName, sortable...)
	group := listFilter(sess, filter)

	cacheKey := shared.QueryCacheKey(cacheGetAllBooking, req, group)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.count(ctx, req, group)
	if err != nil {
		return res, err
	}

	bookings, err := s.repo.GetAll(ctx, req, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, failure.Transport(err) // nolint:wrapcheck
	}

	res.FromModels(bookings, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, group gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.QueryCacheKey(cacheCountBooking, req, group)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, failure.Transport(err) // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByBookingNo(ctx context.Context, sess session.Session, bookingNo string) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetByBookingNo")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	group := listFilter(sess, dto.ListFilter{BookingNo: bookingNo, IncludeCanceled: true})
	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldCheckInDate, SortDir: gDto.SortDirAsc}

	bookings, err := s.repo.GetAll(ctx, params, group)
	if err != nil {
		log.Error().Err(err).Str("bookingNo", bookingNo).Msg("failed to get bookings by number")

		return nil, failure.Transport(err) // nolint:wrapcheck
	}

	if len(bookings) == 0 {
		return nil, errBookingNotFound
	}

	res = make([]dto.BookingResponse, len(bookings))
	for i, b := range bookings {
		res[i].FromModel(b)
	}

	return res, nil
}

func (s *serviceImpl) Dashboard(ctx context.Context, sess session.Session) (res dto.DashboardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Dashboard")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	hotelID := sess.HotelScope(constant.Empty)
	today := timezone.Today()
	cacheKey := shared.BuildCacheKey(constant.CachePrefixDashboard, hotelID, timezone.FormatDay(today))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	totals, err := s.repo.Dashboard(ctx, hotelID, today)
	if err != nil {
		log.Error().Err(err).Msg("failed to build dashboard")

		return res, failure.Transport(err) // nolint:wrapcheck
	}

	res.FromModels(totals)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save dashboard to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to get booking")

		return booking, failure.Transport(err) // nolint:wrapcheck
	}

	if booking.ID == constant.Empty {
		return booking, errBookingNotFound
	}

	return booking, nil
}

// bookableRoom resolves the room of a booking and checks it may take bookings of the operator.
func (s *serviceImpl) bookableRoom(ctx context.Context, sess session.Session, hotelID, roomID string) (roomModel.Room, error) {
	room, err := s.rooms.Lookup(ctx, roomID)
	if err != nil {
		return room, err
	}

	if !room.Active {
		return room, failure.BadRequestFromString("room is not open for booking") // nolint:wrapcheck
	}

	if scoped := sess.HotelScope(hotelID); scoped != constant.Empty && scoped != room.HotelID {
		return room, failure.BadRequestFromString("room belongs to another hotel") // nolint:wrapcheck
	}

	return room, nil
}

func (s *serviceImpl) recordEntry(ctx context.Context, booking model.Booking, kind statementModel.EntryKind, amount decimal.Decimal) error {
	if amount.IsZero() {
		return nil
	}

	entry := statementModel.DailyInvoiceEntry{
		ID:          uuid.NewString(),
		BookingID:   booking.ID,
		HotelID:     booking.HotelID,
		Date:        timezone.FormatDay(timezone.Today()),
		DailyAmount: amount,
		TotalPaid:   amount,
		Kind:        kind,
		Metadata:    gModel.NewMetadata(booking.ModifiedBy, timezone.Now()),
	}

	if err := s.entries.Insert(ctx, entry); err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Str("kind", string(kind)).Msg("failed to record invoice entry")

		return fmt.Errorf("failed to record invoice entry: %w", err)
	}

	return nil
}

// invalidate drops the cached booking (when id is set), listings and every derived view of the hotel.
func (s *serviceImpl) invalidate(ctx context.Context, hotelID, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete booking from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(constant.CachePrefixStatement, hotelID))
		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(constant.CachePrefixSummary, hotelID))
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixDashboard)
	}()
}

func listFilter(sess session.Session, filter dto.ListFilter) gDto.FilterGroup {
	filters := []any{}

	if hotelID := sess.HotelScope(filter.HotelID); hotelID != constant.Empty {
		filters = append(filters, gDto.Filter{Field: model.FieldHotelID, Value: hotelID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if filter.BookingNo != constant.Empty {
		filters = append(filters, gDto.Filter{Field: model.FieldBookingNo, Value: filter.BookingNo, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	switch {
	case filter.StatusID != 0:
		filters = append(filters, gDto.Filter{Field: model.FieldStatusID, Value: filter.StatusID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	case !filter.IncludeCanceled:
		filters = append(filters, gDto.Filter{Field: model.FieldStatusID, Value: int(model.StatusCanceled), Operator: gDto.FilterOperatorNotEq, Table: model.TableName})
	}

	if filter.Search != constant.Empty {
		filters = append(filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{ArgName: "search_name", Field: model.FieldFullName, Value: filter.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
				gDto.Filter{ArgName: "search_phone", Field: model.FieldPhone, Value: filter.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
				gDto.Filter{ArgName: "search_no", Field: model.FieldBookingNo, Value: filter.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
			},
		})
	}

	return gDto.FilterGroup{Filters: filters, Operator: gDto.FilterGroupOperatorAnd}
}

func statusColumns(b model.Booking, actor string) map[string]any {
	now := timezone.Now()

	return map[string]any{
		model.FieldStatusID:      int(b.StatusID),
		model.FieldUpdatedByID:   actor,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: actor,
	}
}

// ledgerColumns lists every column an edit may change. Zero values are written too.
func ledgerColumns(b model.Booking) map[string]any {
	return map[string]any{
		model.FieldRoomCategoryID:   b.RoomCategoryID,
		model.FieldRoomCategoryName: b.RoomCategoryName,
		model.FieldRoomNumberID:     b.RoomNumberID,
		model.FieldRoomNumberName:   b.RoomNumberName,
		model.FieldFullName:         b.FullName,
		model.FieldPhone:            b.Phone,
		model.FieldEmail:            b.Email,
		model.FieldNidPassport:      b.NidPassport,
		model.FieldAddress:          b.Address,
		model.FieldCheckInDate:      b.CheckInDate,
		model.FieldCheckOutDate:     b.CheckOutDate,
		model.FieldNights:           b.Nights,
		model.FieldAdults:           b.Adults,
		model.FieldChildren:         b.Children,
		model.FieldRoomPrice:        b.RoomPrice,
		model.FieldIsKitchen:        b.IsKitchen,
		model.FieldKitchenTotalBill: b.KitchenTotalBill,
		model.FieldExtraBed:         b.ExtraBed,
		model.FieldExtraBedBill:     b.ExtraBedBill,
		model.FieldVatPercent:       b.VatPercent,
		model.FieldTaxPercent:       b.TaxPercent,
		model.FieldTotalBill:        b.TotalBill,
		model.FieldPayments:         b.Payments,
		model.FieldAdvancePayment:   b.AdvancePayment,
		model.FieldTotalPaid:        b.TotalPaid,
		model.FieldDuePayment:       b.DuePayment,
		model.FieldDueBalance:       b.DueBalance,
		model.FieldNote:             b.Note,
		model.FieldReference:        b.Reference,
		model.FieldUpdatedByID:      b.UpdatedByID,
		constant.FieldModifiedAt:    b.ModifiedAt,
		constant.FieldModifiedBy:    b.ModifiedBy,
	}
}
