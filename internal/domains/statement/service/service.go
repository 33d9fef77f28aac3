package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"hotelledger/config"
	"hotelledger/infras/otel"
	"hotelledger/infras/s3"
	"hotelledger/internal/domains/booking/calculator"
	bookingModel "hotelledger/internal/domains/booking/model"
	bookingRepo "hotelledger/internal/domains/booking/repository"
	"hotelledger/internal/domains/statement/aggregator"
	"hotelledger/internal/domains/statement/model"
	"hotelledger/internal/domains/statement/model/dto"
	"hotelledger/internal/domains/statement/repository"
	"hotelledger/internal/events"
	"hotelledger/shared"
	"hotelledger/shared/cache"
	"hotelledger/shared/constant"
	"hotelledger/shared/failure"
	gModel "hotelledger/shared/model"
	"hotelledger/shared/session"
	"hotelledger/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const archiveDirectory = "statements"

var (
	errBookingNotFound = failure.NotFound("booking not found")
	errHotelRequired   = failure.BadRequestFromString("hotel_id is required")
)

type Statement interface {
	GetStatement(ctx context.Context, sess session.Session, hotelID, date string) (dto.StatementResponse, error)
	GetDailyStatement(ctx context.Context, sess session.Session, hotelID, date string) (dto.DailyStatementResponse, error)
	UpdatePayment(ctx context.Context, sess session.Session, bookingID string, req dto.UpdatePaymentRequest) (dto.StatementResponse, error)
	GetSummary(ctx context.Context, sess session.Session, hotelID, date string) (dto.SummaryResponse, error)
	SetExpenses(ctx context.Context, sess session.Session, hotelID, date string, req dto.SetExpensesRequest) (dto.SummaryResponse, error)
	// Rechain recomputes the stored summary of day, if any, from its entries and carries its
	// closing balance through every later stored summary of the hotel.
	Rechain(ctx context.Context, sess session.Session, hotelID string, day time.Time) error
}

type serviceImpl struct {
	bookings  bookingRepo.Booking
	entries   repository.Entry
	summaries repository.Summary
	s3        s3.S3
	publisher events.Publisher
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	bookings bookingRepo.Booking,
	entries repository.Entry,
	summaries repository.Summary,
	s3 s3.S3,
	publisher events.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Statement {
	return &serviceImpl{
		bookings:  bookings,
		entries:   entries,
		summaries: summaries,
		s3:        s3,
		publisher: publisher,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) GetStatement(ctx context.Context, sess session.Session, hotelID, date string) (res dto.StatementResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".statement.GetStatement")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	hotelID, day, err := resolve(sess, hotelID, date)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(constant.CachePrefixStatement, hotelID, date)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for statement")

		return res, nil
	}

	st, err := s.build(ctx, hotelID, day)
	if err != nil {
		return res, err
	}

	res.FromStatement(st)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save statement to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetDailyStatement(ctx context.Context, sess session.Session, hotelID, date string) (res dto.DailyStatementResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".statement.GetDailyStatement")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	hotelID, day, err := resolve(sess, hotelID, date)
	if err != nil {
		return res, err
	}

	st, err := s.build(ctx, hotelID, day)
	if err != nil {
		return res, err
	}

	summary, err := s.summarize(ctx, sess, hotelID, day, st.DailyIncome, nil)
	if err != nil {
		return res, err
	}

	if err = s.persist(ctx, summary); err != nil {
		return res, err
	}

	res.Statement.FromStatement(st)
	res.Summary.FromModel(summary)

	return res, nil
}

func (s *serviceImpl) UpdatePayment(ctx context.Context, sess session.Session, bookingID string, req dto.UpdatePaymentRequest) (res dto.StatementResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".statement.UpdatePayment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	day, err := timezone.ParseDay(req.SearchDate)
	if err != nil {
		return res, failure.BadRequest(fmt.Errorf("invalid search date: %w", err)) // nolint:wrapcheck
	}

	booking, err := s.bookings.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("bookingID", bookingID).Msg("failed to get booking")

		return res, failure.Transport(err) // nolint:wrapcheck
	}

	if booking.ID == constant.Empty {
		return res, errBookingNotFound
	}

	if scoped := sess.HotelScope(booking.HotelID); scoped != booking.HotelID {
		return res, failure.ResourceRestrictedError
	}

	if booking.StatusID == bookingModel.StatusCanceled {
		return res, failure.BadRequestFromString("a canceled booking cannot take payments") // nolint:wrapcheck
	}

	entries, err := s.entries.ForBookings(ctx, []string{booking.ID})
	if err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to get invoice entries")

		return res, failure.Transport(err) // nolint:wrapcheck
	}

	totalPaid, due, err := calculator.ApplyDailyPayment(booking.TotalBill, aggregator.CumulativePaid(entries), req.DailyAmount)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	now := timezone.Now()
	fields := map[string]any{
		bookingModel.FieldTotalPaid:   totalPaid,
		bookingModel.FieldDuePayment:  calculator.Due(booking.TotalBill, totalPaid),
		bookingModel.FieldDueBalance:  due,
		bookingModel.FieldUpdatedByID: sess.Actor(),
		constant.FieldModifiedAt:      now,
		constant.FieldModifiedBy:      sess.Actor(),
	}

	if err = s.bookings.Update(ctx, fields, shared.FilterByID(booking.ID, bookingModel.FieldID, bookingModel.TableName)); err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to update booking payment")

		return res, failure.Transport(err) // nolint:wrapcheck
	}

	date := timezone.FormatDay(day)
	entry := model.DailyInvoiceEntry{
		ID:          uuid.NewString(),
		BookingID:   booking.ID,
		HotelID:     booking.HotelID,
		Date:        date,
		DailyAmount: req.DailyAmount,
		TotalPaid:   req.DailyAmount,
		Kind:        model.EntryKindPayment,
		Metadata:    gModel.NewMetadata(sess.Actor(), now),
	}

	if err = s.entries.Insert(ctx, entry); err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Str("date", date).Msg("failed to record daily payment")

		return res, failure.Reconciliation("booking total was updated but the daily payment was not recorded", err) // nolint:wrapcheck
	}

	if err = s.rechain(ctx, sess, booking.HotelID, day); err != nil {
		return res, failure.Reconciliation("daily payment was recorded but the daily summaries were not refreshed", err) // nolint:wrapcheck
	}

	events.PublishAsync(ctx, s.publisher, events.TopicPaymentRecorded, booking.ID, events.PaymentEvent{
		BookingID:   booking.ID,
		HotelID:     booking.HotelID,
		Date:        date,
		DailyAmount: req.DailyAmount,
		TotalPaid:   totalPaid,
		Actor:       sess.Actor(),
		OccurredAt:  now,
	})
	s.invalidate(ctx, booking.HotelID, booking.ID)

	st, err := s.build(ctx, booking.HotelID, day)
	if err != nil {
		return res, err
	}

	res.FromStatement(st)

	return res, nil
}

func (s *serviceImpl) GetSummary(ctx context.Context, sess session.Session, hotelID, date string) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".statement.GetSummary")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	hotelID, day, err := resolve(sess, hotelID, date)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(constant.CachePrefixSummary, hotelID, date)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	st, err := s.build(ctx, hotelID, day)
	if err != nil {
		return res, err
	}

	summary, err := s.summarize(ctx, sess, hotelID, day, st.DailyIncome, nil)
	if err != nil {
		return res, err
	}

	if err = s.persist(ctx, summary); err != nil {
		return res, err
	}

	res.FromModel(summary)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save summary to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) SetExpenses(ctx context.Context, sess session.Session, hotelID, date string, req dto.SetExpensesRequest) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".statement.SetExpenses")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.DailyExpenses.IsNegative() {
		return res, failure.BadRequestFromString("daily expenses must not be negative") // nolint:wrapcheck
	}

	hotelID, day, err := resolve(sess, hotelID, date)
	if err != nil {
		return res, err
	}

	st, err := s.build(ctx, hotelID, day)
	if err != nil {
		return res, err
	}

	summary, err := s.summarize(ctx, sess, hotelID, day, st.DailyIncome, &req.DailyExpenses)
	if err != nil {
		return res, err
	}

	var archive dto.DailyStatementResponse
	archive.Statement.FromStatement(st)
	archive.Summary.FromModel(summary)

	url, err := s.s3.UploadJSON(ctx, archiveDirectory+"/"+hotelID, summary.Date+".json", archive)
	if err != nil {
		log.Error().Err(err).Str("hotelID", hotelID).Str("date", summary.Date).Msg("failed to archive daily statement")

		return res, failure.Transport(err) // nolint:wrapcheck
	}

	summary.ArchiveURL = url

	if err = s.persist(ctx, summary); err != nil {
		return res, err
	}

	res.FromModel(summary)

	s.invalidate(ctx, hotelID, constant.Empty)

	return res, nil
}

// build loads the bookings and entries of a hotel day and aggregates them.
func (s *serviceImpl) build(ctx context.Context, hotelID string, day time.Time) (aggregator.Statement, error) {
	bookings, err := s.bookings.ForStatement(ctx, hotelID, day)
	if err != nil {
		log.Error().Err(err).Str("hotelID", hotelID).Msg("failed to get bookings for statement")

		return aggregator.Statement{}, failure.Transport(err) // nolint:wrapcheck
	}

	ids := make([]string, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
	}

	entries, err := s.entries.ForBookings(ctx, ids)
	if err != nil {
		log.Error().Err(err).Str("hotelID", hotelID).Msg("failed to get invoice entries for statement")

		return aggregator.Statement{}, failure.Transport(err) // nolint:wrapcheck
	}

	dayEntries, err := s.entries.ForDay(ctx, hotelID, timezone.FormatDay(day))
	if err != nil {
		log.Error().Err(err).Str("hotelID", hotelID).Msg("failed to get invoice entries of the day")

		return aggregator.Statement{}, failure.Transport(err) // nolint:wrapcheck
	}

	return aggregator.Build(day, bookings, entries, dayEntries), nil
}

func (s *serviceImpl) Rechain(ctx context.Context, sess session.Session, hotelID string, day time.Time) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".statement.Rechain")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.rechain(ctx, sess, hotelID, day); err != nil {
		return err
	}

	s.invalidate(ctx, hotelID, constant.Empty)

	return nil
}

// rechain refreshes the stored summary of day after its entries changed. A day nobody has
// summarized yet is left alone since no later summary opens on it.
func (s *serviceImpl) rechain(ctx context.Context, sess session.Session, hotelID string, day time.Time) error {
	date := timezone.FormatDay(day)

	_, found, err := s.summaries.Find(ctx, hotelID, date)
	if err != nil {
		log.Error().Err(err).Str("hotelID", hotelID).Str("date", date).Msg("failed to get daily summary")

		return failure.Transport(err) // nolint:wrapcheck
	}

	if !found {
		return nil
	}

	entries, err := s.entries.ForDay(ctx, hotelID, date)
	if err != nil {
		log.Error().Err(err).Str("hotelID", hotelID).Str("date", date).Msg("failed to get invoice entries of the day")

		return failure.Transport(err) // nolint:wrapcheck
	}

	summary, err := s.summarize(ctx, sess, hotelID, day, aggregator.DailyIncome(date, entries), nil)
	if err != nil {
		return err
	}

	return s.persist(ctx, summary)
}

// persist saves summary and re-chains the stored days after it onto its closing balance.
func (s *serviceImpl) persist(ctx context.Context, summary model.DailySummary) error {
	if err := s.summaries.Save(ctx, summary); err != nil {
		log.Error().Err(err).Str("hotelID", summary.HotelID).Str("date", summary.Date).Msg("failed to save daily summary")

		return failure.Transport(err) // nolint:wrapcheck
	}

	later, err := s.summaries.After(ctx, summary.HotelID, summary.Date)
	if err != nil {
		log.Error().Err(err).Str("hotelID", summary.HotelID).Str("date", summary.Date).Msg("failed to get later daily summaries")

		return failure.Transport(err) // nolint:wrapcheck
	}

	for _, next := range aggregator.Rechain(summary, later) {
		next.ModifiedAt = summary.ModifiedAt
		next.ModifiedBy = summary.ModifiedBy

		if err := s.summaries.Save(ctx, next); err != nil {
			log.Error().Err(err).Str("hotelID", next.HotelID).Str("date", next.Date).Msg("failed to re-chain daily summary")

			return failure.Transport(err) // nolint:wrapcheck
		}
	}

	return nil
}

// summarize chains the day onto the stored closing balance of the previous day. Stored expenses
// are kept unless expenses is set.
func (s *serviceImpl) summarize(ctx context.Context, sess session.Session, hotelID string, day time.Time, income decimal.Decimal, expenses *decimal.Decimal) (model.DailySummary, error) {
	date := timezone.FormatDay(day)

	previous, found, err := s.summaries.Find(ctx, hotelID, aggregator.PreviousDate(day))
	if err != nil {
		log.Error().Err(err).Str("hotelID", hotelID).Str("date", date).Msg("failed to get previous daily summary")

		return model.DailySummary{}, failure.Transport(err) // nolint:wrapcheck
	}

	opening := decimal.Zero
	if found {
		opening = previous.ClosingBalance
	}

	current, found, err := s.summaries.Find(ctx, hotelID, date)
	if err != nil {
		log.Error().Err(err).Str("hotelID", hotelID).Str("date", date).Msg("failed to get daily summary")

		return model.DailySummary{}, failure.Transport(err) // nolint:wrapcheck
	}

	spent := decimal.Zero
	if found {
		spent = current.DailyExpenses
	}

	if expenses != nil {
		spent = *expenses
	}

	summary := aggregator.Summarize(hotelID, date, opening, income, spent)
	summary.Metadata = gModel.NewMetadata(sess.Actor(), timezone.Now())

	if found {
		summary.ArchiveURL = current.ArchiveURL
		summary.CreatedAt = current.CreatedAt
		summary.CreatedBy = current.CreatedBy
	}

	return summary, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, hotelID, bookingID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if bookingID != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(constant.CachePrefixBooking, bookingID)); err != nil {
				log.Error().Err(err).Msg("failed to delete booking from cache")
			}

			shared.InvalidateCaches(c, s.cache, constant.CachePrefixBookings)
			shared.InvalidateCaches(c, s.cache, constant.CachePrefixDashboard)
		}

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(constant.CachePrefixStatement, hotelID))
		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(constant.CachePrefixSummary, hotelID))
	}()
}

// resolve applies the session's hotel scope and parses the statement day.
func resolve(sess session.Session, hotelID, date string) (string, time.Time, error) {
	hotelID = sess.HotelScope(hotelID)
	if hotelID == constant.Empty {
		return constant.Empty, time.Time{}, errHotelRequired
	}

	day, err := timezone.ParseDay(date)
	if err != nil {
		return constant.Empty, time.Time{}, failure.BadRequest(fmt.Errorf("invalid date %q: %w", date, err)) // nolint:wrapcheck
	}

	return hotelID, day, nil
}
