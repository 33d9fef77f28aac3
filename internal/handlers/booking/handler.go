package booking

import (
	"net/http"
	"strconv"

	"hotelledger/infras/otel"
	"hotelledger/internal/domains/booking/model/dto"
	"hotelledger/internal/domains/booking/service"
	"hotelledger/shared"
	"hotelledger/shared/constant"
	gDto "hotelledger/shared/dto"
	"hotelledger/shared/failure"
	"hotelledger/shared/logger"
	"hotelledger/shared/session"
	"hotelledger/shared/validator"
	"hotelledger/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/bookings", handler.GetBookings)
	router.Post("/bookings/quote", handler.Quote)
	router.Get("/bookings/bookingNo/{no}", handler.GetBookingsByNo)

	router.Post("/booking", handler.CreateBooking)
	router.Get("/booking/{id}", handler.GetBookingByID)
	router.Put("/booking/{id}", handler.EditBooking)
	router.Put("/booking/soft/{id}", handler.CancelBooking)
	router.Put("/booking/confirm/{id}", handler.ConfirmBooking)

	router.Get("/dashboard", handler.Dashboard)
}

// GetBookings lists bookings of the operator's hotel.
// @Summary List bookings
// @Description Canceled bookings are hidden unless include_canceled is true or status_id is 255.
// @Tags Booking
// @Produce json
// @Param page query integer false "Page"
// @Param limit query integer false "Limit"
// @Param sort_by query string false "Sort column"
// @Param sort_dir query string false "ASC or DESC"
// @Param hotel_id query string false "Hotel, super admins only"
// @Param status_id query integer false "1 active, 2 confirmed, 255 canceled"
// @Param include_canceled query boolean false "Include canceled bookings"
// @Param search query string false "Guest name, phone or booking number"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()
	filter := dto.ListFilter{
		HotelID: query.Get(constant.RequestParamHotelID),
		Search:  query.Get(constant.RequestParamSearch),
	}

	if status := query.Get(constant.RequestParamStatusID); status != constant.Empty {
		statusID, err := strconv.Atoi(status)
		if err != nil {
			err = failure.BadRequestFromString("status_id must be a number")
			scope.TraceError(err)

			response.WithError(w, err)

			return
		}

		filter.StatusID = statusID
	}

	if include := shared.ParseOptionalBool(query.Get(constant.RequestParamIncludeCanceled)); include != nil {
		filter.IncludeCanceled = *include
	}

	bookings, err := handler.service.GetAll(ctx, session.FromContext(ctx), queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// Quote computes nights, bill and dues without saving anything.
// @Summary Quote a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.QuoteRequest true "Quote request"
// @Success 200 {object} response.Data[dto.QuoteResponse]
// @Failure 400 {object} response.Error
// @Router /v1/bookings/quote [post]
// @Security BearerAuth
func (handler *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Quote")
	defer scope.End()

	req := dto.QuoteRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	quote, err := handler.service.Quote(ctx, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, quote)
}

// GetBookingsByNo returns every room line of one booking number.
// @Summary Get bookings by booking number
// @Tags Booking
// @Produce json
// @Param no path string true "Booking number"
// @Success 200 {object} response.Data[[]dto.BookingResponse]
// @Failure 404 {object} response.Error
// @Router /v1/bookings/bookingNo/{no} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingsByNo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingsByNo")
	defer scope.End()

	bookingNo := chi.URLParam(r, constant.RequestParamBookingNo)

	bookings, err := handler.service.GetByBookingNo(ctx, session.FromContext(ctx), bookingNo)
	if err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Str("bookingNo", bookingNo).Msg("failed to get bookings by number")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// CreateBooking books a room and commits its dates.
// @Summary Create a booking
// @Description Derived money fields are recomputed from the charges and payments.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.BookingRequest true "Booking"
// @Success 201 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/booking [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.BookingRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	sess := session.FromContext(ctx)

	booking, err := handler.service.Create(ctx, sess, req)
	if err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking " + booking.BookingNo + " created by " + sess.Actor())

	response.WithJSON(w, http.StatusCreated, booking)
}

// GetBookingByID returns one booking.
// @Summary Get a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Error
// @Router /v1/booking/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Str("bookingID", id).Msg("failed to get booking")

		response.WithError(w, err)

		return
	}

	if scoped := session.FromContext(ctx).HotelScope(booking.HotelID); scoped != booking.HotelID {
		response.WithError(w, failure.ResourceRestrictedError)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// EditBooking moves a booking to new dates or room and recomputes its bill.
// @Summary Edit a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.BookingRequest true "Booking"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/booking/{id} [put]
// @Security BearerAuth
func (handler *Handler) EditBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".EditBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.BookingRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Edit(ctx, session.FromContext(ctx), id, req)
	if err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Str("bookingID", id).Msg("failed to edit booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// CancelBooking soft-deletes a booking and frees its dates.
// @Summary Cancel a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.CancelBookingRequest false "Canceled by"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/booking/soft/{id} [put]
// @Security BearerAuth
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.CancelBookingRequest{}
	if r.ContentLength != 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)

			response.WithError(w, err)

			return
		}
	}

	if err := handler.service.Cancel(ctx, session.FromContext(ctx), id, req); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Str("bookingID", id).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking canceled successfully")
}

// ConfirmBooking marks an active booking as confirmed.
// @Summary Confirm a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/booking/confirm/{id} [put]
// @Security BearerAuth
func (handler *Handler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Confirm(ctx, session.FromContext(ctx), id); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Str("bookingID", id).Msg("failed to confirm booking")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking confirmed successfully")
}

// Dashboard returns booked totals per operator.
// @Summary Booking dashboard
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[dto.DashboardResponse]
// @Failure 502 {object} response.Error
// @Router /v1/dashboard [get]
// @Security BearerAuth
func (handler *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Dashboard")
	defer scope.End()

	dashboard, err := handler.service.Dashboard(ctx, session.FromContext(ctx))
	if err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to build dashboard")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dashboard)
}
