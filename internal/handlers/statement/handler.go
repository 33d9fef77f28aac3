package statement

import (
	"net/http"

	"hotelledger/infras/otel"
	"hotelledger/internal/domains/statement/model/dto"
	"hotelledger/internal/domains/statement/service"
	"hotelledger/shared/constant"
	"hotelledger/shared/logger"
	"hotelledger/shared/session"
	"hotelledger/shared/validator"
	"hotelledger/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Statement
	otel    otel.Otel
}

func New(service service.Statement, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/bookings/check-in/{date}", handler.GetStatement)
	router.Put("/booking/details/{id}", handler.UpdatePayment)
	router.Get("/daily-statement/{date}", handler.GetDailyStatement)
	router.Get("/daily-summary/{date}", handler.GetSummary)
	router.Put("/daily-summary/{date}", handler.SetExpenses)
}

// GetStatement returns the regular and previously unpaid invoices of a day.
// @Summary Daily invoices
// @Tags Statement
// @Produce json
// @Param date path string true "Day, YYYY-MM-DD"
// @Param hotel_id query string false "Hotel, super admins only"
// @Success 200 {object} response.Data[dto.StatementResponse]
// @Failure 400 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/bookings/check-in/{date} [get]
// @Security BearerAuth
func (handler *Handler) GetStatement(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStatement")
	defer scope.End()

	date := chi.URLParam(r, constant.RequestParamDate)

	statement, err := handler.service.GetStatement(ctx, session.FromContext(ctx), r.URL.Query().Get(constant.RequestParamHotelID), date)
	if err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Str("date", date).Msg("failed to get statement")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, statement)
}

// UpdatePayment credits money collected on searchDate to a booking.
// @Summary Record a daily payment
// @Description Returns the whole statement of searchDate after the payment.
// @Tags Statement
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdatePaymentRequest true "Payment"
// @Success 200 {object} response.Data[dto.StatementResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/booking/details/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePayment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdatePaymentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	statement, err := handler.service.UpdatePayment(ctx, session.FromContext(ctx), id, req)
	if err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Str("bookingID", id).Msg("failed to record daily payment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, statement)
}

// GetDailyStatement returns the invoices of a day together with its balances.
// @Summary Daily statement
// @Tags Statement
// @Produce json
// @Param date path string true "Day, YYYY-MM-DD"
// @Param hotel_id query string false "Hotel, super admins only"
// @Success 200 {object} response.Data[dto.DailyStatementResponse]
// @Failure 400 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/daily-statement/{date} [get]
// @Security BearerAuth
func (handler *Handler) GetDailyStatement(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDailyStatement")
	defer scope.End()

	date := chi.URLParam(r, constant.RequestParamDate)

	statement, err := handler.service.GetDailyStatement(ctx, session.FromContext(ctx), r.URL.Query().Get(constant.RequestParamHotelID), date)
	if err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Str("date", date).Msg("failed to get daily statement")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, statement)
}

// GetSummary returns the opening, income, expenses and closing balance of a day.
// @Summary Daily summary
// @Tags Statement
// @Produce json
// @Param date path string true "Day, YYYY-MM-DD"
// @Param hotel_id query string false "Hotel, super admins only"
// @Success 200 {object} response.Data[dto.SummaryResponse]
// @Failure 400 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/daily-summary/{date} [get]
// @Security BearerAuth
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSummary")
	defer scope.End()

	date := chi.URLParam(r, constant.RequestParamDate)

	summary, err := handler.service.GetSummary(ctx, session.FromContext(ctx), r.URL.Query().Get(constant.RequestParamHotelID), date)
	if err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Str("date", date).Msg("failed to get daily summary")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, summary)
}

// SetExpenses stores the expenses of a day and archives its statement.
// @Summary Set daily expenses
// @Tags Statement
// @Accept json
// @Produce json
// @Param date path string true "Day, YYYY-MM-DD"
// @Param hotel_id query string false "Hotel, super admins only"
// @Param request body dto.SetExpensesRequest true "Expenses"
// @Success 200 {object} response.Data[dto.SummaryResponse]
// @Failure 400 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/daily-summary/{date} [put]
// @Security BearerAuth
func (handler *Handler) SetExpenses(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetExpenses")
	defer scope.End()

	date := chi.URLParam(r, constant.RequestParamDate)

	req := dto.SetExpensesRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	summary, err := handler.service.SetExpenses(ctx, session.FromContext(ctx), r.URL.Query().Get(constant.RequestParamHotelID), date, req)
	if err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Str("date", date).Msg("failed to set daily expenses")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, summary)
}
