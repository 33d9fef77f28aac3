package hotel

import (
	"net/http"

	"hotelledger/infras/otel"
	"hotelledger/internal/domains/hotel/model"
	"hotelledger/internal/domains/hotel/model/dto"
	"hotelledger/internal/domains/hotel/service"
	"hotelledger/shared"
	"hotelledger/shared/constant"
	gDto "hotelledger/shared/dto"
	"hotelledger/shared/logger"
	"hotelledger/shared/session"
	"hotelledger/shared/validator"
	"hotelledger/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Hotel
	otel    otel.Otel
}

func New(service service.Hotel, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/hotels", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateHotel)
		routerGroup.Get("/", handler.GetHotels)
		routerGroup.Get("/{id}", handler.GetHotelByID)
		routerGroup.Patch("/{id}", handler.UpdateHotel)
		routerGroup.Put("/{id}/details", handler.UpdateHotelDetails)
		routerGroup.Delete("/{id}", handler.DeleteHotel)
	})
}

// CreateHotel registers a hotel.
// @Summary Create a hotel
// @Tags Hotel
// @Accept json
// @Produce json
// @Param request body dto.CreateHotelRequest true "Hotel"
// @Success 201 {object} response.Data[dto.HotelResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/hotels [post]
// @Security BearerAuth
func (handler *Handler) CreateHotel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateHotel")
	defer scope.End()

	req := dto.CreateHotelRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	hotel, err := handler.service.Create(ctx, session.FromContext(ctx), req)
	if err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to create hotel")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, hotel)
}

// GetHotels lists hotels.
// @Summary Get hotels
// @Tags Hotel
// @Produce json
// @Param page query integer false "Page"
// @Param limit query integer false "Limit"
// @Param name query string false "Filter by name"
// @Param location query string false "Filter by location"
// @Param top_selling query boolean false "Only top selling hotels"
// @Success 200 {object} response.Data[dto.GetHotelsResponse]
// @Failure 400 {object} response.Error
// @Router /v1/hotels [get]
// @Security BearerAuth
func (handler *Handler) GetHotels(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHotels")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name := query.Get(constant.RequestParamName); name != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if location := query.Get(constant.RequestParamLocation); location != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldLocation,
			Operator: gDto.FilterOperatorLike,
			Value:    location,
			Table:    model.TableName,
		})
	}

	if topSelling := shared.ParseOptionalBool(query.Get(constant.RequestParamTopSelling)); topSelling != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTopSelling,
			Operator: gDto.FilterOperatorEq,
			Value:    *topSelling,
			Table:    model.TableName,
		})
	}

	hotels, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to get hotels")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, hotels)
}

// GetHotelByID retrieves a hotel with its detail page.
// @Summary Get a hotel
// @Tags Hotel
// @Produce json
// @Param id path string true "Hotel ID"
// @Success 200 {object} response.Data[dto.HotelResponse]
// @Failure 404 {object} response.Error
// @Router /v1/hotels/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetHotelByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHotelByID")
	defer scope.End()

	hotel, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to get hotel")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, hotel)
}

// UpdateHotel updates the listing of a hotel.
// @Summary Update a hotel
// @Tags Hotel
// @Accept json
// @Produce json
// @Param id path string true "Hotel ID"
// @Param request body dto.UpdateHotelRequest true "Hotel"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/hotels/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateHotel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateHotel")
	defer scope.End()

	req := dto.UpdateHotelRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, session.FromContext(ctx), req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to update hotel")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Hotel updated successfully")
}

// UpdateHotelDetails replaces the detail page of a hotel.
// @Summary Replace hotel details
// @Tags Hotel
// @Accept json
// @Produce json
// @Param id path string true "Hotel ID"
// @Param request body dto.HotelDetailsRequest true "Details"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/hotels/{id}/details [put]
// @Security BearerAuth
func (handler *Handler) UpdateHotelDetails(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateHotelDetails")
	defer scope.End()

	req := dto.HotelDetailsRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateDetails(ctx, session.FromContext(ctx), req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to update hotel details")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Hotel details updated successfully")
}

// DeleteHotel deletes a hotel nothing refers to anymore.
// @Summary Delete a hotel
// @Tags Hotel
// @Produce json
// @Param id path string true "Hotel ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/hotels/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteHotel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteHotel")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to delete hotel")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Hotel deleted successfully")
}
