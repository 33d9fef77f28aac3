package category

import (
	"net/http"

	"hotelledger/infras/otel"
	"hotelledger/internal/domains/category/model"
	"hotelledger/internal/domains/category/model/dto"
	"hotelledger/internal/domains/category/service"
	"hotelledger/shared/constant"
	gDto "hotelledger/shared/dto"
	"hotelledger/shared/logger"
	"hotelledger/shared/session"
	"hotelledger/shared/validator"
	"hotelledger/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Category
	otel    otel.Otel
}

func New(service service.Category, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/categories", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateCategory)
		routerGroup.Get("/", handler.GetCategories)
		routerGroup.Get("/{id}", handler.GetCategoryByID)
		routerGroup.Patch("/{id}", handler.UpdateCategory)
		routerGroup.Delete("/{id}", handler.DeleteCategory)
	})
}

// CreateCategory handles the creation of a room category.
// @Summary Create a room category
// @Tags Category
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category"
// @Success 201 {object} response.Data[dto.CategoryResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/categories [post]
// @Security BearerAuth
func (handler *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCategory")
	defer scope.End()

	req := dto.CreateCategoryRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	category, err := handler.service.Create(ctx, session.FromContext(ctx), req)
	if err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to create category")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, category)
}

// GetCategories lists the room categories of a hotel.
// @Summary Get room categories
// @Tags Category
// @Produce json
// @Param page query integer false "Page"
// @Param limit query integer false "Limit"
// @Param hotel_id query string false "Hotel, super admins only"
// @Param name query string false "Filter by name"
// @Success 200 {object} response.Data[dto.GetCategoriesResponse]
// @Failure 400 {object} response.Error
// @Router /v1/categories [get]
// @Security BearerAuth
func (handler *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCategories")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if hotelID := session.FromContext(ctx).HotelScope(query.Get(constant.RequestParamHotelID)); hotelID != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldHotelID,
			Operator: gDto.FilterOperatorEq,
			Value:    hotelID,
			Table:    model.TableName,
		})
	}

	if name := query.Get(constant.RequestParamName); name != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	categories, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to get categories")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, categories)
}

// GetCategoryByID retrieves a room category.
// @Summary Get a room category
// @Tags Category
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} response.Data[dto.CategoryResponse]
// @Failure 404 {object} response.Error
// @Router /v1/categories/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetCategoryByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCategoryByID")
	defer scope.End()

	category, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to get category")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, category)
}

// UpdateCategory updates a room category.
// @Summary Update a room category
// @Tags Category
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body dto.UpdateCategoryRequest true "Category"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/categories/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCategory")
	defer scope.End()

	req := dto.UpdateCategoryRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, session.FromContext(ctx), req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to update category")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Category updated successfully")
}

// DeleteCategory deletes a room category with no rooms left in it.
// @Summary Delete a room category
// @Tags Category
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/categories/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCategory")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to delete category")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Category deleted successfully")
}
