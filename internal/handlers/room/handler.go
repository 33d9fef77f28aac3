package room

import (
	"net/http"

	"hotelledger/infras/otel"
	"hotelledger/internal/domains/room/model"
	"hotelledger/internal/domains/room/model/dto"
	"hotelledger/internal/domains/room/service"
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
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/available", handler.GetAvailableRooms)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Patch("/{id}", handler.UpdateRoom)
		routerGroup.Delete("/{id}", handler.DeleteRoom)
	})

	router.Put("/hotel/room/updateBooking", handler.CommitDates)
	router.Delete("/bookings/delete", handler.ReleaseDates)
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Tags Room
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomRequest true "Room"
// @Success 201 {object} response.Data[dto.RoomResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	req := dto.CreateRoomRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	sess := session.FromContext(ctx)

	room, err := handler.service.Create(ctx, sess, req)
	if err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to create room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room created successfully by user " + sess.Actor())

	response.WithJSON(writer, http.StatusCreated, room)
}

// GetRooms retrieves all rooms of the operator's hotel.
// @Summary Get all rooms
// @Tags Room
// @Produce json
// @Param page query integer false "Page"
// @Param limit query integer false "Limit"
// @Param hotel_id query string false "Hotel, super admins only"
// @Param category_id query string false "Filter by category"
// @Param name query string false "Filter by name"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetRoomsResponse]
// @Failure 400 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/rooms [get]
// @Security BearerAuth
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
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

	if categoryID := query.Get(constant.RequestParamCategoryID); categoryID != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCategoryID,
			Operator: gDto.FilterOperatorEq,
			Value:    categoryID,
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

	if active := shared.ParseOptionalBool(query.Get(constant.RequestParamActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	rooms, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetAvailableRooms lists the rooms of a category free for a whole stay.
// @Summary Available rooms
// @Tags Room
// @Produce json
// @Param category_id query string true "Category"
// @Param check_in query string true "Check-in day, YYYY-MM-DD"
// @Param check_out query string true "Check-out day, YYYY-MM-DD"
// @Param hotel_id query string false "Hotel, super admins only"
// @Success 200 {object} response.Data[[]dto.RoomResponse]
// @Failure 400 {object} response.Error
// @Router /v1/rooms/available [get]
// @Security BearerAuth
func (handler *Handler) GetAvailableRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableRooms")
	defer scope.End()

	query := r.URL.Query()
	req := dto.AvailableRoomsRequest{
		HotelID:    query.Get(constant.RequestParamHotelID),
		CategoryID: query.Get(constant.RequestParamCategoryID),
		CheckIn:    query.Get(constant.RequestParamCheckIn),
		CheckOut:   query.Get(constant.RequestParamCheckOut),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	rooms, err := handler.service.Available(ctx, session.FromContext(ctx), req)
	if err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to get available rooms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse]
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to get room by ID")

		response.WithError(w, err)

		return
	}

	if scoped := session.FromContext(ctx).HotelScope(room.HotelID); scoped != room.HotelID {
		response.WithError(w, failure.ResourceRestrictedError)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// UpdateRoom updates an existing room by its ID.
// @Summary Update a room by ID
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.UpdateRoomRequest true "Room"
// @Success 200 {object} response.Message "Room updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateRoomRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, session.FromContext(ctx), req, id); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to update room")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Room updated successfully")
}

// DeleteRoom deletes a room that holds no booked dates.
// @Summary Delete a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message "Room deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to delete room")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Room deleted successfully")
}

// CommitDates adds booked dates to a room addressed by hotel, category and room name.
// @Summary Commit room dates
// @Tags Inventory
// @Accept json
// @Produce json
// @Param request body dto.CommitInventoryRequest true "Dates to hold"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/hotel/room/updateBooking [put]
// @Security BearerAuth
func (handler *Handler) CommitDates(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CommitDates")
	defer scope.End()

	req := dto.CommitInventoryRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.CommitByNames(ctx, session.FromContext(ctx), req); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Str("room", req.RoomName).Msg("failed to commit room dates")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Room dates booked successfully")
}

// ReleaseDates removes dates from a room addressed by hotel, category and room name.
// @Summary Release room dates
// @Tags Inventory
// @Accept json
// @Produce json
// @Param request body dto.ReleaseInventoryRequest true "Dates to free"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/delete [delete]
// @Security BearerAuth
func (handler *Handler) ReleaseDates(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReleaseDates")
	defer scope.End()

	req := dto.ReleaseInventoryRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.ReleaseByNames(ctx, session.FromContext(ctx), req); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Str("room", req.RoomName).Msg("failed to release room dates")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Room dates released successfully")
}
