package router

import (
	"hotelledger/internal/handlers/booking"
	"hotelledger/internal/handlers/category"
	"hotelledger/internal/handlers/hotel"
	"hotelledger/internal/handlers/room"
	"hotelledger/internal/handlers/statement"

	"github.com/go-chi/chi/v5"
)

// APIPrefix is the mount point of every ledger route.
const APIPrefix = "/v1"

type routable interface {
	Router(r chi.Router)
}

type DomainHandlers struct {
	Booking   booking.Handler
	Statement statement.Handler
	Room      room.Handler
	Category  category.Handler
	Hotel     hotel.Handler
}

func (d DomainHandlers) all() []routable {
	return []routable{&d.Booking, &d.Statement, &d.Room, &d.Category, &d.Hotel}
}

type Router struct {
	DomainHandlers DomainHandlers
}

func New(domainHandlers DomainHandlers) Router {
	return Router{DomainHandlers: domainHandlers}
}

// SetupRoutes mounts every domain under APIPrefix.
func (r *Router) SetupRoutes(mux chi.Router) {
	mux.Route(APIPrefix, func(api chi.Router) {
		for _, domain := range r.DomainHandlers.all() {
			domain.Router(api)
		}
	})
}
