// Package session carries the logged-in operator through a request. Ledger services receive it
// explicitly instead of reading ambient user state.
package session

import (
	"context"

	"hotelledger/shared/constant"
)

type Session struct {
	UserID  string `json:"user_id"`
	LoginID string `json:"login_id"`
	Role    string `json:"role"`
	HotelID string `json:"hotel_id"`
}

// Actor is the name written into audit columns such as booked_by_id and canceled_by.
func (s Session) Actor() string {
	if s.LoginID != constant.Empty {
		return s.LoginID
	}

	return s.UserID
}

// IsSuperAdmin reports whether the operator may act across hotels.
func (s Session) IsSuperAdmin() bool {
	return s.Role == constant.RoleSuperAdmin
}

// HotelScope returns the hotel the operator is restricted to, or requested when the operator
// is a super admin.
func (s Session) HotelScope(requested string) string {
	if s.IsSuperAdmin() || s.HotelID == constant.Empty {
		return requested
	}

	return s.HotelID
}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, constant.ContextKeySession, s)
}

// FromContext returns the session stored by the auth middleware, or a zero Session.
func FromContext(ctx context.Context) Session {
	s, _ := ctx.Value(constant.ContextKeySession).(Session)

	return s
}
