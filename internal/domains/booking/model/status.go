package model

import "errors"

var ErrInvalidTransition = errors.New("booking status transition is not allowed")

type Status int

const (
	StatusActive    Status = 1
	StatusConfirmed Status = 2
	StatusCanceled  Status = 255
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "ACTIVE"
	case StatusConfirmed:
		return "CONFIRMED"
	case StatusCanceled:
		return "CANCELED"
	default:
		return "UNKNOWN"
	}
}

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusConfirmed || s == StatusCanceled
}

// CanTransition reports whether a booking may move from one status to another.
// CANCELED is terminal.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusActive:
		return to == StatusConfirmed || to == StatusCanceled
	case StatusConfirmed:
		return to == StatusCanceled
	default:
		return false
	}
}

// Channel is where a booking was taken. Front desk bookings start ACTIVE and wait for
// confirmation, web bookings are confirmed on creation.
type Channel string

const (
	ChannelDesk Channel = "desk"
	ChannelWeb  Channel = "web"
)

func (c Channel) InitialStatus() Status {
	if c == ChannelWeb {
		return StatusConfirmed
	}

	return StatusActive
}
