package model

import (
	"time"

	"hotelledger/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID               = "id"
	FieldBookingNo        = "booking_no"
	FieldHotelID          = "hotel_id"
	FieldRoomCategoryID   = "room_category_id"
	FieldRoomCategoryName = "room_category_name"
	FieldRoomNumberID     = "room_number_id"
	FieldRoomNumberName   = "room_number_name"
	FieldFullName         = "full_name"
	FieldPhone            = "phone"
	FieldEmail            = "email"
	FieldNidPassport      = "nid_passport"
	FieldAddress          = "address"
	FieldCheckInDate      = "check_in_date"
	FieldCheckOutDate     = "check_out_date"
	FieldNights           = "nights"
	FieldAdults           = "adults"
	FieldChildren         = "children"
	FieldRoomPrice        = "room_price"
	FieldIsKitchen        = "is_kitchen"
	FieldKitchenTotalBill = "kitchen_total_bill"
	FieldExtraBed         = "extra_bed"
	FieldExtraBedBill     = "extra_bed_total_bill"
	FieldVatPercent       = "vat_percent"
	FieldTaxPercent       = "tax_percent"
	FieldTotalBill        = "total_bill"
	FieldPayments         = "payments"
	FieldAdvancePayment   = "advance_payment"
	FieldTotalPaid        = "total_paid"
	FieldDuePayment       = "due_payment"
	FieldDueBalance       = "due_balance"
	FieldStatusID         = "status_id"
	FieldCanceledBy       = "canceled_by"
	FieldCancelReason     = "cancel_reason"
	FieldChannel          = "channel"
	FieldBookedByID       = "booked_by_id"
	FieldUpdatedByID      = "updated_by_id"
	FieldNote             = "note"
	FieldReference        = "reference"
)

// Booking is one guest's reservation of one room unit. Several rows may share a BookingNo.
// Category and room names are denormalized columns kept in sync with their ids at write time.
type Booking struct {
	ID               string          `db:"id"`
	BookingNo        string          `db:"booking_no"`
	HotelID          string          `db:"hotel_id"`
	RoomCategoryID   string          `db:"room_category_id"`
	RoomCategoryName string          `db:"room_category_name"`
	RoomNumberID     string          `db:"room_number_id"`
	RoomNumberName   string          `db:"room_number_name"`
	FullName         string          `db:"full_name"`
	Phone            string          `db:"phone"`
	Email            string          `db:"email"`
	NidPassport      string          `db:"nid_passport"`
	Address          string          `db:"address"`
	CheckInDate      time.Time       `db:"check_in_date"`
	CheckOutDate     time.Time       `db:"check_out_date"`
	Nights           int             `db:"nights"`
	Adults           int             `db:"adults"`
	Children         int             `db:"children"`
	RoomPrice        decimal.Decimal `db:"room_price"`
	IsKitchen        bool            `db:"is_kitchen"`
	KitchenTotalBill decimal.Decimal `db:"kitchen_total_bill"`
	ExtraBed         bool            `db:"extra_bed"`
	ExtraBedBill     decimal.Decimal `db:"extra_bed_total_bill"`
	VatPercent       decimal.Decimal `db:"vat_percent"`
	TaxPercent       decimal.Decimal `db:"tax_percent"`
	TotalBill        decimal.Decimal `db:"total_bill"`
	Payments         Payments        `db:"payments"`
	AdvancePayment   decimal.Decimal `db:"advance_payment"`
	TotalPaid        decimal.Decimal `db:"total_paid"`
	DuePayment       decimal.Decimal `db:"due_payment"`
	DueBalance       decimal.Decimal `db:"due_balance"`
	StatusID         Status          `db:"status_id"`
	CanceledBy       string          `db:"canceled_by"`
	CancelReason     string          `db:"cancel_reason"`
	Channel          Channel         `db:"channel"`
	BookedByID       string          `db:"booked_by_id"`
	UpdatedByID      string          `db:"updated_by_id"`
	Note             string          `db:"note"`
	Reference        string          `db:"reference"`
	model.Metadata
}

func (b Booking) Category() model.Ref {
	return model.Ref{ID: b.RoomCategoryID, Name: b.RoomCategoryName}
}

func (b Booking) Room() model.Ref {
	return model.Ref{ID: b.RoomNumberID, Name: b.RoomNumberName}
}

// SetRoom writes resolved references into the denormalized columns.
func (b *Booking) SetRoom(category, room model.Ref) {
	b.RoomCategoryID = category.ID
	b.RoomCategoryName = category.Name
	b.RoomNumberID = room.ID
	b.RoomNumberName = room.Name
}

// PriorCredits is what was paid after the advance, through daily statement entries.
func (b Booking) PriorCredits() decimal.Decimal {
	return b.TotalPaid.Sub(b.AdvancePayment)
}

// UserTotals is the dashboard rollup of total bills per booking operator.
type UserTotals struct {
	BookedByID string          `db:"booked_by_id"`
	Today      decimal.Decimal `db:"today"`
	Last7Days  decimal.Decimal `db:"last_7_days"`
	Last30Days decimal.Decimal `db:"last_30_days"`
	Overall    decimal.Decimal `db:"overall"`
	Bookings   int             `db:"bookings"`
}
