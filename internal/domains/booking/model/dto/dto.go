package dto

import (
	"fmt"
	"strings"
	"time"

	"hotelledger/internal/domains/booking/calculator"
	"hotelledger/internal/domains/booking/model"
	"hotelledger/shared"
	"hotelledger/shared/constant"
	gDto "hotelledger/shared/dto"
	gModel "hotelledger/shared/model"
	"hotelledger/shared/session"
	"hotelledger/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentRequest struct {
	Method        string          `json:"method"        validate:"required,paymentmethod"`
	Amount        decimal.Decimal `json:"amount"`
	TransactionID string          `json:"transactionId" validate:"omitempty,max=100"`
}

func (p PaymentRequest) ToModel() model.Payment {
	return model.Payment{
		Method:        model.PaymentMethod(strings.ToUpper(p.Method)),
		Amount:        p.Amount,
		TransactionID: p.TransactionID,
	}
}

// QuoteRequest carries the inputs of the financial calculator.
type QuoteRequest struct {
	CheckInDate       string           `json:"checkInDate"       validate:"required,day"`
	CheckOutDate      string           `json:"checkOutDate"      validate:"required,day"`
	Adults            int              `json:"adults"            validate:"min=0"`
	Children          int              `json:"children"          validate:"min=0"`
	RoomPrice         decimal.Decimal  `json:"roomPrice"`
	IsKitchen         bool             `json:"isKitchen"`
	KitchenTotalBill  decimal.Decimal  `json:"kitchenTotalBill"`
	ExtraBed          bool             `json:"extraBed"`
	ExtraBedTotalBill decimal.Decimal  `json:"extraBedTotalBill"`
	VatPercent        decimal.Decimal  `json:"vat"`
	TaxPercent        decimal.Decimal  `json:"tax"`
	Payments          []PaymentRequest `json:"payments"          validate:"required,min=1,dive"`
}

// Input converts the request into calculator input. priorCredits is what the booking already
// received after its advance, zero for new bookings.
func (q *QuoteRequest) Input(maxPayments int, priorCredits decimal.Decimal) (calculator.Input, error) {
	checkIn, err := timezone.ParseDay(q.CheckInDate)
	if err != nil {
		return calculator.Input{}, fmt.Errorf("invalid check-in date: %w", err)
	}

	checkOut, err := timezone.ParseDay(q.CheckOutDate)
	if err != nil {
		return calculator.Input{}, fmt.Errorf("invalid check-out date: %w", err)
	}

	payments := make([]model.Payment, len(q.Payments))
	for i, p := range q.Payments {
		payments[i] = p.ToModel()
	}

	return calculator.Input{
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Adults:   q.Adults,
		Children: q.Children,
		Charges: calculator.Charges{
			RoomPrice:         q.RoomPrice,
			IsKitchen:         q.IsKitchen,
			KitchenTotalBill:  q.KitchenTotalBill,
			ExtraBed:          q.ExtraBed,
			ExtraBedTotalBill: q.ExtraBedTotalBill,
			VatPercent:        q.VatPercent,
			TaxPercent:        q.TaxPercent,
		},
		Payments:     payments,
		PriorCredits: priorCredits,
		MaxPayments:  maxPayments,
	}, nil
}

type QuoteResponse struct {
	Nights         int             `json:"nights"`
	TotalBill      decimal.Decimal `json:"totalBill"`
	AdvancePayment decimal.Decimal `json:"advancePayment"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	DuePayment     decimal.Decimal `json:"duePayment"`
	DueBalance     decimal.Decimal `json:"dueBalance"`
}

func (q *QuoteResponse) FromResult(res calculator.Result) {
	q.Nights = res.Nights
	q.TotalBill = res.TotalBill
	q.AdvancePayment = res.AdvancePayment
	q.TotalPaid = res.TotalPaid
	q.DuePayment = res.DuePayment
	q.DueBalance = res.DueBalance
}

// BookingRequest is the body of create and edit. Derived money fields sent by clients are
// ignored and recomputed.
type BookingRequest struct {
	QuoteRequest
	BookingNo   string `json:"bookingNo"   validate:"omitempty,max=32"`
	HotelID     string `json:"hotelID"     validate:"omitempty,max=64"`
	RoomID      string `json:"roomNumberID" validate:"required"`
	FullName    string `json:"fullName"    validate:"required,max=150"`
	Phone       string `json:"phone"       validate:"omitempty,max=20"`
	Email       string `json:"email"       validate:"omitempty,email,max=100"`
	NidPassport string `json:"nidPassport" validate:"omitempty,max=50"`
	Address     string `json:"address"     validate:"omitempty,max=255"`
	Note        string `json:"note"        validate:"omitempty,max=500"`
	Reference   string `json:"reference"   validate:"omitempty,max=100"`
	Channel     string `json:"channel"     validate:"omitempty,oneof=desk web"`
}

func (b *BookingRequest) channel() model.Channel {
	if b.Channel == constant.Empty {
		return model.ChannelDesk
	}

	return model.Channel(b.Channel)
}

// ToModel builds a new booking from the request and the calculator result, in the initial
// status of its channel. Room and category refs are resolved by the caller.
func (b *BookingRequest) ToModel(sess session.Session, res calculator.Result, bookingNoPrefix string) model.Booking {
	in, out := b.days()
	now := timezone.Now()

	bookingNo := b.BookingNo
	if bookingNo == constant.Empty {
		bookingNo = NewBookingNo(bookingNoPrefix, now)
	}

	payments := make(model.Payments, len(b.Payments))
	for i, p := range b.Payments {
		payments[i] = p.ToModel()
	}

	return model.Booking{
		ID:               uuid.NewString(),
		BookingNo:        bookingNo,
		HotelID:          sess.HotelScope(b.HotelID),
		FullName:         b.FullName,
		Phone:            b.Phone,
		Email:            b.Email,
		NidPassport:      b.NidPassport,
		Address:          b.Address,
		CheckInDate:      in,
		CheckOutDate:     out,
		Nights:           res.Nights,
		Adults:           b.Adults,
		Children:         b.Children,
		RoomPrice:        b.RoomPrice,
		IsKitchen:        b.IsKitchen,
		KitchenTotalBill: b.KitchenTotalBill,
		ExtraBed:         b.ExtraBed,
		ExtraBedBill:     b.ExtraBedTotalBill,
		VatPercent:       b.VatPercent,
		TaxPercent:       b.TaxPercent,
		TotalBill:        res.TotalBill,
		Payments:         payments,
		AdvancePayment:   res.AdvancePayment,
		TotalPaid:        res.TotalPaid,
		DuePayment:       res.DuePayment,
		DueBalance:       res.DueBalance,
		StatusID:         b.channel().InitialStatus(),
		Channel:          b.channel(),
		BookedByID:       sess.Actor(),
		Note:             b.Note,
		Reference:        b.Reference,
		Metadata:         gModel.NewMetadata(sess.Actor(), now),
	}
}

// ApplyTo overwrites the editable fields of an existing booking. Identity, status, channel and
// audit creation fields are kept.
func (b *BookingRequest) ApplyTo(booking *model.Booking, sess session.Session, res calculator.Result) {
	in, out := b.days()

	payments := make(model.Payments, len(b.Payments))
	for i, p := range b.Payments {
		payments[i] = p.ToModel()
	}

	booking.FullName = b.FullName
	booking.Phone = b.Phone
	booking.Email = b.Email
	booking.NidPassport = b.NidPassport
	booking.Address = b.Address
	booking.CheckInDate = in
	booking.CheckOutDate = out
	booking.Nights = res.Nights
	booking.Adults = b.Adults
	booking.Children = b.Children
	booking.RoomPrice = b.RoomPrice
	booking.IsKitchen = b.IsKitchen
	booking.KitchenTotalBill = b.KitchenTotalBill
	booking.ExtraBed = b.ExtraBed
	booking.ExtraBedBill = b.ExtraBedTotalBill
	booking.VatPercent = b.VatPercent
	booking.TaxPercent = b.TaxPercent
	booking.TotalBill = res.TotalBill
	booking.Payments = payments
	booking.AdvancePayment = res.AdvancePayment
	booking.TotalPaid = res.TotalPaid
	booking.DuePayment = res.DuePayment
	booking.DueBalance = res.DueBalance
	booking.Note = b.Note
	booking.Reference = b.Reference
	booking.UpdatedByID = sess.Actor()
	booking.ModifiedBy = sess.Actor()
	booking.ModifiedAt = timezone.Now()
}

func (b *BookingRequest) days() (time.Time, time.Time) {
	in, _ := timezone.ParseDay(b.CheckInDate)
	out, _ := timezone.ParseDay(b.CheckOutDate)

	return in, out
}

// NewBookingNo returns a display number like FTB-240110-3fa9c1.
func NewBookingNo(prefix string, at time.Time) string {
	if prefix == constant.Empty {
		prefix = "FTB"
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]

	return fmt.Sprintf("%s-%s-%s", prefix, timezone.Format(at, "060102"), suffix)
}

type CancelBookingRequest struct {
	CanceledBy string `json:"canceledBy" validate:"omitempty,max=100"`
	Reason     string `json:"reason"     validate:"omitempty,max=500"`
}

type PaymentResponse struct {
	Method        string          `json:"method"`
	Amount        decimal.Decimal `json:"amount"`
	TransactionID string          `json:"transactionId,omitempty"`
}

type BookingResponse struct {
	ID                string            `json:"id"`
	BookingNo         string            `json:"bookingNo"`
	HotelID           string            `json:"hotelID"`
	Category          gModel.Ref        `json:"roomCategory"`
	Room              gModel.Ref        `json:"roomNumber"`
	FullName          string            `json:"fullName"`
	Phone             string            `json:"phone"`
	Email             string            `json:"email"`
	NidPassport       string            `json:"nidPassport"`
	Address           string            `json:"address"`
	CheckInDate       string            `json:"checkInDate"`
	CheckOutDate      string            `json:"checkOutDate"`
	Nights            int               `json:"nights"`
	Adults            int               `json:"adults"`
	Children          int               `json:"children"`
	RoomPrice         decimal.Decimal   `json:"roomPrice"`
	IsKitchen         bool              `json:"isKitchen"`
	KitchenTotalBill  decimal.Decimal   `json:"kitchenTotalBill"`
	ExtraBed          bool              `json:"extraBed"`
	ExtraBedTotalBill decimal.Decimal   `json:"extraBedTotalBill"`
	VatPercent        decimal.Decimal   `json:"vat"`
	TaxPercent        decimal.Decimal   `json:"tax"`
	TotalBill         decimal.Decimal   `json:"totalBill"`
	Payments          []PaymentResponse `json:"payments"`
	AdvancePayment    decimal.Decimal   `json:"advancePayment"`
	TotalPaid         decimal.Decimal   `json:"totalPaid"`
	DuePayment        decimal.Decimal   `json:"duePayment"`
	DueBalance        decimal.Decimal   `json:"dueBalance"`
	StatusID          int               `json:"statusID"`
	Status            string            `json:"status"`
	CanceledBy        string            `json:"canceledBy,omitempty"`
	CancelReason      string            `json:"cancelReason,omitempty"`
	Channel           string            `json:"channel"`
	BookedByID        string            `json:"bookedByID"`
	UpdatedByID       string            `json:"updatedByID,omitempty"`
	Note              string            `json:"note,omitempty"`
	Reference         string            `json:"reference,omitempty"`
	gDto.Metadata
}

func (b *BookingResponse) FromModel(model model.Booking) {
	b.ID = model.ID
	b.BookingNo = model.BookingNo
	b.HotelID = model.HotelID
	b.Category = model.Category()
	b.Room = model.Room()
	b.FullName = model.FullName
	b.Phone = model.Phone
	b.Email = model.Email
	b.NidPassport = model.NidPassport
	b.Address = model.Address
	b.CheckInDate = timezone.FormatDay(model.CheckInDate)
	b.CheckOutDate = timezone.FormatDay(model.CheckOutDate)
	b.Nights = model.Nights
	b.Adults = model.Adults
	b.Children = model.Children
	b.RoomPrice = model.RoomPrice
	b.IsKitchen = model.IsKitchen
	b.KitchenTotalBill = model.KitchenTotalBill
	b.ExtraBed = model.ExtraBed
	b.ExtraBedTotalBill = model.ExtraBedBill
	b.VatPercent = model.VatPercent
	b.TaxPercent = model.TaxPercent
	b.TotalBill = model.TotalBill
	b.AdvancePayment = model.AdvancePayment
	b.TotalPaid = model.TotalPaid
	b.DuePayment = model.DuePayment
	b.DueBalance = model.DueBalance
	b.StatusID = int(model.StatusID)
	b.Status = model.StatusID.String()
	b.CanceledBy = model.CanceledBy
	b.CancelReason = model.CancelReason
	b.Channel = string(model.Channel)
	b.BookedByID = model.BookedByID
	b.UpdatedByID = model.UpdatedByID
	b.Note = model.Note
	b.Reference = model.Reference
	b.Metadata.FromModel(model.Metadata)

	b.Payments = make([]PaymentResponse, len(model.Payments))
	for i, p := range model.Payments {
		b.Payments[i] = PaymentResponse{Method: string(p.Method), Amount: p.Amount, TransactionID: p.TransactionID}
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (g *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.TotalPages(totalData, limit)

	g.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		g.Bookings[i].FromModel(mod)
	}
}

// ListFilter narrows booking listings. Canceled bookings are hidden unless IncludeCanceled is set.
type ListFilter struct {
	HotelID         string
	StatusID        int
	BookingNo       string
	Search          string
	IncludeCanceled bool
}

type UserTotalsResponse struct {
	BookedByID string          `json:"bookedByID"`
	Today      decimal.Decimal `json:"today"`
	Last7Days  decimal.Decimal `json:"last7Days"`
	Last30Days decimal.Decimal `json:"last30Days"`
	Overall    decimal.Decimal `json:"overall"`
	Bookings   int             `json:"bookings"`
}

type DashboardResponse struct {
	Users   []UserTotalsResponse `json:"users"`
	Overall UserTotalsResponse   `json:"overall"`
}

// FromModels fills per-user rows and sums them into the overall row.
func (d *DashboardResponse) FromModels(models []model.UserTotals) {
	d.Users = make([]UserTotalsResponse, len(models))
	d.Overall = UserTotalsResponse{BookedByID: "all"}

	for i, m := range models {
		d.Users[i] = UserTotalsResponse{
			BookedByID: m.BookedByID,
			Today:      m.Today,
			Last7Days:  m.Last7Days,
			Last30Days: m.Last30Days,
			Overall:    m.Overall,
			Bookings:   m.Bookings,
		}

		d.Overall.Today = d.Overall.Today.Add(m.Today)
		d.Overall.Last7Days = d.Overall.Last7Days.Add(m.Last7Days)
		d.Overall.Last30Days = d.Overall.Last30Days.Add(m.Last30Days)
		d.Overall.Overall = d.Overall.Overall.Add(m.Overall)
		d.Overall.Bookings += m.Bookings
	}
}
