package dto

import (
	bookingDto "hotelledger/internal/domains/booking/model/dto"
	"hotelledger/internal/domains/statement/aggregator"
	"hotelledger/internal/domains/statement/model"
	gDto "hotelledger/shared/dto"

	"github.com/shopspring/decimal"
)

// UpdatePaymentRequest records money collected against a booking on searchDate.
type UpdatePaymentRequest struct {
	DailyAmount decimal.Decimal `json:"dailyAmount"`
	SearchDate  string          `json:"searchDate"  validate:"required,day"`
}

type SetExpensesRequest struct {
	DailyExpenses decimal.Decimal `json:"dailyExpenses"`
}

// LineResponse is a booking row of the statement with its reconciled amounts.
type LineResponse struct {
	bookingDto.BookingResponse
	CumulativeTotalPaid decimal.Decimal `json:"cumulativeTotalPaid"`
	DueAmount           decimal.Decimal `json:"dueAmount"`
	DailyAmount         decimal.Decimal `json:"dailyAmount"`
}

func (l *LineResponse) FromLine(line aggregator.Line) {
	l.BookingResponse.FromModel(line.Booking)
	l.CumulativeTotalPaid = line.CumulativePaid
	l.DueAmount = line.DueAmount
	l.DailyAmount = line.DailyAmount
}

type StatementResponse struct {
	Date           string          `json:"date"`
	RegularInvoice []LineResponse  `json:"regularInvoice"`
	UnpaidInvoice  []LineResponse  `json:"unPaidInvoice"`
	DailyIncome    decimal.Decimal `json:"dailyIncome"`
}

func (s *StatementResponse) FromStatement(st aggregator.Statement) {
	s.Date = st.Date
	s.DailyIncome = st.DailyIncome
	s.RegularInvoice = lines(st.RegularInvoice)
	s.UnpaidInvoice = lines(st.UnpaidInvoice)
}

func lines(src []aggregator.Line) []LineResponse {
	res := make([]LineResponse, len(src))
	for i, line := range src {
		res[i].FromLine(line)
	}

	return res
}

type SummaryResponse struct {
	HotelID        string          `json:"hotelID"`
	Date           string          `json:"date"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	DailyIncome    decimal.Decimal `json:"dailyIncome"`
	TotalBalance   decimal.Decimal `json:"totalBalance"`
	DailyExpenses  decimal.Decimal `json:"dailyExpenses"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	ArchiveURL     string          `json:"archiveURL,omitempty"`
	gDto.Metadata
}

func (s *SummaryResponse) FromModel(m model.DailySummary) {
	s.HotelID = m.HotelID
	s.Date = m.Date
	s.OpeningBalance = m.OpeningBalance
	s.DailyIncome = m.DailyIncome
	s.TotalBalance = m.TotalBalance
	s.DailyExpenses = m.DailyExpenses
	s.ClosingBalance = m.ClosingBalance
	s.ArchiveURL = m.ArchiveURL
	s.Metadata.FromModel(m.Metadata)
}

// DailyStatementResponse is the full reconciliation of a day. It is also the archived document.
type DailyStatementResponse struct {
	Statement StatementResponse `json:"statement"`
	Summary   SummaryResponse   `json:"summary"`
}
