package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodBkash PaymentMethod = "BKASH"
	PaymentMethodNagad PaymentMethod = "NAGAD"
	PaymentMethodBank  PaymentMethod = "BANK"
	PaymentMethodCash  PaymentMethod = "CASH"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodBkash, PaymentMethodNagad, PaymentMethodBank, PaymentMethodCash:
		return true
	default:
		return false
	}
}

type Payment struct {
	Method        PaymentMethod   `json:"method"`
	Amount        decimal.Decimal `json:"amount"`
	TransactionID string          `json:"transactionId,omitempty"`
}

// Payments is stored as a JSONB array.
type Payments []Payment

func (p Payments) Value() (driver.Value, error) {
	if p == nil {
		return []byte("[]"), nil
	}

	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payments: %w", err)
	}

	return data, nil
}

func (p *Payments) Scan(src any) error {
	var data []byte

	switch v := src.(type) {
	case nil:
		*p = Payments{}

		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("payments: unsupported column type")
	}

	if err := json.Unmarshal(data, p); err != nil {
		return fmt.Errorf("failed to unmarshal payments: %w", err)
	}

	return nil
}
