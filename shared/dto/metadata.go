package dto

import (
	"time"

	"hotelledger/shared/constant"
	"hotelledger/shared/model"
	"hotelledger/shared/timezone"
)

// Metadata is the audit block every resource response carries, rendered in the
// application timezone.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by"`
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return constant.Empty
	}

	return timezone.Format(t, constant.DateFormat)
}

func (m *Metadata) FromModel(src model.Metadata) {
	*m = Metadata{
		CreatedAt:  stamp(src.CreatedAt),
		ModifiedAt: stamp(src.ModifiedAt),
		CreatedBy:  src.CreatedBy,
		ModifiedBy: src.ModifiedBy,
	}
}
