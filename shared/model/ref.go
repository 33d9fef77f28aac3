package model

// Ref points at another entity. Name is a display copy resolved through a lookup when the
// referencing record is written; it is never used to identify the entity.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r Ref) IsZero() bool {
	return r.ID == ""
}
