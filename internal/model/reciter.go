package model

import "time"

// Reciter is a registered performer.
//
// Name uniqueness is not enforced anywhere in this layer; see
// CheckReciterExists for the advisory check.
type Reciter struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name" validate:"required"`
	Category  *string   `db:"category" json:"category,omitempty"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Country   *string   `db:"country" json:"country,omitempty"`
	Notes     *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NewReciter holds the client-supplied fields of a reciter. id and
// created_at are assigned by the database.
type NewReciter struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Category *string `json:"category,omitempty" validate:"omitempty,max=100"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=40"`
	Country  *string `json:"country,omitempty" validate:"omitempty,max=100"`
	Notes    *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// Validate implements validation.Validatable.
func (r *NewReciter) Validate() error {
	return validate.Struct(r)
}

// Values returns the insertable columns. Unset optional fields are left
// out so the database default (NULL) applies.
func (r *NewReciter) Values() map[string]any {
	values := map[string]any{"name": r.Name}
	if r.Category != nil {
		values["category"] = *r.Category
	}
	if r.Phone != nil {
		values["phone"] = *r.Phone
	}
	if r.Country != nil {
		values["country"] = *r.Country
	}
	if r.Notes != nil {
		values["notes"] = *r.Notes
	}
	return values
}

// RecitersPage is one page of reciters plus the total row count.
type RecitersPage struct {
	Data    []Reciter `json:"data"`
	Count   int64     `json:"count"`
	HasMore bool      `json:"has_more"`
}

// EmptyRecitersPage is the page returned when nothing could be read.
func EmptyRecitersPage() RecitersPage {
	return RecitersPage{Data: []Reciter{}}
}

// RegistrationStats summarizes the reciters table.
type RegistrationStats struct {
	TotalReciters       int64            `json:"total_reciters"`
	CategoriesCount     map[string]int64 `json:"categories_count"`
	RecentRegistrations int64            `json:"recent_registrations"`
}

// EmptyRegistrationStats is the all-zero stats value.
func EmptyRegistrationStats() RegistrationStats {
	return RegistrationStats{CategoriesCount: map[string]int64{}}
}
