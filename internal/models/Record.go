package models

import "time"

// Record is the identity block shared by every registry row.
// IDs are assigned by the store on create and never change afterwards.
type Record struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ResetIdentity clears the server-assigned fields so client input can't set them.
func (r *Record) ResetIdentity() {
	*r = Record{}
}

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&Bus{}, &Driver{}, &Shift{}, &Stop{}, &Line{}, &Route{}, &RouteVariant{},
		&LineRoute{}, &RouteVariantRoute{}, &StopVariant{},
	}
}
