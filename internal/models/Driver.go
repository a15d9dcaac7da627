// internal/models/driver.go
package models

type Driver struct {
	Record
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	NationalID string `json:"national_id" gorm:"uniqueIndex;not null" validate:"required,max=32"` // PESEL
}

type DriverPatch struct {
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	NationalID *string `json:"national_id"`
}

func (p DriverPatch) Apply(d *Driver) bool {
	changed := false
	if p.FirstName != nil {
		d.FirstName = *p.FirstName
		changed = true
	}
	if p.LastName != nil {
		d.LastName = *p.LastName
		changed = true
	}
	if p.NationalID != nil {
		d.NationalID = *p.NationalID
		changed = true
	}
	return changed
}
