// internal/models/bus.go
package models

type Bus struct {
	Record
	Registration string `json:"registration" gorm:"uniqueIndex;not null" validate:"required,max=32"`
	Make         string `json:"make" validate:"required"`
	Model        string `json:"model" validate:"required"`
}

// BusPatch carries the mutable fields of a bus; nil means "leave as is".
type BusPatch struct {
	Registration *string `json:"registration"`
	Make         *string `json:"make"`
	Model        *string `json:"model"`
}

// Apply copies the supplied fields onto b and reports whether anything was supplied.
func (p BusPatch) Apply(b *Bus) bool {
	changed := false
	if p.Registration != nil {
		b.Registration = *p.Registration
		changed = true
	}
	if p.Make != nil {
		b.Make = *p.Make
		changed = true
	}
	if p.Model != nil {
		b.Model = *p.Model
		changed = true
	}
	return changed
}
