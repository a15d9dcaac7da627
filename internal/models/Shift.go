package models

// Shift is a duty grouping ("brygada") for drivers and buses.
type Shift struct {
	Record
	Name string `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
}

type ShiftPatch struct {
	Name *string `json:"name"`
}

func (p ShiftPatch) Apply(s *Shift) bool {
	if p.Name == nil {
		return false
	}
	s.Name = *p.Name
	return true
}
