package models

// Stop is a named boarding point. Coordinates are stored as given (WGS84).
type Stop struct {
	Record
	Name      string  `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Street    string  `json:"street"`
}

type StopPatch struct {
	Name      *string  `json:"name"`
	Longitude *float64 `json:"longitude"`
	Latitude  *float64 `json:"latitude"`
	Street    *string  `json:"street"`
}

func (p StopPatch) Apply(s *Stop) bool {
	changed := false
	if p.Name != nil {
		s.Name = *p.Name
		changed = true
	}
	if p.Longitude != nil {
		s.Longitude = *p.Longitude
		changed = true
	}
	if p.Latitude != nil {
		s.Latitude = *p.Latitude
		changed = true
	}
	if p.Street != nil {
		s.Street = *p.Street
		changed = true
	}
	return changed
}
