package models

// Line is a numbered service identity, e.g. "5" towards "Dworzec".
// A line is served by routes through LineRoute records.
type Line struct {
	Record
	Number      string `json:"number" gorm:"uniqueIndex;not null" validate:"required,max=16"`
	Direction   string `json:"direction"`
	Description string `json:"description"`
}

type LinePatch struct {
	Number      *string `json:"number"`
	Direction   *string `json:"direction"`
	Description *string `json:"description"`
}

func (p LinePatch) Apply(l *Line) bool {
	changed := false
	if p.Number != nil {
		l.Number = *p.Number
		changed = true
	}
	if p.Direction != nil {
		l.Direction = *p.Direction
		changed = true
	}
	if p.Description != nil {
		l.Description = *p.Description
		changed = true
	}
	return changed
}
