package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// DepartureTimes is the opaque departure list of a variant, e.g. ["05:10", "05:40"].
// It is persisted as a JSON array in a text column.
type DepartureTimes []string

// Value implements driver.Valuer.
func (d DepartureTimes) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(d))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (d *DepartureTimes) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = DepartureTimes{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("departure times: unsupported column type %T", src)
	}
	if len(raw) == 0 {
		*d = DepartureTimes{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("departure times: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*d = out
	return nil
}

// RouteVariant is a concrete ordered stop sequence with its departures.
// Stops are attached through StopVariant, the owning route through RouteVariantRoute.
type RouteVariant struct {
	Record
	Name           string         `json:"name"`
	VariantCode    string         `json:"variant_code" gorm:"uniqueIndex;not null" validate:"required,max=32"`
	DepartureTimes DepartureTimes `json:"departure_times" gorm:"type:text"`
}

// BeforeSave defaults the name to the code and keeps departures non-null.
func (v *RouteVariant) BeforeSave(tx *gorm.DB) error {
	if v.Name == "" {
		v.Name = v.VariantCode
	}
	if v.DepartureTimes == nil {
		v.DepartureTimes = DepartureTimes{}
	}
	return nil
}

// RouteVariantPatch accepts "code" on the wire for the variant code.
type RouteVariantPatch struct {
	Name           *string         `json:"name"`
	Code           *string         `json:"code"`
	DepartureTimes *DepartureTimes `json:"departure_times"`
}

func (p RouteVariantPatch) Apply(v *RouteVariant) bool {
	changed := false
	if p.Name != nil {
		v.Name = *p.Name
		changed = true
	}
	if p.Code != nil {
		v.VariantCode = *p.Code
		changed = true
	}
	if p.DepartureTimes != nil {
		v.DepartureTimes = *p.DepartureTimes
		changed = true
	}
	return changed
}
