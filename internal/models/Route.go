package models

// Route is a named path. One route may be used by many lines and
// owns its variants through RouteVariantRoute records.
type Route struct {
	Record
	Name string `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
}

type RoutePatch struct {
	Name *string `json:"name"`
}

func (p RoutePatch) Apply(r *Route) bool {
	if p.Name == nil {
		return false
	}
	r.Name = *p.Name
	return true
}
