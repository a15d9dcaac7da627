package models

// RouteVariantRoute links a variant to its owning route. A variant has at most one owner.
type RouteVariantRoute struct {
	Record
	VariantID uint `json:"variant_id" gorm:"not null;uniqueIndex"`
	RouteID   uint `json:"route_id" gorm:"not null;index"`

	Variant *RouteVariant `json:"-" gorm:"foreignKey:VariantID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Route   *Route        `json:"-" gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}
