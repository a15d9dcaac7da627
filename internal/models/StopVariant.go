package models

// StopVariant places a stop at a position (1-based) in a variant's sequence.
// The same stop may appear at several positions of one variant.
type StopVariant struct {
	Record
	StopID    uint `json:"stop_id" gorm:"not null;index"`
	VariantID uint `json:"variant_id" gorm:"not null;uniqueIndex:idx_variant_position"`
	Position  int  `json:"position" gorm:"not null;uniqueIndex:idx_variant_position"`

	Stop    *Stop         `json:"-" gorm:"foreignKey:StopID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Variant *RouteVariant `json:"-" gorm:"foreignKey:VariantID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}
