package models

// LineRoute assigns a route to a line. LineNumber is the label captured at
// assignment time; renumbering the line later does not touch it.
type LineRoute struct {
	Record
	LineID     uint   `json:"line_id" gorm:"not null;uniqueIndex:idx_line_route"`
	RouteID    uint   `json:"route_id" gorm:"not null;uniqueIndex:idx_line_route;index"`
	LineNumber string `json:"line_number"`

	Line  *Line  `json:"-" gorm:"foreignKey:LineID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Route *Route `json:"-" gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}
