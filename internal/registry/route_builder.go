package registry

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"transport_registry/internal/models"
)

// RouteWithVariantInput describes a route built together with its first variant.
type RouteWithVariantInput struct {
	RouteName      string   `json:"route_name" validate:"required"`
	VariantCode    string   `json:"variant_code" validate:"required,max=32"`
	StopIDs        []uint   `json:"stop_ids"`
	DepartureTimes []string `json:"departure_times"`
	LineNumber     *string  `json:"line_number"`
}

// RouteWithVariant is the composed view returned by CreateRouteWithVariant.
type RouteWithVariant struct {
	ID         uint                `json:"id"`
	Name       string              `json:"name"`
	Variant    models.RouteVariant `json:"variant"`
	Stops      []models.Stop       `json:"stops"`
	LineNumber *string             `json:"line_number"`
}

// CreateRouteWithVariant creates a route, its variant, the variant's ordered
// stops and optionally the assignment to the line with the given number, all
// in one transaction. Stops are checked before anything is written.
func (r *Registry) CreateRouteWithVariant(ctx context.Context, in RouteWithVariantInput) (*RouteWithVariant, error) {
	if err := r.check(EntityRoute, &in); err != nil {
		return nil, err
	}

	var out *RouteWithVariant
	err := r.inTx(ctx, EntityRoute, func(tx *gorm.DB) error {
		stops, err := resolveStops(tx, in.StopIDs)
		if err != nil {
			return err
		}

		route := models.Route{Name: in.RouteName}
		if err := tx.Create(&route).Error; err != nil {
			return classify(err, EntityRoute)
		}

		variant := models.RouteVariant{
			Name:           in.VariantCode,
			VariantCode:    in.VariantCode,
			DepartureTimes: models.DepartureTimes(in.DepartureTimes),
		}
		if err := tx.Create(&variant).Error; err != nil {
			return classify(err, EntityRouteVariant)
		}

		if _, err := linkVariant(tx, route.ID, variant.ID); err != nil {
			return err
		}
		if err := linkStops(tx, variant.ID, stops); err != nil {
			return classify(err, EntityStopVariant)
		}

		var lineNumber *string
		if in.LineNumber != nil && *in.LineNumber != "" {
			var line models.Line
			if err := tx.Where("number = ?", *in.LineNumber).First(&line).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &Error{
						Kind:    KindNotFound,
						Entity:  EntityLine,
						Message: "line with number " + *in.LineNumber + " not found",
					}
				}
				return err
			}
			if _, err := assignRoute(tx, line.ID, route.ID, in.LineNumber); err != nil {
				return err
			}
			lineNumber = in.LineNumber
		}

		out = &RouteWithVariant{
			ID:         route.ID,
			Name:       route.Name,
			Variant:    variant,
			Stops:      stops,
			LineNumber: lineNumber,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
