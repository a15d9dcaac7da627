package registry

import (
	"context"

	"gorm.io/gorm"

	"transport_registry/internal/models"
)

// minVariantStops is the shortest stop sequence a variant may be built with.
const minVariantStops = 2

// VariantStop is a stop as visited by a variant.
type VariantStop struct {
	Position int `json:"position"`
	models.Stop
}

// VariantStops returns the stops of a variant ordered by position.
func (r *Registry) VariantStops(ctx context.Context, variantID uint) ([]VariantStop, error) {
	var out []VariantStop
	err := r.inTx(ctx, EntityRouteVariant, func(tx *gorm.DB) error {
		var variant models.RouteVariant
		if err := tx.First(&variant, variantID).Error; err != nil {
			return notFoundOr(err, EntityRouteVariant, variantID)
		}
		var err error
		out, err = variantStops(tx, variantID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func variantStops(tx *gorm.DB, variantID uint) ([]VariantStop, error) {
	out := []VariantStop{}
	err := tx.Table("stop_variants AS sv").
		Select("sv.position AS position, st.id AS id, st.created_at AS created_at, st.updated_at AS updated_at, " +
			"st.name AS name, st.longitude AS longitude, st.latitude AS latitude, st.street AS street").
		Joins("JOIN stops AS st ON st.id = sv.stop_id").
		Where("sv.variant_id = ?", variantID).
		Order("sv.position").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReplaceVariantStops swaps the whole stop sequence of a variant. Positions
// are reassigned 1..N in the order given.
func (r *Registry) ReplaceVariantStops(ctx context.Context, variantID uint, stopIDs []uint) ([]VariantStop, error) {
	var out []VariantStop
	err := r.inTx(ctx, EntityStopVariant, func(tx *gorm.DB) error {
		var variant models.RouteVariant
		if err := tx.First(&variant, variantID).Error; err != nil {
			return notFoundOr(err, EntityRouteVariant, variantID)
		}
		stops, err := resolveStops(tx, stopIDs)
		if err != nil {
			return err
		}
		if err := tx.Where("variant_id = ?", variantID).Delete(&models.StopVariant{}).Error; err != nil {
			return err
		}
		if err := linkStops(tx, variantID, stops); err != nil {
			return err
		}
		out, err = variantStops(tx, variantID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// resolveStops loads the stops in the given order. The first unknown id is
// reported as NotFound; fewer than two stops is invalid input.
func resolveStops(tx *gorm.DB, ids []uint) ([]models.Stop, error) {
	found := []models.Stop{}
	if len(ids) > 0 {
		if err := tx.Where("id IN ?", ids).Find(&found).Error; err != nil {
			return nil, err
		}
	}
	byID := make(map[uint]models.Stop, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	stops := make([]models.Stop, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, notFound(EntityStop, id)
		}
		stops = append(stops, s)
	}
	if len(stops) < minVariantStops {
		return nil, invalidInput(EntityRouteVariant, "a route variant needs at least %d stops, got %d", minVariantStops, len(stops))
	}
	return stops, nil
}

func linkStops(tx *gorm.DB, variantID uint, stops []models.Stop) error {
	links := make([]models.StopVariant, 0, len(stops))
	for i, s := range stops {
		links = append(links, models.StopVariant{StopID: s.ID, VariantID: variantID, Position: i + 1})
	}
	return tx.Create(&links).Error
}
