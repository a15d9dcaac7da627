package registry

import (
	"context"
	"strconv"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// VariantGeometry exports a variant as a GeoJSON feature collection: a
// LineString through its stops in order, then one Point per stop.
func (r *Registry) VariantGeometry(ctx context.Context, variantID uint) (*geojson.FeatureCollection, error) {
	variant, err := r.GetRouteVariant(ctx, variantID)
	if err != nil {
		return nil, err
	}
	stops, err := r.VariantStops(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if len(stops) < minVariantStops {
		return nil, invalidInput(EntityRouteVariant, "route variant %d has %d stops, a path needs at least %d", variantID, len(stops), minVariantStops)
	}

	coords := make([]geom.Coord, 0, len(stops))
	points := make([]*geojson.Feature, 0, len(stops))
	for _, s := range stops {
		c := geom.Coord{s.Longitude, s.Latitude}
		coords = append(coords, c)
		pt, err := geom.NewPoint(geom.XY).SetCoords(c)
		if err != nil {
			return nil, invalidInput(EntityStop, "stop %d: %v", s.ID, err)
		}
		points = append(points, &geojson.Feature{
			ID:       strconv.FormatUint(uint64(s.ID), 10),
			Geometry: pt,
			Properties: map[string]interface{}{
				"stop_id":  s.ID,
				"name":     s.Name,
				"street":   s.Street,
				"position": s.Position,
			},
		})
	}

	path, err := geom.NewLineString(geom.XY).SetCoords(coords)
	if err != nil {
		return nil, invalidInput(EntityRouteVariant, "route variant %d: %v", variantID, err)
	}

	fc := &geojson.FeatureCollection{
		Features: make([]*geojson.Feature, 0, len(points)+1),
	}
	fc.Features = append(fc.Features, &geojson.Feature{
		ID:       variant.VariantCode,
		Geometry: path,
		Properties: map[string]interface{}{
			"variant_id":      variant.ID,
			"variant_code":    variant.VariantCode,
			"name":            variant.Name,
			"departure_times": []string(variant.DepartureTimes),
		},
	})
	fc.Features = append(fc.Features, points...)
	return fc, nil
}
