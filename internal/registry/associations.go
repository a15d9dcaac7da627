package registry

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"transport_registry/internal/models"
)

// RouteForLine is one row of the line_routes ⋈ routes projection.
type RouteForLine struct {
	AssociationID uint   `json:"association_id"`
	RouteID       uint   `json:"route_id"`
	RouteName     string `json:"route_name"`
	LineNumber    string `json:"line_number"`
}

// LineForRoute is one row of the line_routes ⋈ lines projection.
type LineForRoute struct {
	AssociationID uint   `json:"association_id"`
	LineID        uint   `json:"line_id"`
	LineNumber    string `json:"line_number"`
	Direction     string `json:"direction"`
	Description   string `json:"description"`
}

type LineWithRoutes struct {
	models.Line
	Routes []RouteForLine `json:"routes"`
}

type RouteWithLines struct {
	models.Route
	Lines []LineForRoute `json:"lines"`
}

// BatchItem reports the outcome of one route in AssignRoutes.
type BatchItem struct {
	RouteID      uint   `json:"route_id"`
	Status       string `json:"status"`
	AssignmentID uint   `json:"assignment_id,omitempty"`
	Message      string `json:"message,omitempty"`
}

type BatchResult struct {
	SuccessCount int         `json:"success_count"`
	ErrorCount   int         `json:"error_count"`
	Results      []BatchItem `json:"results"`
	Errors       []BatchItem `json:"errors"`
}

// AssignRoute links a route to a line. When label is nil or empty the line's
// current number is copied onto the association.
func (r *Registry) AssignRoute(ctx context.Context, lineID, routeID uint, label *string) (*models.LineRoute, error) {
	var lr *models.LineRoute
	err := r.inTx(ctx, EntityLineRoute, func(tx *gorm.DB) error {
		var err error
		lr, err = assignRoute(tx, lineID, routeID, label)
		return err
	})
	if err != nil {
		return nil, err
	}
	return lr, nil
}

func assignRoute(tx *gorm.DB, lineID, routeID uint, label *string) (*models.LineRoute, error) {
	var line models.Line
	if err := tx.First(&line, lineID).Error; err != nil {
		return nil, notFoundOr(err, EntityLine, lineID)
	}
	var route models.Route
	if err := tx.First(&route, routeID).Error; err != nil {
		return nil, notFoundOr(err, EntityRoute, routeID)
	}

	var n int64
	if err := tx.Model(&models.LineRoute{}).
		Where("line_id = ? AND route_id = ?", lineID, routeID).
		Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, duplicate(EntityLineRoute, "route %d is already assigned to line %d", routeID, lineID)
	}

	lr := models.LineRoute{LineID: lineID, RouteID: routeID, LineNumber: line.Number}
	if label != nil && *label != "" {
		lr.LineNumber = *label
	}
	if err := tx.Create(&lr).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, duplicate(EntityLineRoute, "route %d is already assigned to line %d", routeID, lineID)
		}
		return nil, err
	}
	return &lr, nil
}

// UnassignRoute removes the association between a line and a route.
func (r *Registry) UnassignRoute(ctx context.Context, lineID, routeID uint) error {
	return r.inTx(ctx, EntityLineRoute, func(tx *gorm.DB) error {
		res := tx.Where("line_id = ? AND route_id = ?", lineID, routeID).Delete(&models.LineRoute{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &Error{
				Kind:    KindNotFound,
				Entity:  EntityLineRoute,
				Message: "route is not assigned to this line",
			}
		}
		return nil
	})
}

// RoutesForLine lists the routes assigned to a line in assignment order.
// An unknown line yields an empty list.
func (r *Registry) RoutesForLine(ctx context.Context, lineID uint) ([]RouteForLine, error) {
	return routesForLine(r.db.WithContext(ctx), lineID)
}

func routesForLine(db *gorm.DB, lineID uint) ([]RouteForLine, error) {
	out := []RouteForLine{}
	err := db.Table("line_routes AS lr").
		Select("lr.id AS association_id, rt.id AS route_id, rt.name AS route_name, lr.line_number AS line_number").
		Joins("JOIN routes AS rt ON rt.id = lr.route_id").
		Where("lr.line_id = ?", lineID).
		Order("lr.id").
		Scan(&out).Error
	if err != nil {
		return nil, classify(err, EntityLineRoute)
	}
	return out, nil
}

// LinesForRoute lists the lines a route is assigned to in assignment order.
func (r *Registry) LinesForRoute(ctx context.Context, routeID uint) ([]LineForRoute, error) {
	return linesForRoute(r.db.WithContext(ctx), routeID)
}

func linesForRoute(db *gorm.DB, routeID uint) ([]LineForRoute, error) {
	out := []LineForRoute{}
	err := db.Table("line_routes AS lr").
		Select("lr.id AS association_id, ln.id AS line_id, ln.number AS line_number, ln.direction AS direction, ln.description AS description").
		Joins("JOIN lines AS ln ON ln.id = lr.line_id").
		Where("lr.route_id = ?", routeID).
		Order("lr.id").
		Scan(&out).Error
	if err != nil {
		return nil, classify(err, EntityLineRoute)
	}
	return out, nil
}

// AssignRoutes assigns each route independently. A failed item is reported
// in Errors and does not undo the others. A store failure stops the batch.
func (r *Registry) AssignRoutes(ctx context.Context, lineID uint, routeIDs []uint) (*BatchResult, error) {
	res := &BatchResult{Results: []BatchItem{}, Errors: []BatchItem{}}
	for _, routeID := range routeIDs {
		lr, err := r.AssignRoute(ctx, lineID, routeID, nil)
		if err != nil {
			if errors.Is(err, ErrStoreFailure) {
				return nil, err
			}
			res.Errors = append(res.Errors, BatchItem{RouteID: routeID, Status: "error", Message: err.Error()})
			continue
		}
		res.Results = append(res.Results, BatchItem{RouteID: routeID, Status: "success", AssignmentID: lr.ID})
	}
	res.SuccessCount = len(res.Results)
	res.ErrorCount = len(res.Errors)
	return res, nil
}

// LineWithRoutes returns a line together with all of its routes.
func (r *Registry) LineWithRoutes(ctx context.Context, lineID uint) (*LineWithRoutes, error) {
	out := &LineWithRoutes{}
	err := r.inTx(ctx, EntityLine, func(tx *gorm.DB) error {
		if err := tx.First(&out.Line, lineID).Error; err != nil {
			return notFoundOr(err, EntityLine, lineID)
		}
		routes, err := routesForLine(tx, lineID)
		if err != nil {
			return err
		}
		out.Routes = routes
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RouteWithLines returns a route together with every line that uses it.
func (r *Registry) RouteWithLines(ctx context.Context, routeID uint) (*RouteWithLines, error) {
	out := &RouteWithLines{}
	err := r.inTx(ctx, EntityRoute, func(tx *gorm.DB) error {
		if err := tx.First(&out.Route, routeID).Error; err != nil {
			return notFoundOr(err, EntityRoute, routeID)
		}
		lines, err := linesForRoute(tx, routeID)
		if err != nil {
			return err
		}
		out.Lines = lines
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LinkVariant makes routeID the owner of variantID.
func (r *Registry) LinkVariant(ctx context.Context, routeID, variantID uint) (*models.RouteVariantRoute, error) {
	var link *models.RouteVariantRoute
	err := r.inTx(ctx, EntityRouteVariantRoute, func(tx *gorm.DB) error {
		var err error
		link, err = linkVariant(tx, routeID, variantID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

func linkVariant(tx *gorm.DB, routeID, variantID uint) (*models.RouteVariantRoute, error) {
	var route models.Route
	if err := tx.First(&route, routeID).Error; err != nil {
		return nil, notFoundOr(err, EntityRoute, routeID)
	}
	var variant models.RouteVariant
	if err := tx.First(&variant, variantID).Error; err != nil {
		return nil, notFoundOr(err, EntityRouteVariant, variantID)
	}

	var existing models.RouteVariantRoute
	err := tx.Where("variant_id = ?", variantID).First(&existing).Error
	switch {
	case err == nil:
		return nil, duplicate(EntityRouteVariantRoute, "variant %d already belongs to route %d", variantID, existing.RouteID)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	link := models.RouteVariantRoute{VariantID: variantID, RouteID: routeID}
	if err := tx.Create(&link).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, duplicate(EntityRouteVariantRoute, "variant %d already belongs to a route", variantID)
		}
		return nil, err
	}
	return &link, nil
}

// UnlinkVariant detaches a variant from its route.
func (r *Registry) UnlinkVariant(ctx context.Context, routeID, variantID uint) error {
	return r.inTx(ctx, EntityRouteVariantRoute, func(tx *gorm.DB) error {
		res := tx.Where("route_id = ? AND variant_id = ?", routeID, variantID).Delete(&models.RouteVariantRoute{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &Error{
				Kind:    KindNotFound,
				Entity:  EntityRouteVariantRoute,
				Message: "variant is not linked to this route",
			}
		}
		return nil
	})
}

// VariantsForRoute lists the variants owned by a route in link order.
func (r *Registry) VariantsForRoute(ctx context.Context, routeID uint) ([]models.RouteVariant, error) {
	out := []models.RouteVariant{}
	err := r.inTx(ctx, EntityRoute, func(tx *gorm.DB) error {
		var route models.Route
		if err := tx.First(&route, routeID).Error; err != nil {
			return notFoundOr(err, EntityRoute, routeID)
		}
		return tx.Model(&models.RouteVariant{}).
			Joins("JOIN route_variant_routes AS rvr ON rvr.variant_id = route_variants.id").
			Where("rvr.route_id = ?", routeID).
			Order("rvr.id").
			Find(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// notFoundOr maps a missing row to a NotFound error naming the id and
// passes other errors through for classification.
func notFoundOr(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity, id)
	}
	return err
}
