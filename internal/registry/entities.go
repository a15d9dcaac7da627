package registry

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"transport_registry/internal/models"
)

type identity interface {
	ResetIdentity()
}

// reference names a join table column that points at an entity.
type reference struct {
	model  interface{}
	column string
	what   string
}

var (
	stopRefs = []reference{
		{&models.StopVariant{}, "stop_id", "route variants"},
	}
	lineRefs = []reference{
		{&models.LineRoute{}, "line_id", "routes"},
	}
	routeRefs = []reference{
		{&models.LineRoute{}, "route_id", "lines"},
		{&models.RouteVariantRoute{}, "route_id", "route variants"},
	}
	variantRefs = []reference{
		{&models.StopVariant{}, "variant_id", "stops"},
		{&models.RouteVariantRoute{}, "variant_id", "routes"},
	}
)

func (r *Registry) create(ctx context.Context, entity string, rec identity) error {
	rec.ResetIdentity()
	if err := r.check(entity, rec); err != nil {
		return err
	}
	return r.inTx(ctx, entity, func(tx *gorm.DB) error {
		return tx.Create(rec).Error
	})
}

func getRecord[T any](ctx context.Context, db *gorm.DB, entity string, id uint) (*T, error) {
	var rec T
	if err := db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(entity, id)
		}
		return nil, classify(err, entity)
	}
	return &rec, nil
}

func listRecords[T any](ctx context.Context, db *gorm.DB, entity, order string) ([]T, error) {
	out := []T{}
	if err := db.WithContext(ctx).Order(order).Find(&out).Error; err != nil {
		return nil, classify(err, entity)
	}
	return out, nil
}

// updateRecord loads the row, applies the patch and saves it. An empty patch
// returns the row untouched without writing.
func updateRecord[T any](ctx context.Context, r *Registry, entity string, id uint, apply func(*T) bool) (*T, error) {
	var out T
	err := r.inTx(ctx, entity, func(tx *gorm.DB) error {
		if err := tx.First(&out, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(entity, id)
			}
			return err
		}
		if !apply(&out) {
			return nil
		}
		if err := r.check(entity, &out); err != nil {
			return err
		}
		return tx.Save(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// deleteRecord removes the row unless a join record still points at it.
func deleteRecord[T any](ctx context.Context, r *Registry, entity string, id uint, refs []reference) error {
	return r.inTx(ctx, entity, func(tx *gorm.DB) error {
		var rec T
		if err := tx.First(&rec, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(entity, id)
			}
			return err
		}
		for _, ref := range refs {
			var n int64
			if err := tx.Model(ref.model).Where(ref.column+" = ?", id).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return conflict(entity, "%s %d is still linked to %s; remove the links first", entity, id, ref.what)
			}
		}
		return tx.Delete(&rec).Error
	})
}

// Buses

func (r *Registry) CreateBus(ctx context.Context, b *models.Bus) error {
	return r.create(ctx, EntityBus, b)
}

func (r *Registry) GetBus(ctx context.Context, id uint) (*models.Bus, error) {
	return getRecord[models.Bus](ctx, r.db, EntityBus, id)
}

func (r *Registry) ListBuses(ctx context.Context) ([]models.Bus, error) {
	return listRecords[models.Bus](ctx, r.db, EntityBus, "id")
}

func (r *Registry) UpdateBus(ctx context.Context, id uint, p models.BusPatch) (*models.Bus, error) {
	return updateRecord(ctx, r, EntityBus, id, p.Apply)
}

func (r *Registry) DeleteBus(ctx context.Context, id uint) error {
	return deleteRecord[models.Bus](ctx, r, EntityBus, id, nil)
}

// Drivers

func (r *Registry) CreateDriver(ctx context.Context, d *models.Driver) error {
	return r.create(ctx, EntityDriver, d)
}

func (r *Registry) GetDriver(ctx context.Context, id uint) (*models.Driver, error) {
	return getRecord[models.Driver](ctx, r.db, EntityDriver, id)
}

func (r *Registry) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	return listRecords[models.Driver](ctx, r.db, EntityDriver, "id")
}

func (r *Registry) UpdateDriver(ctx context.Context, id uint, p models.DriverPatch) (*models.Driver, error) {
	return updateRecord(ctx, r, EntityDriver, id, p.Apply)
}

func (r *Registry) DeleteDriver(ctx context.Context, id uint) error {
	return deleteRecord[models.Driver](ctx, r, EntityDriver, id, nil)
}

// Shifts

func (r *Registry) CreateShift(ctx context.Context, s *models.Shift) error {
	return r.create(ctx, EntityShift, s)
}

func (r *Registry) GetShift(ctx context.Context, id uint) (*models.Shift, error) {
	return getRecord[models.Shift](ctx, r.db, EntityShift, id)
}

// ListShifts returns shifts ordered by name.
func (r *Registry) ListShifts(ctx context.Context) ([]models.Shift, error) {
	return listRecords[models.Shift](ctx, r.db, EntityShift, "name ASC")
}

func (r *Registry) UpdateShift(ctx context.Context, id uint, p models.ShiftPatch) (*models.Shift, error) {
	return updateRecord(ctx, r, EntityShift, id, p.Apply)
}

func (r *Registry) DeleteShift(ctx context.Context, id uint) error {
	return deleteRecord[models.Shift](ctx, r, EntityShift, id, nil)
}

// Stops

func (r *Registry) CreateStop(ctx context.Context, s *models.Stop) error {
	return r.create(ctx, EntityStop, s)
}

func (r *Registry) GetStop(ctx context.Context, id uint) (*models.Stop, error) {
	return getRecord[models.Stop](ctx, r.db, EntityStop, id)
}

func (r *Registry) ListStops(ctx context.Context) ([]models.Stop, error) {
	return listRecords[models.Stop](ctx, r.db, EntityStop, "id")
}

func (r *Registry) UpdateStop(ctx context.Context, id uint, p models.StopPatch) (*models.Stop, error) {
	return updateRecord(ctx, r, EntityStop, id, p.Apply)
}

// DeleteStop fails with ErrReferentialConflict while any variant visits the stop.
func (r *Registry) DeleteStop(ctx context.Context, id uint) error {
	return deleteRecord[models.Stop](ctx, r, EntityStop, id, stopRefs)
}

// Lines

func (r *Registry) CreateLine(ctx context.Context, l *models.Line) error {
	return r.create(ctx, EntityLine, l)
}

func (r *Registry) GetLine(ctx context.Context, id uint) (*models.Line, error) {
	return getRecord[models.Line](ctx, r.db, EntityLine, id)
}

// ListLines returns lines ordered by number, shorter numbers first so that
// "2" sorts before "10".
func (r *Registry) ListLines(ctx context.Context) ([]models.Line, error) {
	return listRecords[models.Line](ctx, r.db, EntityLine, "LENGTH(number) ASC, number ASC")
}

func (r *Registry) UpdateLine(ctx context.Context, id uint, p models.LinePatch) (*models.Line, error) {
	return updateRecord(ctx, r, EntityLine, id, p.Apply)
}

func (r *Registry) DeleteLine(ctx context.Context, id uint) error {
	return deleteRecord[models.Line](ctx, r, EntityLine, id, lineRefs)
}

// Routes

func (r *Registry) CreateRoute(ctx context.Context, rt *models.Route) error {
	return r.create(ctx, EntityRoute, rt)
}

func (r *Registry) GetRoute(ctx context.Context, id uint) (*models.Route, error) {
	return getRecord[models.Route](ctx, r.db, EntityRoute, id)
}

func (r *Registry) ListRoutes(ctx context.Context) ([]models.Route, error) {
	return listRecords[models.Route](ctx, r.db, EntityRoute, "id")
}

func (r *Registry) UpdateRoute(ctx context.Context, id uint, p models.RoutePatch) (*models.Route, error) {
	return updateRecord(ctx, r, EntityRoute, id, p.Apply)
}

func (r *Registry) DeleteRoute(ctx context.Context, id uint) error {
	return deleteRecord[models.Route](ctx, r, EntityRoute, id, routeRefs)
}

// Route variants

func (r *Registry) CreateRouteVariant(ctx context.Context, v *models.RouteVariant) error {
	return r.create(ctx, EntityRouteVariant, v)
}

func (r *Registry) GetRouteVariant(ctx context.Context, id uint) (*models.RouteVariant, error) {
	return getRecord[models.RouteVariant](ctx, r.db, EntityRouteVariant, id)
}

func (r *Registry) ListRouteVariants(ctx context.Context) ([]models.RouteVariant, error) {
	return listRecords[models.RouteVariant](ctx, r.db, EntityRouteVariant, "id")
}

func (r *Registry) UpdateRouteVariant(ctx context.Context, id uint, p models.RouteVariantPatch) (*models.RouteVariant, error) {
	return updateRecord(ctx, r, EntityRouteVariant, id, p.Apply)
}

func (r *Registry) DeleteRouteVariant(ctx context.Context, id uint) error {
	return deleteRecord[models.RouteVariant](ctx, r, EntityRouteVariant, id, variantRefs)
}
