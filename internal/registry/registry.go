// Package registry is the transport registry: the entity store for buses,
// drivers, shifts, stops, lines, routes and route variants, and the
// association manager for the join records between them.
//
// Every operation runs in its own database transaction. Uniqueness and
// referential integrity are left to the store; store errors are classified
// into *Error values at the operation boundary.
package registry

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Entity names used in error messages.
const (
	EntityBus               = "bus"
	EntityDriver            = "driver"
	EntityShift             = "shift"
	EntityStop              = "stop"
	EntityLine              = "line"
	EntityRoute             = "route"
	EntityRouteVariant      = "route variant"
	EntityLineRoute         = "line route"
	EntityRouteVariantRoute = "route variant link"
	EntityStopVariant       = "variant stop"
)

type Registry struct {
	db       *gorm.DB
	validate *validator.Validate
}

func New(db *gorm.DB) *Registry {
	return &Registry{db: db, validate: validator.New()}
}

// inTx runs fn in a transaction that is rolled back when fn returns an error.
func (r *Registry) inTx(ctx context.Context, entity string, fn func(tx *gorm.DB) error) error {
	return classify(r.db.WithContext(ctx).Transaction(fn), entity)
}

// check runs struct validation and reports failures as invalid input.
func (r *Registry) check(entity string, v interface{}) error {
	err := r.validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return invalidInput(entity, "%s: field %s failed %q validation", entity, fe.Field(), fe.Tag())
	}
	return invalidInput(entity, "%s: %v", entity, err)
}

// Ping checks that the store is reachable.
func (r *Registry) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return classify(err, "store")
	}
	return classify(sqlDB.PingContext(ctx), "store")
}
