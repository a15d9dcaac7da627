package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"transport_registry/internal/registry"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", &registry.Error{Kind: registry.KindNotFound, Entity: registry.EntityBus, Message: "bus 1 not found"}, http.StatusNotFound},
		{"duplicate", &registry.Error{Kind: registry.KindDuplicateKey, Entity: registry.EntityLine}, http.StatusBadRequest},
		{"conflict", &registry.Error{Kind: registry.KindReferentialConflict, Entity: registry.EntityStop}, http.StatusBadRequest},
		{"invalid", &registry.Error{Kind: registry.KindInvalidInput, Entity: registry.EntityRouteVariant}, http.StatusBadRequest},
		{"store failure", &registry.Error{Kind: registry.KindStoreFailure, Entity: registry.EntityRoute}, http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("op: %w", &registry.Error{Kind: registry.KindNotFound}), http.StatusNotFound},
		{"foreign", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusFor(tc.err))
		})
	}
}
