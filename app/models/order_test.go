package models_test

import (
	"testing"

	"github.com/foodnest/foodnest/app/models"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    models.OrderStatus
		to      models.OrderStatus
		allowed bool
	}{
		{models.OrderPending, models.OrderCompleted, true},
		{models.OrderPending, models.OrderCancelled, true},
		{models.OrderCompleted, models.OrderCancelled, false},
		{models.OrderCompleted, models.OrderPending, false},
		{models.OrderCancelled, models.OrderCompleted, false},
		{models.OrderCancelled, models.OrderPending, false},
		{models.OrderPending, models.OrderPending, false},
	}

	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.allowed {
			t.Errorf("%s -> %s: got %v, want %v", c.from, c.to, got, c.allowed)
		}
	}
}

func TestOrderStatusIsValid(t *testing.T) {
	for _, s := range []models.OrderStatus{models.OrderPending, models.OrderCompleted, models.OrderCancelled} {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if models.OrderStatus("shipped").IsValid() {
		t.Error("unknown status should be invalid")
	}
}

func TestRoleIsValid(t *testing.T) {
	for _, r := range []models.Role{models.RoleAdmin, models.RoleWholesaler, models.RoleRetailer, models.RoleDispatch} {
		if !r.IsValid() {
			t.Errorf("%s should be valid", r)
		}
	}
	if models.Role("superuser").IsValid() {
		t.Error("unknown role should be invalid")
	}
}

func TestCategoryIsValid(t *testing.T) {
	for _, c := range []models.Category{
		models.CategoryGrains, models.CategoryVegetables, models.CategoryNuts,
		models.CategoryDairy, models.CategoryRoots, models.CategoryOther,
	} {
		if !c.IsValid() {
			t.Errorf("%s should be valid", c)
		}
	}
	if models.Category("meat").IsValid() {
		t.Error("unknown category should be invalid")
	}
}
