package validate_test

import (
	"testing"

	"github.com/foodnest/foodnest/pkg/validate"
)

type registerInput struct {
	Email    string  `json:"email"    validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Role     string  `json:"role"     validate:"nullable,in=admin,wholesaler,retailer,dispatch"`
	Price    float64 `json:"price"    validate:"required,gte=0"`
	Stock    int     `json:"stock"    validate:"nullable,gte=0,lte=100000"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(registerInput{
		Email:    "jane@example.com",
		Password: "secret123",
		Role:     "", // nullable — allowed to be empty
		Price:    12.5,
		Stock:    40,
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(registerInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["email"]; !ok {
		t.Error("expected email to be required")
	}
	if _, ok := errs["password"]; !ok {
		t.Error("expected password to be required")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestMinLength(t *testing.T) {
	type in struct {
		Password string `json:"password" validate:"required,min=8"`
	}
	if errs := validate.Struct(in{Password: "short"}); !validate.HasErrors(errs) {
		t.Error("expected short password to fail")
	}
	if errs := validate.Struct(in{Password: "long-enough"}); validate.HasErrors(errs) {
		t.Errorf("expected long password to pass, got: %v", errs)
	}
}

func TestInRuleKeepsParameterCommas(t *testing.T) {
	type in struct {
		Category string `json:"category" validate:"required,in=grains,vegetables,nuts,dairy,roots,other"`
	}
	if errs := validate.Struct(in{Category: "meat"}); !validate.HasErrors(errs) {
		t.Error("expected unknown category to fail")
	}
	for _, c := range []string{"grains", "vegetables", "nuts", "dairy", "roots", "other"} {
		if errs := validate.Struct(in{Category: c}); validate.HasErrors(errs) {
			t.Errorf("expected category %q to pass: %v", c, errs)
		}
	}
}

func TestInFollowedByAnotherRule(t *testing.T) {
	type in struct {
		Role string `json:"role" validate:"in=admin,retailer,max=20"`
	}
	if errs := validate.Struct(in{Role: "dispatch"}); !validate.HasErrors(errs) {
		t.Error("expected role outside the list to fail")
	}
	if errs := validate.Struct(in{Role: "admin"}); validate.HasErrors(errs) {
		t.Errorf("expected admin to pass: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Quantity int `json:"quantity" validate:"required,gte=1"`
	}
	if errs := validate.Struct(in{Quantity: 0}); !validate.HasErrors(errs) {
		t.Error("expected zero quantity to fail")
	}
	if errs := validate.Struct(in{Quantity: 3}); validate.HasErrors(errs) {
		t.Errorf("expected quantity 3 to pass: %v", errs)
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Phone string `json:"phone" validate:"nullable,min=7"`
	}
	// Empty — nullable, remaining rules skipped.
	if errs := validate.Struct(in{Phone: ""}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable to pass: %v", errs)
	}
	// Non-empty but too short — should fail.
	if errs := validate.Struct(in{Phone: "123"}); !validate.HasErrors(errs) {
		t.Error("expected short phone to fail")
	}
}

func TestErrorsKeyedByJSONName(t *testing.T) {
	type in struct {
		PricePerUnit float64 `json:"price_per_unit" validate:"required,gte=0"`
	}
	errs := validate.Struct(in{})
	if _, ok := errs["price_per_unit"]; !ok {
		t.Errorf("expected error keyed by json tag, got: %v", errs)
	}
}
