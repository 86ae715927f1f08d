package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foodnest/foodnest/pkg/apperr"
	"github.com/foodnest/foodnest/pkg/paginate"
	"github.com/foodnest/foodnest/pkg/response"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	return body
}

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Success(rec, map[string]string{"id": "abc"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	body := decode(t, rec)
	if body["status"] != float64(200) {
		t.Errorf("status field = %v", body["status"])
	}
	data := body["data"].(map[string]interface{})
	if data["id"] != "abc" {
		t.Errorf("data = %v", data)
	}
}

func TestPaginatedFlattensMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	meta := paginate.Params{Page: 2, PageSize: 10}.MetaFor(35)
	response.Paginated(rec, []string{"a", "b"}, meta)

	data := decode(t, rec)["data"].(map[string]interface{})
	if data["page"] != float64(2) || data["page_size"] != float64(10) {
		t.Errorf("page fields = %v/%v", data["page"], data["page_size"])
	}
	if data["total_count"] != float64(35) || data["total_pages"] != float64(4) {
		t.Errorf("total fields = %v/%v", data["total_count"], data["total_pages"])
	}
	if items := data["items"].([]interface{}); len(items) != 2 {
		t.Errorf("items = %v", items)
	}
}

func TestFromErrorMapsTaxonomy(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperr.NotFound("order 42"), http.StatusNotFound},
		{apperr.Forbidden("not allowed"), http.StatusForbidden},
		{apperr.Validation("bad category"), http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		rec := httptest.NewRecorder()
		response.FromError(rec, c.err)
		if rec.Code != c.status {
			t.Errorf("FromError(%v) status = %d, want %d", c.err, rec.Code, c.status)
		}
	}

	// Internal errors never leak their text.
	rec := httptest.NewRecorder()
	response.FromError(rec, errors.New("pq: secret dsn"))
	if body := decode(t, rec); body["message"] != "Internal Server Error" {
		t.Errorf("internal message leaked: %v", body["message"])
	}
}

func TestValidationErrorCarriesFieldMap(t *testing.T) {
	rec := httptest.NewRecorder()
	response.ValidationError(rec, map[string]string{"email": "The email field is required."})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	errs := decode(t, rec)["errors"].(map[string]interface{})
	if errs["email"] == "" {
		t.Errorf("errors = %v", errs)
	}
}

func TestNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	response.NoContent(rec)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Error("204 must have an empty body")
	}
}
