package accessrequests_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	feature "github.com/forgefit/adminhub/internal/app/features/accessrequests"
	"github.com/forgefit/adminhub/internal/app/store/accessrequests"
	"github.com/forgefit/adminhub/internal/app/store/docstore/memdoc"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	store := accessrequests.New(memdoc.New(), zap.NewNop())
	return feature.Routes(feature.NewHandler(store, zap.NewNop()))
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSubmit(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, "POST", "/",
		`{"email":"Coach@Example.com","is_coach":true,"use_case":"team programming"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Submit status = %d, body %s", rec.Code, rec.Body.String())
	}

	var got struct {
		ID     string         `json:"id"`
		Email  string         `json:"email"`
		Status string         `json:"status"`
		Extra  map[string]any `json:"extra"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if got.ID != "coach@example.com" || got.Email != "coach@example.com" {
		t.Errorf("ID/Email = %q/%q, want normalized email", got.ID, got.Email)
	}
	if got.Status != "requested" {
		t.Errorf("Status = %q, want requested", got.Status)
	}
	if got.Extra["is_coach"] != true {
		t.Errorf("Extra = %+v, want profile fields preserved", got.Extra)
	}
}

func TestSubmit_Resubmit(t *testing.T) {
	router := newRouter(t)

	if rec := do(t, router, "POST", "/", `{"email":"a@b.com"}`); rec.Code != http.StatusOK {
		t.Fatalf("first submit status = %d", rec.Code)
	}
	if rec := do(t, router, "POST", "/", `{"email":"A@B.COM","note":"again"}`); rec.Code != http.StatusOK {
		t.Fatalf("resubmit status = %d", rec.Code)
	}

	rec := do(t, router, "GET", "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("List status = %d", rec.Code)
	}
	var resp struct {
		Requests []struct {
			ID string `json:"id"`
		} `json:"requests"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse list response: %v", err)
	}
	if len(resp.Requests) != 1 {
		t.Errorf("List returned %d requests after resubmit, want 1", len(resp.Requests))
	}
}

func TestSubmit_BadRequests(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"missing email", `{"note":"hi"}`},
		{"bad status", `{"email":"a@b.com","status":"approved"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, "POST", "/", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestSetStatusAndCheck(t *testing.T) {
	router := newRouter(t)

	if rec := do(t, router, "POST", "/", `{"email":"coach@b.com"}`); rec.Code != http.StatusOK {
		t.Fatalf("Submit status = %d", rec.Code)
	}

	// Not active yet.
	rec := do(t, router, "GET", "/check?email=coach@b.com", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Check status = %d", rec.Code)
	}
	var check struct {
		HasAccess bool `json:"has_access"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &check); err != nil {
		t.Fatalf("parse check response: %v", err)
	}
	if check.HasAccess {
		t.Error("has_access = true before activation")
	}

	rec = do(t, router, "POST", "/coach@b.com/status", `{"status":"active","actor":"admin"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("SetStatus status = %d, body %s", rec.Code, rec.Body.String())
	}
	var updated struct {
		Status     string  `json:"status"`
		ApprovedAt *string `json:"approved_at"`
		ApprovedBy string  `json:"approved_by"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("parse status response: %v", err)
	}
	if updated.Status != "active" || updated.ApprovedAt == nil || updated.ApprovedBy != "admin" {
		t.Errorf("SetStatus response = %+v", updated)
	}

	rec = do(t, router, "GET", "/check?email=COACH@b.com", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &check); err != nil {
		t.Fatalf("parse check response: %v", err)
	}
	if !check.HasAccess {
		t.Error("has_access = false after activation")
	}
}

func TestSetStatus_Errors(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, "POST", "/nobody@b.com/status", `{"status":"active"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("SetStatus unknown id status = %d, want 404", rec.Code)
	}

	if rec := do(t, router, "POST", "/", `{"email":"a@b.com"}`); rec.Code != http.StatusOK {
		t.Fatalf("Submit status = %d", rec.Code)
	}
	rec = do(t, router, "POST", "/a@b.com/status", `{"status":"banned"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("SetStatus bad status = %d, want 400", rec.Code)
	}
}

func TestCheck_MissingEmail(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, "GET", "/check", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Check without email status = %d, want 400", rec.Code)
	}
}

func TestDelete(t *testing.T) {
	router := newRouter(t)

	if rec := do(t, router, "POST", "/", `{"email":"a@b.com"}`); rec.Code != http.StatusOK {
		t.Fatalf("Submit status = %d", rec.Code)
	}

	rec := do(t, router, "DELETE", "/a@b.com", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("Delete status = %d, want 204", rec.Code)
	}
	rec = do(t, router, "DELETE", "/a@b.com", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("Delete again status = %d, want 204", rec.Code)
	}
}
