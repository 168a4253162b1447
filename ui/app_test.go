package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pincheck/app"
	"pincheck/domain/serviceability"
	apperrors "pincheck/internal/errors"
	"pincheck/ports"
)

func newTestAPI(t *testing.T, fetcher ports.SheetFetcherPort) *App {
	t.Helper()
	checker := app.NewCheckerService(app.NewLoaderService(fetcher), time.Minute)
	return NewApp(Config{Port: "0"}, checker, app.NewCoverageService())
}

func apiGet(a *App, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	return rec
}

func TestAPIServiceability(t *testing.T) {
	a := newTestAPI(t, &stubFetcher{body: uiSheetCSV})

	rec := apiGet(a, "/api/serviceability?service=4W_Tyre&pincode=400001")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result serviceability.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode result: %v", err)
	}
	if !result.Serviceable {
		t.Error("Expected 400001 to be serviceable for 4W Tyre")
	}
	if !result.Only4WTyreAvailable {
		t.Error("Expected the only-4W-tyre flag for 400001")
	}
	if result.VendorFitment == nil || !*result.VendorFitment {
		t.Errorf("Expected vendor fitment true, got %v", result.VendorFitment)
	}
	if result.Fee == nil || *result.Fee != 1200 {
		t.Errorf("Expected fee 1200, got %v", result.Fee)
	}
	if result.Remark != "" {
		t.Errorf("Expected the placeholder remark suppressed, got %q", result.Remark)
	}
}

func TestAPIServiceabilityErrors(t *testing.T) {
	a := newTestAPI(t, &stubFetcher{body: uiSheetCSV})

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantCode   string
	}{
		{"unknown service", "service=3W_Tyre&pincode=400001", http.StatusBadRequest, apperrors.CodeInvalidService},
		{"missing service", "pincode=400001", http.StatusBadRequest, apperrors.CodeInvalidService},
		{"short pincode", "service=4W_Tyre&pincode=12", http.StatusBadRequest, apperrors.CodeInvalidPincode},
		{"uncovered pincode", "service=4W_Tyre&pincode=999999", http.StatusNotFound, apperrors.CodePincodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := apiGet(a, "/api/serviceability?"+tt.query)
			if rec.Code != tt.wantStatus {
				t.Fatalf("Expected %d, got %d", tt.wantStatus, rec.Code)
			}
			var payload map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
				t.Fatalf("Failed to decode error payload: %v", err)
			}
			if payload["code"] != tt.wantCode {
				t.Errorf("Expected code %s, got %s", tt.wantCode, payload["code"])
			}
		})
	}
}

func TestAPITableTruncation(t *testing.T) {
	a := newTestAPI(t, &stubFetcher{body: uiSheetCSV})

	rec := apiGet(a, "/api/table?limit=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var payload tableResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("Failed to decode table: %v", err)
	}
	if payload.TotalRows != 3 {
		t.Errorf("Expected 3 total rows, got %d", payload.TotalRows)
	}
	if len(payload.Rows) != 2 {
		t.Errorf("Expected 2 rows after truncation, got %d", len(payload.Rows))
	}
	if got := payload.Fields["pincode"]; got != "pincode" {
		t.Errorf("Expected the pincode field mapping, got %q", got)
	}
	if payload.SourceURL != "https://sheet.test/csv" {
		t.Errorf("Expected the fetch source URL, got %q", payload.SourceURL)
	}
}

func TestAPICoverage(t *testing.T) {
	a := newTestAPI(t, &stubFetcher{body: uiSheetCSV})

	rec := apiGet(a, "/api/coverage")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var report app.CoverageReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("Failed to decode report: %v", err)
	}
	if report.TotalRows != 3 {
		t.Errorf("Expected 3 rows, got %d", report.TotalRows)
	}
	if len(report.Services) != 4 {
		t.Fatalf("Expected 4 service entries, got %d", len(report.Services))
	}
	if got := report.Services[0].YesCount; got != 2 {
		t.Errorf("Expected 2 serviceable 4W Tyre rows, got %d", got)
	}
}

func TestAPIUpstreamError(t *testing.T) {
	a := newTestAPI(t, &stubFetcher{err: exhaustedFetchErr()})

	rec := apiGet(a, "/api/serviceability?service=4W_Tyre&pincode=400001")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("Expected 502, got %d", rec.Code)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("Failed to decode error payload: %v", err)
	}
	if payload["code"] != apperrors.CodeSourceExhausted {
		t.Errorf("Expected code %s, got %v", apperrors.CodeSourceExhausted, payload["code"])
	}
	attempts, ok := payload["attempts"].([]interface{})
	if !ok || len(attempts) != 2 {
		t.Fatalf("Expected 2 fetch attempts in the payload, got %v", payload["attempts"])
	}
	first, _ := attempts[0].(map[string]interface{})
	if first["url"] != "https://sheet.test/csv" {
		t.Errorf("Expected the first attempted URL, got %v", first["url"])
	}
}

func TestAPIReloadAndHealthz(t *testing.T) {
	a := newTestAPI(t, &stubFetcher{body: uiSheetCSV})

	req := httptest.NewRequest(http.MethodPost, "/api/reload", nil)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", rec.Code)
	}

	rec = apiGet(a, "/api/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("Failed to decode healthz: %v", err)
	}
	if payload["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", payload["status"])
	}
}
