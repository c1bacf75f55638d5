package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"orderflow/internal/service/inventory/application"
)

type fakeStore struct {
	stock map[string]int64
	def   int64
	err   error
}

func (s *fakeStore) Reserve(ctx context.Context, item string, quantity, defaultStock int64) (int64, bool, error) {
	if s.err != nil {
		return 0, false, s.err
	}
	if s.stock == nil {
		s.stock = make(map[string]int64)
	}
	cur, ok := s.stock[item]
	if !ok {
		cur = defaultStock
		s.stock[item] = cur
	}
	if cur < quantity {
		return cur, false, nil
	}
	s.stock[item] = cur - quantity
	return s.stock[item], true, nil
}

func (s *fakeStore) CurrentStock(ctx context.Context, item string) (int64, bool, error) {
	if s.err != nil {
		return 0, false, s.err
	}
	val, found := s.stock[item]
	return val, found, nil
}

func newMux(store *fakeStore) *http.ServeMux {
	service := application.NewInventoryApplicationService(store, 100)
	handler := NewInventoryHandler(service)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /inventory/{item}", handler.getInventory)
	mux.HandleFunc("POST /reserve", handler.reserve)
	return mux
}

func TestGetInventoryUnseenItemReturnsZero(t *testing.T) {
	mux := newMux(&fakeStore{})

	req := httptest.NewRequest(http.MethodGet, "/inventory/widget", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Item  string `json:"item"`
		Stock int64  `json:"stock"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Item != "widget" || resp.Stock != 0 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestGetInventoryKnownItem(t *testing.T) {
	mux := newMux(&fakeStore{stock: map[string]int64{"widget": 37}})

	req := httptest.NewRequest(http.MethodGet, "/inventory/widget", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"stock":37`) {
		t.Errorf("expected stock 37 in body, got %s", rec.Body.String())
	}
}

func TestReserveSuccess(t *testing.T) {
	mux := newMux(&fakeStore{})

	req := httptest.NewRequest(http.MethodPost, "/reserve", strings.NewReader(`{"item":"widget","quantity":5}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Success   bool  `json:"success"`
		Remaining int64 `json:"remaining"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !resp.Success || resp.Remaining != 95 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestReserveInsufficientStillReturns200(t *testing.T) {
	mux := newMux(&fakeStore{stock: map[string]int64{"widget": 3}})

	req := httptest.NewRequest(http.MethodPost, "/reserve", strings.NewReader(`{"item":"widget","quantity":10}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Success   bool  `json:"success"`
		Remaining int64 `json:"remaining"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Success {
		t.Error("expected success=false")
	}
	if resp.Remaining != 3 {
		t.Errorf("expected pre-reservation value 3, got %d", resp.Remaining)
	}
}

func TestReserveRejectsMissingFields(t *testing.T) {
	mux := newMux(&fakeStore{})

	cases := []string{
		`{}`,
		`{"item":"widget"}`,
		`{"quantity":5}`,
		`garbage`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/reserve", strings.NewReader(body))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestReserveRejectsNegativeQuantity(t *testing.T) {
	mux := newMux(&fakeStore{})

	req := httptest.NewRequest(http.MethodPost, "/reserve", strings.NewReader(`{"item":"widget","quantity":-1}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestReserveStoreErrorReturns500(t *testing.T) {
	mux := newMux(&fakeStore{err: errors.New("redis down")})

	req := httptest.NewRequest(http.MethodPost, "/reserve", strings.NewReader(`{"item":"widget","quantity":1}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}
