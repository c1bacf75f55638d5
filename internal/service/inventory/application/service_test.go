package application

import (
	"context"
	"errors"
	"testing"

	"orderflow/internal/service/inventory/domain"
)

type fakeStore struct {
	reserveCalls int
	lastQuantity int64
	lastDefault  int64
	remaining    int64
	ok           bool
	err          error

	stock map[string]int64
}

func (s *fakeStore) Reserve(ctx context.Context, item string, quantity, defaultStock int64) (int64, bool, error) {
	s.reserveCalls++
	s.lastQuantity = quantity
	s.lastDefault = defaultStock
	return s.remaining, s.ok, s.err
}

func (s *fakeStore) CurrentStock(ctx context.Context, item string) (int64, bool, error) {
	if s.err != nil {
		return 0, false, s.err
	}
	val, found := s.stock[item]
	return val, found, nil
}

func TestReserveDelegatesToStore(t *testing.T) {
	store := &fakeStore{remaining: 95, ok: true}
	svc := NewInventoryApplicationService(store, 100)

	res, err := svc.Reserve(context.Background(), "widget", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success || res.Remaining != 95 {
		t.Errorf("unexpected reservation: %+v", res)
	}
	if store.lastQuantity != 5 || store.lastDefault != 100 {
		t.Errorf("unexpected store call: quantity=%d default=%d", store.lastQuantity, store.lastDefault)
	}
}

func TestReserveInsufficientIsBusinessOutcomeNotError(t *testing.T) {
	store := &fakeStore{remaining: 3, ok: false}
	svc := NewInventoryApplicationService(store, 100)

	res, err := svc.Reserve(context.Background(), "widget", 10)
	if err != nil {
		t.Fatalf("insufficient stock must not be an error, got %v", err)
	}
	if res.Success {
		t.Error("expected success=false")
	}
	if res.Remaining != 3 {
		t.Errorf("expected remaining 3, got %d", res.Remaining)
	}
}

func TestReserveRejectsNegativeQuantityBeforeStore(t *testing.T) {
	store := &fakeStore{}
	svc := NewInventoryApplicationService(store, 100)

	_, err := svc.Reserve(context.Background(), "widget", -1)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if store.reserveCalls != 0 {
		t.Error("expected store not to be called for invalid input")
	}
}

func TestReserveRejectsEmptyItem(t *testing.T) {
	store := &fakeStore{}
	svc := NewInventoryApplicationService(store, 100)

	_, err := svc.Reserve(context.Background(), "", 1)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReserveZeroQuantityIsValid(t *testing.T) {
	store := &fakeStore{remaining: 100, ok: true}
	svc := NewInventoryApplicationService(store, 100)

	res, err := svc.Reserve(context.Background(), "widget", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success || res.Remaining != 100 {
		t.Errorf("unexpected reservation: %+v", res)
	}
	if store.reserveCalls != 1 || store.lastQuantity != 0 {
		t.Errorf("expected zero-quantity call to reach store, calls=%d quantity=%d", store.reserveCalls, store.lastQuantity)
	}
}

func TestReserveStoreErrorSurfaces(t *testing.T) {
	store := &fakeStore{err: errors.New("redis down")}
	svc := NewInventoryApplicationService(store, 100)

	if _, err := svc.Reserve(context.Background(), "widget", 1); err == nil {
		t.Fatal("expected store error to surface")
	}
}

func TestGetStockUnseenItemIsZero(t *testing.T) {
	svc := NewInventoryApplicationService(&fakeStore{}, 100)

	stock, err := svc.GetStock(context.Background(), "unseen")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stock != 0 {
		t.Errorf("expected 0 for unseen item, got %d", stock)
	}
}

func TestGetStockKnownItem(t *testing.T) {
	store := &fakeStore{stock: map[string]int64{"widget": 42}}
	svc := NewInventoryApplicationService(store, 100)

	stock, err := svc.GetStock(context.Background(), "widget")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stock != 42 {
		t.Errorf("expected 42, got %d", stock)
	}
}
