package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/sweetshop/inventory-system/internal/core/domain"
	"github.com/sweetshop/inventory-system/internal/core/ports"
)

type stubSweetService struct {
	createFn   func(ctx context.Context, input ports.SweetInput) (*domain.Sweet, error)
	listFn     func(ctx context.Context) ([]*domain.Sweet, error)
	searchFn   func(ctx context.Context, filter ports.SweetFilter) ([]*domain.Sweet, error)
	updateFn   func(ctx context.Context, id string, input ports.SweetInput) (*domain.Sweet, error)
	deleteFn   func(ctx context.Context, id string) error
	purchaseFn func(ctx context.Context, id string) (*domain.Sweet, error)
	restockFn  func(ctx context.Context, id string, amount int) (*domain.Sweet, error)
}

func (s *stubSweetService) Create(ctx context.Context, input ports.SweetInput) (*domain.Sweet, error) {
	return s.createFn(ctx, input)
}

func (s *stubSweetService) List(ctx context.Context) ([]*domain.Sweet, error) {
	return s.listFn(ctx)
}

func (s *stubSweetService) Search(ctx context.Context, filter ports.SweetFilter) ([]*domain.Sweet, error) {
	return s.searchFn(ctx, filter)
}

func (s *stubSweetService) Update(ctx context.Context, id string, input ports.SweetInput) (*domain.Sweet, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubSweetService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubSweetService) Purchase(ctx context.Context, id string) (*domain.Sweet, error) {
	return s.purchaseFn(ctx, id)
}

func (s *stubSweetService) Restock(ctx context.Context, id string, amount int) (*domain.Sweet, error) {
	return s.restockFn(ctx, id, amount)
}

func TestSweetHandler_Create_Success(t *testing.T) {
	stub := &stubSweetService{
		createFn: func(ctx context.Context, input ports.SweetInput) (*domain.Sweet, error) {
			if input.Name != "Fudge" || input.Price != 5.00 || input.Quantity != 20 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Sweet{ID: "1", Name: input.Name, Category: input.Category, Price: input.Price, Quantity: input.Quantity}, nil
		},
	}
	handler := NewSweetHandler(stub)

	c, rec := newHandlerContext(t, http.MethodPost, "/api/sweets",
		`{"name":"Fudge","category":"Chocolate","price":5.00,"quantity":20}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp domain.Sweet
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != "1" || resp.Quantity != 20 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestSweetHandler_Create_Invalid(t *testing.T) {
	stub := &stubSweetService{
		createFn: func(ctx context.Context, input ports.SweetInput) (*domain.Sweet, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewSweetHandler(stub)

	for _, body := range []string{
		`{"category":"Chocolate","price":5.00,"quantity":20}`,
		`{"name":"Fudge","price":-1,"quantity":20}`,
		`{"name":"Fudge","price":5.00,"quantity":-3}`,
		`not-json`,
	} {
		c, _ := newHandlerContext(t, http.MethodPost, "/api/sweets", body)
		err := handler.Create(c)
		if err == nil {
			t.Fatalf("body %s: expected error", body)
		}
	}
}

func TestSweetHandler_Search_ParsesFilters(t *testing.T) {
	stub := &stubSweetService{
		searchFn: func(ctx context.Context, filter ports.SweetFilter) ([]*domain.Sweet, error) {
			if filter.Name != "Caramel" || filter.Category != "Chewy" {
				t.Fatalf("unexpected filter: %+v", filter)
			}
			if filter.MinPrice == nil || *filter.MinPrice != 1.50 {
				t.Fatalf("minPrice not parsed: %+v", filter.MinPrice)
			}
			if filter.MaxPrice == nil || *filter.MaxPrice != 9.99 {
				t.Fatalf("maxPrice not parsed: %+v", filter.MaxPrice)
			}
			return []*domain.Sweet{}, nil
		},
	}
	handler := NewSweetHandler(stub)

	c, rec := newHandlerContext(t, http.MethodGet,
		"/api/sweets/search?name=Caramel&category=Chewy&minPrice=1.50&maxPrice=9.99", "")
	if err := handler.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSweetHandler_Search_BadPrice(t *testing.T) {
	stub := &stubSweetService{
		searchFn: func(ctx context.Context, filter ports.SweetFilter) ([]*domain.Sweet, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewSweetHandler(stub)

	c, _ := newHandlerContext(t, http.MethodGet, "/api/sweets/search?minPrice=cheap", "")
	if err := handler.Search(c); err == nil {
		t.Fatalf("expected error for malformed minPrice")
	}
}

func TestSweetHandler_Purchase_PropagatesDomainErrors(t *testing.T) {
	stub := &stubSweetService{
		purchaseFn: func(ctx context.Context, id string) (*domain.Sweet, error) {
			switch id {
			case "empty":
				return nil, domain.ErrOutOfStock
			case "missing":
				return nil, domain.ErrSweetNotFound
			}
			return &domain.Sweet{ID: id, Quantity: 19}, nil
		},
	}
	handler := NewSweetHandler(stub)

	c, rec := newHandlerContext(t, http.MethodPost, "/api/sweets/1/purchase", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := handler.Purchase(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newHandlerContext(t, http.MethodPost, "/api/sweets/empty/purchase", "")
	c.SetParamNames("id")
	c.SetParamValues("empty")
	if err := handler.Purchase(c); !errors.Is(err, domain.ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}

	c, _ = newHandlerContext(t, http.MethodPost, "/api/sweets/missing/purchase", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")
	if err := handler.Purchase(c); !errors.Is(err, domain.ErrSweetNotFound) {
		t.Fatalf("expected ErrSweetNotFound, got %v", err)
	}
}

func TestSweetHandler_Restock_DefaultsAmount(t *testing.T) {
	stub := &stubSweetService{
		restockFn: func(ctx context.Context, id string, amount int) (*domain.Sweet, error) {
			if amount != 0 {
				t.Fatalf("expected zero amount from empty body, got %d", amount)
			}
			return &domain.Sweet{ID: id, Quantity: 1}, nil
		},
	}
	handler := NewSweetHandler(stub)

	// no body at all: the service applies the default of one
	c, rec := newHandlerContext(t, http.MethodPost, "/api/sweets/1/restock", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := handler.Restock(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSweetHandler_Restock_ExplicitAmount(t *testing.T) {
	stub := &stubSweetService{
		restockFn: func(ctx context.Context, id string, amount int) (*domain.Sweet, error) {
			if amount != 12 {
				t.Fatalf("expected amount 12, got %d", amount)
			}
			return &domain.Sweet{ID: id, Quantity: 12}, nil
		},
	}
	handler := NewSweetHandler(stub)

	c, rec := newHandlerContext(t, http.MethodPost, "/api/sweets/1/restock", `{"amount":12}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := handler.Restock(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSweetHandler_Delete(t *testing.T) {
	stub := &stubSweetService{
		deleteFn: func(ctx context.Context, id string) error {
			if id == "missing" {
				return domain.ErrSweetNotFound
			}
			return nil
		},
	}
	handler := NewSweetHandler(stub)

	c, rec := newHandlerContext(t, http.MethodDelete, "/api/sweets/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	c, _ = newHandlerContext(t, http.MethodDelete, "/api/sweets/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")
	if err := handler.Delete(c); !errors.Is(err, domain.ErrSweetNotFound) {
		t.Fatalf("expected ErrSweetNotFound, got %v", err)
	}
}
