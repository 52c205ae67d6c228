package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mverdi/insurance-crm/internal/domain/entity"
	"github.com/mverdi/insurance-crm/internal/domain/repository"
	"github.com/mverdi/insurance-crm/internal/domain/service"
	"github.com/mverdi/insurance-crm/internal/transport/http/middleware"
	"github.com/mverdi/insurance-crm/internal/usecase"
)

type fakeCustomerService struct {
	customers  []entity.Customer
	updateErr  error
	lastUser   string
	lastFilter repository.ListFilter
}

func (f *fakeCustomerService) List(ctx context.Context, filter repository.ListFilter) ([]entity.Customer, error) {
	f.lastFilter = filter
	return f.customers, nil
}

func (f *fakeCustomerService) GetByID(ctx context.Context, id int64) (entity.Customer, error) {
	for _, c := range f.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return entity.Customer{}, repository.ErrCustomerNotFound
}

func (f *fakeCustomerService) FilterValues(ctx context.Context) (repository.FilterValues, error) {
	return repository.FilterValues{Statuses: entity.Statuses, PolicyTypes: entity.PolicyTypes}, nil
}

func (f *fakeCustomerService) Update(ctx context.Context, id int64, updates map[string]any, comment, user string) (service.UpdateOutcome, error) {
	f.lastUser = user
	if f.updateErr != nil {
		return service.UpdateOutcome{}, f.updateErr
	}
	for _, c := range f.customers {
		if c.ID == id {
			return service.UpdateOutcome{Customer: c, Message: "Customer updated successfully"}, nil
		}
	}
	return service.UpdateOutcome{}, repository.ErrCustomerNotFound
}

type fakeAuditService struct {
	changes service.ChangeFeed
}

func (f *fakeAuditService) Recent(ctx context.Context, limit int) service.AuditFeed {
	return service.AuditFeed{Entries: []entity.AuditRecord{}}
}
func (f *fakeAuditService) All(ctx context.Context) service.AuditFeed {
	return service.AuditFeed{Entries: []entity.AuditRecord{}}
}
func (f *fakeAuditService) Changes(ctx context.Context) service.ChangeFeed { return f.changes }

type fakeNoteService struct{}

func (fakeNoteService) Save(ctx context.Context, table, text, author string) (entity.TableNote, error) {
	return entity.TableNote{ID: 1, Table: table, Text: text, CreatedBy: author}, nil
}
func (fakeNoteService) GetLatest(ctx context.Context, table string) (*entity.TableNote, error) {
	return nil, nil
}

type fakeStore struct{}

func (fakeStore) Ping(ctx context.Context) error { return nil }
func (fakeStore) Close()                         {}
func (fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func setupRouter(customers *fakeCustomerService, audit *fakeAuditService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.ActingUser("X-Forwarded-User", "UNKNOWN_USER"))
	handler := NewHandler(customers, audit, fakeNoteService{}, fakeStore{})
	handler.RegisterRoutes(router)
	return router
}

func TestListCustomers_PassesFilters(t *testing.T) {
	svc := &fakeCustomerService{customers: []entity.Customer{{ID: 1}, {ID: 2}}}
	router := setupRouter(svc, &fakeAuditService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/customers?status=Pending&policy_type=Auto&search=rossi", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	want := repository.ListFilter{Status: "Pending", PolicyType: "Auto", Search: "rossi"}
	if svc.lastFilter != want {
		t.Errorf("filter = %+v, want %+v", svc.lastFilter, want)
	}
}

func TestUpdateCustomer_Success(t *testing.T) {
	svc := &fakeCustomerService{customers: []entity.Customer{{ID: 7, Status: entity.StatusActive}}}
	router := setupRouter(svc, &fakeAuditService{})

	body := `{"status":"Active","comment":"policy approved"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/customers/7", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-User", "agent.k")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	if svc.lastUser != "agent.k" {
		t.Errorf("acting user = %q, want agent.k", svc.lastUser)
	}
}

func TestUpdateCustomer_EmptyComment(t *testing.T) {
	svc := &fakeCustomerService{updateErr: usecase.ErrEmptyComment}
	router := setupRouter(svc, &fakeAuditService{})

	body := `{"status":"Active","comment":"  "}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/customers/7", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestUpdateCustomer_NotFound(t *testing.T) {
	svc := &fakeCustomerService{}
	router := setupRouter(svc, &fakeAuditService{})

	body := `{"status":"Active","comment":"valid"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/customers/404", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestUpdateCustomer_InvalidID(t *testing.T) {
	router := setupRouter(&fakeCustomerService{}, &fakeAuditService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/customers/abc", strings.NewReader(`{"comment":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestChanges_DegradedMeta(t *testing.T) {
	audit := &fakeAuditService{changes: service.ChangeFeed{Events: []entity.ChangeEvent{}, Degraded: true}}
	router := setupRouter(&fakeCustomerService{}, audit)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/changes", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even when degraded", w.Code)
	}
	var resp struct {
		Meta struct {
			Degraded bool `json:"degraded"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Meta.Degraded {
		t.Error("meta.degraded not set for a degraded feed")
	}
}

func TestMe_FallsBackToDefaultUser(t *testing.T) {
	router := setupRouter(&fakeCustomerService{}, &fakeAuditService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Data struct {
			User string `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Data.User != "UNKNOWN_USER" {
		t.Errorf("user = %q, want UNKNOWN_USER", resp.Data.User)
	}
}
