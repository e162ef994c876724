package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/SinghShreyansh/users-service/internal/core/domain"
	"github.com/SinghShreyansh/users-service/internal/core/ports"
)

type stubUserService struct {
	listFn   func(ctx context.Context) ([]domain.Projection, error)
	createFn func(ctx context.Context, in ports.CreateUserInput) (domain.Projection, error)
	updateFn func(ctx context.Context, in ports.UpdateUserInput) (domain.Projection, error)
	deleteFn func(ctx context.Context, in ports.DeleteUserInput) (domain.Projection, error)
}

func (s *stubUserService) List(ctx context.Context) ([]domain.Projection, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Create(ctx context.Context, in ports.CreateUserInput) (domain.Projection, error) {
	return s.createFn(ctx, in)
}

func (s *stubUserService) Update(ctx context.Context, in ports.UpdateUserInput) (domain.Projection, error) {
	return s.updateFn(ctx, in)
}

func (s *stubUserService) Delete(ctx context.Context, in ports.DeleteUserInput) (domain.Projection, error) {
	return s.deleteFn(ctx, in)
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserHandler_List(t *testing.T) {
	stub := &stubUserService{
		listFn: func(ctx context.Context) ([]domain.Projection, error) {
			return []domain.Projection{
				{"id": "1", "name": "Shreyansh", "password": "1234"},
				{"id": "2", "name": "Rahul", "password": "123"},
			}, nil
		},
	}
	c, rec := newJSONContext(http.MethodGet, "/users", "")

	if err := NewUserHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0]["name"] != "Shreyansh" || resp[1]["id"] != "2" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_List_EmptyIsArray(t *testing.T) {
	stub := &stubUserService{
		listFn: func(ctx context.Context) ([]domain.Projection, error) {
			return []domain.Projection{}, nil
		},
	}
	c, rec := newJSONContext(http.MethodGet, "/users", "")

	if err := NewUserHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected [], got %s", got)
	}
}

func TestUserHandler_Create_PassesPasswordThrough(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, in ports.CreateUserInput) (domain.Projection, error) {
			if in.Name != "Al" {
				t.Fatalf("unexpected name: %q", in.Name)
			}
			if in.Password.Kind() != domain.PasswordInteger || in.Password.Value() != int64(42) {
				t.Fatalf("unexpected password: %s %#v", in.Password.Kind(), in.Password.Value())
			}
			return domain.Projection{"id": "x1", "name": in.Name, "password": in.Password.Value()}, nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/users", `{"name":"Al","password":42}`)

	if err := NewUserHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "x1" || resp["password"] != float64(42) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_Create_MalformedBody(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, in ports.CreateUserInput) (domain.Projection, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	c, _ := newJSONContext(http.MethodPost, "/users", `{"name":`)

	err := NewUserHandler(stub).Create(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_Create_NonTextNameIsValidationError(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, in ports.CreateUserInput) (domain.Projection, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	c, _ := newJSONContext(http.MethodPost, "/users", `{"name":123,"password":1}`)

	err := NewUserHandler(stub).Create(c)

	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), "name must be text") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestUserHandler_Create_ValidationErrorPropagates(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, in ports.CreateUserInput) (domain.Projection, error) {
			return nil, domain.ErrValidation
		},
	}
	c, _ := newJSONContext(http.MethodPost, "/users", `{"password":"1234"}`)

	if err := NewUserHandler(stub).Create(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUserHandler_Update_IDFromQuery(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(ctx context.Context, in ports.UpdateUserInput) (domain.Projection, error) {
			if in.ID != "abc" || in.Name != "Rahul K" || in.Password.Value() != "999" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return domain.Projection{"id": in.ID, "name": in.Name, "password": "999"}, nil
		},
	}
	c, rec := newJSONContext(http.MethodPut, "/users?id=abc", `{"name":"Rahul K","password":"999"}`)

	if err := NewUserHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Update_BodyIDWins(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(ctx context.Context, in ports.UpdateUserInput) (domain.Projection, error) {
			if in.ID != "from-body" {
				t.Fatalf("expected body id, got %q", in.ID)
			}
			return domain.Projection{"id": in.ID}, nil
		},
	}
	c, _ := newJSONContext(http.MethodPut, "/users?id=from-query", `{"id":"from-body","name":"n","password":1}`)

	if err := NewUserHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestUserHandler_Delete_IDFromQuery(t *testing.T) {
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, in ports.DeleteUserInput) (domain.Projection, error) {
			if in.ID != "abc" {
				t.Fatalf("unexpected id: %q", in.ID)
			}
			return domain.Projection{"id": "abc", "name": "Rahul", "password": "123"}, nil
		},
	}
	c, rec := newJSONContext(http.MethodDelete, "/users?id=abc", "")

	if err := NewUserHandler(stub).Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Delete_NotFoundPropagates(t *testing.T) {
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, in ports.DeleteUserInput) (domain.Projection, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	c, _ := newJSONContext(http.MethodDelete, "/users?id=missing", "")

	if err := NewUserHandler(stub).Delete(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestResultLabel(t *testing.T) {
	cases := map[string]error{
		"ok":               nil,
		"validation_error": domain.ErrValidation,
		"not_found":        domain.ErrUserNotFound,
		"invalid_payload":  echo.NewHTTPError(http.StatusBadRequest, "invalid payload"),
		"error":            errors.New("boom"),
	}
	for want, err := range cases {
		if got := resultLabel(err); got != want {
			t.Errorf("resultLabel(%v): expected %s, got %s", err, want, got)
		}
	}
}
