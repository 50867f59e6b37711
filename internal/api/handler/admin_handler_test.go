package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gatherly/events-api/internal/api/handler"
	"github.com/gatherly/events-api/internal/api/middleware"
	"github.com/gatherly/events-api/internal/core/domain"
)

type stubAdminService struct {
	changeRoleFn func(ctx context.Context, actor *domain.User, targetID, newRole string) (*domain.User, bool, error)
}

func (s *stubAdminService) ChangeRole(ctx context.Context, actor *domain.User, targetID, newRole string) (*domain.User, bool, error) {
	return s.changeRoleFn(ctx, actor, targetID, newRole)
}

func superadmin() *domain.User {
	return &domain.User{ID: "admin1", Name: "Root", Email: "root@example.com", Role: domain.RoleSuperadmin}
}

func TestAdminHandler_ChangeRole_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAdminService{
		changeRoleFn: func(ctx context.Context, actor *domain.User, targetID, newRole string) (*domain.User, bool, error) {
			if actor.ID != "admin1" || targetID != "u2" || newRole != domain.RoleOrganizer {
				t.Fatalf("unexpected args: %s %s %s", actor.ID, targetID, newRole)
			}
			return &domain.User{ID: targetID, Role: newRole}, true, nil
		},
	}
	h := handler.NewAdminHandler(stub)

	c, rec := newJSONContext(e, http.MethodPut, "/admin/users/u2/role", `{"role":"organizer"}`)
	c.SetParamNames("userId")
	c.SetParamValues("u2")
	c.Set(middleware.ActorKey, superadmin())

	if err := h.ChangeRole(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Role updated" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["role"] != domain.RoleOrganizer {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAdminHandler_ChangeRole_NoOp(t *testing.T) {
	e := newEcho()
	stub := &stubAdminService{
		changeRoleFn: func(ctx context.Context, actor *domain.User, targetID, newRole string) (*domain.User, bool, error) {
			return &domain.User{ID: targetID, Role: newRole}, false, nil
		},
	}
	h := handler.NewAdminHandler(stub)

	c, rec := newJSONContext(e, http.MethodPut, "/admin/users/u2/role", `{"role":"attendee"}`)
	c.SetParamNames("userId")
	c.SetParamValues("u2")
	c.Set(middleware.ActorKey, superadmin())

	if err := h.ChangeRole(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "No change needed" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestAdminHandler_ChangeRole_Unauthenticated(t *testing.T) {
	e := newEcho()
	stub := &stubAdminService{
		changeRoleFn: func(ctx context.Context, actor *domain.User, targetID, newRole string) (*domain.User, bool, error) {
			t.Fatalf("should not be called")
			return nil, false, nil
		},
	}
	h := handler.NewAdminHandler(stub)

	c, rec := newJSONContext(e, http.MethodPut, "/admin/users/u2/role", `{"role":"organizer"}`)
	c.SetParamNames("userId")
	c.SetParamValues("u2")

	render(e, h.ChangeRole(c), c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAdminHandler_ChangeRole_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid role", domain.ErrInvalidRole, http.StatusBadRequest},
		{"self demotion", domain.ErrSelfRoleChange, http.StatusBadRequest},
		{"superadmin assignment", domain.ErrForbidden, http.StatusForbidden},
		{"target not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"malformed id", domain.ErrInvalidID, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEcho()
			stub := &stubAdminService{
				changeRoleFn: func(ctx context.Context, actor *domain.User, targetID, newRole string) (*domain.User, bool, error) {
					return nil, false, tc.err
				},
			}
			h := handler.NewAdminHandler(stub)

			c, rec := newJSONContext(e, http.MethodPut, "/admin/users/u2/role", `{"role":"organizer"}`)
			c.SetParamNames("userId")
			c.SetParamValues("u2")
			c.Set(middleware.ActorKey, superadmin())

			render(e, h.ChangeRole(c), c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
		})
	}
}

func TestAdminHandler_ChangeRole_UnknownRoleRejectedBySchema(t *testing.T) {
	e := newEcho()
	stub := &stubAdminService{
		changeRoleFn: func(ctx context.Context, actor *domain.User, targetID, newRole string) (*domain.User, bool, error) {
			t.Fatalf("should not be called")
			return nil, false, nil
		},
	}
	h := handler.NewAdminHandler(stub)

	c, rec := newJSONContext(e, http.MethodPut, "/admin/users/u2/role", `{"role":"wizard"}`)
	c.SetParamNames("userId")
	c.SetParamValues("u2")
	c.Set(middleware.ActorKey, superadmin())

	render(e, h.ChangeRole(c), c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	msg, _ := resp["message"].(string)
	if !strings.Contains(msg, "role must be one of") {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestAdminHandler_ChangeRole_MissingRole(t *testing.T) {
	e := newEcho()
	stub := &stubAdminService{
		changeRoleFn: func(ctx context.Context, actor *domain.User, targetID, newRole string) (*domain.User, bool, error) {
			t.Fatalf("should not be called")
			return nil, false, nil
		},
	}
	h := handler.NewAdminHandler(stub)

	c, rec := newJSONContext(e, http.MethodPut, "/admin/users/u2/role", `{}`)
	c.SetParamNames("userId")
	c.SetParamValues("u2")
	c.Set(middleware.ActorKey, superadmin())

	render(e, h.ChangeRole(c), c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
