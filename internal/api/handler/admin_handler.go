package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/events-api/internal/api/metrics"
	apimiddleware "github.com/gatherly/events-api/internal/api/middleware"
	"github.com/gatherly/events-api/internal/core/domain"
	"github.com/gatherly/events-api/internal/core/ports"
)

type AdminHandler struct {
	adminService ports.AdminService
}

func NewAdminHandler(adminService ports.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// changeRoleRequest allowlists the assignable roles at the schema level; the
// service re-checks with ValidRole as a second line of defense.
type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=attendee organizer superadmin"`
}

type changeRoleResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

// ChangeRole assigns a new role to a user account.
//
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string             true  "Target user id"
// @Param        body    body      changeRoleRequest  true  "New role"
// @Success      200     {object}  changeRoleResponse
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /admin/users/{userId}/role [put]
func (h *AdminHandler) ChangeRole(c echo.Context) error {
	actor, err := apimiddleware.Actor(c)
	if err != nil {
		return err
	}

	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, changed, err := h.adminService.ChangeRole(c.Request().Context(), actor, c.Param("userId"), req.Role)
	if err != nil {
		return err
	}

	msg := "Role updated"
	if !changed {
		msg = "No change needed"
	} else {
		metrics.RoleChangesTotal.WithLabelValues(user.Role).Inc()
	}
	return c.JSON(http.StatusOK, changeRoleResponse{Message: msg, User: user})
}
