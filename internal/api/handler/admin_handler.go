package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/teamhub/announcements-api/internal/api/metrics"
	"github.com/teamhub/announcements-api/internal/core/domain"
	"github.com/teamhub/announcements-api/internal/core/ports"
)

// AdminHandler handles the admin-only user management endpoints. Routes are
// gated by the Auth and RequireAdmin middlewares.
type AdminHandler struct {
	userService ports.UserService
}

func NewAdminHandler(userService ports.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

type adminUserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin user"`
}

type updateRoleResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

// ListUsers returns all accounts, newest first, projected to their public
// fields.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  adminUserResponse
// @Failure      403  {object}  map[string]string
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]adminUserResponse, len(users))
	for i, u := range users {
		out[i] = adminUserResponse{
			ID:        u.ID,
			Email:     u.Email,
			Role:      string(u.Role),
			CreatedAt: u.CreatedAt.UTC(),
		}
	}
	return c.JSON(http.StatusOK, out)
}

// UpdateRole assigns a new role to the target user. The target's next
// authenticated request sees the new role regardless of what its token
// still says.
//
// @Summary      Update a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Target user id"
// @Param        body  body      updateRoleRequest  true  "New role"
// @Success      200   {object}  updateRoleResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/admin/users/{id}/role [put]
func (h *AdminHandler) UpdateRole(c echo.Context) error {
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	updated, err := h.userService.UpdateRole(c.Request().Context(), c.Param("id"), domain.Role(req.Role))
	if err != nil {
		return err
	}

	metrics.RoleUpdatesTotal.WithLabelValues(string(updated.Role)).Inc()
	return c.JSON(http.StatusOK, updateRoleResponse{
		Success: true,
		Message: "User role updated successfully",
		User:    toUserResponse(updated),
	})
}
