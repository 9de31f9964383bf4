package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamhub/announcements-api/internal/api/metrics"
	"github.com/teamhub/announcements-api/internal/core/ports"
)

// AnnouncementHandler handles HTTP requests for board announcements.
type AnnouncementHandler struct {
	service ports.AnnouncementService
}

func NewAnnouncementHandler(service ports.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{service: service}
}

// List returns all announcements, newest first. No authentication required.
//
// @Summary      List announcements
// @Tags         announcements
// @Produce      json
// @Success      200  {array}  announcementResponse
// @Router       /api/announcements [get]
func (h *AnnouncementHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAnnouncementListResponse(items))
}

// Create posts a new announcement authored by the current user.
//
// @Summary      Create an announcement
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      announcementRequest  true  "Announcement"
// @Success      200   {object}  announcementResponse
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/announcements [post]
func (h *AnnouncementHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req announcementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), ports.CreateAnnouncementInput{
		Title:       req.Title,
		Content:     req.Content,
		AuthorID:    user.ID,
		AuthorEmail: user.Email,
	})
	if err != nil {
		return err
	}

	metrics.AnnouncementOpsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusOK, toAnnouncementResponse(created))
}

// Update edits an existing announcement. Only its author or an admin may do
// so.
//
// @Summary      Update an announcement
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Announcement id"
// @Param        body  body      announcementRequest  true  "New title and content"
// @Success      200   {object}  announcementResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/announcements/{id} [put]
func (h *AnnouncementHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req announcementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	updated, err := h.service.Update(c.Request().Context(), ports.UpdateAnnouncementInput{
		ID:        c.Param("id"),
		Title:     req.Title,
		Content:   req.Content,
		ActorID:   user.ID,
		ActorRole: user.Role,
	})
	if err != nil {
		return err
	}

	metrics.AnnouncementOpsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toAnnouncementResponse(updated))
}

// Delete removes an announcement under the same ownership-or-admin rule as
// Update.
//
// @Summary      Delete an announcement
// @Tags         announcements
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Announcement id"
// @Success      200  {object}  deleteResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	err = h.service.Delete(c.Request().Context(), ports.DeleteAnnouncementInput{
		ID:        c.Param("id"),
		ActorID:   user.ID,
		ActorRole: user.Role,
	})
	if err != nil {
		return err
	}

	metrics.AnnouncementOpsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, deleteResponse{
		Success: true,
		Message: "Announcement deleted successfully",
	})
}
