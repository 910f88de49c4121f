package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skillforge/lms-platform/internal/core/ports"
)

// DeviceHandler manages the user's session-limiting device records.
type DeviceHandler struct {
	service ports.DeviceService
}

func NewDeviceHandler(service ports.DeviceService) *DeviceHandler {
	return &DeviceHandler{service: service}
}

// List handles GET /devices.
//
// @Summary      List the authenticated user's devices
// @Tags         devices
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dataResponse
// @Router       /devices [get]
func (h *DeviceHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	devices, err := h.service.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope(devices))
}

// Deactivate handles DELETE /devices/:deviceId, freeing a slot under the
// active-device limit.
//
// @Summary      Deactivate one of the authenticated user's devices
// @Tags         devices
// @Produce      json
// @Security     BearerAuth
// @Param        deviceId  path      string  true  "Device id"
// @Success      200       {object}  messageResponse
// @Failure      404       {object}  map[string]string
// @Router       /devices/{deviceId} [delete]
func (h *DeviceHandler) Deactivate(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Deactivate(c.Request().Context(), user.ID, c.Param("deviceId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Device deactivated"})
}
