package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/skillforge/lms-platform/internal/core/domain"
	"github.com/skillforge/lms-platform/internal/core/ports"
)

// DeviceService lists and deactivates a user's session devices. Deactivating
// frees a slot under the active-device limit.
type DeviceService struct {
	devices ports.DeviceRepository
	log     zerolog.Logger
}

func NewDeviceService(devices ports.DeviceRepository, log zerolog.Logger) *DeviceService {
	return &DeviceService{devices: devices, log: log}
}

func (s *DeviceService) List(ctx context.Context, userID string) ([]domain.Device, error) {
	return s.devices.ListByUser(ctx, userID)
}

func (s *DeviceService) Deactivate(ctx context.Context, userID, deviceID string) error {
	if err := s.devices.Deactivate(ctx, userID, deviceID); err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID).Str("device_id", deviceID).Msg("device deactivated")
	return nil
}
