package catalog

import (
	"context"
	"fmt"
	"net/url"
)

// PlayerService provides playback control operations.
type PlayerService struct {
	client *Client
}

// Devices returns the user's available playback devices.
func (s *PlayerService) Devices(ctx context.Context) ([]Device, error) {
	var resp struct {
		Devices []Device `json:"devices"`
	}
	if err := s.client.call(ctx, "GET", "/me/player/devices", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Devices, nil
}

// ActiveDevice returns the first active device, falling back to the
// first listed device. Returns ErrNoActiveDevice when none exist.
func (s *PlayerService) ActiveDevice(ctx context.Context) (*Device, error) {
	devices, err := s.Devices(ctx)
	if err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		return nil, ErrNoActiveDevice
	}
	for _, d := range devices {
		if d.Active {
			return &d, nil
		}
	}
	return &devices[0], nil
}

// Play starts playback of the given track URIs on a device. An empty
// deviceID targets the user's currently active device.
func (s *PlayerService) Play(ctx context.Context, uris []string, deviceID string) error {
	if len(uris) == 0 {
		return fmt.Errorf("catalog: at least one track URI required")
	}

	q := url.Values{}
	if deviceID != "" {
		q.Set("device_id", deviceID)
	}

	body := map[string]any{"uris": uris}
	return s.client.call(ctx, "PUT", "/me/player/play", q, body, nil)
}

// Resume continues playback of whatever is loaded on a device.
func (s *PlayerService) Resume(ctx context.Context, deviceID string) error {
	q := url.Values{}
	if deviceID != "" {
		q.Set("device_id", deviceID)
	}
	return s.client.call(ctx, "PUT", "/me/player/play", q, nil, nil)
}

// Pause pauses playback on a device.
func (s *PlayerService) Pause(ctx context.Context, deviceID string) error {
	q := url.Values{}
	if deviceID != "" {
		q.Set("device_id", deviceID)
	}
	return s.client.call(ctx, "PUT", "/me/player/pause", q, nil, nil)
}

// Seek moves playback to the given position in the current track.
func (s *PlayerService) Seek(ctx context.Context, positionMS int, deviceID string) error {
	q := url.Values{}
	q.Set("position_ms", fmt.Sprintf("%d", positionMS))
	if deviceID != "" {
		q.Set("device_id", deviceID)
	}
	return s.client.call(ctx, "PUT", "/me/player/seek", q, nil, nil)
}
