package main

import (
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

// Device type values reported by the scanner endpoint
const (
	deviceTypeWifi = "wifi"
	deviceTypeBLE  = "ble"
)

// DeviceSnapshot is one device as reported by a single poll of the
// scanner endpoint. The MAC address is the stable key across polls.
type DeviceSnapshot struct {
	Type        string  `json:"type"`
	Name        string  `json:"name,omitempty"`
	Mac         string  `json:"mac"`
	Vendor      string  `json:"vendor,omitempty"`
	SignalDBM   *int    `json:"signal_dbm,omitempty"`
	History     []int   `json:"history,omitempty"`
	LastSeen    float64 `json:"last_seen,omitempty"`
	LastSeenISO string  `json:"last_seen_iso,omitempty"`
}

// lastSeenTime resolves the most recent observation time, preferring the
// numeric epoch field and falling back to the ISO form.
func (d *DeviceSnapshot) lastSeenTime() time.Time {
	if d.LastSeen > 0 {
		sec := int64(d.LastSeen)
		nsec := int64((d.LastSeen - float64(sec)) * float64(time.Second))
		return time.Unix(sec, nsec)
	}
	if d.LastSeenISO != "" {
		if t, err := time.Parse(time.RFC3339, d.LastSeenISO); err == nil {
			return t
		}
	}
	return time.Time{}
}

type devicePayload struct {
	Devices []*DeviceSnapshot `json:"devices"`
}

// decodeDevicePayload parses the endpoint response body. A payload without
// a "devices" field is an empty scan, not an error.
func decodeDevicePayload(data []byte) ([]*DeviceSnapshot, error) {
	var payload devicePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	if payload.Devices == nil {
		return []*DeviceSnapshot{}, nil
	}
	return payload.Devices, nil
}

// TypeStats counts devices per type over the unfiltered canonical list.
type TypeStats struct {
	Wifi int
	BLE  int
}

// DeviceStore holds the canonical snapshot list. Every successful poll
// replaces the whole list; there is no per-device merging.
type DeviceStore struct {
	mu      sync.RWMutex
	devices []*DeviceSnapshot
}

func NewDeviceStore() *DeviceStore {
	return &DeviceStore{devices: []*DeviceSnapshot{}}
}

func (ds *DeviceStore) Replace(devices []*DeviceSnapshot) {
	ds.mu.Lock()
	ds.devices = devices
	ds.mu.Unlock()
}

// Devices returns a copy of the canonical list. The snapshots themselves
// are shared; callers treat them as read-only.
func (ds *DeviceStore) Devices() []*DeviceSnapshot {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	out := make([]*DeviceSnapshot, len(ds.devices))
	copy(out, ds.devices)
	return out
}

func (ds *DeviceStore) Stats() TypeStats {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	var stats TypeStats
	for _, dev := range ds.devices {
		switch strings.ToLower(dev.Type) {
		case deviceTypeWifi:
			stats.Wifi++
		case deviceTypeBLE:
			stats.BLE++
		}
	}
	return stats
}
