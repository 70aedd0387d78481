package main

import "strings"

// Type filter values
const (
	typeFilterAll  = "all"
	typeFilterWifi = deviceTypeWifi
	typeFilterBLE  = deviceTypeBLE
)

// ViewConfig is the mutable view state: free-text query, type filter,
// signal bounds, sort key/direction, and the masking toggle. A nil bound
// means "no bound".
type ViewConfig struct {
	Query      string
	TypeFilter string
	MinSignal  *int
	MaxSignal  *int
	SortKey    SortKey
	SortDesc   bool
	MaskMACs   bool
}

func defaultViewConfig() ViewConfig {
	return ViewConfig{
		TypeFilter: typeFilterAll,
		SortKey:    SortByType,
		MaskMACs:   true,
	}
}

// matchesFilter reports whether a snapshot passes the current filter
// configuration. All rules combine with AND. Devices without a signal
// reading are never excluded by the min/max bounds.
func matchesFilter(dev *DeviceSnapshot, cfg ViewConfig) bool {
	if cfg.TypeFilter != "" && cfg.TypeFilter != typeFilterAll {
		if !strings.EqualFold(dev.Type, cfg.TypeFilter) {
			return false
		}
	}

	if dev.SignalDBM != nil {
		if cfg.MinSignal != nil && *dev.SignalDBM < *cfg.MinSignal {
			return false
		}
		if cfg.MaxSignal != nil && *dev.SignalDBM > *cfg.MaxSignal {
			return false
		}
	}

	if query := strings.TrimSpace(cfg.Query); query != "" {
		haystack := strings.ToLower(dev.Name + " " + dev.Mac + " " + dev.Vendor)
		if !strings.Contains(haystack, strings.ToLower(query)) {
			return false
		}
	}

	return true
}

func filterDevices(devices []*DeviceSnapshot, cfg ViewConfig) []*DeviceSnapshot {
	out := make([]*DeviceSnapshot, 0, len(devices))
	for _, dev := range devices {
		if matchesFilter(dev, cfg) {
			out = append(out, dev)
		}
	}
	return out
}

// nextTypeFilter cycles all -> wifi -> ble -> all.
func nextTypeFilter(current string) string {
	switch current {
	case typeFilterWifi:
		return typeFilterBLE
	case typeFilterBLE:
		return typeFilterAll
	default:
		return typeFilterWifi
	}
}
