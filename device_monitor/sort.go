package main

import (
	"sort"
	"strings"
)

// SortKey names a sortable table column.
type SortKey string

const (
	SortByType     SortKey = "type"
	SortByName     SortKey = "name"
	SortByMac      SortKey = "mac"
	SortBySignal   SortKey = "signal_dbm"
	SortByLastSeen SortKey = "last_seen"
)

// absentSignalSentinel sorts devices without a reading below any real
// signal value, so they land last in descending order.
const absentSignalSentinel = -9999

func signalSortValue(dev *DeviceSnapshot) int {
	if dev.SignalDBM == nil {
		return absentSignalSentinel
	}
	return *dev.SignalDBM
}

func lastSeenSortValue(dev *DeviceSnapshot) float64 {
	t := dev.lastSeenTime()
	if t.IsZero() {
		return 0
	}
	return float64(t.UnixNano()) / 1e9
}

// compareDevices returns <0, 0, or >0 for the ascending ordering of a
// and b under the given key.
func compareDevices(a, b *DeviceSnapshot, key SortKey) int {
	switch key {
	case SortByName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case SortByMac:
		return strings.Compare(strings.ToLower(a.Mac), strings.ToLower(b.Mac))
	case SortBySignal:
		return signalSortValue(a) - signalSortValue(b)
	case SortByLastSeen:
		av, bv := lastSeenSortValue(a), lastSeenSortValue(b)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	default:
		return strings.Compare(strings.ToLower(a.Type), strings.ToLower(b.Type))
	}
}

// sortDevices orders the slice in place. The sort is stable so ties keep
// their relative order between refreshes.
func sortDevices(devices []*DeviceSnapshot, key SortKey, desc bool) {
	sort.SliceStable(devices, func(i, j int) bool {
		cmp := compareDevices(devices[i], devices[j], key)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

// defaultSortDescending: strongest-first and most-recent-first read
// naturally for signal and last-seen, everything else ascends.
func defaultSortDescending(key SortKey) bool {
	return key == SortBySignal || key == SortByLastSeen
}

// applySortClick handles a header activation: the active column toggles
// direction, a new column switches key and resets to its default direction.
func applySortClick(cfg *ViewConfig, key SortKey) {
	if cfg.SortKey == key {
		cfg.SortDesc = !cfg.SortDesc
		return
	}
	cfg.SortKey = key
	cfg.SortDesc = defaultSortDescending(key)
}
