package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func testDevices() []*DeviceSnapshot {
	return []*DeviceSnapshot{
		{Type: "wifi", Name: "Home", Mac: "AA:BB:CC:DD:EE:FF", Vendor: "Acme Networks", SignalDBM: intPtr(-45)},
		{Type: "ble", Name: "Tag", Mac: "11:22:33:44:55:66", Vendor: "TrackCo", SignalDBM: intPtr(-82)},
		{Type: "wifi", Name: "", Mac: "DE:AD:BE:EF:00:01"},
	}
}

func TestFilterDefaultsPassEverythingInOrder(t *testing.T) {
	devices := testDevices()
	out := filterDevices(devices, defaultViewConfig())
	require.Len(t, out, len(devices))
	for i := range devices {
		assert.Same(t, devices[i], out[i])
	}
}

func TestFilterByTypeIsCaseInsensitive(t *testing.T) {
	cfg := defaultViewConfig()
	cfg.TypeFilter = typeFilterWifi

	assert.True(t, matchesFilter(&DeviceSnapshot{Type: "WiFi"}, cfg))
	assert.True(t, matchesFilter(&DeviceSnapshot{Type: "wifi"}, cfg))
	assert.False(t, matchesFilter(&DeviceSnapshot{Type: "ble"}, cfg))
}

func TestFilterBoundsExclude(t *testing.T) {
	cfg := defaultViewConfig()
	cfg.MinSignal = intPtr(-70)

	assert.True(t, matchesFilter(&DeviceSnapshot{Type: "wifi", SignalDBM: intPtr(-45)}, cfg))
	assert.False(t, matchesFilter(&DeviceSnapshot{Type: "ble", SignalDBM: intPtr(-82)}, cfg))

	cfg.MinSignal = nil
	cfg.MaxSignal = intPtr(-50)
	assert.False(t, matchesFilter(&DeviceSnapshot{Type: "wifi", SignalDBM: intPtr(-45)}, cfg))
	assert.True(t, matchesFilter(&DeviceSnapshot{Type: "ble", SignalDBM: intPtr(-82)}, cfg))
}

func TestFilterBoundsNeverExcludeAbsentReading(t *testing.T) {
	cfg := defaultViewConfig()
	cfg.MinSignal = intPtr(-50)
	cfg.MaxSignal = intPtr(-40)

	assert.True(t, matchesFilter(&DeviceSnapshot{Type: "wifi"}, cfg))
}

func TestFilterQueryMatchesNameMacVendor(t *testing.T) {
	dev := &DeviceSnapshot{Type: "wifi", Name: "Home", Mac: "AA:BB:CC:DD:EE:FF", Vendor: "Acme Networks"}

	for _, q := range []string{"home", "HOME", "aa:bb", "acme", "  acme  "} {
		cfg := defaultViewConfig()
		cfg.Query = q
		assert.True(t, matchesFilter(dev, cfg), "query %q", q)
	}

	cfg := defaultViewConfig()
	cfg.Query = "office"
	assert.False(t, matchesFilter(dev, cfg))
}

func TestFilterRulesCombineWithAND(t *testing.T) {
	cfg := defaultViewConfig()
	cfg.TypeFilter = typeFilterWifi
	cfg.Query = "home"
	cfg.MinSignal = intPtr(-60)

	assert.True(t, matchesFilter(&DeviceSnapshot{Type: "wifi", Name: "Home", SignalDBM: intPtr(-45)}, cfg))
	// Same device, one rule failing each time
	assert.False(t, matchesFilter(&DeviceSnapshot{Type: "ble", Name: "Home", SignalDBM: intPtr(-45)}, cfg))
	assert.False(t, matchesFilter(&DeviceSnapshot{Type: "wifi", Name: "Garage", SignalDBM: intPtr(-45)}, cfg))
	assert.False(t, matchesFilter(&DeviceSnapshot{Type: "wifi", Name: "Home", SignalDBM: intPtr(-75)}, cfg))
}

func TestNextTypeFilterCycles(t *testing.T) {
	assert.Equal(t, typeFilterWifi, nextTypeFilter(typeFilterAll))
	assert.Equal(t, typeFilterBLE, nextTypeFilter(typeFilterWifi))
	assert.Equal(t, typeFilterAll, nextTypeFilter(typeFilterBLE))
}
