package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalBandThresholds(t *testing.T) {
	assert.Equal(t, bandExcellent, signalBandFor(intPtr(-45)))
	assert.Equal(t, bandExcellent, signalBandFor(intPtr(-50)))
	assert.Equal(t, bandGood, signalBandFor(intPtr(-55)))
	assert.Equal(t, bandGood, signalBandFor(intPtr(-60)))
	assert.Equal(t, bandFair, signalBandFor(intPtr(-70)))
	assert.Equal(t, bandWeak, signalBandFor(intPtr(-71)))
	assert.Equal(t, bandNone, signalBandFor(nil))
}

func TestBuildRowPlaceholders(t *testing.T) {
	canvas := newChartCanvas(chartCellCols, chartCellRows)
	row := buildRow(&DeviceSnapshot{Type: "wifi", Mac: "AA:BB:CC:DD:EE:FF"}, defaultViewConfig(), canvas)

	assert.Equal(t, "WIFI", row.TypeBadge)
	assert.Equal(t, "(unknown)", row.Name)
	assert.Equal(t, "Unknown", row.Vendor)
	assert.Equal(t, "—", row.SignalText)
	assert.Equal(t, bandNone, row.Band)
	assert.Equal(t, "·", row.Chart, "empty history gets a neutral placeholder")
	assert.Equal(t, "never", row.LastSeen)
}

func TestBuildRowMasksMACPerConfig(t *testing.T) {
	canvas := newChartCanvas(chartCellCols, chartCellRows)
	dev := &DeviceSnapshot{Type: "ble", Mac: "AA:BB:CC:DD:EE:FF"}

	cfg := defaultViewConfig()
	require.True(t, cfg.MaskMACs, "masking defaults to enabled")
	assert.Equal(t, "AA:BB:CC:••:••:FF", buildRow(dev, cfg, canvas).MAC)

	cfg.MaskMACs = false
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", buildRow(dev, cfg, canvas).MAC)
	// The canonical MAC is untouched either way
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", dev.Mac)
}

func TestBuildRowRendersChartFromHistory(t *testing.T) {
	canvas := newChartCanvas(chartCellCols, chartCellRows)
	dev := &DeviceSnapshot{
		Type:      "wifi",
		Mac:       "AA:BB:CC:DD:EE:FF",
		SignalDBM: intPtr(-45),
		History:   []int{-60, -55, -50, -45},
	}

	row := buildRow(dev, defaultViewConfig(), canvas)
	assert.Equal(t, bandExcellent, row.Band)
	assert.Len(t, []rune(row.Chart), chartCellCols)
	assert.NotEqual(t, "·", row.Chart)
}

func TestBuildRowLastSeenShowsBothForms(t *testing.T) {
	canvas := newChartCanvas(chartCellCols, chartCellRows)
	dev := &DeviceSnapshot{
		Type:        "wifi",
		Mac:         "AA:BB:CC:DD:EE:FF",
		LastSeenISO: "2023-11-14T22:13:20Z",
	}

	row := buildRow(dev, defaultViewConfig(), canvas)
	assert.Contains(t, row.LastSeen, "2023-11-14T22:13:20Z")
	assert.Contains(t, row.LastSeen, "(22:13:20)")
}

func TestSortKeyAtXMapsHeaderColumns(t *testing.T) {
	const width = 120

	assert.Equal(t, SortByType, sortKeyAtX(width, 0))
	assert.Equal(t, SortByName, sortKeyAtX(width, colWidthType))
	assert.Equal(t, SortByMac, sortKeyAtX(width, colWidthType+colWidthName))
	// Vendor column is not sortable
	assert.Equal(t, SortKey(""), sortKeyAtX(width, colWidthType+colWidthName+colWidthMAC))
	assert.Equal(t, SortByLastSeen, sortKeyAtX(width, width-1))
}

// End-to-end view pipeline: filter, sort, and stats behave independently.
func TestViewPipeline(t *testing.T) {
	home := &DeviceSnapshot{Type: "wifi", Name: "Home", Mac: "AA:BB:CC:DD:EE:FF", SignalDBM: intPtr(-45)}
	tag := &DeviceSnapshot{Type: "ble", Name: "Tag", Mac: "11:22:33:44:55:66", SignalDBM: intPtr(-82)}

	store := NewDeviceStore()
	store.Replace([]*DeviceSnapshot{tag, home})

	// Filtering type=wifi yields only Home
	cfg := defaultViewConfig()
	cfg.TypeFilter = typeFilterWifi
	visible := filterDevices(store.Devices(), cfg)
	require.Len(t, visible, 1)
	assert.Equal(t, "Home", visible[0].Name)

	// Sorting by signal descending with no filter yields Home, Tag
	cfg = defaultViewConfig()
	cfg.SortKey = SortBySignal
	cfg.SortDesc = true
	visible = filterDevices(store.Devices(), cfg)
	sortDevices(visible, cfg.SortKey, cfg.SortDesc)
	require.Len(t, visible, 2)
	assert.Equal(t, "Home", visible[0].Name)
	assert.Equal(t, "Tag", visible[1].Name)

	// Stats always come from the unfiltered canonical list
	stats := store.Stats()
	assert.Equal(t, 1, stats.Wifi)
	assert.Equal(t, 1, stats.BLE)
}
