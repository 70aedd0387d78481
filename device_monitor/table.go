package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Column width constants for the device table
const (
	colWidthType   = 6
	colWidthName   = 24
	colWidthMAC    = 20
	colWidthVendor = 18
	colWidthSignal = 10
	colWidthChart  = chartCellCols + 2
)

// Logical sparkline size in cells
const (
	chartCellCols = 20
	chartCellRows = 1
)

// Screen rows used by the fixed chrome
const (
	statsRowIndex  = 0
	headerRowIndex = 1
	firstDeviceRow = 2
)

type tableColumn struct {
	title string
	width int     // 0 = fill remaining width
	key   SortKey // empty = not sortable
}

func tableColumns() []tableColumn {
	return []tableColumn{
		{title: "Type", width: colWidthType, key: SortByType},
		{title: "Name", width: colWidthName, key: SortByName},
		{title: "MAC Address", width: colWidthMAC, key: SortByMac},
		{title: "Vendor", width: colWidthVendor},
		{title: "Signal", width: colWidthSignal, key: SortBySignal},
		{title: "History", width: colWidthChart},
		{title: "Last Seen", width: 0, key: SortByLastSeen},
	}
}

// sortKeyAtX maps a click x position on the header row to the column's
// sort key, or "" if the column is not sortable.
func sortKeyAtX(screenWidth, x int) SortKey {
	col := 0
	for _, c := range tableColumns() {
		w := c.width
		if w == 0 {
			w = screenWidth - col
		}
		if x >= col && x < col+w {
			return c.key
		}
		col += w
	}
	return ""
}

// signalBand is the qualitative severity of a reading.
type signalBand int

const (
	bandNone signalBand = iota
	bandWeak
	bandFair
	bandGood
	bandExcellent
)

// signalBandFor buckets a reading: >= -50 excellent, >= -60 good,
// >= -70 fair, else weak. An absent reading has no band.
func signalBandFor(dbm *int) signalBand {
	switch {
	case dbm == nil:
		return bandNone
	case *dbm >= -50:
		return bandExcellent
	case *dbm >= -60:
		return bandGood
	case *dbm >= -70:
		return bandFair
	default:
		return bandWeak
	}
}

func (b signalBand) color() tcell.Color {
	switch b {
	case bandExcellent:
		return tcell.ColorBlue
	case bandGood:
		return tcell.ColorGreen
	case bandFair:
		return tcell.ColorYellow
	case bandWeak:
		return tcell.ColorRed
	default:
		return tcell.ColorGray
	}
}

// deviceRow is the presentable form of one snapshot.
type deviceRow struct {
	TypeBadge  string
	Name       string
	MAC        string
	Vendor     string
	SignalText string
	Band       signalBand
	Chart      string
	LastSeen   string
}

func buildRow(dev *DeviceSnapshot, cfg ViewConfig, canvas *chartCanvas) deviceRow {
	name := dev.Name
	if name == "" {
		name = "(unknown)"
	}
	vendor := dev.Vendor
	if vendor == "" {
		vendor = "Unknown"
	}

	signalText := "—"
	if dev.SignalDBM != nil {
		signalText = fmt.Sprintf("%d dBm", *dev.SignalDBM)
	}

	chart := "·"
	if len(dev.History) > 0 {
		canvas.Plot(dev.History)
		chart = string(canvas.Render()[0])
	}

	return deviceRow{
		TypeBadge:  strings.ToUpper(dev.Type),
		Name:       name,
		MAC:        displayMAC(dev.Mac, cfg.MaskMACs),
		Vendor:     vendor,
		SignalText: signalText,
		Band:       signalBandFor(dev.SignalDBM),
		Chart:      chart,
		LastSeen:   lastSeenDisplay(dev),
	}
}

func buildRows(devices []*DeviceSnapshot, cfg ViewConfig, canvas *chartCanvas) []deviceRow {
	rows := make([]deviceRow, 0, len(devices))
	for _, dev := range devices {
		rows = append(rows, buildRow(dev, cfg, canvas))
	}
	return rows
}

// lastSeenDisplay shows the precise timestamp plus a short wall-clock form.
func lastSeenDisplay(dev *DeviceSnapshot) string {
	t := dev.lastSeenTime()
	if t.IsZero() {
		return "never"
	}
	iso := dev.LastSeenISO
	if iso == "" {
		iso = t.Format(time.RFC3339)
	}
	return fmt.Sprintf("%s (%s)", iso, t.Format("15:04:05"))
}

// drawMonitor repaints the whole screen from the canonical list: stats
// line, sortable header, filtered and sorted device rows, status line.
// Rows are rebuilt from scratch every time; device counts are small.
func drawMonitor(s tcell.Screen, store *DeviceStore, pollState *PollState, state *monitorState) {
	s.Clear()
	width, height := s.Size()

	devices := store.Devices()
	stats := store.Stats()

	visible := filterDevices(devices, state.cfg)
	sortDevices(visible, state.cfg.SortKey, state.cfg.SortDesc)
	rows := buildRows(visible, state.cfg, state.canvas)

	// Stats line: counts always come from the unfiltered canonical list.
	statsStyle := tcell.StyleDefault.Bold(true).Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
	statsText := fmt.Sprintf(" airscope | wifi: %d  ble: %d  total: %d | %s",
		stats.Wifi, stats.BLE, stats.Wifi+stats.BLE, pollState.Indicator())
	drawText(s, 0, statsRowIndex, width, statsStyle, statsText)

	drawHeader(s, width, state.cfg)

	// Device rows, honoring scroll offset.
	lastRow := height - 2
	visibleRows := lastRow - firstDeviceRow + 1
	if state.scrollOffset > len(rows)-visibleRows {
		state.scrollOffset = len(rows) - visibleRows
	}
	if state.scrollOffset < 0 {
		state.scrollOffset = 0
	}

	row := firstDeviceRow
	for i := state.scrollOffset; i < len(rows) && row <= lastRow; i++ {
		drawDeviceRow(s, width, row, rows[i])
		row++
	}

	drawStatusLine(s, width, height, pollState, state, len(rows))
	s.Show()
}

func drawHeader(s tcell.Screen, width int, cfg ViewConfig) {
	headerStyle := tcell.StyleDefault.Bold(true).Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)

	col := 0
	for _, c := range tableColumns() {
		w := c.width
		if w == 0 {
			w = width - col
		}
		title := c.title
		if c.key != "" && c.key == cfg.SortKey {
			if cfg.SortDesc {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		drawText(s, col, headerRowIndex, w, headerStyle, title)
		col += w
	}
}

func drawDeviceRow(s tcell.Screen, width, y int, r deviceRow) {
	normalStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	bandStyle := tcell.StyleDefault.Foreground(r.Band.color()).Background(tcell.ColorBlack)

	badgeStyle := normalStyle
	if r.TypeBadge == "WIFI" {
		badgeStyle = tcell.StyleDefault.Foreground(tcell.ColorAqua).Background(tcell.ColorBlack)
	} else if r.TypeBadge == "BLE" {
		badgeStyle = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Background(tcell.ColorBlack)
	}

	col := 0
	drawText(s, col, y, colWidthType, badgeStyle, r.TypeBadge)
	col += colWidthType
	drawText(s, col, y, colWidthName, normalStyle, r.Name)
	col += colWidthName
	drawText(s, col, y, colWidthMAC, normalStyle, r.MAC)
	col += colWidthMAC
	drawText(s, col, y, colWidthVendor, normalStyle, r.Vendor)
	col += colWidthVendor
	drawText(s, col, y, colWidthSignal, bandStyle, r.SignalText)
	col += colWidthSignal
	drawText(s, col, y, colWidthChart, bandStyle, r.Chart)
	col += colWidthChart
	drawText(s, col, y, width-col, normalStyle, r.LastSeen)
}

func drawStatusLine(s tcell.Screen, width, height int, pollState *PollState, state *monitorState, shown int) {
	statusStyle := tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)

	var statusText string
	if state.editingQuery {
		statusText = fmt.Sprintf(" Search: %s█ (Enter/Esc to finish)", state.cfg.Query)
	} else {
		statusText = " q: Quit | /: Search | t: Type | m: Mask | [ ] { }: Bounds | x: Reset | e: Export | 1-5: Sort"
	}

	statusText += " | " + filterSummary(state.cfg)
	statusText += fmt.Sprintf(" | showing %d", shown)
	drawText(s, 0, height-1, width, statusStyle, statusText)
}

func filterSummary(cfg ViewConfig) string {
	parts := []string{"type: " + cfg.TypeFilter}
	if q := strings.TrimSpace(cfg.Query); q != "" {
		parts = append(parts, fmt.Sprintf("query: %q", q))
	}
	if cfg.MinSignal != nil {
		parts = append(parts, fmt.Sprintf("min: %d", *cfg.MinSignal))
	}
	if cfg.MaxSignal != nil {
		parts = append(parts, fmt.Sprintf("max: %d", *cfg.MaxSignal))
	}
	if cfg.MaskMACs {
		parts = append(parts, "masked")
	} else {
		parts = append(parts, "unmasked")
	}
	return strings.Join(parts, "  ")
}

// drawText draws text clipped and padded to a fixed cell width,
// accounting for wide runes.
func drawText(s tcell.Screen, x, y, width int, style tcell.Style, text string) {
	col := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if col+w > width {
			break
		}
		s.SetContent(x+col, y, r, nil, style)
		col += w
	}
	for col < width {
		s.SetContent(x+col, y, ' ', nil, style)
		col++
	}
}
