package main

import (
	"github.com/gdamore/tcell/v2"
)

// Signal bound nudge step in dBm
const boundStepDBM = 5

// handleKeyboardEvent processes keyboard input. Returns true to quit.
func handleKeyboardEvent(ev *tcell.EventKey, store *DeviceStore, pollState *PollState, state *monitorState, s tcell.Screen) bool {
	// Query editing mode captures everything except its exit keys. Each
	// edit only arms the debouncer; the repaint happens after the quiet
	// period so rapid typing coalesces into one re-render.
	if state.editingQuery {
		switch ev.Key() {
		case tcell.KeyEsc, tcell.KeyEnter:
			state.editingQuery = false
			state.markDirty()
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if runes := []rune(state.cfg.Query); len(runes) > 0 {
				state.cfg.Query = string(runes[:len(runes)-1])
			}
			state.debounce.trigger()
		case tcell.KeyRune:
			state.cfg.Query += string(ev.Rune())
			state.debounce.trigger()
		case tcell.KeyCtrlC:
			return true
		}
		return false
	}

	switch ev.Key() {
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case '/':
			state.editingQuery = true
			state.markDirty()
		case 't', 'T':
			state.cfg.TypeFilter = nextTypeFilter(state.cfg.TypeFilter)
			state.markDirty()
		case 'm', 'M':
			state.cfg.MaskMACs = !state.cfg.MaskMACs
			state.markDirty()
		case '[':
			nudgeBound(&state.cfg.MinSignal, chartMinDBM, -boundStepDBM)
			state.markDirty()
		case ']':
			nudgeBound(&state.cfg.MinSignal, chartMinDBM, boundStepDBM)
			state.markDirty()
		case '{':
			nudgeBound(&state.cfg.MaxSignal, chartMaxDBM, -boundStepDBM)
			state.markDirty()
		case '}':
			nudgeBound(&state.cfg.MaxSignal, chartMaxDBM, boundStepDBM)
			state.markDirty()
		case 'x', 'X':
			handleResetFilters(state)
		case 'e', 'E':
			handleExport(store, state)
		case '1', '2', '3', '4', '5':
			applySortClick(&state.cfg, sortKeyForDigit(ev.Rune()))
			state.markDirty()
		case 'j', 'J':
			state.scrollOffset++
			state.markDirty()
		case 'k', 'K':
			handleScrollUp(state)
		}
	case tcell.KeyUp:
		handleScrollUp(state)
	case tcell.KeyDown:
		state.scrollOffset++
		state.markDirty()
	case tcell.KeyPgUp:
		state.scrollOffset -= 10
		if state.scrollOffset < 0 {
			state.scrollOffset = 0
		}
		state.markDirty()
	case tcell.KeyPgDn:
		state.scrollOffset += 10
		state.markDirty()
	case tcell.KeyHome:
		state.scrollOffset = 0
		state.markDirty()
	case tcell.KeyEnd:
		state.scrollOffset = len(store.Devices())
		state.markDirty()
	case tcell.KeyCtrlC:
		return true
	}
	return false
}

// sortKeyForDigit maps the number row to table columns in display order.
func sortKeyForDigit(r rune) SortKey {
	switch r {
	case '1':
		return SortByType
	case '2':
		return SortByName
	case '3':
		return SortByMac
	case '4':
		return SortBySignal
	default:
		return SortByLastSeen
	}
}

// nudgeBound adjusts an optional dBm bound, starting from a seed value
// when the bound is unset.
func nudgeBound(bound **int, seed, delta int) {
	if *bound == nil {
		v := seed
		*bound = &v
		return
	}
	v := **bound + delta
	*bound = &v
}

// handleResetFilters clears query, type filter, and signal bounds back to
// the permissive defaults. Sort and masking are left alone.
func handleResetFilters(state *monitorState) {
	state.cfg.Query = ""
	state.cfg.TypeFilter = typeFilterAll
	state.cfg.MinSignal = nil
	state.cfg.MaxSignal = nil
	state.markDirty()
}

// handleExport writes the canonical list to a timestamped JSON file.
func handleExport(store *DeviceStore, state *monitorState) {
	if _, err := exportDevices(store); err != nil {
		state.logger.Error().Err(err).Msg("device export failed")
	}
	state.markDirty()
}

func handleScrollUp(state *monitorState) {
	state.scrollOffset--
	if state.scrollOffset < 0 {
		state.scrollOffset = 0
	}
	state.markDirty()
}

// handleMouseEvent processes mouse input: wheel scrolling plus clickable
// column headers for sorting.
func handleMouseEvent(ev *tcell.EventMouse, state *monitorState, s tcell.Screen) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	width, _ := s.Size()

	switch {
	case buttons&tcell.WheelUp != 0:
		handleScrollUp(state)
	case buttons&tcell.WheelDown != 0:
		state.scrollOffset++
		state.markDirty()
	case buttons&tcell.Button1 != 0 && y == headerRowIndex:
		if key := sortKeyAtX(width, x); key != "" {
			applySortClick(&state.cfg, key)
			state.markDirty()
		}
	}
}
