package main

import (
	"regexp"
	"strings"
)

// maskedPairMarker replaces the device-specific octets when masking is on.
const maskedPairMarker = "••"

var hexPairPattern = regexp.MustCompile(`[0-9A-Fa-f]{2}`)

// displayMAC renders a MAC-like identifier for display, optionally masking
// the 4th and 5th octets. The vendor prefix (octets 1-3) stays visible so
// devices remain triageable. The input is never mutated; toggling masking
// re-derives from the raw string every time.
func displayMAC(mac string, masked bool) string {
	pairs := hexPairPattern.FindAllString(mac, -1)
	if len(pairs) < 6 {
		// Malformed identifier. Show it raw, or blank a few interior
		// characters if masking is requested.
		if !masked {
			return mac
		}
		return redactMalformed(mac)
	}

	sep := detectSeparator(mac)
	if !masked {
		return strings.Join(pairs, sep)
	}

	out := make([]string, len(pairs))
	copy(out, pairs)
	out[3] = maskedPairMarker
	out[4] = maskedPairMarker
	return strings.Join(out, sep)
}

func detectSeparator(mac string) string {
	if strings.Contains(mac, ":") {
		return ":"
	}
	if strings.Contains(mac, "-") {
		return "-"
	}
	return ":"
}

// redactMalformed blanks the character positions the 4th and 5th octets
// would occupy in a well-formed separated address.
func redactMalformed(mac string) string {
	runes := []rune(mac)
	for _, i := range []int{9, 10, 12, 13} {
		if i < len(runes) {
			runes[i] = '•'
		}
	}
	return string(runes)
}
