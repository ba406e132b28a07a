package board

import (
	"sort"
	"strings"
)

// Pinout describes the usable GPIO pins of a supported board.
type Pinout struct {
	Name string
	Chip string
	Pins []int
}

// Pinouts for the boards the backend knows how to build for. Unknown
// boards fall back to a generic 32-pin layout.
var pinouts = map[string]Pinout{
	"esp32dev": {
		Name: "ESP32 DevKit V1",
		Chip: "ESP32-WROOM-32",
		Pins: []int{1, 2, 3, 4, 5, 12, 13, 14, 15, 16, 17, 18, 19, 21, 22, 23, 25, 26, 27, 32, 33, 34, 35, 36, 39},
	},
	"uno": {
		Name: "Arduino Uno R3",
		Chip: "ATmega328P",
		Pins: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13},
	},
	"nanoatmega328": {
		Name: "Arduino Nano",
		Chip: "ATmega328P",
		Pins: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13},
	},
	"megaatmega2560": {
		Name: "Arduino Mega 2560",
		Chip: "ATmega2560",
		Pins: rangePins(0, 53),
	},
	"nodemcuv2": {
		Name: "NodeMCU ESP8266",
		Chip: "ESP8266",
		Pins: []int{0, 1, 2, 3, 4, 5, 12, 13, 14, 15, 16},
	},
}

func rangePins(lo, hi int) []int {
	pins := make([]int, 0, hi-lo+1)
	for p := lo; p <= hi; p++ {
		pins = append(pins, p)
	}
	return pins
}

// Lookup returns the pinout for a board id. Matching is fuzzy to cope
// with vendor aliases like "esp32" vs "esp32dev"; unknown boards get a
// generic layout so pin validation degrades instead of blocking.
func Lookup(boardID string) Pinout {
	id := strings.ToLower(strings.TrimSpace(boardID))
	if id == "" {
		// An empty id would substring-match every known board, picking
		// one at random per map iteration.
		return Pinout{Name: boardID, Chip: "Unknown", Pins: rangePins(0, 31)}
	}
	if p, ok := pinouts[id]; ok {
		return p
	}
	for key, p := range pinouts {
		if strings.Contains(id, key) || strings.Contains(key, id) {
			return p
		}
	}
	return Pinout{Name: boardID, Chip: "Unknown", Pins: rangePins(0, 31)}
}

// AllowsPin reports whether pin is usable on the given board.
func AllowsPin(boardID string, pin int) bool {
	for _, p := range Lookup(boardID).Pins {
		if p == pin {
			return true
		}
	}
	return false
}

// Supported returns the known board ids in sorted order.
func Supported() []string {
	ids := make([]string, 0, len(pinouts))
	for id := range pinouts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
