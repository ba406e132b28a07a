package board

import (
	"testing"
)

func TestLookupEmptyBoardIsGenericAndStable(t *testing.T) {
	for i := 0; i < 20; i++ {
		p := Lookup("")
		if p.Chip != "Unknown" {
			t.Fatalf("empty board id matched %q, want generic fallback", p.Name)
		}
		if len(p.Pins) != 32 {
			t.Fatalf("generic fallback has %d pins, want 32", len(p.Pins))
		}
	}
	if Lookup("   ").Chip != "Unknown" {
		t.Error("whitespace-only board id should fall back too")
	}
}

func TestAllowsPinWithoutBoard(t *testing.T) {
	// No board known yet: any pin in the generic 0-31 range passes.
	if !AllowsPin("", 0) || !AllowsPin("", 31) {
		t.Error("generic pinout should span 0-31")
	}
	if AllowsPin("", 32) {
		t.Error("pin 32 is outside the generic range")
	}
}

func TestSupportedIsSorted(t *testing.T) {
	boards := Supported()
	if len(boards) < 5 {
		t.Fatalf("expected at least 5 boards, got %d", len(boards))
	}
	for i := 1; i < len(boards); i++ {
		if boards[i-1] >= boards[i] {
			t.Errorf("board list not sorted at %d: %q >= %q", i, boards[i-1], boards[i])
		}
	}
}
