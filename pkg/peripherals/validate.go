package peripherals

import (
	"fmt"
	"sort"

	"github.com/hardcoreai/shell/pkg/board"
)

// ValidatePins reports pins that are not usable on the given board.
// The result is advisory; the store never blocks a mutation on it.
func (c Config) ValidatePins(boardID string) []string {
	var issues []string

	check := func(owner string, pin int) {
		if !board.AllowsPin(boardID, pin) {
			issues = append(issues, fmt.Sprintf("%s uses pin %d, not available on %s", owner, pin, boardID))
		}
	}

	for _, g := range c.GPIO {
		check(fmt.Sprintf("GPIO %q", g.Label), g.Pin)
	}
	for _, d := range c.I2C {
		check(fmt.Sprintf("I2C %q SDA", d.Name), d.SDA)
		check(fmt.Sprintf("I2C %q SCL", d.Name), d.SCL)
	}
	for _, d := range c.SPI {
		check(fmt.Sprintf("SPI %q CS", d.Name), d.CS)
		check(fmt.Sprintf("SPI %q MOSI", d.Name), d.MOSI)
		check(fmt.Sprintf("SPI %q MISO", d.Name), d.MISO)
		check(fmt.Sprintf("SPI %q SCK", d.Name), d.SCK)
	}
	for _, u := range c.UART {
		check(fmt.Sprintf("UART %q TX", u.Name), u.TX)
		check(fmt.Sprintf("UART %q RX", u.Name), u.RX)
	}

	return issues
}

// PinConflicts reports physical pins assigned to more than one entry,
// across categories. Overlap is allowed (the user may genuinely share a
// pin), so this too is advisory only.
func (c Config) PinConflicts() []int {
	users := make(map[int]int)
	add := func(pin int) { users[pin]++ }

	for _, g := range c.GPIO {
		add(g.Pin)
	}
	for _, d := range c.I2C {
		add(d.SDA)
		add(d.SCL)
	}
	for _, d := range c.SPI {
		add(d.CS)
		add(d.MOSI)
		add(d.MISO)
		add(d.SCK)
	}
	for _, u := range c.UART {
		add(u.TX)
		add(u.RX)
	}

	var conflicts []int
	for pin, n := range users {
		if n > 1 {
			conflicts = append(conflicts, pin)
		}
	}
	sort.Ints(conflicts)
	return conflicts
}
