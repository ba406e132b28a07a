package peripherals

import (
	"fmt"
	"strings"
)

// Prompt derives the generation request text from the configuration.
// The output is deterministic: categories appear in the fixed order
// GPIO, I2C, SPI, UART, Timers, Clock, and a category header is only
// emitted when that category is non-empty.
func (c Config) Prompt(boardID string) string {
	var b strings.Builder

	b.WriteString("=== PERIPHERAL CONFIGURATION ===\n")
	fmt.Fprintf(&b, "Target board: %s\n", boardID)
	b.WriteString("The user has configured the following peripherals. Use these EXACT settings.\n")

	if len(c.GPIO) > 0 {
		b.WriteString("\nGPIO PINS:\n")
		for _, g := range c.GPIO {
			fmt.Fprintf(&b, "  - GPIO %d: %s", g.Pin, g.Mode)
			if g.Label != "" {
				fmt.Fprintf(&b, " (%s)", g.Label)
			}
			b.WriteString("\n")
		}
	}

	if len(c.I2C) > 0 {
		b.WriteString("\nI2C DEVICES:\n")
		for _, d := range c.I2C {
			fmt.Fprintf(&b, "  - %s: Address=%s, SDA=GPIO%d, SCL=GPIO%d\n", d.Name, d.Address, d.SDA, d.SCL)
		}
	}

	if len(c.SPI) > 0 {
		b.WriteString("\nSPI DEVICES:\n")
		for _, d := range c.SPI {
			fmt.Fprintf(&b, "  - %s: CS=GPIO%d, MOSI=GPIO%d, MISO=GPIO%d, SCK=GPIO%d\n", d.Name, d.CS, d.MOSI, d.MISO, d.SCK)
		}
	}

	if len(c.UART) > 0 {
		b.WriteString("\nUART PORTS:\n")
		for _, u := range c.UART {
			fmt.Fprintf(&b, "  - %s: TX=GPIO%d, RX=GPIO%d, Baud=%d\n", u.Name, u.TX, u.RX, u.Baud)
		}
	}

	if len(c.Timers) > 0 {
		b.WriteString("\nTIMERS:\n")
		for _, t := range c.Timers {
			fmt.Fprintf(&b, "  - %s: %d%s interval\n", t.Name, t.Interval, t.Unit)
		}
	}

	if c.Clock.FrequencyMHz > 0 {
		fmt.Fprintf(&b, "\nCPU CLOCK: %d MHz\n", c.Clock.FrequencyMHz)
	}

	b.WriteString("\n=== END PERIPHERAL CONFIGURATION ===\n")
	b.WriteString("Generate code using these EXACT pin assignments. Do NOT change pins.")

	return b.String()
}
