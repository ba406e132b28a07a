package peripherals

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullConfig() Config {
	return Config{
		GPIO:   []GPIOPin{{ID: "gpio-1", Pin: 2, Label: "status led", Mode: "OUTPUT"}},
		I2C:    []I2CDevice{{ID: "i2c-2", Name: "BME280", Address: "0x76", SDA: 21, SCL: 22}},
		SPI:    []SPIDevice{{ID: "spi-3", Name: "SD card", CS: 5, MOSI: 23, MISO: 19, SCK: 18}},
		UART:   []UARTPort{{ID: "uart-4", Name: "GPS", TX: 17, RX: 16, Baud: 9600}},
		Timers: []Timer{{ID: "timer-5", Name: "sample", Interval: 250, Unit: "ms"}},
		Clock:  Clock{FrequencyMHz: 240},
	}
}

func TestPromptIsDeterministic(t *testing.T) {
	cfg := fullConfig()
	first := cfg.Prompt("esp32dev")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, cfg.Prompt("esp32dev"))
	}
}

func TestPromptCategoryOrder(t *testing.T) {
	prompt := fullConfig().Prompt("esp32dev")

	order := []string{"GPIO PINS:", "I2C DEVICES:", "SPI DEVICES:", "UART PORTS:", "TIMERS:", "CPU CLOCK:"}
	last := -1
	for _, header := range order {
		idx := strings.Index(prompt, header)
		assert.Greaterf(t, idx, last, "%s out of order", header)
		last = idx
	}
}

func TestPromptOmitsEmptyCategories(t *testing.T) {
	cfg := Config{
		GPIO: []GPIOPin{{ID: "gpio-1", Pin: 13, Label: "blink", Mode: "OUTPUT"}},
	}
	prompt := cfg.Prompt("uno")

	assert.Contains(t, prompt, "GPIO PINS:")
	assert.Contains(t, prompt, "GPIO 13: OUTPUT (blink)")
	assert.NotContains(t, prompt, "I2C DEVICES:")
	assert.NotContains(t, prompt, "SPI DEVICES:")
	assert.NotContains(t, prompt, "UART PORTS:")
	assert.NotContains(t, prompt, "TIMERS:")
	assert.NotContains(t, prompt, "CPU CLOCK:")
}

func TestPromptExactLines(t *testing.T) {
	prompt := fullConfig().Prompt("esp32dev")

	assert.Contains(t, prompt, "Target board: esp32dev")
	assert.Contains(t, prompt, "  - GPIO 2: OUTPUT (status led)")
	assert.Contains(t, prompt, "  - BME280: Address=0x76, SDA=GPIO21, SCL=GPIO22")
	assert.Contains(t, prompt, "  - SD card: CS=GPIO5, MOSI=GPIO23, MISO=GPIO19, SCK=GPIO18")
	assert.Contains(t, prompt, "  - GPS: TX=GPIO17, RX=GPIO16, Baud=9600")
	assert.Contains(t, prompt, "  - sample: 250ms interval")
	assert.Contains(t, prompt, "CPU CLOCK: 240 MHz")
}
