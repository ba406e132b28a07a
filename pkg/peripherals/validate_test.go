package peripherals

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePinsFlagsOutOfRangePins(t *testing.T) {
	cfg := Config{
		GPIO: []GPIOPin{
			{Pin: 2, Label: "LED", Mode: "OUTPUT"},
			{Pin: 50, Label: "bogus", Mode: "INPUT"},
		},
	}

	issues := cfg.ValidatePins("esp32dev")
	assert.Len(t, issues, 1)
	assert.Contains(t, issues[0], "pin 50")
}

func TestValidatePinsCleanConfig(t *testing.T) {
	cfg := Config{
		GPIO: []GPIOPin{{Pin: 13, Label: "LED", Mode: "OUTPUT"}},
		UART: []UARTPort{{Name: "Serial", TX: 1, RX: 0, Baud: 9600}},
	}
	assert.Empty(t, cfg.ValidatePins("uno"))
}

func TestPinConflictsAcrossCategories(t *testing.T) {
	cfg := Config{
		GPIO: []GPIOPin{{Pin: 21, Label: "LED", Mode: "OUTPUT"}},
		I2C:  []I2CDevice{{Name: "BME280", Address: "0x76", SDA: 21, SCL: 22}},
	}

	assert.Equal(t, []int{21}, cfg.PinConflicts())
}

func TestPinConflictsNoneWhenDistinct(t *testing.T) {
	cfg := Config{
		GPIO: []GPIOPin{{Pin: 2, Label: "LED", Mode: "OUTPUT"}},
		I2C:  []I2CDevice{{Name: "BME280", Address: "0x76", SDA: 21, SCL: 22}},
	}
	assert.Empty(t, cfg.PinConflicts())
}
