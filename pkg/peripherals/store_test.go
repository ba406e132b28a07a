package peripherals

import (
	"testing"

	"github.com/hardcoreai/shell/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutationsPublishFreshCounts(t *testing.T) {
	bus := events.NewBus()
	var published []events.PeripheralCounts
	bus.Subscribe(events.PeripheralUpdate, func(payload interface{}) {
		published = append(published, payload.(events.PeripheralCounts))
	})

	store := NewStore(bus)
	id := store.AddGPIO(2, "status led", "OUTPUT")
	store.AddI2C("BME280", "0x76", 21, 22)
	store.RemoveGPIO(id)

	require.Len(t, published, 3)
	assert.Equal(t, events.PeripheralCounts{GPIO: 1}, published[0])
	assert.Equal(t, events.PeripheralCounts{GPIO: 1, I2C: 1}, published[1])
	assert.Equal(t, events.PeripheralCounts{I2C: 1}, published[2])
}

func TestGeneratedIDsAreUnique(t *testing.T) {
	store := NewStore(nil)

	seen := make(map[string]bool)
	seen[store.AddGPIO(2, "", "OUTPUT")] = true
	seen[store.AddGPIO(4, "", "INPUT")] = true
	seen[store.AddI2C("dev", "0x40", 21, 22)] = true
	seen[store.AddSPI("flash", 5, 23, 19, 18)] = true
	seen[store.AddUART("gps", 17, 16, 9600)] = true
	seen[store.AddTimer("heartbeat", 1000, "ms")] = true

	assert.Len(t, seen, 6)
}

func TestUpdateAndRemoveUnknownIDAreNoOps(t *testing.T) {
	store := NewStore(nil)
	store.AddGPIO(2, "led", "OUTPUT")

	store.UpdateGPIO("gpio-999", 4, "other", "INPUT")
	store.RemoveGPIO("gpio-999")
	store.RemoveI2C("i2c-999")

	cfg := store.Snapshot()
	require.Len(t, cfg.GPIO, 1)
	assert.Equal(t, 2, cfg.GPIO[0].Pin)
	assert.Equal(t, "led", cfg.GPIO[0].Label)
}

func TestSnapshotIsACopy(t *testing.T) {
	store := NewStore(nil)
	store.AddGPIO(2, "led", "OUTPUT")

	cfg := store.Snapshot()
	cfg.GPIO[0].Pin = 99

	assert.Equal(t, 2, store.Snapshot().GPIO[0].Pin)
}

func TestTotalExcludesClock(t *testing.T) {
	store := NewStore(nil)
	assert.Equal(t, 0, store.Total())

	store.SetClock(240)
	assert.Equal(t, 0, store.Total())

	store.AddTimer("tick", 500, "ms")
	assert.Equal(t, 1, store.Total())
}

func TestReplaceAssignsMissingIDs(t *testing.T) {
	bus := events.NewBus()
	updates := 0
	bus.Subscribe(events.PeripheralUpdate, func(interface{}) { updates++ })

	store := NewStore(bus)
	store.Replace(Config{
		GPIO: []GPIOPin{{Pin: 2, Mode: "OUTPUT"}},
		UART: []UARTPort{{Name: "gps", TX: 17, RX: 16, Baud: 9600}},
	})

	cfg := store.Snapshot()
	assert.NotEmpty(t, cfg.GPIO[0].ID)
	assert.NotEmpty(t, cfg.UART[0].ID)
	assert.Equal(t, 1, updates)
}

func TestPinConflicts(t *testing.T) {
	cfg := Config{
		GPIO: []GPIOPin{{Pin: 21, Mode: "OUTPUT"}},
		I2C:  []I2CDevice{{Name: "imu", Address: "0x68", SDA: 21, SCL: 22}},
	}

	assert.Equal(t, []int{21}, cfg.PinConflicts())
	assert.Empty(t, Config{}.PinConflicts())
}

func TestValidatePins(t *testing.T) {
	cfg := Config{
		GPIO: []GPIOPin{{Pin: 6, Label: "bad", Mode: "OUTPUT"}},
	}

	issues := cfg.ValidatePins("esp32dev")
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "pin 6")

	assert.Empty(t, Config{GPIO: []GPIOPin{{Pin: 2, Mode: "OUTPUT"}}}.ValidatePins("esp32dev"))
}
