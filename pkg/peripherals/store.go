// Package peripherals implements the CubeMX-style peripheral
// configuration store and its prompt derivation.
package peripherals

import (
	"fmt"
	"sync"

	"github.com/hardcoreai/shell/pkg/events"
)

// Store owns the structured peripheral configuration. Every mutation
// publishes fresh counts on the event bus so sibling panels stay in
// sync without polling; the store itself remains the source of truth
// for the records.
type Store struct {
	mu     sync.Mutex
	cfg    Config
	nextID int
	bus    *events.Bus
}

// NewStore creates an empty store. bus may be nil, in which case count
// notifications are skipped.
func NewStore(bus *events.Bus) *Store {
	return &Store{bus: bus}
}

func (s *Store) newID(category string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", category, s.nextID)
}

// publish is called after the lock is released; it sends the current
// counts to interested panels.
func (s *Store) publish() {
	if s.bus == nil {
		return
	}
	s.bus.Publish(events.PeripheralUpdate, s.Counts())
}

// AddGPIO appends a GPIO entry and returns its generated id.
func (s *Store) AddGPIO(pin int, label, mode string) string {
	s.mu.Lock()
	id := s.newID("gpio")
	s.cfg.GPIO = append(s.cfg.GPIO, GPIOPin{ID: id, Pin: pin, Label: label, Mode: mode})
	s.mu.Unlock()
	s.publish()
	return id
}

// UpdateGPIO replaces the entry with the same id. Unknown ids are a no-op.
func (s *Store) UpdateGPIO(id string, pin int, label, mode string) {
	s.mu.Lock()
	for i := range s.cfg.GPIO {
		if s.cfg.GPIO[i].ID == id {
			s.cfg.GPIO[i] = GPIOPin{ID: id, Pin: pin, Label: label, Mode: mode}
			break
		}
	}
	s.mu.Unlock()
	s.publish()
}

// RemoveGPIO deletes the entry with the given id. Unknown ids are a no-op.
func (s *Store) RemoveGPIO(id string) {
	s.mu.Lock()
	for i := range s.cfg.GPIO {
		if s.cfg.GPIO[i].ID == id {
			s.cfg.GPIO = append(s.cfg.GPIO[:i], s.cfg.GPIO[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.publish()
}

// AddI2C appends an I2C device and returns its generated id.
func (s *Store) AddI2C(name, address string, sda, scl int) string {
	s.mu.Lock()
	id := s.newID("i2c")
	s.cfg.I2C = append(s.cfg.I2C, I2CDevice{ID: id, Name: name, Address: address, SDA: sda, SCL: scl})
	s.mu.Unlock()
	s.publish()
	return id
}

// RemoveI2C deletes the device with the given id.
func (s *Store) RemoveI2C(id string) {
	s.mu.Lock()
	for i := range s.cfg.I2C {
		if s.cfg.I2C[i].ID == id {
			s.cfg.I2C = append(s.cfg.I2C[:i], s.cfg.I2C[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.publish()
}

// AddSPI appends an SPI device and returns its generated id.
func (s *Store) AddSPI(name string, cs, mosi, miso, sck int) string {
	s.mu.Lock()
	id := s.newID("spi")
	s.cfg.SPI = append(s.cfg.SPI, SPIDevice{ID: id, Name: name, CS: cs, MOSI: mosi, MISO: miso, SCK: sck})
	s.mu.Unlock()
	s.publish()
	return id
}

// RemoveSPI deletes the device with the given id.
func (s *Store) RemoveSPI(id string) {
	s.mu.Lock()
	for i := range s.cfg.SPI {
		if s.cfg.SPI[i].ID == id {
			s.cfg.SPI = append(s.cfg.SPI[:i], s.cfg.SPI[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.publish()
}

// AddUART appends a UART port and returns its generated id.
func (s *Store) AddUART(name string, tx, rx, baud int) string {
	s.mu.Lock()
	id := s.newID("uart")
	s.cfg.UART = append(s.cfg.UART, UARTPort{ID: id, Name: name, TX: tx, RX: rx, Baud: baud})
	s.mu.Unlock()
	s.publish()
	return id
}

// RemoveUART deletes the port with the given id.
func (s *Store) RemoveUART(id string) {
	s.mu.Lock()
	for i := range s.cfg.UART {
		if s.cfg.UART[i].ID == id {
			s.cfg.UART = append(s.cfg.UART[:i], s.cfg.UART[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.publish()
}

// AddTimer appends a timer and returns its generated id.
func (s *Store) AddTimer(name string, interval int, unit string) string {
	s.mu.Lock()
	id := s.newID("timer")
	s.cfg.Timers = append(s.cfg.Timers, Timer{ID: id, Name: name, Interval: interval, Unit: unit})
	s.mu.Unlock()
	s.publish()
	return id
}

// RemoveTimer deletes the timer with the given id.
func (s *Store) RemoveTimer(id string) {
	s.mu.Lock()
	for i := range s.cfg.Timers {
		if s.cfg.Timers[i].ID == id {
			s.cfg.Timers = append(s.cfg.Timers[:i], s.cfg.Timers[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.publish()
}

// SetClock sets the CPU clock frequency.
func (s *Store) SetClock(frequencyMHz int) {
	s.mu.Lock()
	s.cfg.Clock.FrequencyMHz = frequencyMHz
	s.mu.Unlock()
	s.publish()
}

// Counts returns the current per-category counts.
func (s *Store) Counts() events.PeripheralCounts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return events.PeripheralCounts{
		GPIO:   len(s.cfg.GPIO),
		I2C:    len(s.cfg.I2C),
		SPI:    len(s.cfg.SPI),
		UART:   len(s.cfg.UART),
		Timers: len(s.cfg.Timers),
	}
}

// Total returns the aggregate peripheral count, clock excluded.
func (s *Store) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Total()
}

// Snapshot returns a deep copy of the configuration for serialization.
func (s *Store) Snapshot() Config {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := Config{Clock: s.cfg.Clock}
	cp.GPIO = append([]GPIOPin(nil), s.cfg.GPIO...)
	cp.I2C = append([]I2CDevice(nil), s.cfg.I2C...)
	cp.SPI = append([]SPIDevice(nil), s.cfg.SPI...)
	cp.UART = append([]UARTPort(nil), s.cfg.UART...)
	cp.Timers = append([]Timer(nil), s.cfg.Timers...)
	return cp
}

// Replace swaps in a whole configuration, reassigning ids for entries
// that lack one, and publishes the new counts.
func (s *Store) Replace(cfg Config) {
	s.mu.Lock()
	for i := range cfg.GPIO {
		if cfg.GPIO[i].ID == "" {
			cfg.GPIO[i].ID = s.newID("gpio")
		}
	}
	for i := range cfg.I2C {
		if cfg.I2C[i].ID == "" {
			cfg.I2C[i].ID = s.newID("i2c")
		}
	}
	for i := range cfg.SPI {
		if cfg.SPI[i].ID == "" {
			cfg.SPI[i].ID = s.newID("spi")
		}
	}
	for i := range cfg.UART {
		if cfg.UART[i].ID == "" {
			cfg.UART[i].ID = s.newID("uart")
		}
	}
	for i := range cfg.Timers {
		if cfg.Timers[i].ID == "" {
			cfg.Timers[i].ID = s.newID("timer")
		}
	}
	s.cfg = cfg
	s.mu.Unlock()
	s.publish()
}
