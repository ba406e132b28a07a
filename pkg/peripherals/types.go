package peripherals

// GPIOPin is a single configured GPIO line.
type GPIOPin struct {
	ID    string `json:"id,omitempty"`
	Pin   int    `json:"pin" jsonschema:"description=GPIO number"`
	Label string `json:"label,omitempty" jsonschema:"description=Human-readable purpose of the pin"`
	Mode  string `json:"mode" jsonschema:"enum=OUTPUT,enum=INPUT,enum=INPUT_PULLUP,enum=INPUT_PULLDOWN"`
}

// I2CDevice is a device on an I2C bus.
type I2CDevice struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Address string `json:"address" jsonschema:"description=7-bit address in 0x notation"`
	SDA     int    `json:"sda"`
	SCL     int    `json:"scl"`
}

// SPIDevice is a device on an SPI bus.
type SPIDevice struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	CS   int    `json:"cs"`
	MOSI int    `json:"mosi"`
	MISO int    `json:"miso"`
	SCK  int    `json:"sck"`
}

// UARTPort is a configured serial port.
type UARTPort struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	TX   int    `json:"tx"`
	RX   int    `json:"rx"`
	Baud int    `json:"baud"`
}

// Timer is a periodic software timer.
type Timer struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Interval int    `json:"interval"`
	Unit     string `json:"unit" jsonschema:"enum=us,enum=ms,enum=s"`
}

// Clock is the CPU clock configuration.
type Clock struct {
	FrequencyMHz int `json:"frequency,omitempty" jsonschema:"description=CPU clock frequency in MHz"`
}

// Config is the full structured peripheral configuration, in the wire
// shape the backend's /execute endpoint expects.
type Config struct {
	GPIO   []GPIOPin   `json:"gpio"`
	I2C    []I2CDevice `json:"i2c"`
	SPI    []SPIDevice `json:"spi"`
	UART   []UARTPort  `json:"uart"`
	Timers []Timer     `json:"timers"`
	Clock  Clock       `json:"clock"`
}

// Total returns the aggregate peripheral count, clock excluded.
func (c Config) Total() int {
	return len(c.GPIO) + len(c.I2C) + len(c.SPI) + len(c.UART) + len(c.Timers)
}
