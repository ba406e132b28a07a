package orchestrator

import (
	"context"
	"sync"
	"testing"

	"github.com/hardcoreai/shell/errors"
	"github.com/hardcoreai/shell/pkg/board"
	"github.com/hardcoreai/shell/pkg/events"
	"github.com/hardcoreai/shell/pkg/models"
	"github.com/hardcoreai/shell/pkg/peripherals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockGateway substitutes the backend client with per-endpoint func
// fields and call counters.
type mockGateway struct {
	detectFn  func(ctx context.Context) (*models.DetectResponse, error)
	chatFn    func(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error)
	executeFn func(ctx context.Context, req *models.ExecuteRequest) (*models.ExecuteResponse, error)
	buildFn   func(ctx context.Context, req *models.BuildRequest) (*models.BuildResponse, error)
	flashFn   func(ctx context.Context, req *models.FlashRequest) (*models.FlashResponse, error)

	detectCalls  int
	chatCalls    int
	executeCalls int
	buildCalls   int
	flashCalls   int
}

func (m *mockGateway) Detect(ctx context.Context) (*models.DetectResponse, error) {
	m.detectCalls++
	return m.detectFn(ctx)
}

func (m *mockGateway) Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	m.chatCalls++
	return m.chatFn(ctx, req)
}

func (m *mockGateway) Execute(ctx context.Context, req *models.ExecuteRequest) (*models.ExecuteResponse, error) {
	m.executeCalls++
	return m.executeFn(ctx, req)
}

func (m *mockGateway) Build(ctx context.Context, req *models.BuildRequest) (*models.BuildResponse, error) {
	m.buildCalls++
	return m.buildFn(ctx, req)
}

func (m *mockGateway) Flash(ctx context.Context, req *models.FlashRequest) (*models.FlashResponse, error) {
	m.flashCalls++
	return m.flashFn(ctx, req)
}

func newTestOrchestrator(gw Gateway) (*Orchestrator, *events.Bus, *board.Session) {
	bus := events.NewBus()
	session := board.NewSession("esp32dev")
	return New(gw, bus, session), bus, session
}

func TestDetectRecordsFirstDevice(t *testing.T) {
	gw := &mockGateway{
		detectFn: func(ctx context.Context) (*models.DetectResponse, error) {
			return &models.DetectResponse{Devices: []models.Device{
				{Port: "COM3", Board: "esp32dev", ChipType: "ESP32"},
				{Port: "COM7", Board: "uno"},
			}}, nil
		},
	}
	o, _, session := newTestOrchestrator(gw)

	devices, err := o.Detect(context.Background())
	require.NoError(t, err)
	require.Len(t, devices, 2)

	assert.Equal(t, "esp32dev", session.Detected())
	assert.Equal(t, "COM3", session.Port())
	assert.True(t, session.Connected())
	// The full list is still returned for manual disambiguation.
	assert.Equal(t, "COM7", devices[1].Port)
}

func TestDetectEmptyLeavesSessionUntouched(t *testing.T) {
	gw := &mockGateway{
		detectFn: func(ctx context.Context) (*models.DetectResponse, error) {
			return &models.DetectResponse{Devices: nil, Message: "no boards found"}, nil
		},
	}
	o, _, session := newTestOrchestrator(gw)

	_, err := o.Detect(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNoDevices, errors.GetCode(err))
	assert.Empty(t, session.Detected())
	assert.Empty(t, session.Port())
	assert.False(t, session.Connected())
}

func TestDetectTransportErrorLeavesSessionUntouched(t *testing.T) {
	gw := &mockGateway{
		detectFn: func(ctx context.Context) (*models.DetectResponse, error) {
			return nil, errors.BackendUnreachable("/detect", context.DeadlineExceeded)
		},
	}
	o, _, session := newTestOrchestrator(gw)

	_, err := o.Detect(context.Background())
	require.Error(t, err)
	assert.Empty(t, session.Port())
	assert.False(t, o.InFlight(KindDetect))
}

func TestGenerateTextResponseDoesNotPublish(t *testing.T) {
	gw := &mockGateway{
		chatFn: func(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
			return &models.ChatResponse{
				Status:       models.StatusSuccess,
				ResponseType: models.ResponseTypeText,
				Message:      "Which sensor are you using?",
			}, nil
		},
	}
	o, bus, _ := newTestOrchestrator(gw)

	published := 0
	bus.Subscribe(events.CodeGenerated, func(payload any) { published++ })

	resp, err := o.Generate(context.Background(), "make it blink")
	require.NoError(t, err)
	assert.Equal(t, models.ResponseTypeText, resp.ResponseType)
	assert.Zero(t, published)
}

func TestGenerateCodeResponsePublishesFirmware(t *testing.T) {
	const firmware = "#include <Arduino.h>\nvoid setup() {}\nvoid loop() {}\n"
	gw := &mockGateway{
		chatFn: func(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
			assert.Equal(t, "blink an LED on pin 2", req.Message)
			assert.Equal(t, "esp32dev", req.BoardType)
			return &models.ChatResponse{
				Status:       models.StatusSuccess,
				ResponseType: models.ResponseTypeCode,
				Firmware:     firmware,
			}, nil
		},
	}
	o, bus, _ := newTestOrchestrator(gw)

	var got events.CodeGeneratedPayload
	published := 0
	bus.Subscribe(events.CodeGenerated, func(payload any) {
		published++
		got = payload.(events.CodeGeneratedPayload)
	})

	_, err := o.Generate(context.Background(), "blink an LED on pin 2")
	require.NoError(t, err)
	require.Equal(t, 1, published)
	assert.Equal(t, firmware, got.Code)
	assert.Equal(t, DefaultFileName, got.FileName)
}

func TestGenerateCodeResponseWithoutFirmwareDoesNotPublish(t *testing.T) {
	gw := &mockGateway{
		chatFn: func(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
			return &models.ChatResponse{
				Status:       models.StatusSuccess,
				ResponseType: models.ResponseTypeCode,
			}, nil
		},
	}
	o, bus, _ := newTestOrchestrator(gw)

	published := 0
	bus.Subscribe(events.CodeGenerated, func(payload any) { published++ })

	_, err := o.Generate(context.Background(), "blink")
	require.NoError(t, err)
	assert.Zero(t, published)
}

func TestGenerateEmptyMessageRejected(t *testing.T) {
	gw := &mockGateway{}
	o, _, _ := newTestOrchestrator(gw)

	_, err := o.Generate(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
	assert.Zero(t, gw.chatCalls)
}

func TestGenerateFromPeripheralsEmptyConfigSkipsHTTP(t *testing.T) {
	gw := &mockGateway{}
	o, _, _ := newTestOrchestrator(gw)
	store := peripherals.NewStore(events.NewBus())

	_, err := o.GenerateFromPeripherals(context.Background(), store)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
	assert.Zero(t, gw.executeCalls)
	assert.False(t, o.InFlight(KindGenerate))
}

func TestGenerateFromPeripheralsSendsPromptAndConfig(t *testing.T) {
	var sent *models.ExecuteRequest
	gw := &mockGateway{
		executeFn: func(ctx context.Context, req *models.ExecuteRequest) (*models.ExecuteResponse, error) {
			sent = req
			return &models.ExecuteResponse{
				Status:   models.StatusSuccess,
				Firmware: "void loop() {}",
			}, nil
		},
	}
	o, bus, session := newTestOrchestrator(gw)
	session.RecordDetection("nodemcuv2", "/dev/ttyUSB0")

	store := peripherals.NewStore(events.NewBus())
	store.AddGPIO(2, "LED", "OUTPUT")

	published := 0
	bus.Subscribe(events.CodeGenerated, func(payload any) { published++ })

	_, err := o.GenerateFromPeripherals(context.Background(), store)
	require.NoError(t, err)

	require.NotNil(t, sent)
	assert.Contains(t, sent.Prompt, "=== PERIPHERAL CONFIGURATION ===")
	assert.Contains(t, sent.Prompt, "GPIO PINS:")
	require.NotNil(t, sent.PeripheralConfig)
	assert.Len(t, sent.PeripheralConfig.GPIO, 1)
	assert.Equal(t, "nodemcuv2", sent.DetectedBoard)
	assert.Equal(t, "/dev/ttyUSB0", sent.DetectedPort)
	assert.Equal(t, 1, published)
}

func TestGenerateFromPeripheralsChatFallbackDoesNotPublish(t *testing.T) {
	gw := &mockGateway{
		executeFn: func(ctx context.Context, req *models.ExecuteRequest) (*models.ExecuteResponse, error) {
			return &models.ExecuteResponse{
				Status:  models.StatusSuccess,
				Message: "Could you clarify the baud rate?",
				IsChat:  true,
			}, nil
		},
	}
	o, bus, _ := newTestOrchestrator(gw)

	store := peripherals.NewStore(events.NewBus())
	store.AddUART("Serial1", 17, 16, 9600)

	published := 0
	bus.Subscribe(events.CodeGenerated, func(payload any) { published++ })

	_, err := o.GenerateFromPeripherals(context.Background(), store)
	require.NoError(t, err)
	assert.Zero(t, published)
}

func TestBuildRequiresProjectPath(t *testing.T) {
	gw := &mockGateway{}
	o, _, _ := newTestOrchestrator(gw)

	_, err := o.Build(context.Background(), "")
	require.Error(t, err)
	assert.Zero(t, gw.buildCalls)
}

func TestBuildUsesEffectiveBoard(t *testing.T) {
	var sent *models.BuildRequest
	gw := &mockGateway{
		buildFn: func(ctx context.Context, req *models.BuildRequest) (*models.BuildResponse, error) {
			sent = req
			return &models.BuildResponse{Status: models.StatusSuccess}, nil
		},
	}
	o, _, session := newTestOrchestrator(gw)
	session.Select("uno")
	session.RecordDetection("megaatmega2560", "COM4")

	_, err := o.Build(context.Background(), "/tmp/project")
	require.NoError(t, err)
	require.NotNil(t, sent)
	// A detected board takes priority over the manual selection.
	assert.Equal(t, "megaatmega2560", sent.Board)
}

func TestFlashPublishesStartAndExactlyOneComplete(t *testing.T) {
	gw := &mockGateway{
		flashFn: func(ctx context.Context, req *models.FlashRequest) (*models.FlashResponse, error) {
			return &models.FlashResponse{Success: true}, nil
		},
	}
	o, bus, session := newTestOrchestrator(gw)
	session.RecordDetection("esp32dev", "COM3")

	starts, completes := 0, 0
	var result events.FlashResult
	bus.Subscribe(events.FlashStart, func(payload any) { starts++ })
	bus.Subscribe(events.FlashComplete, func(payload any) {
		completes++
		result = payload.(events.FlashResult)
	})

	resp, err := o.Flash(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 1, starts)
	assert.Equal(t, 1, completes)
	assert.True(t, result.Success)
}

func TestFlashTransportFailureStillCompletes(t *testing.T) {
	gw := &mockGateway{
		flashFn: func(ctx context.Context, req *models.FlashRequest) (*models.FlashResponse, error) {
			return nil, errors.BackendUnreachable("/flash", context.DeadlineExceeded)
		},
	}
	o, bus, session := newTestOrchestrator(gw)
	session.RecordDetection("esp32dev", "COM3")

	starts, completes := 0, 0
	var result events.FlashResult
	bus.Subscribe(events.FlashStart, func(payload any) { starts++ })
	bus.Subscribe(events.FlashComplete, func(payload any) {
		completes++
		result = payload.(events.FlashResult)
	})

	_, err := o.Flash(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, starts)
	assert.Equal(t, 1, completes)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	assert.False(t, o.InFlight(KindFlash))
}

func TestFlashReportedFailureReturnsErrorAndCompletes(t *testing.T) {
	gw := &mockGateway{
		flashFn: func(ctx context.Context, req *models.FlashRequest) (*models.FlashResponse, error) {
			return &models.FlashResponse{Success: false, Error: "esptool: wrong chip"}, nil
		},
	}
	o, bus, session := newTestOrchestrator(gw)
	session.RecordDetection("esp32dev", "COM3")

	completes := 0
	bus.Subscribe(events.FlashComplete, func(payload any) { completes++ })

	_, err := o.Flash(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeFlashFailed, errors.GetCode(err))
	assert.Equal(t, 1, completes)
}

func TestFlashWithoutPortOrBoardSkipsHTTPAndEvents(t *testing.T) {
	gw := &mockGateway{}
	bus := events.NewBus()
	session := board.NewSession("")
	o := New(gw, bus, session)

	starts := 0
	bus.Subscribe(events.FlashStart, func(payload any) { starts++ })

	_, err := o.Flash(context.Background())
	require.Error(t, err)
	assert.Zero(t, gw.flashCalls)
	assert.Zero(t, starts)
}

func TestReentrancyRejectedPerKind(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var startOnce sync.Once
	gw := &mockGateway{
		chatFn: func(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
			startOnce.Do(func() { close(started) })
			<-release
			return &models.ChatResponse{Status: models.StatusSuccess, ResponseType: models.ResponseTypeText}, nil
		},
		detectFn: func(ctx context.Context) (*models.DetectResponse, error) {
			return &models.DetectResponse{Devices: []models.Device{{Port: "COM3", Board: "uno"}}}, nil
		},
	}
	o, _, _ := newTestOrchestrator(gw)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = o.Generate(context.Background(), "first")
	}()
	<-started

	// Same kind is rejected while the first request is mid-flight.
	_, err := o.Generate(context.Background(), "second")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeCommandInFlight, errors.GetCode(err))

	// A different kind proceeds concurrently.
	_, err = o.Detect(context.Background())
	require.NoError(t, err)

	close(release)
	wg.Wait()

	// The flag clears once the command settles.
	assert.False(t, o.InFlight(KindGenerate))
	_, err = o.Generate(context.Background(), "third")
	require.NoError(t, err)
}
