// Package orchestrator sequences the shell's async backend commands
// (detect, generate, build, flash), keeps their in-flight flags honest,
// and republishes outcomes onto the event bus.
package orchestrator

import (
	"context"
	"sync"

	"github.com/hardcoreai/shell/errors"
	"github.com/hardcoreai/shell/logging"
	"github.com/hardcoreai/shell/pkg/board"
	"github.com/hardcoreai/shell/pkg/events"
	"github.com/hardcoreai/shell/pkg/models"
	"github.com/hardcoreai/shell/pkg/peripherals"
	"github.com/sirupsen/logrus"
)

// Kind identifies one async command family. Commands of different
// kinds run concurrently; re-entry within a kind is rejected.
type Kind string

const (
	KindDetect   Kind = "detect"
	KindGenerate Kind = "generate"
	KindBuild    Kind = "build"
	KindFlash    Kind = "flash"
)

// DefaultFileName is where generated firmware lands when the backend
// does not name a file.
const DefaultFileName = "main.cpp"

// Gateway is the backend surface the orchestrator needs. *gateway.Client
// satisfies it; tests substitute a mock.
type Gateway interface {
	Detect(ctx context.Context) (*models.DetectResponse, error)
	Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error)
	Execute(ctx context.Context, req *models.ExecuteRequest) (*models.ExecuteResponse, error)
	Build(ctx context.Context, req *models.BuildRequest) (*models.BuildResponse, error)
	Flash(ctx context.Context, req *models.FlashRequest) (*models.FlashResponse, error)
}

// Orchestrator issues backend commands and translates their responses
// into events. Errors never propagate into the bus or corrupt store
// state; every failure is recoverable by re-invoking the command.
type Orchestrator struct {
	mu       sync.Mutex
	inFlight map[Kind]bool

	gw      Gateway
	bus     *events.Bus
	session *board.Session
	logger  *logrus.Entry

	projectID string
}

// New creates an orchestrator over the given gateway, bus and session.
func New(gw Gateway, bus *events.Bus, session *board.Session) *Orchestrator {
	return &Orchestrator{
		inFlight:  make(map[Kind]bool),
		gw:        gw,
		bus:       bus,
		session:   session,
		logger:    logging.NewLogger("orchestrator"),
		projectID: "current_project",
	}
}

// InFlight reports whether a command of the given kind is running.
func (o *Orchestrator) InFlight(kind Kind) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inFlight[kind]
}

// begin marks a kind in flight, rejecting re-entry.
func (o *Orchestrator) begin(kind Kind) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.inFlight[kind] {
		return errors.CommandInFlight(string(kind))
	}
	o.inFlight[kind] = true
	return nil
}

// end clears the in-flight flag. Deferred by every command so the flag
// cannot stay stuck true, whatever the failure.
func (o *Orchestrator) end(kind Kind) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.inFlight[kind] = false
}

// Detect asks the backend to enumerate connected devices. On success
// with at least one device, the session records the first device's
// board and port; the full list is returned for manual disambiguation.
// On an empty list or transport failure the session is left untouched.
func (o *Orchestrator) Detect(ctx context.Context) ([]models.Device, error) {
	if err := o.begin(KindDetect); err != nil {
		return nil, err
	}
	defer o.end(KindDetect)

	resp, err := o.gw.Detect(ctx)
	if err != nil {
		o.logger.WithError(err).Warn("device detection failed")
		return nil, err
	}
	if len(resp.Devices) == 0 {
		return nil, errors.NoDevices()
	}

	first := resp.Devices[0]
	o.session.RecordDetection(first.Board, first.Port)
	o.logger.WithFields(logrus.Fields{
		"board": first.Board,
		"port":  first.Port,
		"count": len(resp.Devices),
	}).Info("device detected")

	return resp.Devices, nil
}

// Generate sends a conversational generation request. A "code"
// response publishes CodeGenerated with the firmware and the default
// file name; any other response kind reaches the conversational UI
// through the returned response and never touches the editor.
func (o *Orchestrator) Generate(ctx context.Context, message string) (*models.ChatResponse, error) {
	if message == "" {
		return nil, errors.InvalidInput("message must not be empty")
	}
	if err := o.begin(KindGenerate); err != nil {
		return nil, err
	}
	defer o.end(KindGenerate)

	resp, err := o.gw.Chat(ctx, &models.ChatRequest{
		Message:       message,
		ProjectID:     o.projectID,
		BoardType:     o.session.Selected(),
		DetectedBoard: o.session.Detected(),
	})
	if err != nil {
		o.logger.WithError(err).Warn("chat generation failed")
		return nil, err
	}

	o.publishIfCode(resp.ResponseType == models.ResponseTypeCode, resp.Firmware, "")
	return resp, nil
}

// GenerateFromPeripherals serializes the full structured configuration
// to the backend. An all-empty configuration is a validation error and
// never issues an HTTP call.
func (o *Orchestrator) GenerateFromPeripherals(ctx context.Context, store *peripherals.Store) (*models.ExecuteResponse, error) {
	cfg := store.Snapshot()
	if cfg.Total() == 0 {
		return nil, errors.InvalidInput("no peripherals configured")
	}

	if err := o.begin(KindGenerate); err != nil {
		return nil, err
	}
	defer o.end(KindGenerate)

	resp, err := o.gw.Execute(ctx, &models.ExecuteRequest{
		Prompt:           cfg.Prompt(o.session.Effective()),
		BoardType:        o.session.Selected(),
		ProjectID:        o.projectID,
		PeripheralConfig: &cfg,
		DetectedBoard:    o.session.Detected(),
		DetectedPort:     o.session.Port(),
	})
	if err != nil {
		o.logger.WithError(err).Warn("peripheral generation failed")
		return nil, err
	}

	o.publishIfCode(resp.Status == models.StatusSuccess && !resp.IsChat, resp.Firmware, "")
	return resp, nil
}

// Build compiles the firmware project on the backend.
func (o *Orchestrator) Build(ctx context.Context, projectPath string) (*models.BuildResponse, error) {
	if projectPath == "" {
		return nil, errors.InvalidInput("project path is required")
	}
	if err := o.begin(KindBuild); err != nil {
		return nil, err
	}
	defer o.end(KindBuild)

	resp, err := o.gw.Build(ctx, &models.BuildRequest{
		ProjectPath: projectPath,
		Board:       o.session.Effective(),
	})
	if err != nil {
		o.logger.WithError(err).Warn("build failed")
		return nil, err
	}
	return resp, nil
}

// Flash builds and writes the firmware to the connected device. A
// missing port and board short-circuits before any HTTP request. Once
// FlashStart has been published, exactly one FlashComplete follows,
// whatever the outcome, so the UI can never wedge in a building state.
func (o *Orchestrator) Flash(ctx context.Context) (*models.FlashResponse, error) {
	port := o.session.Port()
	boardID := o.session.Effective()
	if port == "" && boardID == "" {
		return nil, errors.InvalidInput("no port or board; detect or select a board before flashing")
	}

	if err := o.begin(KindFlash); err != nil {
		return nil, err
	}
	defer o.end(KindFlash)

	o.bus.Publish(events.FlashStart, struct{}{})

	resp, err := o.gw.Flash(ctx, &models.FlashRequest{Port: port, Board: boardID})
	if err != nil {
		o.logger.WithError(err).Warn("flash failed")
		o.bus.Publish(events.FlashComplete, events.FlashResult{Success: false, Error: err.Error()})
		return nil, err
	}

	o.bus.Publish(events.FlashComplete, events.FlashResult{Success: resp.Success, Error: resp.Error})
	if !resp.Success {
		return resp, errors.FlashFailed(port, resp.Error)
	}
	return resp, nil
}

// publishIfCode guards the single editor-mutation path: only genuine
// code responses with a non-empty firmware string reach the bus.
func (o *Orchestrator) publishIfCode(isCode bool, firmware, fileName string) {
	if !isCode || firmware == "" {
		return
	}
	if fileName == "" {
		fileName = DefaultFileName
	}
	o.bus.Publish(events.CodeGenerated, events.CodeGeneratedPayload{
		Code:     firmware,
		FileName: fileName,
	})
	o.logger.WithField("file", fileName).Info("firmware generated")
}
