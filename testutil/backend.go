// Package testutil provides a fake hardcore backend for tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/hardcoreai/shell/pkg/models"
)

// FakeBackend is an httptest server that speaks the backend HTTP
// contract. Response fields are plain data; tests set them up front and
// read the request log afterwards.
type FakeBackend struct {
	Server *httptest.Server

	DetectResponse  models.DetectResponse
	ChatResponse    models.ChatResponse
	ExecuteResponse models.ExecuteResponse
	BuildResponse   models.BuildResponse
	FlashResponse   models.FlashResponse

	// Requests records the paths hit, in order.
	Requests []string

	// LastExecute holds the most recent /execute request body.
	LastExecute *models.ExecuteRequest
}

// NewFakeBackend starts a fake backend with success-shaped defaults.
func NewFakeBackend() *FakeBackend {
	fb := &FakeBackend{
		DetectResponse: models.DetectResponse{
			Devices: []models.Device{{Port: "COM3", Board: "esp32dev", ChipType: "ESP32"}},
		},
		ChatResponse: models.ChatResponse{
			Status:       models.StatusSuccess,
			ResponseType: models.ResponseTypeCode,
			Firmware:     "void setup() {}\nvoid loop() {}\n",
		},
		ExecuteResponse: models.ExecuteResponse{
			Status:   models.StatusSuccess,
			Firmware: "void setup() {}\nvoid loop() {}\n",
		},
		BuildResponse: models.BuildResponse{Status: models.StatusSuccess},
		FlashResponse: models.FlashResponse{Success: true},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/detect", func(w http.ResponseWriter, r *http.Request) {
		fb.handle(w, r, fb.DetectResponse)
	})
	mux.HandleFunc("/chat", func(w http.ResponseWriter, r *http.Request) {
		fb.handle(w, r, fb.ChatResponse)
	})
	mux.HandleFunc("/execute", func(w http.ResponseWriter, r *http.Request) {
		var req models.ExecuteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			fb.LastExecute = &req
		}
		fb.handle(w, r, fb.ExecuteResponse)
	})
	mux.HandleFunc("/build", func(w http.ResponseWriter, r *http.Request) {
		fb.handle(w, r, fb.BuildResponse)
	})
	mux.HandleFunc("/flash", func(w http.ResponseWriter, r *http.Request) {
		fb.handle(w, r, fb.FlashResponse)
	})
	mux.HandleFunc("/settings/api-key", func(w http.ResponseWriter, r *http.Request) {
		fb.handle(w, r, models.APIKeyResponse{OK: true})
	})

	fb.Server = httptest.NewServer(mux)
	return fb
}

// URL returns the base URL of the fake backend.
func (fb *FakeBackend) URL() string {
	return fb.Server.URL
}

// Close shuts the server down.
func (fb *FakeBackend) Close() {
	fb.Server.Close()
}

func (fb *FakeBackend) handle(w http.ResponseWriter, r *http.Request, body interface{}) {
	fb.Requests = append(fb.Requests, r.URL.Path)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}
