// Package board holds the target-board session state shared by the
// detection flow, the generators and the flash pipeline.
package board

import (
	"sync"
)

// Session tracks the selected target board, the last detected board and
// the connected serial port. It is created once at process start and
// lives for the process lifetime.
type Session struct {
	mu       sync.RWMutex
	selected string
	detected string
	port     string
}

// NewSession creates a session with the given default board id.
func NewSession(defaultBoard string) *Session {
	return &Session{selected: defaultBoard}
}

// Select records a manual board selection.
func (s *Session) Select(boardID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = boardID
}

// RecordDetection records the board and port of a detected device.
func (s *Session) RecordDetection(boardID, port string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detected = boardID
	s.port = port
}

// Selected returns the manually selected board id.
func (s *Session) Selected() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Detected returns the last detected board id, or empty.
func (s *Session) Detected() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.detected
}

// Port returns the connected serial port, or empty.
func (s *Session) Port() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.port
}

// Connected reports whether a device has been detected.
func (s *Session) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.port != ""
}

// Effective returns the board to use for generation and flashing.
// Detection is the source of truth when present, else the manual
// selection.
func (s *Session) Effective() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.detected != "" {
		return s.detected
	}
	return s.selected
}
