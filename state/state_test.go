package state

import (
	"testing"
)

func TestStateOperations(t *testing.T) {
	t.Setenv("HARDCORE_STATE_DIR", t.TempDir())

	t.Run("Load empty state", func(t *testing.T) {
		state, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if state == nil {
			t.Fatal("Load() returned nil state")
		}
		if len(state) != 0 {
			t.Errorf("Load() returned non-empty state: %v", state)
		}
	})

	t.Run("Set and Get string value", func(t *testing.T) {
		if err := Set(KeyAPIKey, "sk-test-123"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, err := GetString(KeyAPIKey)
		if err != nil {
			t.Fatalf("GetString() error = %v", err)
		}
		if got != "sk-test-123" {
			t.Errorf("GetString() = %q, want %q", got, "sk-test-123")
		}
	})

	t.Run("Get missing key", func(t *testing.T) {
		_, ok, err := Get("does.not.exist")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if ok {
			t.Error("Get() reported a missing key as present")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := Set("some.key", "value"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		if err := Delete("some.key"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		_, ok, err := Get("some.key")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if ok {
			t.Error("key still present after Delete()")
		}

		// Deleting a missing key is a no-op
		if err := Delete("some.key"); err != nil {
			t.Fatalf("Delete() of missing key error = %v", err)
		}
	})
}
