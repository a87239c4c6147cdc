package lifecycle_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/JaimeStill/pdf-editor/internal/lifecycle"
)

func TestNew(t *testing.T) {
	lc := lifecycle.New()

	if lc.Context() == nil {
		t.Fatal("Context() returned nil")
	}
	if lc.Ready() {
		t.Error("Ready() = true, want false for new coordinator")
	}
}

func TestCoordinator_OnStartup(t *testing.T) {
	lc := lifecycle.New()

	var count atomic.Int32
	for range 3 {
		lc.OnStartup(func() {
			count.Add(1)
		})
	}

	lc.WaitForStartup()

	if count.Load() != 3 {
		t.Errorf("count = %d, want 3", count.Load())
	}
	if !lc.Ready() {
		t.Error("Ready() = false after WaitForStartup")
	}
}

func TestCoordinator_Shutdown(t *testing.T) {
	lc := lifecycle.New()

	var released atomic.Bool
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		released.Store(true)
	})
	lc.WaitForStartup()

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}

	if !released.Load() {
		t.Error("shutdown hook did not run")
	}
	if lc.Ready() {
		t.Error("Ready() = true after shutdown")
	}
	select {
	case <-lc.Context().Done():
	default:
		t.Error("context should be cancelled after shutdown")
	}
}

func TestCoordinator_ShutdownTimeout(t *testing.T) {
	lc := lifecycle.New()

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		time.Sleep(500 * time.Millisecond)
	})

	if err := lc.Shutdown(50 * time.Millisecond); err == nil {
		t.Error("Shutdown() should return timeout error")
	}
}

func TestCoordinator_ReadinessChecker(t *testing.T) {
	var checker lifecycle.ReadinessChecker = lifecycle.New()
	if checker.Ready() {
		t.Error("Ready() = true, want false")
	}
}
