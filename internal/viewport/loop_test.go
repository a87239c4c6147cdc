package viewport_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/JaimeStill/pdf-editor/internal/viewport"
)

func TestLoop_RunsContinuationsOnLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := viewport.NewLoop(8, slog.New(slog.DiscardHandler))
	go loop.Run(ctx)

	var order []string
	done := make(chan struct{})

	loop.Post(func() {
		order = append(order, "gesture")
		loop.Execute(func() func() {
			return func() {
				order = append(order, "continuation")
				close(done)
			}
		})
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("continuation did not run")
	}

	result := make(chan []string)
	loop.Post(func() { result <- append([]string(nil), order...) })

	got := <-result
	if len(got) != 2 || got[0] != "gesture" || got[1] != "continuation" {
		t.Errorf("order = %v, want [gesture continuation]", got)
	}
}

func TestLoop_RecoversFromPanics(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := viewport.NewLoop(8, slog.New(slog.DiscardHandler))
	go loop.Run(ctx)

	loop.Post(func() { panic("boom") })

	done := make(chan struct{})
	loop.Post(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop stopped after a panic")
	}
}

func TestLoop_PostAfterStopDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	loop := viewport.NewLoop(1, slog.New(slog.DiscardHandler))
	stopped := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	posted := make(chan struct{})
	go func() {
		for range 4 {
			loop.Post(func() {})
		}
		loop.Execute(func() func() { return func() {} })
		close(posted)
	}()

	select {
	case <-posted:
	case <-time.After(2 * time.Second):
		t.Fatal("Post blocked after the loop stopped")
	}
}
