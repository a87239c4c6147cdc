package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/JaimeStill/pdf-editor/internal/config"
	"github.com/JaimeStill/pdf-editor/internal/lifecycle"
	"github.com/JaimeStill/pdf-editor/internal/mutations"
	"github.com/JaimeStill/pdf-editor/internal/raster"
	"github.com/JaimeStill/pdf-editor/internal/reconcile"
	"github.com/JaimeStill/pdf-editor/internal/surface"
	"github.com/JaimeStill/pdf-editor/internal/viewport"
	"github.com/JaimeStill/pdf-editor/pkg/logging"
)

const loopBuffer = 64

// App wires the editor to its event loop, the mutation service and the
// PNG presenter.
type App struct {
	lifecycle *lifecycle.Coordinator
	loop      *viewport.Loop
	editor    *viewport.Editor
	out       io.Writer
	logger    *slog.Logger

	done     chan struct{}
	doneOnce sync.Once
}

// NewApp creates the editor client. Notices and command output go to out;
// logs go to standard error.
func NewApp(cfg *config.Config, out io.Writer) (*App, error) {
	logger := logging.New(&cfg.Logging, os.Stderr)

	client, err := mutations.New(mutations.Config{
		BaseURL: cfg.Editor.ServiceURL,
		Timeout: cfg.Editor.RequestTimeoutDuration(),
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("mutation client: %w", err)
	}

	compositor, err := surface.New()
	if err != nil {
		return nil, fmt.Errorf("surface: %w", err)
	}

	rasterizer := raster.New(cfg.Editor.WorkDir, logger)
	loop := viewport.NewLoop(loopBuffer, logger)

	app := &App{
		lifecycle: lifecycle.New(),
		loop:      loop,
		out:       out,
		logger:    logger.With("system", "editor"),
		done:      make(chan struct{}),
	}

	app.editor = viewport.New(viewport.Deps{
		Service: client,
		Rasterizer: viewport.RasterizerFunc(func(data []byte) (viewport.Pages, error) {
			h, err := rasterizer.Load(data)
			if err != nil {
				return nil, err
			}
			return h, nil
		}),
		Executor:  loop,
		Notifier:  reconcile.NotifierFunc(app.notice),
		Presenter: surface.NewPNGWriter(cfg.Editor.Output, compositor, logger),
		Logger:    logger,
	}, viewport.Config{
		InsertText:    cfg.Editor.InsertText,
		MaxUploadSize: cfg.Editor.MaxUploadSizeBytes(),
	})

	logger.Info(
		"editor initialized",
		"service_url", cfg.Editor.ServiceURL,
		"output", cfg.Editor.Output,
	)

	return app, nil
}

// Start runs the event loop until shutdown.
func (a *App) Start() {
	a.lifecycle.OnStartup(func() {
		a.logger.Info("event loop running")
	})

	a.lifecycle.OnShutdown(func() {
		a.loop.Run(a.lifecycle.Context())
		if err := a.editor.Close(); err != nil {
			a.logger.Warn("closing document failed", "error", err)
		}
	})

	a.lifecycle.WaitForStartup()
}

// Done is closed when the user quits or input ends.
func (a *App) Done() <-chan struct{} {
	return a.done
}

// ReadCommands parses one command per line and posts it to the event loop.
func (a *App) ReadCommands(r io.Reader) {
	defer a.quit()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		cmd, err := Parse(scanner.Text())
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			continue
		}
		if cmd.Name == "" {
			continue
		}
		if cmd.Name == "quit" {
			return
		}

		a.loop.Post(func() {
			ctx := a.lifecycle.Context()
			if err := Run(ctx, a.editor, cmd, a.out); err != nil {
				fmt.Fprintf(a.out, "error: %v\n", err)
			}
			a.editor.Redraw()
		})
	}

	if err := scanner.Err(); err != nil {
		a.logger.Error("reading commands failed", "error", err)
	}
}

// Shutdown stops the event loop and releases the session.
func (a *App) Shutdown(timeout time.Duration) error {
	a.logger.Info("initiating shutdown")
	return a.lifecycle.Shutdown(timeout)
}

func (a *App) quit() {
	a.doneOnce.Do(func() { close(a.done) })
}

func (a *App) notice(n reconcile.Notice) {
	if n.Err != nil {
		fmt.Fprintf(a.out, "[%s] %s: %v\n", n.Level, n.Message, n.Err)
		return
	}
	fmt.Fprintf(a.out, "[%s] %s\n", n.Level, n.Message)
}
