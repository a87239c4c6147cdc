package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/JaimeStill/pdf-editor/internal/modes"
	"github.com/JaimeStill/pdf-editor/internal/reconcile"
	"github.com/JaimeStill/pdf-editor/internal/viewport"
	"github.com/JaimeStill/pdf-editor/pkg/geometry"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
)

// Command is one parsed input line. Pages are one-based on input and
// converted to zero-based indices by Parse.
type Command struct {
	Name  string
	Text  string
	Ints  []int
	Point geometry.Point
	Zoom  float64
}

type syntax struct {
	usage string
	parse func(rest string, cmd *Command) error
}

var commands = map[string]syntax{
	"open":     {"open <path>", text},
	"page":     {"page <n>", pages(1)},
	"next":     {"next", none},
	"prev":     {"prev", none},
	"zoom":     {"zoom in|out|reset|<level>", zoom},
	"mode":     {"mode navigate|select|insert|reorder|rotate", text},
	"click":    {"click <x> <y>", point},
	"dblclick": {"dblclick <x> <y>", point},
	"type":     {"type <text>", raw},
	"save":     {"save", none},
	"esc":      {"esc", none},
	"prop":     {"prop <name> <value>", text},
	"delete":   {"delete", none},
	"rotate":   {"rotate <degrees>", degrees},
	"move":     {"move <from> <to>", pages(2)},
	"find":     {"find <query>", text},
	"fonts":    {"fonts", none},
	"export":   {"export <path>", text},
	"quit":     {"quit", none},
}

// Parse reads a command line. Blank lines and lines starting with # yield a
// Command with an empty Name.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Command{}, nil
	}

	name, rest, _ := strings.Cut(line, " ")
	name = strings.ToLower(name)

	s, ok := commands[name]
	if !ok {
		return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	cmd := Command{Name: name}
	if err := s.parse(rest, &cmd); err != nil {
		return Command{}, fmt.Errorf("%w: %s", ErrUsage, s.usage)
	}
	return cmd, nil
}

func none(rest string, _ *Command) error {
	if strings.TrimSpace(rest) != "" {
		return ErrUsage
	}
	return nil
}

func text(rest string, cmd *Command) error {
	cmd.Text = strings.TrimSpace(rest)
	if cmd.Text == "" {
		return ErrUsage
	}
	return nil
}

// raw keeps the argument untrimmed apart from the separating space.
func raw(rest string, cmd *Command) error {
	cmd.Text = rest
	return nil
}

func pages(n int) func(string, *Command) error {
	return func(rest string, cmd *Command) error {
		fields := strings.Fields(rest)
		if len(fields) != n {
			return ErrUsage
		}
		for _, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil || v < 1 {
				return ErrUsage
			}
			cmd.Ints = append(cmd.Ints, v-1)
		}
		return nil
	}
}

func degrees(rest string, cmd *Command) error {
	v, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return ErrUsage
	}
	cmd.Ints = []int{v}
	return nil
}

func point(rest string, cmd *Command) error {
	fields := strings.Fields(rest)
	if len(fields) != 2 {
		return ErrUsage
	}
	x, xerr := strconv.ParseFloat(fields[0], 64)
	y, yerr := strconv.ParseFloat(fields[1], 64)
	if xerr != nil || yerr != nil {
		return ErrUsage
	}
	cmd.Point = geometry.Point{X: x, Y: y}
	return nil
}

func zoom(rest string, cmd *Command) error {
	arg := strings.ToLower(strings.TrimSpace(rest))
	switch arg {
	case "in", "out", "reset":
		cmd.Text = arg
		return nil
	}
	z, err := strconv.ParseFloat(strings.TrimSuffix(arg, "%"), 64)
	if err != nil {
		return ErrUsage
	}
	if strings.HasSuffix(arg, "%") {
		z /= 100
	}
	cmd.Zoom = z
	return nil
}

// Run applies cmd to the editor. It must be called on the editor's event
// loop; the caller redraws afterwards.
func Run(ctx context.Context, e *viewport.Editor, cmd Command, out io.Writer) error {
	switch cmd.Name {
	case "open":
		data, err := os.ReadFile(cmd.Text)
		if err != nil {
			return err
		}
		return e.Upload(ctx, filepath.Base(cmd.Text), data)
	case "page":
		return e.GoToPage(ctx, cmd.Ints[0])
	case "next":
		return e.NextPage(ctx)
	case "prev":
		return e.PrevPage(ctx)
	case "zoom":
		switch cmd.Text {
		case "in":
			return e.ZoomIn()
		case "out":
			return e.ZoomOut()
		case "reset":
			return e.ResetZoom()
		}
		return e.SetZoom(cmd.Zoom)
	case "mode":
		m, err := modes.ParseMode(cmd.Text)
		if err != nil {
			return err
		}
		e.SwitchMode(m)
		return nil
	case "click":
		return e.Click(ctx, cmd.Point)
	case "dblclick":
		return e.DoubleClick(ctx, cmd.Point)
	case "type":
		return e.Type(cmd.Text)
	case "save":
		return e.Save(ctx)
	case "esc":
		e.Escape()
		return nil
	case "prop":
		name, value, ok := strings.Cut(cmd.Text, " ")
		if !ok {
			return fmt.Errorf("%w: %s", ErrUsage, commands["prop"].usage)
		}
		return e.SetProperty(ctx, name, strings.TrimSpace(value))
	case "delete":
		return e.Delete(ctx)
	case "rotate":
		return e.Rotate(ctx, cmd.Ints[0])
	case "move":
		return e.MovePage(ctx, cmd.Ints[0], cmd.Ints[1])
	case "find":
		return e.Find(ctx, cmd.Text)
	case "fonts":
		return e.Fonts(ctx, func(fonts []reconcile.Font) {
			PrintFonts(out, fonts)
		})
	case "export":
		return e.Export(ctx, cmd.Text)
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Name)
}

// PrintFonts writes one line per font.
func PrintFonts(out io.Writer, fonts []reconcile.Font) {
	if len(fonts) == 0 {
		fmt.Fprintln(out, "no fonts")
		return
	}
	for _, f := range fonts {
		style := ""
		switch {
		case f.Bold && f.Italic:
			style = " bold italic"
		case f.Bold:
			style = " bold"
		case f.Italic:
			style = " italic"
		}
		fmt.Fprintf(out, "%s %gpt%s\n", f.Name, f.Size, style)
	}
}
