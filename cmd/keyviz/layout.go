package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/1broseidon/keyviz/internal/config"
	"github.com/1broseidon/keyviz/internal/keyboard"
	"golang.org/x/term"
)

const (
	cellWidth = 3 // "[Q]"
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

type previewOptions struct {
	Width int  // clip lines to this many columns; 0 means no limit
	Bold  bool // emphasize key labels with ANSI bold
}

// renderLayout writes a text picture of the key grid and the control row.
func renderLayout(w io.Writer, layout *keyboard.Layout, glyphs config.Glyphs, opts previewOptions) error {
	cols := layout.NumCols()
	fit := cols
	if opts.Width > 0 && opts.Width/cellWidth < fit {
		fit = opts.Width / cellWidth
	}

	var b strings.Builder
	for _, row := range layout.Rows() {
		if len(row) > fit {
			row = row[:fit]
		}
		for _, id := range row {
			label := strings.ToUpper(string(id))
			if opts.Bold {
				label = ansiBold + label + ansiReset
			}
			b.WriteString("[" + label + "]")
		}
		b.WriteByte('\n')
	}

	// Lock indicator on the left, drag handle on the right.
	lock := "[" + glyphs.Locked + "]"
	handle := "[" + glyphs.Handle + "]"
	lineWidth := cols * cellWidth
	if opts.Width > 0 && lineWidth > opts.Width {
		lineWidth = opts.Width
	}
	gap := lineWidth - len([]rune(lock)) - len([]rune(handle))
	if gap < 1 {
		gap = 1
	}
	b.WriteString(lock + strings.Repeat(" ", gap) + handle + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func runLayout(args []string) int {
	fs := flag.NewFlagSet("layout", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/keyviz/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: keyviz layout [--config PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Print the configured key grid and overlay size.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config
	layout, err := cfg.KeyLayout()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	opts := previewOptions{}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		opts.Bold = true
		if width, _, err := term.GetSize(fd); err == nil {
			opts.Width = width
		}
	}

	frame := metricsFor(cfg).Compute(layout.NumRows(), layout.NumCols())
	fmt.Printf("%d keys in %d rows, window %dx%d px at (%d,%d)\n\n",
		layout.Len(), layout.NumRows(), frame.Width, frame.Height,
		cfg.Geometry.OriginX, cfg.Geometry.OriginY)

	if err := renderLayout(os.Stdout, layout, cfg.Glyphs, opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
