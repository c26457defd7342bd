package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/keyviz/internal/config"
	"github.com/1broseidon/keyviz/internal/grid"
	"github.com/1broseidon/keyviz/internal/keyboard"
	"github.com/1broseidon/keyviz/internal/overlay"
	"github.com/1broseidon/keyviz/internal/x11"
	"gopkg.in/yaml.v3"
)

const (
	windowTitle = "Keyboard Visualizer"
	windowClass = "keyviz"
)

func main() {
	if len(os.Args) < 2 {
		os.Exit(runOverlay(nil))
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runOverlay(os.Args[2:]))
	case "layout":
		os.Exit(runLayout(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: keyviz [command] [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Show the keyboard overlay (default)")
	fmt.Fprintln(w, "  layout              Print a text preview of the key grid")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'keyviz <command> --help' for command-specific options.")
}

// loadConfig loads the config at path, or at the default location when path
// is empty.
func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromPath(path)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))
}

func metricsFor(cfg *config.Config) grid.Metrics {
	return grid.Metrics{
		KeyWidth:    cfg.Geometry.KeyWidth,
		KeyHeight:   cfg.Geometry.KeyHeight,
		Padding:     cfg.Geometry.Padding,
		ControlSize: cfg.Geometry.ControlSize,
	}
}

func runOverlay(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/keyviz/config.yaml)")
	display := fs.String("display", "", "X display to connect to (overrides config)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: keyviz run [--config PATH] [--display NAME]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show the keyboard overlay. Right-click it for the menu.")
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
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg := res.Config
	if *display != "" {
		cfg.Display = *display
	}
	logger := newLogger(os.Stderr, cfg.LogLevel)

	layout, err := cfg.KeyLayout()
	if err != nil {
		log.Fatalf("Invalid key layout: %v", err)
	}
	board := keyboard.NewBoard(layout)
	metrics := metricsFor(cfg)
	frame := metrics.Compute(layout.NumRows(), layout.NumCols())

	keys := make([]x11.KeySpec, 0, layout.Len())
	for _, k := range board.Keys() {
		keys = append(keys, x11.KeySpec{
			ID:    k.ID,
			Label: k.Label,
			Rect:  metrics.Cell(k.Row, k.Col),
		})
	}

	conn, err := x11.NewConnection(cfg.Display)
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	defer conn.Close()

	origin := grid.Point{X: cfg.Geometry.OriginX, Y: cfg.Geometry.OriginY}
	if visible, err := conn.VisibleOrigin(origin, frame.Width, frame.Height); err != nil {
		logger.Warn("could not query monitors, using configured origin", "error", err)
	} else if visible != origin {
		logger.Info("configured origin is off screen, moving overlay",
			"x", visible.X, "y", visible.Y)
		origin = visible
	}

	palette := cfg.Palette()
	surface, err := x11.NewOverlay(conn, x11.Options{
		Title:   windowTitle,
		Class:   windowClass,
		Frame:   frame,
		Keys:    keys,
		Palette: palette,
		Glyphs:  cfg.Glyphs,
		Fonts:   cfg.Fonts,
		Logger:  logger,
	})
	if err != nil {
		log.Printf("Failed to create overlay: %v", err)
		return 1
	}
	defer surface.Destroy()

	ctrl := overlay.NewController(board, surface, overlay.Options{
		Metrics:    metrics,
		Origin:     origin,
		Colors:     overlay.Colors{Idle: palette.Idle, Active: palette.Active},
		CloseLabel: cfg.Menu.CloseLabel,
		Logger:     logger,
	})
	surface.Bind(ctrl)
	if err := ctrl.Start(); err != nil {
		log.Printf("Failed to draw overlay: %v", err)
		return 1
	}
	surface.Show()

	// Signals arrive on another goroutine; the close request is handled by
	// the event loop like any other event.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		sig := <-sigCh
		log.Printf("Received %s, closing overlay", sig)
		if err := surface.RequestClose(); err != nil {
			log.Printf("Failed to request close: %v", err)
		}
	}()

	if res.File != "" {
		log.Printf("Configuration loaded from %s", res.File)
	}
	log.Println("Entering event loop...")
	conn.EventLoop()
	log.Println("keyviz overlay closed")
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  keyviz config validate [--config PATH]")
		fmt.Fprintln(os.Stderr, "  keyviz config print [--config PATH] [--effective|--defaults]")
		fmt.Fprintln(os.Stderr, "  keyviz config explain [--config PATH] <yaml.path>")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("config", "", "Config file path (default: ~/.config/keyviz/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		if _, err := loadConfig(*path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("config", "", "Config file path (default: ~/.config/keyviz/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		printEffective := fs.Bool("effective", false, "Print effective config (default)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			_ = printEffective // default
			res, err := loadConfig(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			if res.File != "" {
				fmt.Printf("# file: %s\n", res.File)
			}
			cfg = res.Config
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	case "explain":
		fs := flag.NewFlagSet("explain", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("config", "", "Config file path (default: ~/.config/keyviz/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if fs.NArg() < 1 {
			fmt.Fprintln(os.Stderr, "explain requires <yaml.path>")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Known paths:")
			for _, p := range config.ExplainPaths() {
				fmt.Fprintf(os.Stderr, "  %s\n", p)
			}
			return 2
		}
		queryPath := fs.Arg(0)

		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		value, src, err := config.Explain(res, queryPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		out, err := yaml.Marshal(value)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		fmt.Printf("path: %s\n", queryPath)
		fmt.Printf("source: %s\n", formatSource(src))
		fmt.Printf("value:\n%s", string(out))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	case config.SourceDefault:
		return "default"
	default:
		return string(src.Kind)
	}
}
