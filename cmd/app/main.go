// Image Editor - windowed raster image editor with filters,
// live slider preview and linear undo/redo.

package main

import (
	"flag"
	"log/slog"
	"os"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/sirupsen/logrus"

	"interactive-image-editor/internal/config"
	"interactive-image-editor/internal/core"
	"interactive-image-editor/internal/gui"
)

const (
	AppName = "Image Editor"
	AppID   = "com.imageeditor.app"
)

func main() {
	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	configPath := flag.String("config", "editor.toml", "Path to the TOML configuration file")
	flag.Parse()

	// Process-level logger
	logger := initLogger(*debugMode)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	logger.WithFields(logrus.Fields{
		"debug_mode":    *debugMode,
		"config":        *configPath,
		"history_depth": cfg.History.MaxDepth,
	}).Info("Starting Image Editor")

	// Structured logger for the core and GUI components
	coreLogger := initCoreLogger(*debugMode, cfg.Logger.Level)

	editor := core.NewEditor(cfg.History.MaxDepth, coreLogger)
	defer editor.Close()

	myApp := app.NewWithID(AppID)
	myApp.SetIcon(theme.DocumentIcon())
	myApp.Settings().SetTheme(theme.DefaultTheme())

	mainApp := gui.NewApplication(myApp, editor, cfg, coreLogger)
	mainApp.ShowAndRun()

	logger.Info("Application shutting down gracefully")
	os.Exit(0)
}

// initLogger initializes the process logger with appropriate level
func initLogger(debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}

// initCoreLogger builds the slog logger handed to internal components.
// The debug flag overrides the configured level.
func initCoreLogger(debugMode bool, level string) *slog.Logger {
	slogLevel := slog.LevelInfo
	if debugMode {
		slogLevel = slog.LevelDebug
	} else {
		switch level {
		case "debug":
			slogLevel = slog.LevelDebug
		case "warn":
			slogLevel = slog.LevelWarn
		case "error":
			slogLevel = slog.LevelError
		}
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slogLevel,
	})
	return slog.New(handler)
}
