// UMBRA ⸻ internal/daemon/daemon.go
// daemon management for background labeling

package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"sombra/internal/config"
	"sombra/internal/formats"
	"sombra/internal/label"
	"sombra/internal/util"
)

// background service that labels arriving images
type Daemon struct {
	config    *config.DaemonConfig
	logger    *Logger
	watcher   *Watcher
	running   bool
	startTime time.Time
	processed atomic.Int64
	errors    atomic.Int64
}

// current state of the daemon
type DaemonStatus struct {
	Running        bool
	WatchedDirs    []string
	FileTypes      []string
	ProcessedFiles int64
	ErrorCount     int64
	StartTime      time.Time
}

// new daemon instance
func NewDaemon(configPath string) (*Daemon, error) {
	cfg, err := config.LoadDaemonConfig(configPath)
	if err != nil {
		cfg = config.GetDefaultConfig()
	}

	logDir := filepath.Join(os.Getenv("HOME"), ".sombra/logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logger, err := NewLogger(filepath.Join(logDir, "sombra-daemon.log"), LevelInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return &Daemon{
		config: cfg,
		logger: logger,
	}, nil
}

func (d *Daemon) Start() error {
	if d.running {
		return fmt.Errorf("daemon already running")
	}

	d.logger.Info("Starting daemon")

	minAge := time.Duration(d.config.Filter.MinAgeSeconds) * time.Second
	if minAge <= 0 {
		minAge = 2 * time.Second
	}

	options := WatchOptions{
		Extensions:  d.config.Filter.Extensions,
		ExcludeDirs: []string{".git", "node_modules", ".venv"},
		Ignore:      label.IsDerivedPath,
		MinFileAge:  minAge,
		Recursive:   true,
	}

	fileHandler := func(path string) error {
		// own outputs never feed back into the pipeline
		if label.IsDerivedPath(path) {
			return nil
		}

		if err := util.ValidatePath(path); err != nil {
			d.logger.Debug(fmt.Sprintf("Skipping %s: %v", path, err))
			return nil
		}

		fileType, err := formats.DetectFile(path)
		if err != nil {
			d.logger.Debug(fmt.Sprintf("Skipping %s: %v", path, err))
			return nil
		}

		// unattended runs never prompt, the template names the label
		labelText, err := config.RenderLabel(d.config.Label.Template, path)
		if err != nil {
			labelText = config.FallbackLabel(path)
		}

		d.logger.Info(fmt.Sprintf("Labeling %s (%s) as %q", path, fileType.MimeType, labelText))

		labelOptions := &label.Options{
			Mode:            label.ModeCopy,
			AvoidCollisions: true,
			VerifyOutput:    true,
		}

		result, err := label.LabelFile(path, labelText, labelOptions)
		if err != nil {
			d.errors.Add(1)
			d.logger.Error(fmt.Sprintf("[X] Labeling failed for %s: %v", path, err))
			return err
		}

		if result.Success {
			d.processed.Add(1)
			d.logger.Info(fmt.Sprintf("Labeled %s → %s", path, result.OutputPath))
		} else {
			d.errors.Add(1)
			d.logger.Warning(fmt.Sprintf("[!] Labeling completed with issues for %s", path))
		}

		return nil
	}

	// create and start watcher
	watcher, err := NewWatcher(d.config.Watch.Paths, options, fileHandler, d.logger)
	if err != nil {
		d.logger.Error(fmt.Sprintf("[X] Failed to create watcher: %v", err))
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Start(); err != nil {
		d.logger.Error(fmt.Sprintf("[X] Failed to start watcher: %v", err))
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	d.watcher = watcher
	d.running = true
	d.startTime = time.Now()
	d.logger.Info("Daemon started successfully")

	return nil
}

// halts the daemon
func (d *Daemon) Stop() error {
	if !d.running {
		return nil
	}

	d.logger.Info("Stopping daemon")

	// stop watcher
	if d.watcher != nil {
		if err := d.watcher.Stop(); err != nil {
			d.logger.Warning(fmt.Sprintf("[!] Error stopping watcher: %v", err))
		}
	}

	// close logger
	if err := d.logger.Close(); err != nil {
		return fmt.Errorf("error closing logger: %w", err)
	}

	d.running = false
	return nil
}

// current daemon status
func (d *Daemon) Status() *DaemonStatus {
	if !d.running {
		return &DaemonStatus{
			Running: false,
		}
	}

	return &DaemonStatus{
		Running:        true,
		WatchedDirs:    d.config.Watch.Paths,
		FileTypes:      d.config.Filter.Extensions,
		ProcessedFiles: d.processed.Load(),
		ErrorCount:     d.errors.Load(),
		StartTime:      d.startTime,
	}
}

// is daemon currently running?
func (d *Daemon) IsRunning() bool {
	return d.running
}
