package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls where log lines go. The TUI owns the terminal, so the default sink is a
// rotated file under the config dir.
type Config struct {
	Dir    string
	Level  string
	Stderr bool

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var (
	mu   sync.Mutex
	root = newDiscardLogger()
)

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Init configures the process logger. Calling it again replaces the previous sinks.
func Init(cfg Config) error {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	var sinks []io.Writer
	if dir := strings.TrimSpace(cfg.Dir); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		sinks = append(sinks, &lumberjack.Logger{
			Filename:   filepath.Join(dir, "frameflow.log"),
			MaxSize:    orDefault(cfg.MaxSizeMB, 5),
			MaxBackups: orDefault(cfg.MaxBackups, 3),
			MaxAge:     orDefault(cfg.MaxAgeDays, 28),
		})
	}
	if cfg.Stderr {
		sinks = append(sinks, os.Stderr)
	}
	switch len(sinks) {
	case 0:
		l.SetOutput(io.Discard)
	case 1:
		l.SetOutput(sinks[0])
	default:
		l.SetOutput(io.MultiWriter(sinks...))
	}

	mu.Lock()
	root = l
	mu.Unlock()
	return nil
}

// Get returns an entry tagged with the calling component.
func Get(component string) *logrus.Entry {
	return Root().WithField("component", component)
}

func Root() *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()
	return root
}

// SetRoot swaps the process logger (tests use this with logrus/hooks/test).
func SetRoot(l *logrus.Logger) {
	if l == nil {
		l = newDiscardLogger()
	}
	mu.Lock()
	root = l
	mu.Unlock()
}

func orDefault(v, d int) int {
	if v <= 0 {
		return d
	}
	return v
}
