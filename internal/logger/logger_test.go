package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHelpersAreSafeBeforeInit(t *testing.T) {
	previous := Logger
	Logger = nil
	t.Cleanup(func() { Logger = previous })

	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
	Printf("printf %d", 1)
}

func TestInitWritesToRotatingFile(t *testing.T) {
	previous := Logger
	t.Cleanup(func() { Logger = previous })

	logDir := filepath.Join(t.TempDir(), "logs")
	if err := Init(Config{LogDir: logDir}); err != nil {
		t.Fatalf("init logger: %v", err)
	}

	Info("habit created", "habit_id", 7)

	content, err := os.ReadFile(filepath.Join(logDir, "habitflow.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "habit created") {
		t.Fatalf("expected log line in file, got %q", string(content))
	}
	if !strings.Contains(string(content), "habit_id=7") {
		t.Fatalf("expected structured key in file, got %q", string(content))
	}
}
