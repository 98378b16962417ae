package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv("XDG_STATE_HOME", tempDir)

			SetupLogger(tt.verbosity)

			if zerolog.GlobalLevel() != tt.wantLevel {
				t.Errorf("SetupLogger(%d) set level to %v, want %v",
					tt.verbosity, zerolog.GlobalLevel(), tt.wantLevel)
			}

			logPath := filepath.Join(tempDir, "printergen", "printergen.log")
			if _, err := os.Stat(logPath); os.IsNotExist(err) {
				t.Errorf("Log file was not created at %s", logPath)
			}
		})
	}
}

func TestGetLogFilePath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/custom/state")

	got := filepath.ToSlash(getLogFilePath())
	if !strings.HasSuffix(got, "/custom/state/printergen/printergen.log") {
		t.Errorf("getLogFilePath() = %s", got)
	}
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	done := LogOperationStart(logger, "render")
	done()

	output := buf.String()
	if !strings.Contains(output, "Operation started") || !strings.Contains(output, "Operation completed") {
		t.Errorf("unexpected log output: %s", output)
	}
	if !strings.Contains(output, "render") {
		t.Errorf("operation name missing from output: %s", output)
	}
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = zerolog.New(&buf)

	logger := GetLogger("pkginfo.writer")
	logger.Info().Msg("test message")

	if !strings.Contains(buf.String(), `"component":"pkginfo.writer"`) {
		t.Errorf("component field missing: %s", buf.String())
	}
}

func TestSetupLoggerWithOutput(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	var console bytes.Buffer

	SetupLoggerWithOutput(0, &console)
	logger := GetLogger("cmd.generate")
	logger.Info().Msg("hidden at default verbosity")
	logger.Warn().Msg("printer flags ignored")

	output := console.String()
	if strings.Contains(output, "hidden at default verbosity") {
		t.Errorf("info line written at verbosity 0: %s", output)
	}
	if !strings.Contains(output, "printer flags ignored") {
		t.Errorf("warning missing from console: %s", output)
	}
	if strings.Contains(output, "\x1b[") {
		t.Errorf("console output to a buffer must not be colored: %q", output)
	}
}

func TestColorConsole(t *testing.T) {
	var buf bytes.Buffer
	if colorConsole(&buf) {
		t.Error("a buffer is not a terminal")
	}

	t.Setenv("NO_COLOR", "1")
	if colorConsole(os.Stderr) {
		t.Error("NO_COLOR must disable color")
	}
}
