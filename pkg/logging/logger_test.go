package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/g-node/odml-go/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	// Create a buffer to capture output
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	logging.SetDefault(logger)

	// Test logging at different levels
	logging.Debug().Msg("debug message")
	logging.Info().Msg("info message")
	logging.Warn().Msg("warning message")
	logging.Error().Msg("error message")

	output := buf.String()
	if !strings.Contains(output, "info message") {
		t.Errorf("Expected info message in output, got: %s", output)
	}
	if !strings.Contains(output, "warning message") {
		t.Errorf("Expected warning message in output, got: %s", output)
	}
}

func TestContextLogger(t *testing.T) {
	// Create test logger
	testLogger := logging.NewTestLogger(t)

	// Create context with logger
	ctx := logging.WithLogger(context.Background(), testLogger.Logger)

	// Get logger from context and log
	logger := logging.FromContext(ctx)
	logger.Warn().Str("property", "Experimenter").Msg("type mismatch on added value")

	if !testLogger.Contains("Experimenter") {
		t.Errorf("Expected property field in output, got: %s", testLogger.Output())
	}
	if !testLogger.Contains("type mismatch on added value") {
		t.Errorf("Expected message in output, got: %s", testLogger.Output())
	}
}

func TestFromContextFallback(t *testing.T) {
	// A context without a logger falls back to the default
	logger := logging.FromContext(context.Background())
	if logger == nil {
		t.Fatal("Expected the default logger, got nil")
	}

	// Ctx is an alias for FromContext
	if logging.Ctx(context.Background()) != logger {
		t.Error("Expected Ctx to return the same logger as FromContext")
	}
}

func TestCapture(t *testing.T) {
	tl := logging.Capture(t)

	logging.Warn().Str("section", "trial").Msg("captured through the default logger")

	if !tl.Contains("captured through the default logger") {
		t.Errorf("Expected captured output, got: %s", tl.Output())
	}
	if len(tl.Lines()) != 1 {
		t.Errorf("Expected a single log line, got %d", len(tl.Lines()))
	}
}

func TestConfiguration(t *testing.T) {
	configs := []struct {
		name   string
		config *logging.Config
		check  func(t *testing.T, logger zerolog.Logger, buf *bytes.Buffer)
	}{
		{
			name: "debug level",
			config: &logging.Config{
				Level:  "debug",
				Format: "json",
			},
			check: func(t *testing.T, logger zerolog.Logger, buf *bytes.Buffer) {
				logger.Debug().Msg("visible")
				if !strings.Contains(buf.String(), `"level":"debug"`) {
					t.Errorf("Expected debug level in output, got: %s", buf.String())
				}
			},
		},
		{
			name: "warn level filters info",
			config: &logging.Config{
				Level:  "warn",
				Format: "json",
			},
			check: func(t *testing.T, logger zerolog.Logger, buf *bytes.Buffer) {
				logger.Info().Msg("hidden")
				logger.Warn().Msg("visible")
				if strings.Contains(buf.String(), "hidden") {
					t.Errorf("Expected info to be filtered, got: %s", buf.String())
				}
				if !strings.Contains(buf.String(), "visible") {
					t.Errorf("Expected warning in output, got: %s", buf.String())
				}
			},
		},
	}

	for _, tc := range configs {
		t.Run(tc.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := logging.NewLoggerFromConfig(tc.config).Output(buf)
			tc.check(t, logger, buf)
		})
	}
}

func TestParseLevelFallback(t *testing.T) {
	cfg := &logging.Config{Level: "nonsense", Format: "json", Output: "discard"}
	logger := logging.NewLoggerFromConfig(cfg)
	if logger.GetLevel() != zerolog.InfoLevel {
		t.Errorf("Expected unknown levels to fall back to info, got %s", logger.GetLevel())
	}
}
