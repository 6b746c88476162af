package testutil

import (
	"io"
	"testing"

	"github.com/quantmind-br/motionscan/internal/utils"
	"github.com/rs/zerolog"
)

// NewTestLogger creates a test logger that discards output
func NewTestLogger(t *testing.T) *utils.Logger {
	t.Helper()

	zlogger := zerolog.New(io.Discard).With().
		Timestamp().
		Str("test", t.Name()).
		Logger()

	return &utils.Logger{Logger: zlogger}
}

// NewBufferLogger creates a JSON logger writing into w, for asserting on log output
func NewBufferLogger(w io.Writer) *utils.Logger {
	return &utils.Logger{Logger: zerolog.New(w).Level(zerolog.DebugLevel)}
}
