package testutil

import (
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/logger"
)

// NewTestLogger returns a quiet logger for use in tests
func NewTestLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "console"})
}
