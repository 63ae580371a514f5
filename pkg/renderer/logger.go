package renderer

import (
	"fmt"

	"github.com/df07/go-tiny-raycaster/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// NopLogger discards all messages
type NopLogger struct{}

func (NopLogger) Printf(string, ...interface{}) {}
