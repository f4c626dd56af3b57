package internal

import (
	"log"
	"os"
)

// NewLogger returns a logger for the named component. Diagnostics go to
// stderr; stdout is reserved for the resource protocol.
func NewLogger(component string) *log.Logger {
	prefix := "hooksync"
	if component != "" {
		prefix = prefix + "/" + component
	}
	return log.New(os.Stderr, prefix+" ", log.LstdFlags|log.Lmicroseconds)
}
