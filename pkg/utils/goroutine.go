package utils

import (
	"fmt"
	"runtime/debug"

	"golang-signal-scanner/pkg/logger"

	"go.uber.org/zap"
)

// GoSafe runs fn in a goroutine and recovers from panics. A nil log falls back to zap.L().
func GoSafe(log *logger.Logger, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				zl := zap.L()
				if log != nil {
					zl = log.Logger
				}
				zl.Error("Recovered from panic",
					logger.StringField("panic", fmt.Sprint(r)),
					logger.StringField("stack", string(debug.Stack())),
				)
			}
		}()
		fn()
	}()
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
