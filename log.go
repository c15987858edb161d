package lazyseq

import (
	"log/slog"
	"sync/atomic"
)

var pkgLogger atomic.Pointer[slog.Logger]

// SetLogger sets the logger used to report tolerated anomalies, such as writes to a closed channel.
// Passing nil restores the default, which is slog.Default().
// The package only logs at debug level.
func SetLogger(logger *slog.Logger) {
	pkgLogger.Store(logger)
}

func logger() *slog.Logger {
	if l := pkgLogger.Load(); l != nil {
		return l
	}

	return slog.Default()
}
