package serime

import (
	"time"

	"go.uber.org/zap"
)

// debugStats accumulates the counters reported in debug mode. Counting never
// alters encode or decode semantics.
type debugStats struct {
	subSerializations   int
	duplicateReferences int
	injectedClasses     int
}

func (s *debugStats) wipe() {
	*s = debugStats{}
}

func debugLogger(enabled bool) *zap.Logger {
	if !enabled {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func logEncodeStats(log *zap.Logger, stats debugStats, elapsed time.Duration) {
	log.Debug("serialize",
		zap.Int("subSerializations", stats.subSerializations),
		zap.Int("duplicateReferences", stats.duplicateReferences),
		zap.Duration("elapsed", elapsed),
	)
}

func logDecodeStats(log *zap.Logger, stats debugStats, elapsed time.Duration) {
	log.Debug("deserialize",
		zap.Int("injectedClasses", stats.injectedClasses),
		zap.Duration("elapsed", elapsed),
	)
}
