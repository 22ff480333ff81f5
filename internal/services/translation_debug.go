package services

import "go.uber.org/zap"

// debugLog logs verbose per-request details: cache hits/misses, gateway payload sizes, etc.
// Only visible when the global logger runs at debug level (log.debug).
func debugLog(format string, args ...interface{}) {
	zap.S().Named("translation").Debugf(format, args...)
}

// infoLog logs important translation events: gateway fallbacks, provider selection, etc.
func infoLog(format string, args ...interface{}) {
	zap.S().Named("translation").Infof(format, args...)
}

// warnLog logs degraded but recoverable failures (store errors, stats write failures).
func warnLog(format string, args ...interface{}) {
	zap.S().Named("translation").Warnf(format, args...)
}
