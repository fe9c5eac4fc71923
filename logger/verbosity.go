package logger

import "go.uber.org/zap/zapcore"

// Verbosity level constants for CLI flag counts.
const (
	VerbosityUser  = 0 // No flags: findings and errors only
	VerbosityInfo  = 1 // -v: + per-file progress, cache hit/miss decisions
	VerbosityDebug = 2 // -vv: + fingerprints, re-anchor detail, timing
)

// VerbosityToLevel maps verbosity flags (-v, -vv, ...) to zap log levels.
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch verbosity {
	case VerbosityUser:
		return zapcore.WarnLevel
	case VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
