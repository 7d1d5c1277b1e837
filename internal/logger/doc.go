// Package logger wraps zap with a global sugared console logger and helpers
// that carry a scoped logger through context.Context.
package logger
