// Package finder composes the link builder, query history, saved wallets and
// draft persistence into the actions a user performs on the PnL finder.
package finder

// LogWriter provides logging capabilities.
type LogWriter interface {
	Debug(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
