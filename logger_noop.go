package libevent

type noopLogger struct{}

// NewNoopLogger returns a logger that discards everything.
func NewNoopLogger() logger {
	return noopLogger{}
}

func (l noopLogger) WithField(string, any) logger { return l }

func (noopLogger) Debugf(string, ...any) {}

func (noopLogger) Warnf(string, ...any) {}

func (noopLogger) Errorf(string, ...any) {}
