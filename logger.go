package libevent

type logger interface {
	WithField(key string, value any) logger
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
