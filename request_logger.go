package client

// RequestLogger receives the log lines of a [Client]: one debug line per SAUR
// API round-trip, a warning per 401 that triggers re-authentication, and an
// error when a request or an authentication fails. resty's own warnings and
// errors go through the same logger.
//
// Lines carry the method, path, status code and timing. Bearer tokens and
// passwords are never passed to a RequestLogger.
type RequestLogger interface {
	Errorf(format string, v ...any)
	Warnf(format string, v ...any)
	Debugf(format string, v ...any)
}

// NoopLogger discards everything. It is the default when [WithRequestLogger]
// is not used.
type NoopLogger struct{}

func (*NoopLogger) Errorf(string, ...any) {}
func (*NoopLogger) Warnf(string, ...any)  {}
func (*NoopLogger) Debugf(string, ...any) {}
