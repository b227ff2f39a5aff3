package dawg

import "go.uber.org/zap"

// nopLogger is substituted whenever a caller builds a Builder without
// supplying one, so every log call site can assume a non-nil *zap.Logger
// rather than guard on nil, mirroring how go-arcade-arcade's service
// constructors fall back to zap.NewNop() instead of threading *bool
// "loggingEnabled" flags through every call.
func nopLogger() *zap.Logger {
	return zap.NewNop()
}

// WithLogger returns an option that attaches logger to a Builder, used to
// observe node counts, canonicalization hits, and chain-collapse counts as
// the dictionary is built and packed.
func WithLogger(logger *zap.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.log = logger
		}
	}
}
