package jsonschema

import "go.uber.org/zap"

// Option configures a Collection or a document build.
type Option func(o *options)

type options struct {
	logger *zap.Logger
}

func newOptions(opts []Option) *options {
	o := &options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger used to report loading and resolution progress. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
