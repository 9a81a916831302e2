// Package obslog provides the structured logger used across the SCIM
// core components.
package obslog

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Logger is the package-level structured logger. Host applications may
// replace it with their own configured instance before calling into the
// core.
var Logger logrus.FieldLogger = logrus.StandardLogger()

type requestFieldsKey struct{}

// WithFields returns a context carrying the given structured fields; a
// subsequent call to From(ctx) will include them on every log line.
func WithFields(ctx context.Context, fields logrus.Fields) context.Context {
	merged := logrus.Fields{}

	if existing, ok := ctx.Value(requestFieldsKey{}).(logrus.Fields); ok {
		for k, v := range existing {
			merged[k] = v
		}
	}

	for k, v := range fields {
		merged[k] = v
	}

	return context.WithValue(ctx, requestFieldsKey{}, merged)
}

// From returns a FieldLogger carrying whatever fields were attached to ctx
// via WithFields, falling back to the package-level Logger.
func From(ctx context.Context) logrus.FieldLogger {
	fields, ok := ctx.Value(requestFieldsKey{}).(logrus.Fields)
	if !ok || len(fields) == 0 {
		return Logger
	}

	return Logger.WithFields(fields)
}
