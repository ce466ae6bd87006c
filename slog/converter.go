package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/hearings"
)

// Ensure LoggingConverter implements hearings.Converter.
var _ hearings.Converter = (*LoggingConverter)(nil)

// LoggingConverter wraps a Converter and logs input and output sizes.
type LoggingConverter struct {
	next   hearings.Converter
	logger *slog.Logger
}

// NewLoggingConverter creates a new LoggingConverter.
func NewLoggingConverter(next hearings.Converter, logger *slog.Logger) *LoggingConverter {
	return &LoggingConverter{next: next, logger: logger}
}

// Convert delegates to the wrapped converter and logs the conversion.
func (c *LoggingConverter) Convert(html []byte) (text string, err error) {
	defer func(begin time.Time) {
		c.logger.Info("convert",
			"in", len(html),
			"out", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Convert(html)
}
