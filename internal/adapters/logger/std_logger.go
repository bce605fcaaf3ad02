package logger

import (
	"io"
	"os"

	"github.com/baditaflorin/go_anagram_similarity/internal/ports"
	"github.com/baditaflorin/l"
)

// StdLogger adapts the l.Logger to the ports.Logger interface.
type StdLogger struct {
	logger l.Logger
}

// NewStdLogger creates a new standard logger adapter with default configuration.
// Output goes to stderr so it never interleaves with interactive output on stdout.
func NewStdLogger() (ports.Logger, error) {
	return NewWriterLogger(os.Stderr, false)
}

// NewWriterLogger creates a logger writing to output, as JSON when jsonFormat is set.
// Closing the logger flushes it but leaves output open; the caller owns it.
func NewWriterLogger(output io.Writer, jsonFormat bool) (ports.Logger, error) {
	config := defaultConfig(jsonFormat)
	config.Output = output
	return NewCustomStdLogger(config)
}

// NewFileLogger creates a logger appending to the file at path, rotating it
// once it grows past 10MB. The logger owns the file and closes it on Close.
func NewFileLogger(path string, jsonFormat bool) (ports.Logger, error) {
	config := defaultConfig(jsonFormat)
	config.FilePath = path
	return NewCustomStdLogger(config)
}

func defaultConfig(jsonFormat bool) l.Config {
	return l.Config{
		JsonFormat:  jsonFormat,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,      // 1MB buffer
		MaxFileSize: 10 * 1024 * 1024, // 10MB max file size
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	}
}

// NewCustomStdLogger creates a new standard logger with custom configuration.
// An Output writer is never closed by the logger, only a file it opened from FilePath.
func NewCustomStdLogger(config l.Config) (ports.Logger, error) {
	if config.FilePath == "" {
		if config.Output == nil {
			config.Output = os.Stdout
		}
		config.Output = keepOpen{config.Output}
	}

	logger, err := l.NewStandardFactory().CreateLogger(config)
	if err != nil {
		return nil, err
	}

	return &StdLogger{logger: logger}, nil
}

// keepOpen hides the Close method of the wrapped writer, so closing the
// logger does not close os.Stderr or a writer shared with the caller.
type keepOpen struct {
	io.Writer
}

// Debug logs a debug message.
func (s *StdLogger) Debug(msg string, keysAndValues ...interface{}) {
	s.logger.Debug(msg, keysAndValues...)
}

// Info logs an info message.
func (s *StdLogger) Info(msg string, keysAndValues ...interface{}) {
	s.logger.Info(msg, keysAndValues...)
}

// Warn logs a warning message.
func (s *StdLogger) Warn(msg string, keysAndValues ...interface{}) {
	s.logger.Warn(msg, keysAndValues...)
}

// Error logs an error message.
func (s *StdLogger) Error(msg string, keysAndValues ...interface{}) {
	s.logger.Error(msg, keysAndValues...)
}

// Close flushes and closes the logger.
func (s *StdLogger) Close() error {
	return s.logger.Close()
}

// FromExisting creates a new StdLogger from an existing l.Logger.
func FromExisting(logger l.Logger) ports.Logger {
	return &StdLogger{logger: logger}
}
