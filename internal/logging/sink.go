package logging

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Sink is a destination for formatted log lines, e.g. a file or stdout.
type Sink interface {
	Write(line string) error
}

// writerSink adapts an io.Writer to Sink.
type writerSink struct {
	w io.Writer
}

// NewWriterSink returns a Sink that writes each line, newline-terminated,
// to w.
func NewWriterSink(w io.Writer) Sink {
	return &writerSink{w: w}
}

func (s *writerSink) Write(line string) error {
	_, err := io.WriteString(s.w, line+"\n")
	return err
}

// SinkLogger is a Logger that formats messages and writes them to a Sink,
// filtering out messages below a configured Level.
type SinkLogger struct {
	level   Level
	logTime bool
	sink    Sink
	mu      sync.Mutex
}

// NewSinkLogger creates a SinkLogger writing to sink. Messages below level
// are dropped. If logTime is true, each line is prefixed with a timestamp.
func NewSinkLogger(level Level, logTime bool, sink Sink) *SinkLogger {
	return &SinkLogger{level: level, logTime: logTime, sink: sink}
}

// Log implements Logger.
func (l *SinkLogger) Log(level Level, ts time.Time, msg string) {
	if level < l.level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	line := msg
	if l.logTime {
		line = ts.Format("2006-01-02T15:04:05.000Z07:00") + " " + line
	}
	l.sink.Write(line)
}

// MultiLogger fans a log message out to multiple Loggers. It is used by
// AttachLogger to propagate messages to an already-attached parent logger.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a Logger that forwards every call to each of
// loggers in order.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	return &MultiLogger{loggers: loggers}
}

// Log implements Logger.
func (l *MultiLogger) Log(level Level, ts time.Time, msg string) {
	for _, sub := range l.loggers {
		sub.Log(level, ts, msg)
	}
}

// NewPrefixSink wraps sink so every line is additionally prefixed with the
// given string (e.g. "[worker 2] "), used by the scheduler to tag log
// output from each worker process without attaching a separate logger per
// worker.
func NewPrefixSink(sink Sink, prefix string) Sink {
	return prefixSink{sink: sink, prefix: prefix}
}

type prefixSink struct {
	sink   Sink
	prefix string
}

func (s prefixSink) Write(line string) error {
	return s.sink.Write(fmt.Sprintf("%s%s", s.prefix, line))
}
