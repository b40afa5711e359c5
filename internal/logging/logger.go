// Package logging provides the application logger: leveled console
// output plus a best-effort persistent sink. The sink contract is that
// Record never propagates failure, so logging cannot fail a request.
package logging

import (
	"context"
	"log"
	"time"

	"github.com/iliyamo/photo-feed/internal/repository"
)

// Entry is one structured log record.
type Entry struct {
	Level    string
	Message  string
	Metadata map[string]any
	At       time.Time
}

// Sink receives log entries. Implementations must swallow their own
// failures; callers never learn whether a record was persisted.
type Sink interface {
	Record(Entry)
}

// Logger writes every entry to the console and hands it to the sink.
type Logger struct {
	sink Sink
}

func New(sink Sink) *Logger {
	if sink == nil {
		sink = NopSink{}
	}
	return &Logger{sink: sink}
}

func (l *Logger) Debug(msg string, meta map[string]any) { l.emit("debug", msg, meta) }
func (l *Logger) Info(msg string, meta map[string]any)  { l.emit("info", msg, meta) }
func (l *Logger) Warn(msg string, meta map[string]any)  { l.emit("warn", msg, meta) }
func (l *Logger) Error(msg string, meta map[string]any) { l.emit("error", msg, meta) }

func (l *Logger) emit(level, msg string, meta map[string]any) {
	if len(meta) > 0 {
		log.Printf("%s: %s %v", level, msg, meta)
	} else {
		log.Printf("%s: %s", level, msg)
	}
	l.sink.Record(Entry{Level: level, Message: msg, Metadata: meta, At: time.Now().UTC()})
}

// NopSink discards entries. Used when no store is available.
type NopSink struct{}

func (NopSink) Record(Entry) {}

// StoreSink appends entries to the log_entries table asynchronously. A
// failed insert is reported on the console only; it is never surfaced to
// the request that produced the entry.
type StoreSink struct {
	Logs *repository.LogRepo
}

func NewStoreSink(logs *repository.LogRepo) *StoreSink {
	return &StoreSink{Logs: logs}
}

func (s *StoreSink) Record(e Entry) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := s.Logs.Append(ctx, e.Level, e.Message, e.Metadata); err != nil {
			log.Printf("logging: store sink failed: %v", err)
		}
	}()
}
