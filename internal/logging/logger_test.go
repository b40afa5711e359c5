package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSink struct {
	entries []Entry
}

func (c *captureSink) Record(e Entry) { c.entries = append(c.entries, e) }

func TestLoggerForwardsToSink(t *testing.T) {
	sink := &captureSink{}
	l := New(sink)

	l.Info("user signed up", map[string]any{"userId": uint64(7)})
	l.Error("store unavailable", nil)

	require.Len(t, sink.entries, 2)
	assert.Equal(t, "info", sink.entries[0].Level)
	assert.Equal(t, "user signed up", sink.entries[0].Message)
	assert.Equal(t, uint64(7), sink.entries[0].Metadata["userId"])
	assert.Equal(t, "error", sink.entries[1].Level)
	assert.False(t, sink.entries[0].At.IsZero())
}

func TestLoggerNilSinkIsSafe(t *testing.T) {
	l := New(nil)
	// Must not panic without a sink.
	l.Warn("degraded mode", nil)
}
