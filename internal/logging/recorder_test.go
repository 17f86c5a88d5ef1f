package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Collects JSON log lines. Records are read back oldest first with "time" checked and removed.
type logRecorder struct {
	t *testing.T

	mu   sync.Mutex
	buf  bytes.Buffer
	read int
}

func newRecorder(t *testing.T) *logRecorder {
	return &logRecorder{t: t}
}

func (r *logRecorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.Write(p)
}

func (r *logRecorder) lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Split(strings.TrimSuffix(r.buf.String(), "\n"), "\n")
}

func (r *logRecorder) pending() []string {
	lines := r.lines()
	if len(lines) == 1 && lines[0] == "" {
		return nil
	}
	return lines[r.read:]
}

func (r *logRecorder) Next() (map[string]any, bool) {
	r.t.Helper()

	pending := r.pending()
	if len(pending) == 0 {
		return nil, false
	}
	r.read++

	var record map[string]any
	require.NoError(r.t, json.Unmarshal([]byte(pending[0]), &record))

	timeStr, ok := record["time"].(string)
	require.True(r.t, ok, "record without time: %v", record)
	loggedAt, err := time.Parse(time.RFC3339, timeStr)
	require.NoError(r.t, err)
	require.WithinDuration(r.t, time.Now(), loggedAt, 5*time.Second)
	delete(record, "time")

	return record, true
}

func (r *logRecorder) RequireDrained() {
	r.t.Helper()
	require.Empty(r.t, r.pending())
}
