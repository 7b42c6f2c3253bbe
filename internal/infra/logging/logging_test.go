package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestNewJSON_LevelAndServiceTag(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	log := NewJSON(&buf, slog.LevelWarn)
	log.Info("dropped")
	log.Warn("kept", "round", 7)

	var line map[string]any

	err := json.Unmarshal(buf.Bytes(), &line)
	if err != nil {
		t.Fatalf("expected exactly one JSON line, got %q: %v", buf.String(), err)
	}

	if line["msg"] != "kept" || line["service"] != "slotledger" || line["round"] != float64(7) {
		t.Fatalf("unexpected record: %v", line)
	}
}
