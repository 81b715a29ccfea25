package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: INFO, Output: &buf})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	l.Debug("hidden")
	l.WithFields(F("component", "test")).Info("hello", F("n", 3))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected debug entry to be filtered: %q", out)
	}
	if !strings.Contains(out, "INFO") || !strings.Contains(out, "hello | component=test n=3") {
		t.Fatalf("unexpected entry %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: DEBUG, Format: FormatJSON, Output: &buf})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	l.Warn("write failed", F("error", errors.New("disk full")), F("job", "save"))

	var rec map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if rec["level"] != "WARN" || rec["msg"] != "write failed" || rec["error"] != "disk full" || rec["job"] != "save" {
		t.Fatalf("unexpected record %v", rec)
	}
}

func TestWithFieldsDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	base, _ := New(Config{Level: INFO, Output: &buf})
	a := base.WithFields(F("a", 1))
	_ = a.WithFields(F("b", 2))
	a.Info("x")
	if strings.Contains(buf.String(), "b=2") {
		t.Fatalf("expected sibling fields to stay separate: %q", buf.String())
	}
}

func TestFileRotationBySize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	l, err := New(Config{Level: INFO, FilePath: path, MaxSize: 64, MaxBackups: 2})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer l.Close()
	for i := 0; i < 5; i++ {
		l.Info("a line that is long enough to trigger rotation quickly")
	}
	if _, err := os.Stat(path + ".1"); err != nil {
		t.Fatalf("expected rotated backup: %v", err)
	}
	if _, err := os.Stat(path + ".3"); !os.IsNotExist(err) {
		t.Fatalf("expected at most 2 backups, stat err = %v", err)
	}
}

func TestParse(t *testing.T) {
	if ParseLevel("warn") != WARN || ParseLevel("nope") != INFO {
		t.Fatalf("unexpected level parse")
	}
	if ParseFormat("JSON") != FormatJSON || ParseFormat("") != FormatText {
		t.Fatalf("unexpected format parse")
	}
}
