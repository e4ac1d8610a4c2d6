package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithOutput(&buf), WithLevel("warn"))
	l.Infof("hidden")
	l.Warnf("shown %d", 1)
	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "shown 1") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestWithField(t *testing.T) {
	var buf bytes.Buffer
	l := WithField(New(WithOutput(&buf)), "cpu")
	l.Infof("ready")
	if out := buf.String(); !strings.Contains(out, "component=cpu") || !strings.Contains(out, "ready") {
		t.Errorf("expected tagged entry, got %q", out)
	}

	null := NewNullLogger()
	if WithField(null, "cpu") != null {
		t.Errorf("expected loggers without fields to be returned unchanged")
	}
}
