package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New("info", &buf)

	l.Debug("hidden")
	l.Info("resolved program", "program", "pacman")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "resolved program")
	assert.Contains(t, out, "program=pacman")
}

func TestNewUnknownLevelFallsBackToWarn(t *testing.T) {
	var buf bytes.Buffer
	l := New("chatty", &buf)

	l.Info("not shown")
	l.Warn("shown")

	assert.NotContains(t, buf.String(), "not shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestOddArgs(t *testing.T) {
	var buf bytes.Buffer
	l := New("debug", &buf)

	l.Error("odd", "dangling")

	assert.Contains(t, buf.String(), "!BADKEY=dangling")
}

func TestNonStringKeyConsumesOneArgument(t *testing.T) {
	var buf bytes.Buffer
	l := New("debug", &buf)

	l.Warn("bad key", 42, "program", "pacman")

	out := buf.String()
	assert.Contains(t, out, "!BADKEY=42")
	assert.Contains(t, out, "program=pacman")
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("nothing to see")
}
