package repomanager

import (
	"bytes"
	"testing"

	"github.com/dmitrijs2005/foodkeeper/internal/logging"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGooseLogger_Printf(t *testing.T) {
	var buf bytes.Buffer
	l, err := logging.New(logging.FormatText, "info", &buf)
	require.NoError(t, err)

	newGooseLogger(l).Printf("OK   %s (%s)\n", "00001_create_foods.sql", "1.2ms")

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, `msg="OK   00001_create_foods.sql (1.2ms)"`)
	assert.Contains(t, out, "module=migrations")
}

func TestGooseLogger_FatalfExits(t *testing.T) {
	var buf bytes.Buffer
	l, err := logging.New(logging.FormatText, "info", &buf)
	require.NoError(t, err)

	orig := osExit
	var code int
	osExit = func(c int) { code = c }
	defer func() { osExit = orig }()

	newGooseLogger(l).Fatalf("goose run: %v", "boom")

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), `msg="goose run: boom"`)
}

func TestGooseLogger_NilIsSilent(t *testing.T) {
	assert.IsType(t, goose.NopLogger(), newGooseLogger(nil))
}
