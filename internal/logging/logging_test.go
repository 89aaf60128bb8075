package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tablero/internal/logging"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	logging.New(&buf, "json", "debug").Debug("hello", "period", "03-2026")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "03-2026", line["period"])

	buf.Reset()
	logging.New(&buf, "text", "warn").Info("dropped")
	assert.Empty(t, buf.String())

	logging.New(&buf, "", "nonsense").Info("kept")
	assert.Contains(t, buf.String(), "msg=kept")
}
