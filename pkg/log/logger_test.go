package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func decodeRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record))
		records = append(records, record)
	}
	return records
}

func TestLogger(t *testing.T) {
	t.Run("filter level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewLoggerWithWriter("info", nil, &buf)
		require.NoError(t, err)

		logger.Debug("foo")
		logger.Info("bar", zap.Int("peer", 3))

		records := decodeRecords(t, &buf)
		require.Len(t, records, 1)
		assert.Equal(t, "bar", records[0]["msg"])
		assert.Equal(t, "main", records[0]["subsystem"])
		assert.Equal(t, float64(3), records[0]["peer"])
	})

	t.Run("enabled subsystem", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewLoggerWithWriter("warn", []string{"gossip"}, &buf)
		require.NoError(t, err)

		logger.WithSubsystem("gossip").Debug("foo")
		logger.WithSubsystem("medium").Debug("bar")

		records := decodeRecords(t, &buf)
		require.Len(t, records, 1)
		assert.Equal(t, "foo", records[0]["msg"])
		assert.Equal(t, "gossip", records[0]["subsystem"])
	})

	t.Run("unsupported level", func(t *testing.T) {
		_, err := NewLoggerWithWriter("trace", nil, &bytes.Buffer{})
		assert.Error(t, err)
	})

	t.Run("stderr", func(t *testing.T) {
		logger, err := NewLogger("info", nil)
		require.NoError(t, err)
		assert.Equal(t, "main", logger.Subsystem())

		_, err = NewLogger("trace", nil)
		assert.Error(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	conf := Config{Level: "debug"}
	assert.NoError(t, conf.Validate())

	conf = Config{}
	assert.Error(t, conf.Validate())

	conf = Config{Level: "verbose"}
	assert.Error(t, conf.Validate())
}
