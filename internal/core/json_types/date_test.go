package json_types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateTimeUnmarshalFormats(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"rfc3339", `"2025-03-01T09:00:00-03:00"`, "2025-03-01T09:00:00"},
		{"local date time", `"2025-03-01T09:00:00"`, "2025-03-01T09:00:00"},
		{"datetime-local input", `"2025-03-01T09:00"`, "2025-03-01T09:00:00"},
		{"date only", `"2025-03-01"`, "2025-03-01T00:00:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var dt DateTime
			require.NoError(t, json.Unmarshal([]byte(tc.input), &dt))
			assert.Equal(t, tc.want, dt.Date.Format("2006-01-02T15:04:05"))
		})
	}
}

func TestDateTimeUnmarshalRejectsGarbage(t *testing.T) {
	var dt DateTime
	assert.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &dt))
	assert.Error(t, dt.UnmarshalJSON([]byte(`42`)))
}

func TestDateTimeMarshalShape(t *testing.T) {
	dt := NewDateTime(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))

	data, err := json.Marshal(dt)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-01T09:00:00"`, string(data))
}
