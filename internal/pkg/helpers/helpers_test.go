package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Minute, ParseDuration("1h30m", time.Second))
	assert.Equal(t, time.Second, ParseDuration("soon", time.Second))
}

func TestParseID(t *testing.T) {
	id, ok := ParseID("42")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "0", "-3", "1.5"} {
		_, ok := ParseID(raw)
		assert.False(t, ok, raw)
	}
}

func TestAddIDHasSetSemantics(t *testing.T) {
	ids := AddID(nil, 3)
	ids = AddID(ids, 5)
	ids = AddID(ids, 3)
	assert.Equal(t, []int64{3, 5}, ids)
	assert.True(t, ContainsID(ids, 5))
	assert.False(t, ContainsID(ids, 4))
}
