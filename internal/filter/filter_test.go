package filter

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqEncode(t *testing.T) {
	assert.Equal(t, "id=eq.42", EqInt64("id", 42).Encode())
	assert.Equal(t, "title=eq.milk", Eq("title", "milk").Encode())
}

func TestParseEqInt64(t *testing.T) {
	q, err := url.ParseQuery("id=eq.42")
	require.NoError(t, err)

	id, ok, err := ParseEqInt64(q, "id")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestParseEqAbsent(t *testing.T) {
	_, ok, err := ParseEq(url.Values{}, "id")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestParseEqRejects(t *testing.T) {
	for _, raw := range []string{"id=gt.4", "id=eq.", "id=eq.1&id=eq.2", "id=42"} {
		q, err := url.ParseQuery(raw)
		require.NoError(t, err)
		_, ok, err := ParseEq(q, "id")
		assert.True(t, ok, raw)
		assert.Error(t, err, raw)
	}

	q, _ := url.ParseQuery("id=eq.abc")
	_, _, err := ParseEqInt64(q, "id")
	assert.Error(t, err)
}
