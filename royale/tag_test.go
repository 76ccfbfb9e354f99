package royale_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vearutop/cache/royale"
)

func TestValidateTag(t *testing.T) {
	for tag, expected := range map[string]string{
		"#2PP":     "2PP",
		"2pp":      "2PP",
		"#9ygyoq#": "9YGY0Q",
		"##CGJL":   "CGJL",
	} {
		actual, err := royale.ValidateTag(tag)
		assert.NoError(t, err, tag)
		assert.Equal(t, expected, actual, tag)
	}

	for _, tag := range []string{"", "#", "2P", "#ABC", "2PP 9", "ÜPP"} {
		_, err := royale.ValidateTag(tag)
		assert.True(t, errors.Is(err, royale.ErrInvalidTag), tag)
	}
}

func TestQueryKey(t *testing.T) {
	assert.Equal(t, "pb2PP", royale.QueryKey("pb2PP", nil))
	assert.Equal(t, "pb2PP", royale.QueryKey("pb2PP", url.Values{}))

	k1 := royale.QueryKey("pb2PP", url.Values{"max": {"10"}, "page": {"2"}, "tag": {"b", "a"}})
	k2 := royale.QueryKey("pb2PP", url.Values{"tag": {"a", "b"}, "page": {"2"}, "max": {"10"}})
	k3 := royale.QueryKey("pb2PP", url.Values{"max": {"10"}, "page": {"3"}})

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.Contains(t, k1, "pb2PP?")
}
