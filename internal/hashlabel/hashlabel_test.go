package hashlabel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSha1KnownVectors(t *testing.T) {
	cases := []struct {
		in  string
		hex string
	}{
		{"", "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{"abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{"The quick brown fox jumps over the lazy dog", "2fd4e1c67a2d28fced849ee1bb76e7391b93eb12"},
	}
	for _, c := range cases {
		got := ComputeSha1([]byte(c.in))
		assert.Equal(t, c.hex, got.Hex(), "input %q", c.in)
	}
}

func TestSha1HexRoundTrip(t *testing.T) {
	h := ComputeSha1([]byte("round trip me"))
	parsed, err := Sha1FromHex(h.Hex())
	require.NoError(t, err)
	assert.Equal(t, h, parsed)
}

func TestSha1FromHexRejectsWrongLength(t *testing.T) {
	_, err := Sha1FromHex("deadbeef")
	assert.Error(t, err)
}

func TestCrc32KnownVectors(t *testing.T) {
	cases := []struct {
		in   string
		want uint32
	}{
		{"", 0x00000000},
		{"123456789", 0xCBF43926},
	}
	for _, c := range cases {
		got := ComputeCrc32([]byte(c.in))
		assert.Equal(t, c.want, uint32(got), "input %q", c.in)
	}
}

func TestCrc32ShardPrefix(t *testing.T) {
	c := Crc32(42)
	prefix, rest := c.ShardPrefix()
	assert.Equal(t, "00", prefix)
	assert.Equal(t, "42", rest)

	c2 := Crc32(123456)
	prefix2, rest2 := c2.ShardPrefix()
	assert.Equal(t, "12", prefix2)
	assert.Equal(t, "3456", rest2)
}
