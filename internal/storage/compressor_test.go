package storage

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZstdCompressor_RoundTrip(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)

	input := bytes.Repeat([]byte(`{"minRanking":10,"minPoints":25,"showRecentBlocks":true}`), 50)
	compressed, err := c.Compress(input)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(input))

	out, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestZstdCompressor_InvalidInput(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)

	_, err = c.Decompress([]byte("definitely not zstd"))
	assert.Error(t, err)
}
