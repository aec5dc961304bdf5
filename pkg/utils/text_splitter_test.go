package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitText_ShortTextSingleChunk(t *testing.T) {
	chunks := SplitText("short text", 100, 10)
	require.Len(t, chunks, 1)
	assert.Equal(t, "short text", chunks[0])
}

func TestSplitText_ChunksRespectSize(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet ", 40)
	chunks := SplitText(text, 120, 20)

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), 120)
		assert.NotEmpty(t, c)
	}
}

func TestSplitText_PrefersWordBoundaries(t *testing.T) {
	text := strings.Repeat("alpha bravo charlie delta ", 30)
	chunks := SplitText(text, 100, 10)

	for i, c := range chunks[:len(chunks)-1] {
		assert.True(t, strings.HasSuffix(c, " ") || strings.HasSuffix(c, "delta"),
			"chunk %d ends mid-word: %q", i, c)
	}
}

func TestSplitText_OverlapCarriesContext(t *testing.T) {
	text := strings.Repeat("abcdefghij ", 30)
	chunks := SplitText(text, 50, 10)

	require.Greater(t, len(chunks), 1)
	// the tail of each chunk reappears at the head of the next
	for i := 0; i < len(chunks)-1; i++ {
		tail := chunks[i][len(chunks[i])-5:]
		assert.Contains(t, chunks[i+1][:15], tail)
	}
}

func TestSplitText_OverlapLargerThanChunkStillAdvances(t *testing.T) {
	text := strings.Repeat("x", 300)
	chunks := SplitText(text, 50, 60)
	require.NotEmpty(t, chunks)
	assert.Equal(t, text, strings.Join(chunks, ""))
}
