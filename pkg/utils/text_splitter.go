package utils

import "unicode"

// SplitText splits a long string into chunks of approximately 'chunkSize'
// characters with 'overlap' characters carried over at boundaries so context
// survives the cut. Chunk ends are nudged back to the nearest whitespace when
// one is close, so words are not split in half.
func SplitText(text string, chunkSize int, overlap int) []string {
	if len(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	totalLen := len(runes)

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	for i := 0; i < totalLen; {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		} else {
			end = backtrackToSpace(runes, i, end)
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
		next := end - overlap
		if next <= i {
			next = i + step
		}
		i = next
	}

	return chunks
}

// backtrackToSpace moves end left to the last whitespace rune, as long as the
// move stays within a quarter of the chunk. A chunk with no nearby whitespace
// is cut mid-word rather than shrunk to nothing.
func backtrackToSpace(runes []rune, start, end int) int {
	limit := end - (end-start)/4
	for j := end - 1; j > limit; j-- {
		if unicode.IsSpace(runes[j]) {
			return j + 1
		}
	}
	return end
}
