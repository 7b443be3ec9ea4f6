package testgen

import "math"

// BuildChunks partitions totalPages into contiguous page blocks of width
// chunkSize (the last block may be narrower) and distributes questionCount
// across them proportionally to page count. Quotas always sum to
// questionCount when that is feasible with every chunk keeping at least
// one question; rounding error lands on the largest chunk.
func BuildChunks(totalPages, questionCount, chunkSize int) []Chunk {
	if totalPages <= 0 || questionCount <= 0 {
		return nil
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	var chunks []Chunk
	for start := 0; start < totalPages; start += chunkSize {
		end := min(start+chunkSize-1, totalPages-1)
		pages := end - start + 1
		quota := int(math.Round(float64(questionCount) * float64(pages) / float64(totalPages)))
		if quota < 1 {
			quota = 1
		}
		chunks = append(chunks, Chunk{StartPage: start, EndPage: end, Questions: quota})
	}

	allocated := 0
	for _, c := range chunks {
		allocated += c.Questions
	}

	diff := questionCount - allocated
	if diff > 0 {
		chunks[largestQuota(chunks)].Questions += diff
	}
	for diff < 0 {
		// Take the surplus from the largest chunk without dropping any
		// chunk below one question. When every chunk is already at one,
		// the sum stays above questionCount.
		li := largestQuota(chunks)
		take := min(-diff, chunks[li].Questions-1)
		if take == 0 {
			break
		}
		chunks[li].Questions -= take
		diff += take
	}

	return chunks
}

func largestQuota(chunks []Chunk) int {
	largest := 0
	for i, c := range chunks {
		if c.Questions > chunks[largest].Questions {
			largest = i
		}
	}
	return largest
}
