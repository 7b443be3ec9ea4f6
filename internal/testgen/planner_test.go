package testgen

import "testing"

func TestBuildChunks_ProportionalSplit(t *testing.T) {
	chunks := BuildChunks(45, 9, 15)

	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	want := []Chunk{
		{StartPage: 0, EndPage: 14, Questions: 3},
		{StartPage: 15, EndPage: 29, Questions: 3},
		{StartPage: 30, EndPage: 44, Questions: 3},
	}
	for i, c := range chunks {
		if c != want[i] {
			t.Errorf("chunk %d = %+v, want %+v", i, c, want[i])
		}
	}
}

func TestBuildChunks_NarrowLastChunk(t *testing.T) {
	chunks := BuildChunks(35, 10, 15)

	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	last := chunks[2]
	if last.StartPage != 30 || last.EndPage != 34 {
		t.Errorf("last chunk covers %d-%d, want 30-34", last.StartPage, last.EndPage)
	}
	if last.Pages() != 5 {
		t.Errorf("last chunk has %d pages, want 5", last.Pages())
	}
}

func TestBuildChunks_QuotasSumExactly(t *testing.T) {
	cases := []struct {
		pages, questions int
	}{
		{45, 9},
		{45, 10},
		{100, 7},
		{21, 5},
		{150, 30},
		{35, 11},
		{75, 100},
	}
	for _, tc := range cases {
		chunks := BuildChunks(tc.pages, tc.questions, 15)
		sum := 0
		for _, c := range chunks {
			sum += c.Questions
			if c.Questions < 1 {
				t.Errorf("(%d pages, %d q): chunk %+v has quota < 1", tc.pages, tc.questions, c)
			}
		}
		if sum != tc.questions {
			t.Errorf("(%d pages, %d q): quotas sum to %d", tc.pages, tc.questions, sum)
		}
	}
}

func TestBuildChunks_MinimumOneQuestionPerChunk(t *testing.T) {
	// Fewer questions than chunks: every chunk still gets one.
	chunks := BuildChunks(100, 2, 15)
	if len(chunks) != 7 {
		t.Fatalf("got %d chunks, want 7", len(chunks))
	}
	for i, c := range chunks {
		if c.Questions < 1 {
			t.Errorf("chunk %d quota = %d, want >= 1", i, c.Questions)
		}
	}
}

func TestBuildChunks_RoundingErrorOnLargestChunk(t *testing.T) {
	// 21 pages, chunk size 15: 15-page and 6-page chunks. 5 questions:
	// round(5*15/21)=4, round(5*6/21)=1, already exact.
	chunks := BuildChunks(21, 5, 15)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if chunks[0].Questions != 4 || chunks[1].Questions != 1 {
		t.Errorf("quotas = %d,%d, want 4,1", chunks[0].Questions, chunks[1].Questions)
	}

	// 45 pages, 10 questions: three chunks of round(10/3)=3, diff +1
	// lands on the first largest.
	chunks = BuildChunks(45, 10, 15)
	if chunks[0].Questions != 4 || chunks[1].Questions != 3 || chunks[2].Questions != 3 {
		t.Errorf("quotas = %d,%d,%d, want 4,3,3",
			chunks[0].Questions, chunks[1].Questions, chunks[2].Questions)
	}
}

func TestBuildChunks_ContiguousCoverage(t *testing.T) {
	chunks := BuildChunks(73, 12, 15)

	next := 0
	for i, c := range chunks {
		if c.StartPage != next {
			t.Errorf("chunk %d starts at %d, want %d", i, c.StartPage, next)
		}
		next = c.EndPage + 1
	}
	if next != 73 {
		t.Errorf("chunks end at page %d, want 73", next)
	}
}

func TestBuildChunks_InvalidInput(t *testing.T) {
	if got := BuildChunks(0, 5, 15); got != nil {
		t.Errorf("BuildChunks(0, 5) = %v, want nil", got)
	}
	if got := BuildChunks(30, 0, 15); got != nil {
		t.Errorf("BuildChunks(30, 0) = %v, want nil", got)
	}
}
