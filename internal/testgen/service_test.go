package testgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/abhisek/examforge/internal/llm"
	"github.com/abhisek/examforge/internal/prompts"
)

// makePDF builds a minimal but structurally valid PDF with n blank pages.
func makePDF(t *testing.T, n int) []byte {
	t.Helper()

	var b strings.Builder
	offsets := make([]int, 0, n+3)

	write := func(s string) {
		b.WriteString(s)
	}
	writeObj := func(s string) {
		offsets = append(offsets, b.Len())
		write(s)
	}

	write("%PDF-1.4\n")

	writeObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	kids := make([]string, n)
	for i := 0; i < n; i++ {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	writeObj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), n))

	for i := 0; i < n; i++ {
		writeObj(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>\nendobj\n", i+3))
	}

	xrefPos := b.Len()
	write(fmt.Sprintf("xref\n0 %d\n", n+3))
	write("0000000000 65535 f \n")
	for _, off := range offsets {
		write(fmt.Sprintf("%010d 00000 n \n", off))
	}
	write(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", n+3, xrefPos))

	return []byte(b.String())
}

// batchJSON builds a valid model response carrying n MCQ questions.
func batchJSON(t *testing.T, n int) json.RawMessage {
	t.Helper()

	questions := make([]*Question, n)
	for i := range questions {
		questions[i] = mcqQuestion(i+1, "a")
	}
	raw, err := json.Marshal(&Batch{Questions: questions})
	if err != nil {
		t.Fatalf("marshal batch: %v", err)
	}
	return raw
}

func newTestService(t *testing.T, provider llm.Provider) *Service {
	t.Helper()
	return NewService(provider, prompts.NewRegistry(), DefaultConfig(), zerolog.Nop())
}

func TestGenerate_SingletonPath(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: batchJSON(t, 5),
		Usage:   llm.Usage{InputTokens: 1000, OutputTokens: 500, TotalTokens: 1500},
	})
	svc := newTestService(t, mock)

	result, err := svc.Generate(context.Background(), Request{
		PDF:           makePDF(t, 5),
		Subject:       "Botany",
		Difficulty:    prompts.DifficultyMedium,
		QuestionType:  prompts.TypeMCQ,
		QuestionCount: 5,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.Failed() {
		t.Fatalf("result failed: %s", result.ParseError)
	}

	if mock.CallCount() != 1 {
		t.Errorf("model calls = %d, want 1 (no sharding for 5 pages)", mock.CallCount())
	}
	if len(result.Questions) != 5 {
		t.Errorf("got %d questions, want 5", len(result.Questions))
	}

	meta := result.TestMetadata
	if meta.ParallelChunks != 1 {
		t.Errorf("parallel_chunks = %d, want 1", meta.ParallelChunks)
	}
	if meta.TotalQuestions != 5 || meta.RequestedQuestions != 5 {
		t.Errorf("metadata counts = %d/%d", meta.TotalQuestions, meta.RequestedQuestions)
	}
	if meta.TokenUsage.GrandTotal != 1500 {
		t.Errorf("grand total tokens = %d, want 1500", meta.TokenUsage.GrandTotal)
	}
	if meta.TokenUsage.Cost.TotalCost <= 0 {
		t.Error("cost missing from metadata")
	}

	call := mock.Calls[0]
	if call.Document == nil || call.Document.Name != "textbook.pdf" {
		t.Errorf("document attachment = %+v", call.Document)
	}
	// medium MCQ: 5 questions at 1500 tokens each plus overhead.
	if call.MaxTokens != 8500 {
		t.Errorf("token budget = %d, want 8500", call.MaxTokens)
	}
	if call.System == "" || !strings.Contains(call.System, "Botany") {
		t.Error("system prompt not built for subject")
	}
}

func TestGenerate_AllChunksFailedKeepsQuestionsArray(t *testing.T) {
	// Every chunk fails; the run still succeeds with zero questions, and
	// the serialized result carries an explicit empty questions array.
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
	)
	svc := newTestService(t, mock)

	result, err := svc.Generate(context.Background(), Request{
		PDF:           makePDF(t, 45),
		Subject:       "Botany",
		Difficulty:    prompts.DifficultyMedium,
		QuestionType:  prompts.TypeMCQ,
		QuestionCount: 9,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.Failed() {
		t.Fatalf("result failed: %s", result.ParseError)
	}
	if result.Questions == nil || len(result.Questions) != 0 {
		t.Fatalf("questions = %#v, want empty non-nil slice", result.Questions)
	}

	out, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	if !strings.Contains(string(out), `"questions":[]`) {
		t.Errorf("serialized result missing empty questions array: %s", out)
	}
}

func TestGenerate_ShardedPathWithOneFailedChunk(t *testing.T) {
	// 45 pages, 9 questions: three chunks of three questions. One chunk
	// permanently fails; the batch still succeeds with the remainder.
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: batchJSON(t, 3), Usage: llm.Usage{InputTokens: 100, OutputTokens: 50, TotalTokens: 150}},
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
		llm.MockResponse{Content: batchJSON(t, 3), Usage: llm.Usage{InputTokens: 100, OutputTokens: 50, TotalTokens: 150}},
	)
	svc := newTestService(t, mock)

	result, err := svc.Generate(context.Background(), Request{
		PDF:           makePDF(t, 45),
		Subject:       "Botany",
		Difficulty:    prompts.DifficultyHard,
		QuestionType:  prompts.TypeMCQ,
		QuestionCount: 9,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.Failed() {
		t.Fatalf("result failed: %s", result.ParseError)
	}

	if mock.CallCount() != 3 {
		t.Errorf("model calls = %d, want 3", mock.CallCount())
	}
	if len(result.Questions) != 6 {
		t.Errorf("got %d questions, want 6 (one chunk failed)", len(result.Questions))
	}
	for i, q := range result.Questions {
		if q.QuestionID != i+1 {
			t.Errorf("question %d has ID %d, want contiguous renumbering", i, q.QuestionID)
		}
	}

	meta := result.TestMetadata
	if meta.ParallelChunks != 3 {
		t.Errorf("parallel_chunks = %d, want 3", meta.ParallelChunks)
	}
	if meta.TotalQuestions != 6 || meta.RequestedQuestions != 9 {
		t.Errorf("metadata counts = %d/%d, want 6/9", meta.TotalQuestions, meta.RequestedQuestions)
	}
	if meta.TokenUsage.GrandTotal != 300 {
		t.Errorf("grand total tokens = %d, want 300 (failed chunk contributes none)", meta.TokenUsage.GrandTotal)
	}

	// Each chunk call carries its own slice, not the full document.
	full := makePDF(t, 45)
	for i, call := range mock.Calls {
		if call.Document == nil {
			t.Fatalf("call %d has no document", i)
		}
		if len(call.Document.Data) >= len(full) {
			t.Errorf("call %d document is not a slice (%d bytes)", i, len(call.Document.Data))
		}
	}
}

func TestGenerate_FencedResponse(t *testing.T) {
	fenced := "```json\n" + string(batchJSON(t, 2)) + "\n```"
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(fenced),
		Usage:   llm.Usage{TotalTokens: 10},
	})
	svc := newTestService(t, mock)

	result, err := svc.Generate(context.Background(), Request{
		PDF:           makePDF(t, 3),
		Subject:       "Botany",
		Difficulty:    prompts.DifficultyEasy,
		QuestionType:  prompts.TypeMCQ,
		QuestionCount: 2,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.Failed() {
		t.Fatalf("fenced response not parsed: %s", result.ParseError)
	}
	if len(result.Questions) != 2 {
		t.Errorf("got %d questions, want 2", len(result.Questions))
	}
}

func TestGenerate_TerminalParseFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("I could not find any usable content in this document."),
	})
	svc := newTestService(t, mock)

	result, err := svc.Generate(context.Background(), Request{
		PDF:           makePDF(t, 3),
		Subject:       "Botany",
		Difficulty:    prompts.DifficultyEasy,
		QuestionType:  prompts.TypeMCQ,
		QuestionCount: 2,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !result.Failed() {
		t.Fatal("expected terminal failure result")
	}
	if result.RawResponse == "" {
		t.Error("raw response not preserved for debugging")
	}
}

func TestGenerate_ProviderFailureSingleton(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	svc := newTestService(t, mock)

	result, err := svc.Generate(context.Background(), Request{
		PDF:           makePDF(t, 3),
		Subject:       "Botany",
		Difficulty:    prompts.DifficultyEasy,
		QuestionType:  prompts.TypeMCQ,
		QuestionCount: 2,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !result.Failed() {
		t.Fatal("expected failure result when the provider is exhausted")
	}
}

func TestGenerate_CombinationResolvesToMCQ(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: batchJSON(t, 2)})
	svc := newTestService(t, mock)

	result, err := svc.Generate(context.Background(), Request{
		PDF:           makePDF(t, 3),
		Subject:       "Botany",
		Difficulty:    prompts.DifficultyEasy,
		QuestionType:  prompts.TypeCombination,
		QuestionCount: 2,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(mock.Calls[0].System, "MULTIPLE CHOICE") {
		t.Error("combination request did not resolve to an MCQ prompt")
	}
	if result.TestMetadata.QuestionType != "combination" {
		t.Errorf("metadata question type = %q, want the requested type", result.TestMetadata.QuestionType)
	}
}

func TestGenerate_InvalidInput(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := newTestService(t, mock)
	ctx := context.Background()
	valid := makePDF(t, 3)

	if _, err := svc.Generate(ctx, Request{PDF: nil, Subject: "Botany", Difficulty: prompts.DifficultyEasy, QuestionType: prompts.TypeMCQ, QuestionCount: 2}); err == nil {
		t.Error("expected error for empty document")
	}
	if _, err := svc.Generate(ctx, Request{PDF: valid, Subject: "Botany", Difficulty: prompts.DifficultyEasy, QuestionType: prompts.TypeMCQ, QuestionCount: 0}); err == nil {
		t.Error("expected error for zero question count")
	}
	if _, err := svc.Generate(ctx, Request{PDF: valid, Subject: "Botany", Difficulty: prompts.DifficultyEasy, QuestionType: prompts.TypeMCQ, QuestionCount: 500}); err == nil {
		t.Error("expected error for excessive question count")
	}
	if _, err := svc.Generate(ctx, Request{PDF: valid, Subject: "Underwater Basket Weaving", Difficulty: prompts.DifficultyEasy, QuestionType: prompts.TypeMCQ, QuestionCount: 2}); err == nil {
		t.Error("expected error for unknown subject")
	}
	if _, err := svc.Generate(ctx, Request{PDF: []byte("not a pdf"), Subject: "Botany", Difficulty: prompts.DifficultyEasy, QuestionType: prompts.TypeMCQ, QuestionCount: 2}); err == nil {
		t.Error("expected error for invalid document")
	}
	if mock.CallCount() != 0 {
		t.Errorf("invalid input reached the model: %d calls", mock.CallCount())
	}
}
