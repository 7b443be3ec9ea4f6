// Package testgen implements the question generation pipeline: chunk
// planning, per-chunk model calls, response parsing and repair, question
// normalization, and cost accounting.
package testgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/examforge/internal/llm"
)

// Wire values for Question.QuestionType.
const (
	QuestionMCQ             = "MCQ"
	QuestionAssertionReason = "ASSERTION_REASON"
	QuestionMatchTheColumn  = "MATCH_THE_COLUMN"
)

// Question is one generated exam item. Models emit questions as JSON
// and the normalizer mutates them in place, so every field is optional
// at the wire level even though a well-formed question carries all of
// them.
type Question struct {
	QuestionID    int               `json:"question_id"`
	QuestionType  string            `json:"question_type"`
	QuestionText  string            `json:"question_text"`
	Options       map[string]string `json:"options,omitempty"`
	CorrectAnswer string            `json:"correct_answer,omitempty"`
	Explanation   Explanation       `json:"explanation,omitempty"`
	SourceInfo    *SourceInfo       `json:"source_info,omitempty"`
}

// isAssertionReason reports whether the question has the fixed
// assertion-reason option structure. Models are inconsistent about the
// exact type label.
func (q *Question) isAssertionReason() bool {
	switch strings.ToUpper(q.QuestionType) {
	case QuestionAssertionReason, "ASSERTION-REASON", "AR":
		return true
	}
	return false
}

func (q *Question) isMatchTheColumn() bool {
	return strings.ToUpper(q.QuestionType) == QuestionMatchTheColumn
}

// SourceInfo is the model's self-reported provenance for a question.
// Passed through untouched.
type SourceInfo struct {
	PageOrSection string   `json:"page_or_section,omitempty"`
	KeyConcepts   []string `json:"key_concepts,omitempty"`
}

// Explanation is either a single string or a per-option map, depending
// on the prompt variant. Both shapes appear in model output.
type Explanation struct {
	Text      string
	PerOption map[string]string
}

// IsZero reports whether the explanation carries no content.
func (e Explanation) IsZero() bool {
	return e.Text == "" && e.PerOption == nil
}

func (e Explanation) MarshalJSON() ([]byte, error) {
	if e.PerOption != nil {
		return json.Marshal(e.PerOption)
	}
	return json.Marshal(e.Text)
}

func (e *Explanation) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		e.Text = ""
		return json.Unmarshal(data, &e.PerOption)
	}
	e.PerOption = nil
	return json.Unmarshal(data, &e.Text)
}

// Chunk is one unit of parallel work: a contiguous 0-indexed inclusive
// page range and the number of questions to request from it.
type Chunk struct {
	StartPage int
	EndPage   int
	Questions int
}

// Pages returns the number of pages the chunk covers.
func (c Chunk) Pages() int {
	return c.EndPage - c.StartPage + 1
}

// Label returns the 1-indexed page range label used in logs, e.g. "p1-15".
func (c Chunk) Label() string {
	return fmt.Sprintf("p%d-%d", c.StartPage+1, c.EndPage+1)
}

// Batch is the structured payload parsed out of one model response.
type Batch struct {
	TestMetadata map[string]any `json:"test_metadata,omitempty"`
	Questions    []*Question    `json:"questions"`

	// Set only on terminal parse failure.
	RawResponse string `json:"raw_response,omitempty"`
	ParseError  string `json:"parse_error,omitempty"`
}

// Failed reports whether the batch is a terminal parse failure.
func (b *Batch) Failed() bool {
	return b.ParseError != ""
}

// Result is the top-level outcome of one generation request: either a
// question list with metadata, or a terminal failure carrying the raw
// model text for debugging.
type Result struct {
	// Questions is always present on success, even when empty.
	Questions    []*Question `json:"questions"`
	TestMetadata *Metadata   `json:"test_metadata,omitempty"`

	RawResponse string `json:"raw_response,omitempty"`
	ParseError  string `json:"parse_error,omitempty"`
}

// Failed reports whether the result is a terminal failure.
func (r *Result) Failed() bool {
	return r.ParseError != ""
}

// Metadata summarizes one generation run.
type Metadata struct {
	Subject            string      `json:"subject,omitempty"`
	Difficulty         string      `json:"difficulty,omitempty"`
	QuestionType       string      `json:"question_type"`
	TotalQuestions     int         `json:"total_questions"`
	RequestedQuestions int         `json:"requested_questions"`
	GenerationTime     float64     `json:"generation_time"`
	ParallelChunks     int         `json:"parallel_chunks"`
	TokenUsage         TokenReport `json:"token_usage"`
}

// TokenReport is the token and cost accounting block of the metadata.
type TokenReport struct {
	Generation  llm.Usage `json:"generation"`
	TotalInput  int       `json:"total_input"`
	TotalOutput int       `json:"total_output"`
	GrandTotal  int       `json:"grand_total"`
	Cost        Cost      `json:"cost"`
}
