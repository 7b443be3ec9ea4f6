// Package excel renders a generation result as a reviewable spreadsheet,
// one sheet layout per question type. Math notation is converted to
// Unicode so cells read cleanly without a renderer.
package excel

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/examforge/internal/testgen"
)

var mcqHeaders = []string{
	"Question Number", "Question", "Option A", "Option B", "Option C", "Option D",
	"Correct Answer", "Accuracy", "Comment",
	"Time to Run", "Input Tokens", "Output Tokens",
	"Input Cost (Rs)", "Output Cost (Rs)",
}

var arHeaders = []string{
	"Question Number", "Assertion (A)", "Reason (R)", "Correct Answer",
	"Accuracy", "Comment",
	"Time to Run", "Input Tokens", "Output Tokens",
	"Input Cost (Rs)", "Output Cost (Rs)",
}

var mtcHeaders = []string{
	"Question Number", "List I", "List II", "Correct Answer",
	"Accuracy", "Comment",
	"Time to Run", "Input Tokens", "Output Tokens",
	"Input Cost (Rs)", "Output Cost (Rs)",
}

// Export renders the result as an xlsx workbook. Combination results get
// one sheet per question type present; single-type results get one
// sheet. Failed results cannot be exported.
func Export(result *testgen.Result) ([]byte, error) {
	if result == nil || result.Failed() {
		return nil, fmt.Errorf("cannot export a failed result")
	}

	meta := result.TestMetadata
	questionType := "mcq"
	if meta != nil && meta.QuestionType != "" {
		questionType = meta.QuestionType
	}

	f := excelize.NewFile()
	defer f.Close()

	switch questionType {
	case "combination":
		if err := buildCombinationSheets(f, result.Questions, meta); err != nil {
			return nil, err
		}
	case "assertion_reason":
		if err := renameAndBuild(f, "Assertion-Reason", buildARSheet, result.Questions, meta); err != nil {
			return nil, err
		}
	case "match_the_column":
		if err := renameAndBuild(f, "Match the Column", buildMTCSheet, result.Questions, meta); err != nil {
			return nil, err
		}
	default:
		if err := renameAndBuild(f, "MCQ", buildMCQSheet, result.Questions, meta); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type sheetBuilder func(f *excelize.File, sheet string, questions []*testgen.Question, meta *testgen.Metadata) error

func renameAndBuild(f *excelize.File, name string, build sheetBuilder, questions []*testgen.Question, meta *testgen.Metadata) error {
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return err
	}
	return build(f, name, questions, meta)
}

// buildCombinationSheets splits a combination result by question type,
// one sheet per type that actually has questions.
func buildCombinationSheets(f *excelize.File, questions []*testgen.Question, meta *testgen.Metadata) error {
	var mcq, ar, mtc []*testgen.Question
	for _, q := range questions {
		switch strings.ToUpper(q.QuestionType) {
		case testgen.QuestionAssertionReason, "ASSERTION-REASON", "AR":
			ar = append(ar, q)
		case testgen.QuestionMatchTheColumn, "MTC":
			mtc = append(mtc, q)
		default:
			mcq = append(mcq, q)
		}
	}

	type plan struct {
		name      string
		build     sheetBuilder
		questions []*testgen.Question
	}
	var plans []plan
	if len(mcq) > 0 {
		plans = append(plans, plan{"MCQ", buildMCQSheet, mcq})
	}
	if len(ar) > 0 {
		plans = append(plans, plan{"Assertion-Reason", buildARSheet, ar})
	}
	if len(mtc) > 0 {
		plans = append(plans, plan{"Match the Column", buildMTCSheet, mtc})
	}
	if len(plans) == 0 {
		plans = append(plans, plan{"MCQ", buildMCQSheet, questions})
	}

	for i, p := range plans {
		sheet := p.name
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return err
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return err
			}
		}
		if err := p.build(f, sheet, p.questions, meta); err != nil {
			return err
		}
	}
	return nil
}

func buildMCQSheet(f *excelize.File, sheet string, questions []*testgen.Question, meta *testgen.Metadata) error {
	if err := writeHeaders(f, sheet, mcqHeaders); err != nil {
		return err
	}
	for i, q := range questions {
		row := i + 2
		cells := []any{
			questionNumber(q, i),
			clean(q.QuestionText),
			clean(q.Options["a"]),
			clean(q.Options["b"]),
			clean(q.Options["c"]),
			clean(q.Options["d"]),
			strings.ToUpper(q.CorrectAnswer),
			"", "", // Accuracy and Comment are filled by reviewers
		}
		cells = append(cells, metaCells(meta)...)
		if err := writeRow(f, sheet, row, cells); err != nil {
			return err
		}
	}
	return finishSheet(f, sheet, len(mcqHeaders), len(questions))
}

func buildARSheet(f *excelize.File, sheet string, questions []*testgen.Question, meta *testgen.Metadata) error {
	if err := writeHeaders(f, sheet, arHeaders); err != nil {
		return err
	}
	for i, q := range questions {
		row := i + 2
		assertion, reason := parseAR(q.QuestionText)
		cells := []any{
			questionNumber(q, i),
			assertion,
			reason,
			strings.ToUpper(q.CorrectAnswer),
			"", "",
		}
		cells = append(cells, metaCells(meta)...)
		if err := writeRow(f, sheet, row, cells); err != nil {
			return err
		}
	}
	return finishSheet(f, sheet, len(arHeaders), len(questions))
}

func buildMTCSheet(f *excelize.File, sheet string, questions []*testgen.Question, meta *testgen.Metadata) error {
	if err := writeHeaders(f, sheet, mtcHeaders); err != nil {
		return err
	}
	for i, q := range questions {
		row := i + 2
		listI, listII := parseMTC(q.QuestionText)
		cells := []any{
			questionNumber(q, i),
			listI,
			listII,
			strings.ToUpper(q.CorrectAnswer),
			"", "",
		}
		cells = append(cells, metaCells(meta)...)
		if err := writeRow(f, sheet, row, cells); err != nil {
			return err
		}
	}
	return finishSheet(f, sheet, len(mtcHeaders), len(questions))
}

func questionNumber(q *testgen.Question, idx int) int {
	if q.QuestionID > 0 {
		return q.QuestionID
	}
	return idx + 1
}

// metaCells returns the per-row accounting columns: run time, token
// counts, and costs. Repeated on every row so any row stands alone when
// filtered.
func metaCells(meta *testgen.Metadata) []any {
	if meta == nil {
		return []any{"", "", "", "", ""}
	}
	return []any{
		formatTime(meta.GenerationTime),
		meta.TokenUsage.Generation.InputTokens,
		meta.TokenUsage.Generation.OutputTokens,
		meta.TokenUsage.Cost.InputCost,
		meta.TokenUsage.Cost.OutputCost,
	}
}

func writeHeaders(f *excelize.File, sheet string, headers []string) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4F46E5"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
		Border: []excelize.Border{
			{Type: "left", Style: 1},
			{Type: "right", Style: 1},
			{Type: "top", Style: 1},
			{Type: "bottom", Style: 1},
		},
	})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func writeRow(f *excelize.File, sheet string, row int, cells []any) error {
	for i, v := range cells {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

// finishSheet applies wrap alignment to the data region and sizes the
// columns to their content.
func finishSheet(f *excelize.File, sheet string, numCols, numRows int) error {
	if numRows > 0 {
		style, err := f.NewStyle(&excelize.Style{
			Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		})
		if err != nil {
			return err
		}
		last, err := excelize.CoordinatesToCellName(numCols, numRows+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A2", last, style); err != nil {
			return err
		}
	}

	for col := 1; col <= numCols; col++ {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		maxLen := 0
		for row := 1; row <= numRows+1; row++ {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return err
			}
			v, err := f.GetCellValue(sheet, cell)
			if err != nil {
				continue
			}
			for _, line := range strings.Split(v, "\n") {
				if len(line) > maxLen {
					maxLen = len(line)
				}
			}
		}
		width := float64(min(max(maxLen+2, 10), 60))
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return err
		}
	}
	return nil
}

var (
	arAssertionRe = regexp.MustCompile(`(?is)Assertion\s*\(?A\)?\s*:\s*(.*?)\s*Reason\s*\(?R\)?\s*:`)
	arReasonRe    = regexp.MustCompile(`(?is)Reason\s*\(?R\)?\s*:\s*(.*)`)
)

// parseAR splits an assertion-reason body into its two statements. When
// the labels are missing, the full text lands in the assertion column.
func parseAR(text string) (assertion, reason string) {
	assertion = text
	if m := arAssertionRe.FindStringSubmatch(text); m != nil {
		assertion = m[1]
	}
	if m := arReasonRe.FindStringSubmatch(text); m != nil {
		reason = m[1]
	}
	return clean(assertion), clean(reason)
}

var mtcRowRe = regexp.MustCompile(`^([A-D])\.\s*(.*?)\s*\|\s*(IV|III|II|I)\.\s*(.*?)\s*$`)

// parseMTC extracts the two lists from a canonical match-the-column
// table (the normalizer's pipe-row format). Unparseable text falls back
// to a single List I cell.
func parseMTC(text string) (listI, listII string) {
	var left, right []string
	for _, line := range strings.Split(strings.ReplaceAll(text, `\n`, "\n"), "\n") {
		m := mtcRowRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		left = append(left, m[1]+". "+clean(m[2]))
		right = append(right, m[3]+". "+clean(m[4]))
	}
	if len(left) == 0 {
		return clean(text), ""
	}
	return strings.Join(left, "\n"), strings.Join(right, "\n")
}

// formatTime renders a duration in seconds as "Xm Ys" or "X.Xs".
func formatTime(seconds float64) string {
	if seconds <= 0 {
		return ""
	}
	if seconds >= 60 {
		return fmt.Sprintf("%dm %ds", int(seconds)/60, int(seconds)%60)
	}
	return fmt.Sprintf("%.1fs", seconds)
}
