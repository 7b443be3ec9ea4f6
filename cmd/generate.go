package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/examforge/internal/excel"
	"github.com/abhisek/examforge/internal/prompts"
	"github.com/abhisek/examforge/internal/testgen"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a test from a PDF",
	Long: "Generate exam questions from a textbook PDF and write the " +
		"result as JSON to stdout or a file, optionally with a " +
		"spreadsheet export.",
	RunE: func(cmd *cobra.Command, args []string) error {
		pdfPath, _ := cmd.Flags().GetString("pdf")
		subject, _ := cmd.Flags().GetString("subject")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		questionType, _ := cmd.Flags().GetString("type")
		count, _ := cmd.Flags().GetInt("count")
		outPath, _ := cmd.Flags().GetString("out")
		excelPath, _ := cmd.Flags().GetString("excel")

		log := newLogger(cmd)

		pdfBytes, err := os.ReadFile(pdfPath)
		if err != nil {
			return fmt.Errorf("read pdf: %w", err)
		}

		svc, err := buildService(cmd.Context(), log)
		if err != nil {
			return err
		}

		result, err := svc.Generate(cmd.Context(), testgen.Request{
			PDF:           pdfBytes,
			Subject:       subject,
			Difficulty:    prompts.Difficulty(strings.ToLower(difficulty)),
			QuestionType:  prompts.QuestionType(strings.ToLower(questionType)),
			QuestionCount: count,
		})
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		if outPath == "" || outPath == "-" {
			fmt.Println(string(out))
		} else if err := os.WriteFile(outPath, out, 0o644); err != nil {
			return fmt.Errorf("write result: %w", err)
		}

		if result.Failed() {
			return fmt.Errorf("generation failed: %s", result.ParseError)
		}

		if excelPath != "" {
			data, err := excel.Export(result)
			if err != nil {
				return fmt.Errorf("export spreadsheet: %w", err)
			}
			if err := os.WriteFile(excelPath, data, 0o644); err != nil {
				return fmt.Errorf("write spreadsheet: %w", err)
			}
			log.Info().Str("path", excelPath).Msg("spreadsheet written")
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringP("pdf", "f", "", "Path to the textbook PDF (required)")
	generateCmd.Flags().StringP("subject", "s", "", "Subject, e.g. botany or organic chemistry (required)")
	generateCmd.Flags().StringP("difficulty", "d", "medium", "Difficulty: easy, medium, or hard")
	generateCmd.Flags().StringP("type", "t", "mcq", "Question type: mcq, assertion_reason, match_the_column, or combination")
	generateCmd.Flags().IntP("count", "n", 5, "Number of questions (1-100)")
	generateCmd.Flags().StringP("out", "o", "", "Write the result JSON to this file instead of stdout")
	generateCmd.Flags().String("excel", "", "Also write an xlsx workbook to this path")

	_ = generateCmd.MarkFlagRequired("pdf")
	_ = generateCmd.MarkFlagRequired("subject")
}
