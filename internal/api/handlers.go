package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/abhisek/examforge/internal/excel"
	"github.com/abhisek/examforge/internal/prompts"
	"github.com/abhisek/examforge/internal/testgen"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSubjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"subjects": prompts.Subjects()})
}

// handleGenerate runs a generation from a multipart upload:
// field "pdf" carries the document, form fields carry subject,
// difficulty, question_type, and question_count.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "multipart form required: "+err.Error())
		return
	}

	file, _, err := r.FormFile("pdf")
	if err != nil {
		writeError(w, http.StatusBadRequest, `missing file field "pdf"`)
		return
	}
	defer file.Close()

	pdfBytes, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read upload: "+err.Error())
		return
	}

	req, err := generateRequest(r, pdfBytes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.svc.Generate(r.Context(), *req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// generateRequest validates the form fields into a service request.
// The service revalidates; this layer only rejects what cannot be
// parsed at all.
func generateRequest(r *http.Request, pdfBytes []byte) (*testgen.Request, error) {
	subject := strings.TrimSpace(r.FormValue("subject"))
	if subject == "" {
		return nil, fmt.Errorf("subject is required")
	}

	difficulty := strings.ToLower(strings.TrimSpace(r.FormValue("difficulty")))
	if difficulty == "" {
		difficulty = "medium"
	}
	switch difficulty {
	case "easy", "medium", "hard":
	default:
		return nil, fmt.Errorf("invalid difficulty %q", difficulty)
	}

	qt := strings.ToLower(strings.TrimSpace(r.FormValue("question_type")))
	if qt == "" {
		qt = "mcq"
	}
	switch qt {
	case "mcq", "assertion_reason", "match_the_column", "combination":
	default:
		return nil, fmt.Errorf("invalid question_type %q", qt)
	}

	count := 5
	if v := r.FormValue("question_count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid question_count %q", v)
		}
		count = n
	}

	return &testgen.Request{
		PDF:           pdfBytes,
		Subject:       subject,
		Difficulty:    prompts.Difficulty(difficulty),
		QuestionType:  prompts.QuestionType(qt),
		QuestionCount: count,
	}, nil
}

// handleExportExcel converts a generation result, posted back as JSON,
// into a downloadable workbook.
func (s *Server) handleExportExcel(w http.ResponseWriter, r *http.Request) {
	var result testgen.Result
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUploadBytes)).Decode(&result); err != nil {
		writeError(w, http.StatusBadRequest, "invalid result payload: "+err.Error())
		return
	}

	data, err := excel.Export(&result)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="generated_test.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
