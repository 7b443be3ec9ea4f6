package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"
)

// openaiModels maps friendly names to OpenAI model IDs.
var openaiModels = map[string]string{
	"gpt-5-mini": "gpt-5-mini",
	"gpt-5":      "gpt-5",
	"gpt-4o":     "gpt-4o",
}

// OpenAIProvider implements Provider using the OpenAI Responses API,
// which accepts PDF attachments as input_file parts.
// It also supports OpenAI-compatible APIs via BaseURL.
type OpenAIProvider struct {
	client openai.Client
	model  string
}

// NewOpenAIProvider creates a new OpenAI provider. SDK-internal retries
// are disabled; the RetryProvider decorator owns the retry schedule.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIProvider{
		client: openai.NewClient(opts...),
		model:  resolveModel(cfg.Model, openaiModels),
	}, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(p.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: buildOpenAIInput(req),
		},
	}
	if req.System != "" {
		params.Instructions = openai.String(req.System)
	}
	if req.MaxTokens > 0 {
		params.MaxOutputTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.Schema != nil {
		params.Text = responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigParamOfJSONSchema(
				req.Schema.Name, req.Schema.Definition),
		}
	}

	resp, err := p.client.Responses.New(ctx, params)
	if err != nil {
		return nil, mapOpenAIError(err)
	}

	if len(resp.Output) == 0 {
		return nil, &ErrInvalidResponse{
			Err: fmt.Errorf("no output in OpenAI response"),
		}
	}

	content := []byte(resp.OutputText())

	if req.Schema != nil {
		if err := ValidateSchema(req.Schema, content); err != nil {
			return nil, err
		}
	}

	return &Response{
		Content: content,
		Usage: Usage{
			InputTokens:  int(resp.Usage.InputTokens),
			OutputTokens: int(resp.Usage.OutputTokens),
			TotalTokens:  int(resp.Usage.TotalTokens),
		},
		Model:      string(resp.Model),
		StopReason: mapOpenAIStopReason(resp),
	}, nil
}

func (p *OpenAIProvider) ModelID() string {
	return p.model
}

// buildOpenAIInput converts the request messages to Responses API input
// items, attaching the document to the first user message as an
// input_file part.
func buildOpenAIInput(req Request) responses.ResponseInputParam {
	var input responses.ResponseInputParam

	for i, m := range req.Messages {
		role := "user"
		if m.Role == RoleAssistant {
			role = "assistant"
		}

		content := responses.ResponseInputMessageContentListParam{}
		if req.Document != nil && i == 0 && m.Role == RoleUser {
			content = append(content, responses.ResponseInputContentUnionParam{
				OfInputFile: &responses.ResponseInputFileParam{
					Filename: openai.String(documentName(req.Document)),
					FileData: openai.String(documentDataURL(req.Document)),
				},
			})
		}
		content = append(content, responses.ResponseInputContentParamOfInputText(m.Content))

		input = append(input, responses.ResponseInputItemParamOfMessage(content, responses.EasyInputMessageRole(role)))
	}

	return input
}

// documentName returns the attachment filename, defaulting to "document.pdf".
func documentName(doc *Document) string {
	if doc.Name != "" {
		return doc.Name
	}
	return "document.pdf"
}

// documentMIME returns the attachment MIME type, defaulting to PDF.
func documentMIME(doc *Document) string {
	if doc.MIMEType != "" {
		return doc.MIMEType
	}
	return "application/pdf"
}

// documentDataURL encodes the document as a base64 data URL for transport.
func documentDataURL(doc *Document) string {
	encoded := base64.StdEncoding.EncodeToString(doc.Data)
	return fmt.Sprintf("data:%s;base64,%s", documentMIME(doc), encoded)
}

func mapOpenAIStopReason(resp *responses.Response) string {
	if resp.IncompleteDetails.Reason == "max_output_tokens" {
		return "max_tokens"
	}
	return "end"
}

func mapOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return &ErrRateLimit{Err: err}
		case apiErr.StatusCode >= 500:
			return &ErrProviderUnavailable{Err: err}
		case apiErr.StatusCode >= 400:
			return err
		}
	}
	return &ErrProviderUnavailable{Err: err}
}
