package services

import (
	"context"
	"fmt"
	"os"

	"github.com/getsentry/sentry-go"
	"google.golang.org/genai"
)

type LLMModelName int32

const (
	Flash25 LLMModelName = iota
	Pro25
	FlashLite25
	Flash25Image
)

func (m LLMModelName) String() string {
	switch m {
	case Pro25:
		return "gemini-2.5-pro"
	case Flash25:
		return "gemini-2.5-flash"
	case FlashLite25:
		return "gemini-2.5-flash-lite"
	case Flash25Image:
		return "gemini-2.5-flash-image-preview"
	default:
		return "gemini-2.5-flash"
	}
}

type LLMResponse struct {
	Response         string   `json:"response"`
	Images           [][]byte `json:"-"`
	InputTokenCount  int32    `json:"input_token_count"`
	OutputTokenCount int32    `json:"output_token_count"`
	TotalTokenCount  int32    `json:"total_token_count"`
}

// LLMServiceProvider is the capability surface the styling features depend on.
// The concrete Gemini client is created once at process start and injected.
type LLMServiceProvider interface {
	AnalyzeImage(ctx context.Context, prompt string, imageBase64 string, modelName LLMModelName) (*LLMResponse, error)
	Complete(ctx context.Context, prompt string, modelName LLMModelName) (*LLMResponse, error)
	GenerateImage(ctx context.Context, prompt string, modelName LLMModelName) (*LLMResponse, error)
}

type GoogleLLMService struct {
	client *genai.Client
}

func NewGoogleLLMService(ctx context.Context) (*GoogleLLMService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  os.Getenv("GOOGLE_API_KEY"),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %v", err)
	}
	return &GoogleLLMService{client: client}, nil
}

func floatPointer(f float32) *float32 {
	return &f
}

// GetAllInlineImages collects inline image bytes from every candidate part.
func GetAllInlineImages(result *genai.GenerateContentResponse) [][]byte {
	var images [][]byte
	for _, cand := range result.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				images = append(images, part.InlineData.Data)
			}
		}
	}
	return images
}

func (s *GoogleLLMService) generate(ctx context.Context, parts []*genai.Part, modelName LLMModelName, maxOutputTokens int32, jsonResponse bool) (*LLMResponse, error) {
	config := &genai.GenerateContentConfig{
		CandidateCount:  1,
		MaxOutputTokens: maxOutputTokens,
		Temperature:     floatPointer(1),
	}
	if jsonResponse {
		config.ResponseMIMEType = "application/json"
	}
	result, err := s.client.Models.GenerateContent(
		ctx,
		modelName.String(),
		[]*genai.Content{{Parts: parts}},
		config,
	)
	if err != nil {
		fmt.Println("Error on GenerateContent:", err)
		sentry.CaptureException(err)
		return nil, err
	}
	if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
		err := fmt.Errorf("prompt blocked by safety filters: %s", result.PromptFeedback.BlockReason)
		sentry.CaptureException(err)
		return nil, err
	}

	response := &LLMResponse{
		Response: result.Text(),
		Images:   GetAllInlineImages(result),
	}
	if result.UsageMetadata != nil {
		response.InputTokenCount = result.UsageMetadata.PromptTokenCount
		response.OutputTokenCount = result.UsageMetadata.CandidatesTokenCount
		response.TotalTokenCount = result.UsageMetadata.TotalTokenCount
		fmt.Printf(
			"[LLM %s] tokens in: %v out: %v total: %v\n",
			modelName.String(),
			result.UsageMetadata.PromptTokenCount,
			result.UsageMetadata.CandidatesTokenCount,
			result.UsageMetadata.TotalTokenCount,
		)
	}
	return response, nil
}

func (s *GoogleLLMService) AnalyzeImage(ctx context.Context, prompt string, imageBase64 string, modelName LLMModelName) (*LLMResponse, error) {
	mimeType, imageBytes, err := DecodeImagePayload(imageBase64)
	if err != nil {
		return nil, err
	}
	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: mimeType, Data: imageBytes}},
		{Text: prompt},
	}
	return s.generate(ctx, parts, modelName, 8192, true)
}

func (s *GoogleLLMService) Complete(ctx context.Context, prompt string, modelName LLMModelName) (*LLMResponse, error) {
	parts := []*genai.Part{{Text: prompt}}
	return s.generate(ctx, parts, modelName, 8192, true)
}

func (s *GoogleLLMService) GenerateImage(ctx context.Context, prompt string, modelName LLMModelName) (*LLMResponse, error) {
	parts := []*genai.Part{{Text: prompt}}
	return s.generate(ctx, parts, modelName, 8192, false)
}
