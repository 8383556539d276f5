package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const modelName = "gemini-2.0-flash-001"

// AuditInput carries listing text and the primary image for the audit oracle.
type AuditInput struct {
	Title       string
	Description string
	Category    string
	Quality     string
	ImageData   string // data URL or raw base64
}

// AuditVerdict is the oracle's structured audit result.
type AuditVerdict struct {
	IsVerified bool    `json:"is_verified"`
	Notes      string  `json:"notes"`
	Confidence float64 `json:"confidence"`
}

// CategorySuggestion is the oracle's structured category result.
type CategorySuggestion struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// Assistant is the generative oracle boundary. It is untrusted and possibly
// unavailable; callers degrade gracefully on any error.
type Assistant interface {
	AuditListing(ctx context.Context, in AuditInput) (*AuditVerdict, error)
	SuggestCategory(ctx context.Context, imageData string) (*CategorySuggestion, error)
}

var categories = []string{"Plastic", "Metal", "Paper", "Organic", "Electronic", "Glass", "Textile", "Other"}

// Gemini implements Assistant with structured JSON responses.
type Gemini struct {
	audit   *genai.GenerativeModel
	suggest *genai.GenerativeModel
}

func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	audit := client.GenerativeModel(modelName)
	audit.ResponseMIMEType = "application/json"
	audit.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"is_verified": {Type: genai.TypeBoolean, Description: "Whether the listing is verified as accurate and compliant."},
			"notes":       {Type: genai.TypeString, Description: "Audit notes explaining the verification status."},
			"confidence":  {Type: genai.TypeNumber, Description: "Confidence score between 0 and 1."},
		},
		Required: []string{"is_verified", "notes", "confidence"},
	}

	suggest := client.GenerativeModel(modelName)
	suggest.ResponseMIMEType = "application/json"
	suggest.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"category":   {Type: genai.TypeString, Enum: categories, Description: "The suggested category for the waste material."},
			"confidence": {Type: genai.TypeNumber, Description: "Confidence score between 0 and 1."},
			"reasoning":  {Type: genai.TypeString, Description: "Brief explanation for the choice."},
		},
		Required: []string{"category"},
	}

	return &Gemini{audit: audit, suggest: suggest}, nil
}

func (g *Gemini) AuditListing(ctx context.Context, in AuditInput) (*AuditVerdict, error) {
	img, err := decodeImage(in.ImageData)
	if err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(`Act as a marketplace auditor. Analyze this waste material listing:
Title: %s
Description: %s
Category: %s
Quality: %s

Check for:
1. Accuracy: Does description and image match the category?
2. Compliance: Is it prohibited (hazardous, illegal, or non-waste)?
3. Quality: Is the description and image quality sufficient for a buyer?

Return the result in JSON format.`, in.Title, in.Description, in.Category, in.Quality)

	var verdict AuditVerdict
	if err := g.generate(ctx, g.audit, prompt, img, &verdict); err != nil {
		return nil, err
	}
	return &verdict, nil
}

func (g *Gemini) SuggestCategory(ctx context.Context, imageData string) (*CategorySuggestion, error) {
	img, err := decodeImage(imageData)
	if err != nil {
		return nil, err
	}
	prompt := "Analyze this image of waste material and suggest the most appropriate primary category from the provided list. Return the result in JSON format."

	var suggestion CategorySuggestion
	if err := g.generate(ctx, g.suggest, prompt, img, &suggestion); err != nil {
		return nil, err
	}
	if suggestion.Category == "" {
		suggestion.Category = "Other"
	}
	return &suggestion, nil
}

func (g *Gemini) generate(ctx context.Context, model *genai.GenerativeModel, prompt string, img genai.Part, out interface{}) error {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt), img)
	if err != nil {
		return err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("empty response from model")
	}
	txt, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return fmt.Errorf("unexpected response part type")
	}
	if err := json.Unmarshal([]byte(txt), out); err != nil {
		return fmt.Errorf("parse model response: %w", err)
	}
	return nil
}

// decodeImage accepts a data URL ("data:image/jpeg;base64,...") or a bare
// base64 payload.
func decodeImage(data string) (genai.Part, error) {
	payload := data
	if idx := strings.Index(payload, ","); strings.HasPrefix(payload, "data:") && idx >= 0 {
		payload = payload[idx+1:]
	}
	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode image data: %w", err)
	}
	return genai.ImageData("jpeg", b), nil
}
