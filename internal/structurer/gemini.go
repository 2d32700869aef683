package structurer

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"google.golang.org/genai"
)

const (
	// DefaultModelName is the Gemini model used for structuring.
	DefaultModelName = "gemini-2.5-flash"

	// maxInputChars caps the document text submitted to the model.
	// Statements longer than this lose their tail; a deliberate
	// model-context budget, not a bug.
	maxInputChars = 12000
)

// GeminiStructurer is the concrete Structurer backed by Gemini.
type GeminiStructurer struct {
	client *genai.Client
	model  string
}

// NewGeminiStructurer creates a Gemini-backed structurer. apiKey must be
// non-empty; its absence is a fatal startup condition checked by the
// caller.
func NewGeminiStructurer(ctx context.Context, apiKey string) (*GeminiStructurer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("NewGeminiStructurer: create genai client: %w", err)
	}
	return &GeminiStructurer{client: client, model: DefaultModelName}, nil
}

// Structure implements the Structurer interface. It submits a capped
// prefix of text together with the extraction instructions and parses
// the model's JSON reply into candidates.
func (g *GeminiStructurer) Structure(ctx context.Context, text string) (*Result, error) {
	today := time.Now().Format("2006-01-02")

	config := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](0),
		ResponseMIMEType:  "application/json",
		SystemInstruction: genai.NewContentFromText(systemPrompt(today), genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(truncate(text, maxInputChars)), config)
	if err != nil {
		return nil, fmt.Errorf("structurer.Structure: generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, fmt.Errorf("structurer.Structure: empty response from model")
	}

	result, err := ParseResponse(rawText)
	if err != nil {
		return nil, fmt.Errorf("structurer.Structure: %w", err)
	}
	return result, nil
}

// systemPrompt builds the fixed extraction instructions: required
// fields, ISO currency mandate, sign convention and the default-date
// fallback for the current day.
func systemPrompt(today string) string {
	return "Role: Senior Financial Auditor. Extract ALL transactions. " +
		"Return a JSON object with a key 'transactions' containing a list of objects. " +
		"MANDATORY: Use 3-letter ISO currency codes (USD, EUR, PLN). " +
		"If date missing, use " + today + ". " +
		"Logic: Expenses=NEGATIVE, Income=POSITIVE. " +
		"Fields: vendor_name, date, amount, currency, category, description."
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
