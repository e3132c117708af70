// Package gemini implements the scan pipeline's external providers, text
// recognition from images and text translation, on top of Google's Gemini
// API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/dstreit/einbuerger-api/internal/config"
)

// Provider errors.
var (
	// ErrInvalidConfig is returned when the Gemini configuration is unusable.
	ErrInvalidConfig = errors.New("invalid gemini configuration")

	// ErrEmptyInput is returned when there is nothing to recognize or
	// translate.
	ErrEmptyInput = errors.New("empty input")

	// ErrEmptyResponse is returned when the model produced no usable text.
	ErrEmptyResponse = errors.New("empty model response")
)

const recognizePrompt = "Extract the German text from this image. " +
	"Return only the extracted text, without commentary or formatting."

const translatePromptFormat = "Translate the following text from %s to %s. " +
	"Return only the translation, without commentary.\n\n%s"

// Client talks to the Gemini API and implements both scan providers:
// scan.TextRecognizer and scan.Translator.
type Client struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// NewClient creates a Gemini-backed provider client from the given
// configuration. Returns ErrInvalidConfig when the API key or model name is
// missing.
func NewClient(ctx context.Context, cfg config.GeminiConfig, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key cannot be empty", ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create client: %v", ErrInvalidConfig, err)
	}

	return &Client{
		client: client,
		model:  cfg.Model,
		logger: logger.With(slog.String("component", "gemini_client")),
	}, nil
}

// RecognizeText extracts German text from an image. Returns an empty string
// with no error when the model finds no text in the image.
func (c *Client) RecognizeText(ctx context.Context, image []byte, mimeType string) (string, error) {
	if len(image) == 0 {
		return "", ErrEmptyInput
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, mimeType),
			genai.NewPartFromText(recognizePrompt),
		}, genai.RoleUser),
	}

	c.logger.DebugContext(ctx, "calling gemini for text recognition",
		slog.Int("image_bytes", len(image)),
		slog.String("mime_type", mimeType))

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		c.logger.ErrorContext(ctx, "gemini recognition call failed",
			slog.String("error", err.Error()))
		return "", fmt.Errorf("gemini recognition failed: %w", err)
	}

	return strings.TrimSpace(resp.Text()), nil
}

// Translate translates text between the given language codes.
func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}

	prompt := fmt.Sprintf(translatePromptFormat, sourceLang, targetLang, text)
	contents := genai.Text(prompt)

	c.logger.DebugContext(ctx, "calling gemini for translation",
		slog.Int("text_length", len(text)),
		slog.String("source_lang", sourceLang),
		slog.String("target_lang", targetLang))

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		c.logger.ErrorContext(ctx, "gemini translation call failed",
			slog.String("error", err.Error()))
		return "", fmt.Errorf("gemini translation failed: %w", err)
	}

	translated := strings.TrimSpace(resp.Text())
	if translated == "" {
		return "", ErrEmptyResponse
	}
	return translated, nil
}
