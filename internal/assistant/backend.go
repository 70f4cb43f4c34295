package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/civiltoolbox/toolbox/internal/config"
)

// NewBackend builds the backend named by cfg.Provider. On error the
// returned Backend is a true nil interface.
func NewBackend(ctx context.Context, cfg config.AssistantConfig) (Backend, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "gemini", "genai", "google":
		b, err := NewGenAIBackend(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return b, nil
	case "openai":
		model := cfg.Model
		if model == DefaultGenAIModel {
			model = ""
		}
		b, err := NewOpenAIBackend(cfg.APIKey, cfg.BaseURL, model)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown assistant provider %q", cfg.Provider)
	}
}
