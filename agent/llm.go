package main

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/prompts"

	"github.com/hydropure/water-assistant/config"
)

var promptVariables = []string{"history", "question", "info", "education_info", "context_analysis"}

// chainCompleter runs the consultant prompt through an OpenAI-compatible
// chat endpoint (Groq in production).
type chainCompleter struct {
	chain *chains.LLMChain
}

func newGroqCompleter(cfg config.Groq) (*chainCompleter, error) {
	llm, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("create groq client: %w", err)
	}

	template := prompts.NewPromptTemplate(consultantPromptTemplate, promptVariables)

	return &chainCompleter{chain: chains.NewLLMChain(llm, template)}, nil
}

func (c *chainCompleter) Complete(ctx context.Context, vars map[string]any) (string, error) {
	return chains.Predict(ctx, c.chain, vars, chains.WithTemperature(0.7))
}
