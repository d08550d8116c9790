package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/KeshavMannem/Trip-Planner/internal/metrics"
)

// LLMFailureMessage is what users see when the local model cannot answer.
// Terminal degradation, never retried.
const LLMFailureMessage = "Failed to get LLM response."

type LLMRunner interface {
	Run(ctx context.Context, prompt string) (string, error)
}

// OllamaRunner invokes `ollama run <model>` with the prompt on stdin and
// reads the generated text from stdout. One process per call, reaped by
// Run on every path.
type OllamaRunner struct {
	model string
}

func NewOllamaRunner(model string) *OllamaRunner {
	return &OllamaRunner{model: model}
}

func (r *OllamaRunner) Run(ctx context.Context, prompt string) (string, error) {
	cmd := exec.CommandContext(ctx, "ollama", "run", r.model)
	cmd.Stdin = strings.NewReader(prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ollama run failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}

// Summarizer turns retrieved documents plus the user's question into a
// grounding prompt and asks the local model for the final answer.
type Summarizer struct {
	runner LLMRunner
}

func NewSummarizer(runner LLMRunner) *Summarizer {
	return &Summarizer{runner: runner}
}

// Summarize never invokes the model with empty context: no documents means
// the pipeline already knows there is nothing to say.
func (s *Summarizer) Summarize(ctx context.Context, query Query, documents []string) string {
	if len(documents) == 0 {
		return NoDataMessage(query)
	}

	prompt := BuildPrompt(query.RawText, documents)

	start := time.Now()
	answer, err := s.runner.Run(ctx, prompt)
	if err != nil {
		slog.Error("LLM invocation failed", slog.String("error", err.Error()))
		metrics.LLMCalls.WithLabelValues("error").Inc()
		return LLMFailureMessage
	}

	metrics.LLMCalls.WithLabelValues("success").Inc()
	metrics.LLMCallDuration.Observe(time.Since(start).Seconds())

	return strings.TrimSpace(answer)
}

// BuildPrompt assembles the grounding prompt: instruction, documents in
// retrieval order, the literal question, and the answer cue. The layout is
// fixed; stored documents are shown to the model verbatim.
func BuildPrompt(question string, documents []string) string {
	return fmt.Sprintf(
		"Using the following travel data, answer the question briefly:\n\n%s\n\nQuestion: %s\nAnswer:",
		strings.Join(documents, "\n"), question)
}

// NoDataMessage is the fixed per-kind "nothing found" answer.
func NoDataMessage(query Query) string {
	switch query.Kind {
	case QueryFlight:
		return "No flights found for this route."
	case QueryHotel:
		return "No hotels found for this location."
	default:
		return "Could not detect a location in your question."
	}
}
