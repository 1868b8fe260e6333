// Package summary compacts campaign documents that have grown through
// repeated narrative updates.
package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/chronicle/internal/core/common"
	"github.com/agenthands/chronicle/internal/llm"
)

// ChunkSize is the largest piece of a document sent to the model at once.
const ChunkSize = 16000

type documentSummary struct {
	Summary string `json:"summary"`
}

type Summarizer struct {
	LLM    llm.LLMClient
	Prompt string
}

func NewSummarizer(llmClient llm.LLMClient, prompt string) *Summarizer {
	return &Summarizer{
		LLM:    llmClient,
		Prompt: prompt,
	}
}

// CompactDocument asks the model to rewrite a document more tightly. Long
// documents are split at header lines and compacted piece by piece.
func (s *Summarizer) CompactDocument(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	chunks := splitAtHeaders(text, ChunkSize)
	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		compacted, err := s.compact(ctx, chunk)
		if err != nil {
			return "", err
		}
		parts = append(parts, strings.TrimRight(compacted, "\n"))
	}
	return strings.Join(parts, "\n\n") + "\n", nil
}

func (s *Summarizer) compact(ctx context.Context, text string) (string, error) {
	response, err := s.LLM.Generate(ctx, "", fmt.Sprintf(s.Prompt, text))
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}

	result, err := common.ParseJSON[documentSummary](response)
	if err == nil && strings.TrimSpace(result.Summary) != "" {
		return result.Summary, nil
	}
	// Some models answer with the document itself.
	if raw := strings.TrimSpace(response); strings.HasPrefix(raw, "#") {
		return raw, nil
	}
	return "", fmt.Errorf("failed to parse summary result: no summary in response")
}

// splitAtHeaders cuts text into pieces of at most max bytes, breaking only
// before lines that start with '#'. A single section longer than max stays
// whole.
func splitAtHeaders(text string, max int) []string {
	if len(text) <= max {
		return []string{text}
	}

	var sections []string
	var sec strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		if strings.HasPrefix(line, "#") && sec.Len() > 0 {
			sections = append(sections, sec.String())
			sec.Reset()
		}
		sec.WriteString(line)
	}
	if sec.Len() > 0 {
		sections = append(sections, sec.String())
	}

	var chunks []string
	var cur strings.Builder
	for _, section := range sections {
		if cur.Len() > 0 && cur.Len()+len(section) > max {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
		cur.WriteString(section)
	}
	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}
