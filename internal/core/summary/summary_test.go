package summary

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockLLMClient struct {
	Response string
	Err      error
	Calls    int
}

func (m *MockLLMClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func TestCompactDocument(t *testing.T) {
	mockLLM := &MockLLMClient{
		Response: `{"summary": "# NPCs\n- Tom: barkeep, lies about the locket"}`,
	}
	s := NewSummarizer(mockLLM, "compact: %s")

	out, err := s.CompactDocument(context.Background(), "# NPCs\n- Tom\n- Tom is a barkeep\n- Tom lied\n")
	require.NoError(t, err)
	assert.Equal(t, "# NPCs\n- Tom: barkeep, lies about the locket\n", out)
	assert.Equal(t, 1, mockLLM.Calls)
}

func TestCompactDocumentRawMarkdownFallback(t *testing.T) {
	s := NewSummarizer(&MockLLMClient{Response: "# Current Arc\nShort."}, "%s")
	out, err := s.CompactDocument(context.Background(), "# Current Arc\nLong.")
	require.NoError(t, err)
	assert.Equal(t, "# Current Arc\nShort.\n", out)

	s = NewSummarizer(&MockLLMClient{Response: "I can't do that."}, "%s")
	_, err = s.CompactDocument(context.Background(), "# Current Arc\nLong.")
	assert.Error(t, err)
}

func TestCompactDocumentErrors(t *testing.T) {
	mockLLM := &MockLLMClient{Err: errors.New("timeout")}
	s := NewSummarizer(mockLLM, "%s")

	_, err := s.CompactDocument(context.Background(), "# A\nx")
	assert.ErrorContains(t, err, "timeout")

	out, err := s.CompactDocument(context.Background(), "  \n")
	require.NoError(t, err)
	assert.Equal(t, "  \n", out)
	assert.Equal(t, 1, mockLLM.Calls, "blank documents are not sent")
}

func TestSplitAtHeaders(t *testing.T) {
	section := "# S\n" + strings.Repeat("x", 40) + "\n"
	text := strings.Repeat(section, 5)

	chunks := splitAtHeaders(text, 100)
	require.Len(t, chunks, 3)
	assert.Equal(t, text, strings.Join(chunks, ""))
	for _, c := range chunks {
		assert.True(t, strings.HasPrefix(c, "# S"))
	}

	assert.Equal(t, []string{"short"}, splitAtHeaders("short", 100))
}
