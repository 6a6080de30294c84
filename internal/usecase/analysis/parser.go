package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/johnquangdev/fathom-relay/internal/domain/entities"
)

// Parser handles parsing and validation of provider responses
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ParseAnalysis parses the provider text into an AnalysisResult. Markdown
// code fences around the JSON object are removed first.
func (p *Parser) ParseAnalysis(content string) (entities.AnalysisResult, error) {
	content = extractJSON(content)

	var result entities.AnalysisResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return entities.AnalysisResult{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	result.Summary = strings.TrimSpace(result.Summary)
	if result.Summary == "" {
		return entities.AnalysisResult{}, fmt.Errorf("missing summary in response")
	}

	result.ActionItems = cleanItems(result.ActionItems)
	result.Topics = cleanItems(result.Topics)

	return result.Normalize(), nil
}

// cleanItems trims entries and drops empty ones
func cleanItems(items []string) []string {
	return lo.Compact(lo.Map(items, func(item string, _ int) string {
		return strings.TrimSpace(item)
	}))
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	content = strings.TrimSpace(content)
	content = strings.TrimSuffix(content, "```")

	return strings.TrimSpace(content)
}
