package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnalysis_PlainJSON(t *testing.T) {
	res, err := NewParser().ParseAnalysis(`{"summary":"Team synced on launch.","action_items":["Ship v2"],"topics":["launch","hiring"]}`)
	require.NoError(t, err)

	assert.Equal(t, "Team synced on launch.", res.Summary)
	assert.Equal(t, []string{"Ship v2"}, res.ActionItems)
	assert.Equal(t, []string{"launch", "hiring"}, res.Topics)
	assert.False(t, res.Degraded)
}

func TestParseAnalysis_Fenced(t *testing.T) {
	cases := map[string]string{
		"json fence":    "```json\n{\"summary\":\"s\",\"action_items\":[],\"topics\":[]}\n```",
		"bare fence":    "```\n{\"summary\":\"s\",\"action_items\":[],\"topics\":[]}\n```",
		"leading space": "  \n```json{\"summary\":\"s\"}```  ",
		"open only":     "```json\n{\"summary\":\"s\"}",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := NewParser().ParseAnalysis(input)
			require.NoError(t, err)
			assert.Equal(t, "s", res.Summary)
			assert.NotNil(t, res.ActionItems)
			assert.NotNil(t, res.Topics)
		})
	}
}

func TestParseAnalysis_CleansItems(t *testing.T) {
	res, err := NewParser().ParseAnalysis(`{"summary":" s ","action_items":["  a ",""," "],"topics":null}`)
	require.NoError(t, err)

	assert.Equal(t, "s", res.Summary)
	assert.Equal(t, []string{"a"}, res.ActionItems)
	assert.Equal(t, []string{}, res.Topics)
}

func TestParseAnalysis_Invalid(t *testing.T) {
	_, err := NewParser().ParseAnalysis("Here is your summary: the team met.")
	assert.ErrorContains(t, err, "failed to parse JSON response")

	_, err = NewParser().ParseAnalysis(`{"action_items":["a"]}`)
	assert.EqualError(t, err, "missing summary in response")

	_, err = NewParser().ParseAnalysis(`{"summary":"s","action_items":[{"title":"a"}]}`)
	assert.Error(t, err)
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Alice: hello")
	assert.Contains(t, prompt, "Alice: hello")
	assert.Contains(t, prompt, `"action_items"`)
	assert.Contains(t, prompt, "2-3 sentences")
}
