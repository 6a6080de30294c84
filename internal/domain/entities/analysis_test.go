package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDegradedAnalysis_EncodesEmptyLists(t *testing.T) {
	res := DegradedAnalysis("No analysis provider configured")
	assert.True(t, res.Degraded)

	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"summary":"No analysis provider configured","action_items":[],"topics":[]}`, string(b))
}

func TestAnalysisResult_Normalize(t *testing.T) {
	res := AnalysisResult{Summary: "ok"}.Normalize()
	assert.NotNil(t, res.ActionItems)
	assert.NotNil(t, res.Topics)
	assert.False(t, res.Degraded)
}

func TestCallEvent_DurationMinutes(t *testing.T) {
	assert.Equal(t, 2, CallEvent{DurationSeconds: 125}.DurationMinutes())
	assert.Equal(t, 0, CallEvent{}.DurationMinutes())
}
