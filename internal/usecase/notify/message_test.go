package notify

import (
	"encoding/json"
	"strings"
	"testing"

	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/fathom-relay/internal/domain/entities"
)

func sampleCall() entities.CallEvent {
	return entities.CallEvent{
		Event:           entities.EventCallCompleted,
		CallID:          "c1",
		Title:           "Sync",
		Date:            "2024-01-02",
		DurationSeconds: 125,
		Participants:    []string{"A", "B"},
	}
}

func TestBuildMessage_Layout(t *testing.T) {
	msg := BuildMessage(sampleCall(), entities.AnalysisResult{
		Summary:     "Weekly sync.",
		ActionItems: []string{"Ship v2", "Hire"},
		Topics:      []string{"launch", "hiring"},
	})

	assert.Equal(t, "New call analyzed: Sync", msg.Text)
	require.Len(t, msg.Blocks, 6)
	assert.Equal(t, slackapi.MBTHeader, msg.Blocks[0].BlockType())
	assert.Equal(t, slackapi.MBTSection, msg.Blocks[1].BlockType())
	assert.Equal(t, slackapi.MBTDivider, msg.Blocks[2].BlockType())

	raw, err := json.Marshal(msg.Blocks)
	require.NoError(t, err)
	body := string(raw)
	assert.Contains(t, body, "📞 Sync")
	assert.Contains(t, body, `*Event:*\ncall.completed`)
	assert.Contains(t, body, `*Duration:*\n2 min (125s)`)
	assert.Contains(t, body, `*Participants:*\nA, B`)
	assert.Contains(t, body, `*Call ID:*\nc1`)
	assert.Contains(t, body, `*Action Items*\n• Ship v2\n• Hire`)
	assert.Contains(t, body, `*Topics*\nlaunch, hiring`)
}

func TestBuildMessage_EmptyListsRenderNone(t *testing.T) {
	call := sampleCall()
	call.Participants = nil

	msg := BuildMessage(call, entities.DegradedAnalysis("No analysis provider configured"))

	raw, err := json.Marshal(msg.Blocks)
	require.NoError(t, err)
	body := string(raw)
	assert.Contains(t, body, `*Action Items*\nNone`)
	assert.Contains(t, body, `*Topics*\nNone`)
	assert.Contains(t, body, `*Participants:*\nNone`)
	assert.Contains(t, body, `*Summary*\nNo analysis provider configured`)
}

func TestBuildMessage_TruncatesHeader(t *testing.T) {
	call := sampleCall()
	call.Title = strings.Repeat("x", 400)

	msg := BuildMessage(call, entities.DegradedAnalysis("n/a"))

	header, ok := msg.Blocks[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Equal(t, maxHeaderRunes, len([]rune(header.Text.Text)))
}
