package notify

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	slackapi "github.com/slack-go/slack"

	"github.com/johnquangdev/fathom-relay/internal/domain/entities"
	"github.com/johnquangdev/fathom-relay/internal/infrastructure/external/slack"
)

// Block Kit limits
const (
	maxHeaderRunes  = 150
	maxSectionRunes = 3000
)

const emptyList = "None"

// BuildMessage renders a call and its analysis as a Slack message: a header
// with the title, a field section with call facts, then summary, action
// items and topics.
func BuildMessage(call entities.CallEvent, analysis entities.AnalysisResult) slack.Message {
	header := slackapi.NewHeaderBlock(
		slackapi.NewTextBlockObject(slackapi.PlainTextType, truncate("📞 "+call.Title, maxHeaderRunes), true, false),
	)

	fields := []*slackapi.TextBlockObject{
		mrkdwn(fmt.Sprintf("*Event:*\n%s", orDefault(call.Event, "N/A"))),
		mrkdwn(fmt.Sprintf("*Date:*\n%s", call.Date)),
		mrkdwn(fmt.Sprintf("*Duration:*\n%s", formatDuration(call.DurationSeconds))),
		mrkdwn(fmt.Sprintf("*Participants:*\n%s", joinOrNone(call.Participants, ", "))),
		mrkdwn(fmt.Sprintf("*Call ID:*\n%s", call.CallID)),
	}

	blocks := []slackapi.Block{
		header,
		slackapi.NewSectionBlock(nil, fields, nil),
		slackapi.NewDividerBlock(),
		textSection("*Summary*\n" + orDefault(analysis.Summary, "N/A")),
		textSection("*Action Items*\n" + bullets(analysis.ActionItems)),
		textSection("*Topics*\n" + joinOrNone(analysis.Topics, ", ")),
	}

	return slack.Message{
		Text:   fmt.Sprintf("New call analyzed: %s", call.Title),
		Blocks: blocks,
	}
}

func mrkdwn(text string) *slackapi.TextBlockObject {
	return slackapi.NewTextBlockObject(slackapi.MarkdownType, text, false, false)
}

func textSection(text string) *slackapi.SectionBlock {
	return slackapi.NewSectionBlock(mrkdwn(truncate(text, maxSectionRunes)), nil, nil)
}

func bullets(items []string) string {
	if len(items) == 0 {
		return emptyList
	}
	return strings.Join(lo.Map(items, func(item string, _ int) string {
		return "• " + item
	}), "\n")
}

func joinOrNone(items []string, sep string) string {
	if len(items) == 0 {
		return emptyList
	}
	return strings.Join(items, sep)
}

func formatDuration(seconds int) string {
	return fmt.Sprintf("%d min (%ds)", seconds/60, seconds)
}

func orDefault(s, def string) string {
	return lo.Ternary(strings.TrimSpace(s) == "", def, s)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
