package analysis

import "fmt"

const promptTemplate = `Analyze this call transcript and extract:
1. A brief summary (2-3 sentences)
2. Action items (as a list)
3. Key topics discussed (as a list)

Transcript:
%s

Respond with a single JSON object and nothing else:
{"summary": "...", "action_items": ["..."], "topics": ["..."]}`

// BuildPrompt renders the fixed instruction template around a transcript
func BuildPrompt(transcript string) string {
	return fmt.Sprintf(promptTemplate, transcript)
}
