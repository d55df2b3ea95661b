// Package summarize turns a full meeting transcript into structured
// meeting minutes using a chat-completion model.
package summarize

import "context"

// systemPrompt frames the model as a minutes writer.
const systemPrompt = "You are an expert at summarizing meeting minutes. " +
	"You organize information so it is structured, concise, and the key points are immediately clear."

// userPromptHeader precedes the transcript in the user message.
const userPromptHeader = `The following is a transcript of a meeting. Create meeting minutes that capture the important points.
The minutes must include:
1. The main agenda of the meeting
2. The key points that were discussed
3. Decisions that were made
4. Action items (with owner and deadline where stated)
5. Follow-up items for the next meeting (if any)

Format:
- Concise and clear
- Bullet points
- Substantive meeting content only

Transcript:
`

// Summarizer produces meeting minutes from a raw transcript.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}
