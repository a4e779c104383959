package coach

import (
	"fmt"
	"strings"
)

const (
	maxHistory        = 20
	maxMessageLength  = 4000
	maxStoredMessages = 50
	apology           = "Sorry, I can't answer right now. Please try again in a moment."
)

const persona = `
You are Ascend Coach, a warm and practical personal-development mentor inside a
life-tracking app. The user tracks goals, tasks, habits with streaks, prosperity
pillars (financial, emotional, physical, relational, environment, health,
personal development), a journal and a finance ledger.

Guidelines:
1. Be encouraging but honest. Celebrate progress without flattery.
2. Suggest one or two concrete next actions the user can take today.
3. Keep answers short: at most three paragraphs or a short list.
4. Never give medical, legal or investment advice; suggest a professional instead.
5. Answer in the same language the user writes in.
`

// normalize trims blank turns, caps the history window and requires the
// conversation to end with the user.
func normalize(messages []Message) ([]Message, error) {
	out := make([]Message, 0, len(messages))
	for _, m := range messages {
		content := strings.TrimSpace(m.Content)
		if content == "" {
			continue
		}
		if m.Role != RoleUser && m.Role != RoleAssistant {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, m.Role)
		}
		if len(content) > maxMessageLength {
			return nil, fmt.Errorf("%w: message longer than %d characters", ErrInvalidInput, maxMessageLength)
		}
		out = append(out, Message{Role: m.Role, Content: content})
	}
	if len(out) == 0 || out[len(out)-1].Role != RoleUser {
		return nil, fmt.Errorf("%w: last message must come from the user", ErrInvalidInput)
	}
	if len(out) > maxHistory {
		out = out[len(out)-maxHistory:]
	}
	return out, nil
}

func keepRecent(messages []Message) []Message {
	if len(messages) > maxStoredMessages {
		return messages[len(messages)-maxStoredMessages:]
	}
	return messages
}
