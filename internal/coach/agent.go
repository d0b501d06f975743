package coach

import (
	"context"
	"strings"

	"github.com/jbsdesign/InterviewPrepCoach/internal/db"
	"github.com/jbsdesign/InterviewPrepCoach/internal/interview"
	"github.com/jbsdesign/InterviewPrepCoach/internal/llm"
)

// Only the most recent turns are sent to the model on each request.
const historyWindow = 8

// Agent runs practice interview sessions. When an LLM client is configured it
// drives a free-form interview; otherwise, or when the provider is out of
// quota, it falls back to the deterministic scripted interview.
type Agent struct {
	llm llm.Client
}

// NewAgent builds an agent. client may be nil, in which case every session
// uses the scripted interview flow.
func NewAgent(client llm.Client) *Agent {
	return &Agent{llm: client}
}

// Reply produces the interviewer's next message for the given session state.
// profile may be nil when the caller has no stored profile for the user.
func (a *Agent) Reply(ctx context.Context, ic interview.Context, history []interview.Turn, profile *db.UserProfile) (string, error) {
	if a.llm == nil {
		return interview.Reply(ic, history), nil
	}

	messages := make([]llm.Message, 0, historyWindow+2)
	messages = append(messages, llm.Message{
		Role:    llm.RoleSystem,
		Content: interviewerPrompt(ic.RoleTitle, ic.Company, profile),
	})

	windowed := history
	if len(windowed) > historyWindow {
		windowed = windowed[len(windowed)-historyWindow:]
	}
	for _, turn := range windowed {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}

	if msg := strings.TrimSpace(ic.Message); msg != "" {
		messages = append(messages, llm.Message{Role: llm.RoleUser, Content: msg})
	}

	reply, err := a.llm.Generate(ctx, messages)
	if err != nil {
		if llm.IsQuotaExceeded(err) {
			return interview.Reply(ic, history), nil
		}
		return "", err
	}

	return reply, nil
}
