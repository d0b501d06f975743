// Package interview implements the scripted practice-interview engine.
// It is the deterministic substitute used when no live conversational
// agent is available: a fixed six-question script with canned
// acknowledgments, driven entirely by the caller-supplied transcript.
package interview

import (
	"fmt"
	"strings"
)

// DefaultRoleTitle is substituted into question templates when the caller
// does not supply a role title.
const DefaultRoleTitle = "this role"

// questionTemplates holds the fixed interview script. Order matters:
// callers derive progress from how many of these have already been asked,
// so inserting or reordering questions changes the meaning of an existing
// transcript. %[1]s is the role name, %[2]s the optional company suffix.
var questionTemplates = []string{
	"To start us off, can you give me a brief overview of your background and what interests you about %[1]s%[2]s?",
	"Looking back over your recent experience, which role or project has best prepared you for %[1]s, and why?",
	"Thinking about %[1]s, what is one accomplishment you are most proud of that you would highlight for this opportunity?",
	"Can you describe a time you had to learn a new skill quickly in order to succeed in your work? What did you do and what was the outcome?",
	"Tell me about a challenging situation with a teammate or stakeholder. How did you handle it and what did you learn?",
	"Imagine you are starting in %[1]s%[2]s. What would you focus on in your first 60 to 90 days?",
}

// QuestionCount is the length of the fixed script.
const QuestionCount = 6

// Questions renders the full script with the role title and company
// substituted. An empty role title falls back to DefaultRoleTitle; an
// empty company drops the " at {company}" suffix entirely.
func Questions(roleTitle, company string) []string {
	role := roleTitle
	if role == "" {
		role = DefaultRoleTitle
	}
	companySuffix := ""
	if company != "" {
		companySuffix = " at " + company
	}

	questions := make([]string, len(questionTemplates))
	for i, tmpl := range questionTemplates {
		if !strings.Contains(tmpl, "%[") {
			questions[i] = tmpl
			continue
		}
		questions[i] = fmt.Sprintf(tmpl, role, companySuffix)
	}
	return questions
}

// genericAcknowledgments are used when the candidate's answer is empty or
// matches none of the keyword groups.
var genericAcknowledgments = []string{
	"Thanks for walking me through that.",
	"I appreciate that context.",
	"That gives me a good sense of your experience.",
	"That is helpful background.",
}

// acknowledgmentGroup pairs a set of trigger keywords with two equivalent
// phrasings of a themed acknowledgment.
type acknowledgmentGroup struct {
	keywords []string
	options  []string
}

// acknowledgmentGroups are checked in order; the first group with a
// matching keyword wins, so teamwork outranks delivery, and so on.
var acknowledgmentGroups = []acknowledgmentGroup{
	{
		keywords: []string{"team", "collaborat", "stakeholder"},
		options: []string{
			"It sounds like collaboration and working with others have been important in your work.",
			"It seems like you have had to navigate a lot of teamwork and stakeholder communication.",
		},
	},
	{
		keywords: []string{"deadline", "launch", "ship", "deliverable", "timeline"},
		options: []string{
			"It sounds like you have been close to important launches and delivery timelines.",
			"It seems like owning deadlines and outcomes has been a big part of your work.",
		},
	},
	{
		keywords: []string{"learn", "learning", "new skill", "picked up"},
		options: []string{
			"It sounds like you put real effort into learning and picking up new skills.",
			"It seems like continuous learning has been a theme in your experience.",
		},
	},
	{
		keywords: []string{"conflict", "difficult", "challenge"},
		options: []string{
			"It sounds like you have had to work through some challenging situations.",
			"It seems like you have real experience handling difficult situations professionally.",
		},
	},
}

// Acknowledge returns one short sentence reacting to the candidate's last
// answer, selected by plain case-insensitive substring matching against
// the keyword groups. This is a best-effort heuristic, not NLU: it will
// happily match "team" inside "teamster". turnIndex rotates among the
// equivalent phrasings so repeated answers on the same theme do not always
// produce identical text.
func Acknowledge(answer string, turnIndex int) string {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return genericAcknowledgments[turnIndex%len(genericAcknowledgments)]
	}

	lower := strings.ToLower(trimmed)
	for _, group := range acknowledgmentGroups {
		for _, keyword := range group.keywords {
			if strings.Contains(lower, keyword) {
				return group.options[turnIndex%len(group.options)]
			}
		}
	}

	return genericAcknowledgments[turnIndex%len(genericAcknowledgments)]
}
