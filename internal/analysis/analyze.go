// Package analysis extracts structured insight from raw meeting
// transcripts: action items, concerns, decisions, a call briefing and
// management coaching. Everything here is keyword heuristics over plain
// text. No I/O, no model calls.
package analysis

import (
	"fmt"
	"strings"
)

// ActionItem is a transcript line that commits somebody to doing something.
type ActionItem struct {
	Content  string `json:"content"`
	Assignee string `json:"assignee"`
}

// Concern is a transcript line flagging a risk or problem, graded by severity.
type Concern struct {
	Content  string `json:"content"`
	Severity string `json:"severity"`
}

// Briefing is the at-a-glance summary of a call.
type Briefing struct {
	Title            string   `json:"title"`
	Participants     []string `json:"participants"`
	DurationEstimate string   `json:"duration_estimate"`
	KeyTopics        []string `json:"key_topics"`
	Sentiment        string   `json:"sentiment"`
	Summary          string   `json:"summary"`
}

// Result is the complete analysis of one transcript. Action items are
// split by assignee so the manager's own follow-ups stand apart from
// work delegated to participants.
type Result struct {
	Briefing           Briefing     `json:"briefing"`
	ManagerActions     []ActionItem `json:"manager_actions"`
	ParticipantActions []ActionItem `json:"participant_actions"`
	Concerns           []Concern    `json:"concerns"`
	Decisions          []string     `json:"decisions"`
	Coaching           Coaching     `json:"management_coaching"`
}

var (
	actionWords   = []string{"action", "todo", "follow up", "next steps", "will do", "should do"}
	concernWords  = []string{"concern", "issue", "problem", "challenge", "worried", "risk"}
	decisionWords = []string{"decided", "agreed", "conclusion", "resolution"}

	selfAssignPhrases = []string{"i will", "i'll", "i need to", "i should"}

	highSeverityWords   = []string{"critical", "urgent", "serious", "major", "blocking"}
	mediumSeverityWords = []string{"problem", "issue", "challenge", "difficulty"}

	positiveWords = []string{"great", "excellent", "good", "positive", "success", "achievement", "happy", "pleased"}
	negativeWords = []string{"concern", "problem", "issue", "worry", "challenge", "difficult", "frustrated", "disappointed"}
)

// topicKeywords is ordered; KeyTopics reports matches in this order.
var topicKeywords = []struct {
	topic    string
	keywords []string
}{
	{"project management", []string{"project", "timeline", "milestone", "deadline", "deliverable"}},
	{"performance", []string{"performance", "metrics", "goals", "targets", "results"}},
	{"team dynamics", []string{"team", "collaboration", "communication", "conflict", "working together"}},
	{"technical issues", []string{"technical", "system", "bug", "error", "implementation"}},
	{"strategy", []string{"strategy", "plan", "direction", "vision", "objectives"}},
	{"resources", []string{"budget", "resources", "hiring", "staffing", "capacity"}},
}

const maxTopics = 5

// Analyze runs the full heuristic pass over a transcript. A line feeds at
// most one bucket; action keywords win over concern keywords, which win
// over decision keywords.
func Analyze(content string, participants []string, title string) Result {
	if participants == nil {
		participants = []string{}
	}

	actions := []ActionItem{}
	concerns := []Concern{}
	decisions := []string{}
	for _, line := range strings.Split(content, "\n") {
		lower := strings.ToLower(line)
		clean := strings.TrimSpace(line)
		switch {
		case containsAny(lower, actionWords):
			actions = append(actions, ActionItem{Content: clean, Assignee: assignee(clean, participants)})
		case containsAny(lower, concernWords):
			concerns = append(concerns, Concern{Content: clean, Severity: severity(clean)})
		case containsAny(lower, decisionWords):
			decisions = append(decisions, clean)
		}
	}

	manager, delegated := splitByAssignee(actions)
	return Result{
		Briefing:           brief(content, participants, title, len(actions), len(concerns), len(decisions)),
		ManagerActions:     manager,
		ParticipantActions: delegated,
		Concerns:           concerns,
		Decisions:          decisions,
		Coaching:           coach(content, participants),
	}
}

// assignee attributes an action line: a named participant wins, first-person
// phrasing falls to the manager, anything else stays unassigned.
func assignee(line string, participants []string) string {
	lower := strings.ToLower(line)
	for _, p := range participants {
		if strings.Contains(lower, strings.ToLower(p)) {
			return p
		}
	}
	if containsAny(lower, selfAssignPhrases) {
		return "Manager"
	}
	return "Unassigned"
}

func severity(line string) string {
	lower := strings.ToLower(line)
	if containsAny(lower, highSeverityWords) {
		return "High"
	}
	if containsAny(lower, mediumSeverityWords) {
		return "Medium"
	}
	return "Low"
}

func splitByAssignee(items []ActionItem) (manager, delegated []ActionItem) {
	manager = []ActionItem{}
	delegated = []ActionItem{}
	for _, it := range items {
		if it.Assignee == "Manager" {
			manager = append(manager, it)
		} else {
			delegated = append(delegated, it)
		}
	}
	return manager, delegated
}

func brief(content string, participants []string, title string, actions, concerns, decisions int) Briefing {
	// Reading-speed estimate, floored at five minutes.
	minutes := len(strings.Fields(content)) / 150
	if minutes < 5 {
		minutes = 5
	}
	topics := KeyTopics(content)
	return Briefing{
		Title:            title,
		Participants:     participants,
		DurationEstimate: fmt.Sprintf("%d minutes", minutes),
		KeyTopics:        topics,
		Sentiment:        Sentiment(content),
		Summary: fmt.Sprintf(
			"Meeting with %d participants covering %d main topics. Generated %d action items, %d concerns, and %d decisions.",
			len(participants), len(topics), actions, concerns, decisions),
	}
}

// KeyTopics matches the conversation against the fixed topic vocabulary
// and reports up to five hits.
func KeyTopics(content string) []string {
	lower := strings.ToLower(content)
	topics := []string{}
	for _, t := range topicKeywords {
		if containsAny(lower, t.keywords) {
			topics = append(topics, t.topic)
		}
		if len(topics) == maxTopics {
			break
		}
	}
	return topics
}

// Sentiment grades the call Positive, Concerning or Neutral by comparing
// how many indicator words from each polarity appear at all. Each word
// counts once no matter how often it occurs.
func Sentiment(content string) string {
	lower := strings.ToLower(content)
	pos := countPresent(lower, positiveWords)
	neg := countPresent(lower, negativeWords)
	switch {
	case float64(pos) > float64(neg)*1.5:
		return "Positive"
	case float64(neg) > float64(pos)*1.5:
		return "Concerning"
	default:
		return "Neutral"
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func countPresent(s string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(s, w) {
			n++
		}
	}
	return n
}
