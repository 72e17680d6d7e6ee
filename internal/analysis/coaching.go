package analysis

import "strings"

// Skill levels reported by the leadership assessment.
const (
	LevelStrong           = "Strong"
	LevelModerate         = "Moderate"
	LevelNeedsDevelopment = "Needs Development"
)

// Communication describes how the conversation flowed between speakers.
// Speaker turns are lines of the form "Name: ...".
type Communication struct {
	SpeakingDistribution map[string]int `json:"speaking_distribution"`
	QuestionsAsked       int            `json:"questions_asked"`
	TotalExchanges       int            `json:"total_exchanges"`
	ParticipationBalance string         `json:"participation_balance"`
}

// Skill is one scored leadership behavior.
type Skill struct {
	Score int    `json:"score"`
	Level string `json:"level"`
}

// Leadership grades the four coached behaviors.
type Leadership struct {
	InquiryMindset Skill `json:"inquiry_mindset"`
	Empathy        Skill `json:"empathy"`
	Clarity        Skill `json:"clarity"`
	Accountability Skill `json:"accountability"`
}

// Recommendation is one templated coaching suggestion tied to the
// leadership principle it exercises.
type Recommendation struct {
	Area           string `json:"area"`
	Recommendation string `json:"recommendation"`
	Principle      string `json:"principle"`
}

// Coaching bundles the management feedback derived from one call.
type Coaching struct {
	Communication     Communication    `json:"communication_analysis"`
	Leadership        Leadership       `json:"leadership_assessment"`
	Recommendations   []Recommendation `json:"recommendations"`
	PrinciplesApplied []string         `json:"principles_applied"`
}

var (
	inquiryIndicators        = []string{"what do you think", "how do you feel", "what's your perspective", "tell me more"}
	empathyIndicators        = []string{"understand", "i hear you", "that makes sense", "i can see why"}
	clarityIndicators        = []string{"to be clear", "let me clarify", "specifically", "the goal is"}
	accountabilityIndicators = []string{"action item", "who will", "by when", "follow up", "next steps"}
)

func coach(content string, participants []string) Coaching {
	comm := communication(content, participants)
	lead := leadership(strings.ToLower(content))
	return Coaching{
		Communication:   comm,
		Leadership:      lead,
		Recommendations: recommend(comm, lead),
		PrinciplesApplied: []string{
			"Active listening and inquiry",
			"Psychological safety creation",
			"Clear action-oriented follow-up",
			"Balanced directive and collaborative leadership",
		},
	}
}

func communication(content string, participants []string) Communication {
	counts := map[string]int{}
	questions := 0
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, p := range participants {
			if strings.HasPrefix(line, p+":") {
				counts[p]++
				if strings.Contains(line, "?") {
					questions++
				}
				break
			}
		}
	}

	total := 0
	distinct := map[int]struct{}{}
	for _, n := range counts {
		total += n
		distinct[n] = struct{}{}
	}
	balance := "Balanced"
	if len(distinct) > 2 {
		balance = "Imbalanced"
	}
	return Communication{
		SpeakingDistribution: counts,
		QuestionsAsked:       questions,
		TotalExchanges:       total,
		ParticipationBalance: balance,
	}
}

func leadership(lower string) Leadership {
	return Leadership{
		InquiryMindset: scoreSkill(lower, inquiryIndicators),
		Empathy:        scoreSkill(lower, empathyIndicators),
		Clarity:        scoreSkill(lower, clarityIndicators),
		Accountability: scoreSkill(lower, accountabilityIndicators),
	}
}

func scoreSkill(lower string, indicators []string) Skill {
	score := countPresent(lower, indicators)
	return Skill{Score: score, Level: skillLevel(score)}
}

func skillLevel(score int) string {
	switch {
	case score >= 3:
		return LevelStrong
	case score >= 1:
		return LevelModerate
	default:
		return LevelNeedsDevelopment
	}
}

func recommend(comm Communication, lead Leadership) []Recommendation {
	recs := []Recommendation{}
	if comm.ParticipationBalance == "Imbalanced" {
		recs = append(recs, Recommendation{
			Area:           "Inclusive Leadership",
			Recommendation: "Draw out quieter participants with direct questions. Try: 'Sarah, what's your take on this?' Use the 2-minute rule: no one speaks for more than 2 minutes without checking in with others.",
			Principle:      "Psychological Safety & Inclusion",
		})
	}
	if lead.InquiryMindset.Level == LevelNeedsDevelopment {
		recs = append(recs, Recommendation{
			Area:           "Inquiry Leadership",
			Recommendation: "Increase use of open-ended questions. Replace 'Do you agree?' with 'What concerns do you have?' Use the 70/30 rule: 70% questions, 30% statements.",
			Principle:      "Inquiry-Based Leadership",
		})
	}
	if lead.Accountability.Level != LevelStrong {
		recs = append(recs, Recommendation{
			Area:           "Action Orientation",
			Recommendation: "End each topic with clear next steps: Who, What, When. Use the format: '[Name] will [specific action] by [date].'",
			Principle:      "Results-Driven Leadership",
		})
	}
	if lead.Empathy.Level == LevelNeedsDevelopment {
		recs = append(recs, Recommendation{
			Area:           "Emotional Intelligence",
			Recommendation: "Practice reflective listening: 'What I'm hearing is...' and 'Help me understand...' Acknowledge emotions before moving to solutions.",
			Principle:      "Authentic Leadership",
		})
	}
	return recs
}
