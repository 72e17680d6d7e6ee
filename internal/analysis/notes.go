package analysis

import (
	"fmt"
	"strings"
)

const concernExcerptLen = 100

// ParticipantNote renders the one-line summary filed on a participant's
// profile after a call: sentiment, topics, their own action items and any
// high severity concerns raised.
func (r Result) ParticipantNote(participant string) string {
	parts := []string{fmt.Sprintf("%s - %s sentiment", r.Briefing.Title, r.Briefing.Sentiment)}

	if len(r.Briefing.KeyTopics) > 0 {
		parts = append(parts, "Topics: "+strings.Join(r.Briefing.KeyTopics, ", "))
	}

	own := []string{}
	for _, a := range r.ParticipantActions {
		if strings.EqualFold(a.Assignee, participant) {
			own = append(own, a.Content)
		}
	}
	if len(own) > 0 {
		parts = append(parts, "Actions: "+strings.Join(own, "; "))
	}

	high := []string{}
	for _, c := range r.Concerns {
		if c.Severity == "High" {
			high = append(high, excerpt(c.Content)+"...")
		}
	}
	if len(high) > 0 {
		parts = append(parts, "High priority concerns discussed: "+strings.Join(high, "; "))
	}

	return strings.Join(parts, ". ")
}

// CoachingNote renders the manager's personal development note for one
// call. meetingContext names the call and who it was with; the caller
// builds it because participant filtering needs the manager identity.
func (r Result) CoachingNote(meetingContext string) string {
	c := r.Coaching
	parts := []string{
		meetingContext,
		fmt.Sprintf("Communication: %s participation, %d questions asked",
			c.Communication.ParticipationBalance, c.Communication.QuestionsAsked),
	}

	skills := []string{
		"Inquiry Mindset: " + c.Leadership.InquiryMindset.Level,
		"Empathy: " + c.Leadership.Empathy.Level,
		"Clarity: " + c.Leadership.Clarity.Level,
		"Accountability: " + c.Leadership.Accountability.Level,
	}
	parts = append(parts, "Skills Assessment: "+strings.Join(skills, "; "))

	if len(c.Recommendations) > 0 {
		areas := make([]string, 0, len(c.Recommendations))
		details := make([]string, 0, len(c.Recommendations))
		for _, rec := range c.Recommendations {
			areas = append(areas, fmt.Sprintf("%s (%s)", rec.Area, rec.Principle))
			details = append(details, fmt.Sprintf("• %s: %s", rec.Area, rec.Recommendation))
		}
		parts = append(parts, "Development Areas: "+strings.Join(areas, "; "))
		parts = append(parts, "Specific Actions: "+strings.Join(details, "; "))
	}

	return strings.Join(parts, ". ")
}

func excerpt(s string) string {
	runes := []rune(s)
	if len(runes) <= concernExcerptLen {
		return s
	}
	return string(runes[:concernExcerptLen])
}
