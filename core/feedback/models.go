package feedback

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/mentorhub/core"
)

// Choices
const (
	ChoicePositive         Choice = "POSITIVE"
	ChoiceNeutral          Choice = "NEUTRAL"
	ChoiceNeedsImprovement Choice = "NEEDS_IMPROVEMENT"
)

var (
	AllChoices = []Choice{ChoicePositive, ChoiceNeutral, ChoiceNeedsImprovement}

	// short names used by the feedback panel buttons
	aliases = map[string]Choice{
		"positive": ChoicePositive,
		"neutral":  ChoiceNeutral,
		"improve":  ChoiceNeedsImprovement,
	}

	feedbackChoiceTag  = "feedbackchoice"
	feedbackChoiceText = "{0} must be one of positive, neutral or improve"
)

type Choice string

func (c Choice) Valid() bool {
	switch c {
	case ChoicePositive, ChoiceNeutral, ChoiceNeedsImprovement:
		return true
	}
	return false
}

// ParseChoice accepts either a backend value or one of its short aliases.
func ParseChoice(s string) (Choice, bool) {
	s = core.CleanString(s)
	if c := Choice(strings.ToUpper(s)); c.Valid() {
		return c, true
	}
	c, ok := aliases[strings.ToLower(s)]
	return c, ok
}

// Feedback is append-only from the client's point of view.
type Feedback struct {
	MentorID       int64     `json:"mentorId"`
	StudentID      int64     `json:"studentId"`
	MentorName     string    `json:"mentorName,omitempty"`
	FeedbackChoice Choice    `json:"feedbackChoice"`
	FeedbackText   string    `json:"feedbackText"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewFeedback is what a mentor submits from the feedback panel.
type NewFeedback struct {
	FeedbackChoice Choice `json:"feedbackChoice" validate:"feedbackchoice"`
	FeedbackText   string `json:"feedbackText" validate:"notblank"`
}

// Normalize resolves aliases and trims the text. Call it before validation.
func (nf *NewFeedback) Normalize() {
	if c, ok := ParseChoice(string(nf.FeedbackChoice)); ok {
		nf.FeedbackChoice = c
	}
	nf.FeedbackText = core.CleanString(nf.FeedbackText)
}

func InitValidators(v *core.Validator) {
	_ = v.Validate.RegisterValidation(feedbackChoiceTag, feedbackChoiceValidation)
	core.RegisterCustomTranslation(v.Validate, v.Translator, feedbackChoiceTag, feedbackChoiceText)
}

func feedbackChoiceValidation(fl validator.FieldLevel) bool {
	return Choice(fl.Field().String()).Valid()
}
