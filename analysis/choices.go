package analysis

import "github.com/mbolis/reqlicit/model"

// TallyChoices counts, for each declared option of a choice question, how
// many times it was selected across responses. Options with no selections
// are reported with a zero count; selections matching no option are
// ignored.
func TallyChoices(question model.Question, responses []model.Response) []model.ChoiceTally {
	counts := make(map[string]int, len(question.Options))
	for _, opt := range question.Options {
		counts[opt] = 0
	}

	for _, r := range responses {
		answer, ok := r.Answers[question.ID]
		if !ok || answer.Empty() {
			continue
		}
		for _, sel := range answer.As(question.Type).Selections() {
			if _, declared := counts[sel]; declared {
				counts[sel]++
			}
		}
	}

	tallies := make([]model.ChoiceTally, len(question.Options))
	for i, opt := range question.Options {
		tallies[i] = model.ChoiceTally{Name: opt, Value: counts[opt]}
	}
	return tallies
}
