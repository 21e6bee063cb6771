// Package analysis turns collected survey responses into display-ready
// statistics: option tallies for choice questions and keyword frequencies
// for free-text questions.
//
// Every function is a pure read over its arguments and may be called
// concurrently.
package analysis

import "github.com/mbolis/reqlicit/model"

// QuestionStats summarizes the answers to the question with the given id.
// ok is false when no such question exists or its type is unknown, which
// callers treat as nothing to render.
func QuestionStats(questionID int, questions []model.Question, responses []model.Response) (stats model.Stats, ok bool) {
	for _, q := range questions {
		if q.ID == questionID {
			return statsFor(q, responses)
		}
	}
	return model.Stats{}, false
}

// AllStats summarizes every question in form order.
func AllStats(questions []model.Question, responses []model.Response) []model.Stats {
	all := make([]model.Stats, 0, len(questions))
	for _, q := range questions {
		if stats, ok := statsFor(q, responses); ok {
			all = append(all, stats)
		}
	}
	return all
}

func Summarize(questions []model.Question, responses []model.Response) model.Summary {
	return model.Summary{
		TotalResponses: len(responses),
		TotalQuestions: len(questions),
	}
}

func statsFor(q model.Question, responses []model.Response) (model.Stats, bool) {
	stats := model.Stats{QuestionID: q.ID, Prompt: q.Prompt}

	switch q.Type {
	case model.SingleQuestion, model.MultipleQuestion:
		stats.Type = model.ChoiceStats
		stats.Choices = TallyChoices(q, responses)
	case model.TextQuestion:
		stats.Type = model.TextStats
		stats.Keywords = AnalyzeKeywords(TextAnswers(q.ID, responses))
	default:
		return model.Stats{}, false
	}
	return stats, true
}

// TextAnswers collects the non-empty free-text answers to a question in
// response order. Multi-choice values are not text and are skipped.
func TextAnswers(questionID int, responses []model.Response) []string {
	var texts []string
	for _, r := range responses {
		answer, ok := r.Answers[questionID]
		if !ok || answer.Empty() {
			continue
		}
		if text, ok := answer.As(model.TextQuestion).Scalar(); ok {
			texts = append(texts, text)
		}
	}
	return texts
}
