package model

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ValidateQuestions checks a form before it is saved, reporting every
// problem found rather than stopping at the first.
func ValidateQuestions(questions []Question) error {
	var result *multierror.Error

	seen := make(map[int]bool, len(questions))
	for i, q := range questions {
		if q.ID <= 0 {
			result = multierror.Append(result, fmt.Errorf("question #%d: id must be positive, got %d", i+1, q.ID))
		} else if seen[q.ID] {
			result = multierror.Append(result, fmt.Errorf("question #%d: duplicate id %d", i+1, q.ID))
		}
		seen[q.ID] = true

		if strings.TrimSpace(q.Prompt) == "" {
			result = multierror.Append(result, fmt.Errorf("question %d: empty prompt", q.ID))
		}

		switch {
		case !q.Type.Valid():
			result = multierror.Append(result, fmt.Errorf("question %d: unknown type %q", q.ID, q.Type))
		case q.Type.IsChoice() && len(q.Options) == 0:
			result = multierror.Append(result, fmt.Errorf("question %d: %s question needs options", q.ID, q.Type))
		case q.Type == TextQuestion && len(q.Options) > 0:
			result = multierror.Append(result, fmt.Errorf("question %d: text question cannot have options", q.ID))
		}
	}

	return result.ErrorOrNil()
}

// ValidateAnswers checks a submission against the form. Option strings are
// not checked against the declared options.
func ValidateAnswers(questions []Question, answers map[int]Answer) error {
	var result *multierror.Error

	byID := make(map[int]Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	for id, a := range answers {
		q, ok := byID[id]
		if !ok {
			result = multierror.Append(result, fmt.Errorf("answer to unknown question %d", id))
			continue
		}
		if a.IsMulti() && q.Type != MultipleQuestion {
			result = multierror.Append(result, fmt.Errorf("question %d: %s question takes a single value", id, q.Type))
		}
	}

	return result.ErrorOrNil()
}
