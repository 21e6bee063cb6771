package store

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/mbolis/reqlicit/model"
)

const (
	FormQuestionsKey = "formQuestions"
	FormResponsesKey = "formResponses"
)

type Forms struct {
	blobs *Blobs
}

func NewForms(blobs *Blobs) *Forms {
	return &Forms{blobs}
}

// Questions returns the saved form, or DefaultQuestions if the designer
// has not saved one yet.
func (f *Forms) Questions(ctx context.Context) ([]model.Question, error) {
	return decodeQuestions(f.blobs.Get(ctx, FormQuestionsKey))
}

// decodeQuestions takes the result of a blob lookup of FormQuestionsKey.
func decodeQuestions(data []byte, err error) ([]model.Question, error) {
	if errors.Is(err, ErrNotFound) {
		return DefaultQuestions(), nil
	}
	if err != nil {
		return nil, err
	}

	var questions []model.Question
	if err = json.Unmarshal(data, &questions); err != nil {
		return nil, errors.Wrap(err, "forms.decode")
	}
	return questions, nil
}

// Save validates and replaces the whole form.
func (f *Forms) Save(ctx context.Context, questions []model.Question) error {
	if err := model.ValidateQuestions(questions); err != nil {
		return &ValidationError{err}
	}
	if questions == nil {
		questions = []model.Question{}
	}

	data, err := json.Marshal(questions)
	if err != nil {
		return errors.Wrap(err, "forms.encode")
	}
	return f.blobs.Put(ctx, FormQuestionsKey, data)
}

// ValidationError marks input rejected before anything was stored.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
