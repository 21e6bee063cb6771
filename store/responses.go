package store

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/mbolis/reqlicit/model"
)

type Responses struct {
	blobs *Blobs
}

func NewResponses(blobs *Blobs) *Responses {
	return &Responses{blobs}
}

// List returns every submitted response in submission order.
func (r *Responses) List(ctx context.Context) ([]model.Response, error) {
	data, err := r.blobs.Get(ctx, FormResponsesKey)
	if errors.Is(err, ErrNotFound) {
		return []model.Response{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeResponses(data)
}

// Submit checks answers against the current form and appends a new
// response. The form is read in the same transaction as the append, so a
// form saved concurrently applies either before or after the submission.
// The id is the submission time in unix milliseconds, bumped past the last
// stored id if needed so ids stay unique and increasing.
func (r *Responses) Submit(ctx context.Context, answers map[int]model.Answer, now time.Time) (model.Response, error) {
	if answers == nil {
		answers = map[int]model.Answer{}
	}
	response := model.Response{
		ID:          now.UnixMilli(),
		SubmittedAt: now.UTC(),
		Answers:     answers,
	}

	err := r.blobs.InTx(ctx, func(tx *BlobTx) error {
		questions, err := decodeQuestions(tx.Get(ctx, FormQuestionsKey))
		if err != nil {
			return err
		}
		if err = model.ValidateAnswers(questions, answers); err != nil {
			return &ValidationError{err}
		}

		var responses []model.Response
		old, err := tx.Get(ctx, FormResponsesKey)
		switch {
		case errors.Is(err, ErrNotFound):
		case err != nil:
			return err
		default:
			if responses, err = decodeResponses(old); err != nil {
				return err
			}
		}

		if n := len(responses); n > 0 && responses[n-1].ID >= response.ID {
			response.ID = responses[n-1].ID + 1
		}
		responses = append(responses, response)

		data, err := json.Marshal(responses)
		if err != nil {
			return errors.Wrap(err, "responses.encode")
		}
		return tx.Put(ctx, FormResponsesKey, data)
	})
	if err != nil {
		return model.Response{}, err
	}
	return response, nil
}

func decodeResponses(data []byte) ([]model.Response, error) {
	var responses []model.Response
	if err := json.Unmarshal(data, &responses); err != nil {
		return nil, errors.Wrap(err, "responses.decode")
	}
	return responses, nil
}
