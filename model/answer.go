package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

type AnswerKind int

const (
	NoAnswer AnswerKind = iota
	TextAnswer
	ChoiceAnswer
	MultiChoiceAnswer
)

// Answer is the value given to one question. On the wire it is either a
// string or an array of strings; the question type decides how a stored
// string is read, so a decoded string carries TextAnswer until resolved.
type Answer struct {
	kind   AnswerKind
	values []string
}

func Text(s string) Answer {
	return Answer{kind: TextAnswer, values: []string{s}}
}

func Choice(option string) Answer {
	return Answer{kind: ChoiceAnswer, values: []string{option}}
}

func MultiChoice(options ...string) Answer {
	values := make([]string, len(options))
	copy(values, options)
	return Answer{kind: MultiChoiceAnswer, values: values}
}

func (a Answer) Kind() AnswerKind {
	return a.kind
}

// IsMulti reports whether the answer was given as a set of selections.
func (a Answer) IsMulti() bool {
	return a.kind == MultiChoiceAnswer
}

// Empty reports whether the answer counts as "unanswered": the zero value
// or a blank string.
func (a Answer) Empty() bool {
	switch a.kind {
	case NoAnswer:
		return true
	case TextAnswer, ChoiceAnswer:
		return a.values[0] == ""
	}
	return false
}

// Scalar returns the single string value. ok is false for multi-choice
// answers and for the zero value.
func (a Answer) Scalar() (value string, ok bool) {
	if a.kind != TextAnswer && a.kind != ChoiceAnswer {
		return "", false
	}
	return a.values[0], true
}

// Selections returns the answer as a sequence of selected options: a
// scalar is a one-element selection, a multi-choice is used as-is.
func (a Answer) Selections() []string {
	out := make([]string, len(a.values))
	copy(out, a.values)
	return out
}

// As interprets the answer for a question of the given type.
func (a Answer) As(t QuestionType) Answer {
	if a.kind == NoAnswer || a.kind == MultiChoiceAnswer {
		return a
	}
	switch t {
	case SingleQuestion, MultipleQuestion:
		return Answer{kind: ChoiceAnswer, values: a.values}
	case TextQuestion:
		return Answer{kind: TextAnswer, values: a.values}
	}
	return a
}

func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case TextAnswer, ChoiceAnswer:
		return json.Marshal(a.values[0])
	case MultiChoiceAnswer:
		if a.values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.values)
	}
	return []byte("null"), nil
}

var errAnswerShape = errors.New("answer must be a string or an array of strings")

func (a *Answer) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*a = Answer{}
	case string:
		*a = Text(v)
	case []any:
		values := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("%w: item %d is %T", errAnswerShape, i, item)
			}
			values[i] = s
		}
		*a = Answer{kind: MultiChoiceAnswer, values: values}
	default:
		return fmt.Errorf("%w: got %T", errAnswerShape, raw)
	}
	return nil
}
