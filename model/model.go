package model

import (
	"encoding/json"
	"time"
)

type QuestionType string

const (
	TextQuestion     QuestionType = "text"
	SingleQuestion   QuestionType = "single"
	MultipleQuestion QuestionType = "multiple"
)

// IsChoice reports whether answers to the question are drawn from its options.
func (t QuestionType) IsChoice() bool {
	return t == SingleQuestion || t == MultipleQuestion
}

func (t QuestionType) Valid() bool {
	return t == TextQuestion || t.IsChoice()
}

type Question struct {
	ID      int          `json:"id"`
	Type    QuestionType `json:"type"`
	Prompt  string       `json:"question"`
	Options []string     `json:"options"`
}

type Response struct {
	ID          int64          `json:"id"`
	SubmittedAt time.Time      `json:"timestamp"`
	Answers     map[int]Answer `json:"answers"`
}

type KeywordFrequency struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

type ChoiceTally struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type StatsType string

const (
	ChoiceStats StatsType = "choice"
	TextStats   StatsType = "text"
)

// Stats is the display-ready summary of one question. Only the field
// matching Type is set; both are rendered as "data" on the wire.
type Stats struct {
	QuestionID int
	Prompt     string
	Type       StatsType
	Choices    []ChoiceTally
	Keywords   []KeywordFrequency
}

type statsJSON struct {
	QuestionID int       `json:"questionId"`
	Prompt     string    `json:"question"`
	Type       StatsType `json:"type"`
	Data       any       `json:"data"`
}

func (s Stats) MarshalJSON() ([]byte, error) {
	out := statsJSON{QuestionID: s.QuestionID, Prompt: s.Prompt, Type: s.Type}
	switch s.Type {
	case ChoiceStats:
		out.Data = nonNil(s.Choices)
	default:
		out.Data = nonNil(s.Keywords)
	}
	return json.Marshal(out)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

type Summary struct {
	TotalResponses int `json:"totalResponses"`
	TotalQuestions int `json:"totalQuestions"`
}

type Role string

const (
	AdminRole      Role = "admin"
	DesignerRole   Role = "designer"
	AnalystRole    Role = "analyst"
	RespondentRole Role = "respondent"
)

func (r Role) Valid() bool {
	switch r {
	case AdminRole, DesignerRole, AnalystRole, RespondentRole:
		return true
	}
	return false
}

type User struct {
	ID       int    `json:"id,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role"`
}
