package http

import (
	"github.com/go-playground/validator/v10"

	"github.com/anketa-app/anketa/internal/survey"
)

var validate = validator.New()

type answerOptionRequest struct {
	Text    string `json:"text" validate:"required"`
	Correct bool   `json:"correct"`
}

type questionRequest struct {
	Text        string                `json:"text" validate:"required"`
	Type        string                `json:"type" validate:"required,oneof=single_choice multiple_choice text_answer true_false"`
	Options     []answerOptionRequest `json:"options" validate:"dive"`
	CorrectText string                `json:"correct_text"`
}

type testRequest struct {
	Title        string            `json:"title" validate:"required"`
	Description  string            `json:"description"`
	RequireName  bool              `json:"require_name"`
	RequireGroup bool              `json:"require_group"`
	RequireAge   bool              `json:"require_age"`
	Questions    []questionRequest `json:"questions" validate:"required,min=1,dive"`
}

func (r testRequest) toTest() survey.Test {
	t := survey.Test{
		Title:        r.Title,
		Description:  r.Description,
		RequireName:  r.RequireName,
		RequireGroup: r.RequireGroup,
		RequireAge:   r.RequireAge,
	}
	for _, q := range r.Questions {
		opts := make([]survey.AnswerOption, 0, len(q.Options))
		for _, o := range q.Options {
			opts = append(opts, survey.AnswerOption{Text: o.Text, Correct: o.Correct})
		}
		t.Questions = append(t.Questions, survey.Question{
			Text:        q.Text,
			Type:        survey.QuestionType(q.Type),
			Options:     opts,
			CorrectText: q.CorrectText,
		})
	}
	return t
}

type submitRequest struct {
	UserName string                   `json:"user_name"`
	Group    string                   `json:"group"`
	Age      *int                     `json:"age"`
	Answers  []survey.SubmittedAnswer `json:"answers"`
}

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}
