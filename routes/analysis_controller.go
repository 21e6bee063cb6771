package routes

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/mbolis/reqlicit/analysis"
	"github.com/mbolis/reqlicit/app"
	"github.com/mbolis/reqlicit/httpx"
	"github.com/mbolis/reqlicit/log"
	"github.com/mbolis/reqlicit/model"
)

// loadSurvey reads both collaborators of the analyzer. On failure the
// error response has already been written.
func loadSurvey(ctx context.Context, w http.ResponseWriter, app app.App) ([]model.Question, []model.Response, bool) {
	questions, err := app.Forms.Questions(ctx)
	if err != nil {
		httpx.LogInternalError(w, "db.get_form", err)
		return nil, nil, false
	}
	responses, err := app.Responses.List(ctx)
	if err != nil {
		httpx.LogInternalError(w, "db.get_responses", err)
		return nil, nil, false
	}
	return questions, responses, true
}

func GetAllStats(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questions, responses, ok := loadSurvey(r.Context(), w, app)
		if !ok {
			return
		}

		render.JSON(w, r, map[string]any{
			"summary": analysis.Summarize(questions, responses),
			"stats":   analysis.AllStats(questions, responses),
		})
	}
}

func GetSummary(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questions, responses, ok := loadSurvey(r.Context(), w, app)
		if !ok {
			return
		}

		render.JSON(w, r, analysis.Summarize(questions, responses))
	}
}

func GetQuestionStats(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questionId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		questions, responses, ok := loadSurvey(r.Context(), w, app)
		if !ok {
			return
		}

		stats, ok := analysis.QuestionStats(questionId, questions, responses)
		if !ok {
			httpx.LogNotFound(w, "get_question_stats", questionId)
			return
		}

		render.JSON(w, r, stats)
	}
}
