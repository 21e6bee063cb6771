package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/mbolis/reqlicit/app"
	"github.com/mbolis/reqlicit/httpx"
	"github.com/mbolis/reqlicit/log"
	"github.com/mbolis/reqlicit/model"
)

func GetForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questions, err := app.Forms.Questions(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "db.get_form", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"questions": questions,
		})
	}
}

// SaveForm replaces the whole form. Stored responses are kept: answers to
// removed questions are simply no longer reported.
func SaveForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Questions []model.Question `json:"questions"`
		}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		err = app.Forms.Save(r.Context(), body.Questions)
		if err != nil {
			httpx.LogStoreError(w, "db.save_form", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func SubmitResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Answers map[int]model.Answer `json:"answers"`
		}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "%s", err)
			return
		}

		response, err := app.Responses.Submit(r.Context(), body.Answers, time.Now())
		if err != nil {
			httpx.LogStoreError(w, "db.insert_response", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": response.ID,
		})
	}
}

func ListResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses, err := app.Responses.List(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "db.get_responses", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"responses": responses,
		})
	}
}
