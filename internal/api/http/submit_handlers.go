package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/anketa-app/anketa/internal/survey"
)

// SubmitTestHandler accepts an anonymous submission, scores it and
// persists the result.
func SubmitTestHandler(svc *survey.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		res, err := svc.SubmitTest(r.Context(), survey.SubmitRequest{
			TestID: chi.URLParam(r, "testID"),
			Respondent: survey.RespondentInfo{
				UserName: req.UserName,
				Group:    req.Group,
				Age:      req.Age,
			},
			Answers: req.Answers,
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, res)
	}
}

// ResultDetailHandler rebuilds the per-question breakdown of a result.
func ResultDetailHandler(svc *survey.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.ResultDetail(r.Context(), chi.URLParam(r, "resultID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, d)
	}
}
