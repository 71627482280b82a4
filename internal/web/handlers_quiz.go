package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"classquiz/internal/quiz"
)

func (a *API) HandleQuizzes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	quizzes, err := a.quizzes.ListQuizzes(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	grouped := quiz.GroupByClass(quizzes)
	classes := make([]classGroup, 0, len(grouped))
	for class, items := range grouped {
		group := classGroup{Class: class, Quizzes: make([]quizResponse, 0, len(items))}
		for _, item := range items {
			group.Quizzes = append(group.Quizzes, toQuizResponse(item))
		}
		classes = append(classes, group)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].Class < classes[j].Class })

	writeJSON(w, http.StatusOK, quizzesResponse{Classes: classes})
}

func (a *API) HandleQuizQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	quizRowID, err := parseQuizID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	item, err := a.quizzes.GetQuiz(r.Context(), quizRowID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	questions, err := a.quizzes.GetQuestions(r.Context(), quizRowID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := questionsResponse{
		QuizID:    item.ID,
		Name:      item.Name,
		Questions: make([]questionResponse, 0, len(questions)),
	}
	for _, question := range questions {
		// The correct answer never leaves the server before submission.
		response.Questions = append(response.Questions, questionResponse{
			ID:       question.ID,
			Question: question.Text,
			Options:  question.Options(),
		})
	}
	writeJSON(w, http.StatusOK, response)
}

func (a *API) HandleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	user, ok := a.requireUser(w, r)
	if !ok {
		return
	}

	quizRowID, err := parseQuizID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	defer r.Body.Close()
	var request submitRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	if _, err := a.quizzes.GetQuiz(r.Context(), quizRowID); err != nil {
		writeServiceError(w, err)
		return
	}
	questions, err := a.quizzes.GetQuestions(r.Context(), quizRowID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	answers := make(map[int64]string, len(request.Answers))
	for key, value := range request.Answers {
		questionID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "answer keys must be question ids"})
			return
		}
		answers[questionID] = value
	}

	score, max := quiz.Score(questions, answers)
	if err := a.results.InsertResult(r.Context(), user.ID, quizRowID, score); err != nil {
		writeServiceError(w, err)
		return
	}

	a.logger.WithFields(logrus.Fields{
		"user":  user.Email,
		"quiz":  quizRowID,
		"score": score,
	}).Info("quiz submitted")
	writeJSON(w, http.StatusOK, submitResponse{Score: score, MaxScore: max})
}

func (a *API) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	user, ok := a.requireUser(w, r)
	if !ok {
		return
	}

	rows, err := a.results.ListResultsForUser(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := dashboardResponse{
		Results: make([]resultResponse, 0, len(rows)),
		Classes: make(map[string][]resultResponse),
	}
	for _, row := range rows {
		item := resultResponse{
			Quiz:           row.QuizName,
			Class:          row.ClassName,
			Score:          row.Score,
			TotalQuestions: row.TotalQuestions,
			MaxScore:       row.TotalQuestions * quiz.PointsPerQuestion,
			SubmittedAt:    row.SubmittedAt,
		}
		response.Results = append(response.Results, item)

		class := row.ClassName
		if class == "" {
			class = "Other"
		}
		response.Classes[class] = append(response.Classes[class], item)
	}
	writeJSON(w, http.StatusOK, response)
}

func toQuizResponse(item quiz.Quiz) quizResponse {
	return quizResponse{
		ID:             item.ID,
		QuizID:         item.QuizID,
		Name:           item.Name,
		ClassName:      item.ClassName,
		TotalQuestions: item.TotalQuestions,
	}
}

var errBadQuizID = errors.New("quiz id must be a positive integer")

func parseQuizID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadQuizID
	}
	return id, nil
}
