package web

import "time"

type loginRequest struct {
	Email string `json:"email"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type loginTokenResponse struct {
	Status string `json:"status"`
	Email  string `json:"email"`
}

type quizResponse struct {
	ID             int64  `json:"id"`
	QuizID         string `json:"quiz_id,omitempty"`
	Name           string `json:"name"`
	ClassName      string `json:"class_name,omitempty"`
	TotalQuestions int    `json:"total_questions"`
}

type classGroup struct {
	Class   string         `json:"class"`
	Quizzes []quizResponse `json:"quizzes"`
}

type quizzesResponse struct {
	Classes []classGroup `json:"classes"`
}

type questionResponse struct {
	ID       int64    `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type questionsResponse struct {
	QuizID    int64              `json:"quiz_id"`
	Name      string             `json:"name"`
	Questions []questionResponse `json:"questions"`
}

type submitRequest struct {
	// Answers maps question id to the selected option text.
	Answers map[string]string `json:"answers"`
}

type submitResponse struct {
	Score    int `json:"score"`
	MaxScore int `json:"max_score"`
}

type resultResponse struct {
	Quiz           string    `json:"quiz"`
	Class          string    `json:"class,omitempty"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	MaxScore       int       `json:"max_score"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

type dashboardResponse struct {
	Results []resultResponse            `json:"results"`
	Classes map[string][]resultResponse `json:"classes"`
}

type accountResponse struct {
	Email     string `json:"email"`
	StudentID string `json:"student_id,omitempty"`
}

type accountUpdateRequest struct {
	StudentID string `json:"student_id"`
}

type queryRequest struct {
	Query string `json:"query"`
}

type backupResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
}

type restoreRequest struct {
	Date string `json:"date,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}
