package web

import (
	"net/http"
)

func NewRouter(api *API) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", api.HandleLogin)
	mux.HandleFunc("/login/{token}", api.HandleLoginWithToken)
	mux.HandleFunc("/logout", api.HandleLogout)
	mux.HandleFunc("/quizzes", api.HandleQuizzes)
	mux.HandleFunc("/quizzes/{id}/questions", api.HandleQuizQuestions)
	mux.HandleFunc("/quizzes/{id}/submit", api.HandleSubmitQuiz)
	mux.HandleFunc("/dashboard", api.HandleDashboard)
	mux.HandleFunc("/account", api.HandleAccount)
	mux.HandleFunc("/admin/tables", api.HandleAdminTables)
	mux.HandleFunc("/admin/query", api.HandleAdminQuery)
	mux.HandleFunc("/admin/backup", api.HandleAdminBackup)
	mux.HandleFunc("/admin/restore", api.HandleAdminRestore)

	return api.logRequests(mux)
}
