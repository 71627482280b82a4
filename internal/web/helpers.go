package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"classquiz/internal/auth"
	"classquiz/internal/quiz"
	"classquiz/internal/store"
)

const sessionCookie = "classquiz_session"

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMethodNotAllowed(w http.ResponseWriter, allowedMethod string) {
	w.Header().Set("Allow", allowedMethod)
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quiz.ErrQuizNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "quiz not found"})
	case errors.Is(err, quiz.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "user not found"})
	case errors.Is(err, auth.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "the login link is invalid or has expired"})
	case errors.Is(err, store.ErrQueryRejected):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "request failed"})
	}
}

// sessionEmail extracts and verifies the session cookie; empty when the
// request carries no valid session.
func (a *API) sessionEmail(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	email, err := a.tokens.Verify(cookie.Value, auth.PurposeSession)
	if err != nil {
		return ""
	}
	return email
}

// requireUser resolves the session to a stored user, writing the error
// response itself when the caller is not logged in.
func (a *API) requireUser(w http.ResponseWriter, r *http.Request) (quiz.User, bool) {
	email := a.sessionEmail(r)
	if email == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "you need to log in first"})
		return quiz.User{}, false
	}

	user, err := a.users.GetUserByEmail(r.Context(), email)
	if err != nil {
		writeServiceError(w, err)
		return quiz.User{}, false
	}
	return user, true
}

func (a *API) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	email := a.sessionEmail(r)
	if email == "" || a.adminEmail == "" || email != a.adminEmail {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "unauthorized access"})
		return false
	}
	return true
}

func (a *API) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *API) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func (a *API) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		a.logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Debug("request handled")
	})
}
