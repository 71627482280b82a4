package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"classquiz/internal/auth"
)

func (a *API) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	defer r.Body.Close()
	var request loginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))
	if email == "" || !strings.Contains(email, "@") {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "a valid email is required"})
		return
	}

	// First login request registers the user.
	if _, err := a.users.EnsureUser(r.Context(), email); err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := a.tokens.Issue(email, auth.PurposeLogin, auth.LoginTTL)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	link := strings.TrimRight(a.baseURL, "/") + "/login/" + token
	body := "Click the link to log in: " + link
	if err := a.sender.Send(email, "Your Magic Login Link", body); err != nil {
		a.logger.WithField("email", email).WithError(err).Error("sending login link failed")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to send login link"})
		return
	}

	a.logger.WithField("email", email).Info("login link sent")
	writeJSON(w, http.StatusOK, statusResponse{Status: "a login link has been sent to your email"})
}

func (a *API) HandleLoginWithToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	email, err := a.tokens.Verify(r.PathValue("token"), auth.PurposeLogin)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	session, err := a.tokens.Issue(email, auth.PurposeSession, auth.SessionTTL)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	a.setSessionCookie(w, session)
	writeJSON(w, http.StatusOK, loginTokenResponse{Status: "logged in", Email: email})
}

func (a *API) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	a.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, statusResponse{Status: "logged out"})
}

func (a *API) HandleAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := a.requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, accountResponse{Email: user.Email, StudentID: user.StudentID})
	case http.MethodPut:
		defer r.Body.Close()
		var request accountUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}

		studentID := strings.TrimSpace(request.StudentID)
		if studentID == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "student id is required"})
			return
		}
		if err := a.users.SetStudentID(r.Context(), user.ID, studentID); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, statusResponse{Status: "account updated"})
	default:
		writeMethodNotAllowed(w, http.MethodGet)
	}
}
