package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"classquiz/internal/backup"
)

func (a *API) HandleAdminTables(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	if !a.requireAdmin(w, r) {
		return
	}

	dump, err := a.admin.DumpTables(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dump)
}

func (a *API) HandleAdminQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	if !a.requireAdmin(w, r) {
		return
	}

	defer r.Body.Close()
	var request queryRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(request.Query) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query is required"})
		return
	}

	result, err := a.admin.RunQuery(r.Context(), request.Query)
	if err != nil {
		a.logger.WithError(err).Warn("admin query failed")
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *API) HandleAdminBackup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	if !a.requireAdmin(w, r) {
		return
	}
	if a.backups == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "backups are not configured"})
		return
	}

	key, err := a.backups.Backup(r.Context())
	if err != nil {
		a.logger.WithError(err).Error("backup failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "backup failed"})
		return
	}
	writeJSON(w, http.StatusOK, backupResponse{Status: "backup completed successfully", Key: key})
}

func (a *API) HandleAdminRestore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	if !a.requireAdmin(w, r) {
		return
	}
	if a.backups == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "backups are not configured"})
		return
	}

	var request restoreRequest
	if r.ContentLength > 0 {
		defer r.Body.Close()
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}
	}

	key, err := a.backups.Restore(r.Context(), request.Date)
	if err != nil {
		if errors.Is(err, backup.ErrNoBackups) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "no backup files found"})
			return
		}
		a.logger.WithError(err).Error("restore failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "restore failed"})
		return
	}
	writeJSON(w, http.StatusOK, backupResponse{Status: "restore completed successfully", Key: key})
}
