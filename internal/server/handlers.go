package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"supplycore/internal/backup"
	"supplycore/internal/core"
)

func loginHandler(session *core.Session, tokens *TokenService) http.HandlerFunc {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeBody(w, r, &req) {
			return
		}
		user, err := session.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, core.ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		token, err := tokens.Sign(user)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "sign token: "+err.Error())
			return
		}
		user.PasswordHash = ""
		writeJSON(w, http.StatusOK, map[string]any{
			"token": token,
			"user":  user,
		})
	}
}

func logoutHandler(session *core.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := session.Logout(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type preferences struct {
	Language  string         `json:"language"`
	Theme     string         `json:"theme"`
	StartPage core.StartPage `json:"start_page"`
	UIPrefs   map[string]any `json:"ui_prefs"`
}

func preferencesHandler(session *core.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		writeJSON(w, http.StatusOK, preferences{
			Language:  session.Language(ctx),
			Theme:     session.Theme(ctx),
			StartPage: session.StartPage(ctx),
			UIPrefs:   session.UIPrefs(ctx),
		})
	}
}

func updatePreferencesHandler(session *core.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var prefs preferences
		if !decodeBody(w, r, &prefs) {
			return
		}
		ctx := r.Context()
		session.SetLanguage(ctx, prefs.Language)
		session.SetTheme(ctx, prefs.Theme)
		session.SetStartPage(ctx, prefs.StartPage)
		if prefs.UIPrefs != nil {
			session.SetUIPrefs(ctx, prefs.UIPrefs)
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func auditQueryHandler(store *core.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := core.AuditQuery{
			Search: r.URL.Query().Get("q"),
			Action: core.AuditAction(r.URL.Query().Get("action")),
			Module: r.URL.Query().Get("module"),
		}
		entries := store.QueryAudit(q)
		if entries == nil {
			entries = []core.AuditLogEntry{}
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func auditModulesHandler(store *core.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		modules := store.AuditModules()
		if modules == nil {
			modules = []string{}
		}
		writeJSON(w, http.StatusOK, modules)
	}
}

func auditCSVHandler(svc *core.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries := svc.Store().AuditLog()
		var buf bytes.Buffer
		if err := backup.WriteAuditCSV(&buf, entries); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if err := svc.RecordEvent(r.Context(), core.ActionExport, core.ModuleAuditLog, "Exported audit log as CSV"); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="audit_log.csv"`)
		_, _ = io.Copy(w, &buf)
	}
}

func auditXLSXHandler(svc *core.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries := svc.Store().AuditLog()
		var buf bytes.Buffer
		if err := backup.WriteAuditXLSX(&buf, entries); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if err := svc.RecordEvent(r.Context(), core.ActionExport, core.ModuleAuditLog, "Exported audit log as XLSX"); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="audit_log.xlsx"`)
		_, _ = io.Copy(w, &buf)
	}
}

func backupExportHandler(svc *core.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := backup.Export(svc.Store())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if err := svc.RecordEvent(r.Context(), core.ActionExport, core.ModuleBackup, "Exported full backup"); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

func backupImportHandler(svc *core.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		doc, err := backup.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		store := svc.Store()
		if err := backup.Import(r.Context(), store.Medium(), doc); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		store.Reload(r.Context())
		if err := svc.RecordEvent(r.Context(), core.ActionImport, core.ModuleBackup, "Imported backup document"); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func archiveListHandler(arch *backup.Archiver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		infos, err := arch.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, infos)
	}
}

func archiveSnapshotHandler(arch *backup.Archiver, svc *core.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, err := arch.Snapshot(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if err := svc.RecordEvent(r.Context(), core.ActionExport, core.ModuleBackup, "Stored backup archive "+key); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"key": key})
	}
}

func archiveRestoreHandler(arch *backup.Archiver, svc *core.Service) http.HandlerFunc {
	type request struct {
		Key string `json:"key"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Key == "" {
			writeError(w, http.StatusBadRequest, "key required")
			return
		}
		if err := arch.Restore(r.Context(), req.Key); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := svc.RecordEvent(r.Context(), core.ActionImport, core.ModuleBackup, "Restored backup archive "+req.Key); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func resetHandler(svc *core.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.ResetToSeed(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
