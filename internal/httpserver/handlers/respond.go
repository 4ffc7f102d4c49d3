package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"aesecb/internal/models"
)

func respondJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func sp(s string) *string { return &s }

// audit writes an audit row. Failures are logged and otherwise ignored.
func audit(db *gorm.DB, lg *zap.SugaredLogger, userID, action string, md map[string]any) {
	row := models.AuditLog{Action: action, Metadata: models.MustJSONB(md)}
	if userID != "" {
		row.UserID = &userID
	}
	if err := db.Create(&row).Error; err != nil {
		lg.Warnw("audit write failed", "action", action, "error", err)
	}
}

func safeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '/', '\r', '\n':
			return '_'
		}
		return r
	}, name)
	if name == "" {
		return "upload"
	}
	return name
}

// limitBody caps the request body at max bytes; max <= 0 means no cap. A
// declared Content-Length over the cap is answered with 413 right away.
func limitBody(w http.ResponseWriter, r *http.Request, max int64) bool {
	if max <= 0 {
		return true
	}
	if r.ContentLength > max {
		http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, max)
	return true
}

// parseUpload parses a multipart form, answering 413 when the body cap was
// hit and 400 otherwise.
func parseUpload(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
			return false
		}
		http.Error(w, "multipart parse error", http.StatusBadRequest)
		return false
	}
	return true
}
