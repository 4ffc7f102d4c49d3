package handlers

import (
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"aesecb/internal/auth"
	"aesecb/internal/models"
)

// MyLogs returns recent audit logs. Regular users see their own logs.
// Administrators can pass ?all=1 to see recent logs for everyone.
func MyLogs(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := r.URL.Query().Get("all") == "1"
		var logs []models.AuditLog
		q := db.Order("created_at desc").Limit(200)
		if !all || !auth.FromContext(r.Context()).HasRole("Administrator") {
			q = q.Where("user_id = ?", auth.Subject(r.Context()))
		}
		if err := q.Find(&logs).Error; err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, logs)
	}
}
