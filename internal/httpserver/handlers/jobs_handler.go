package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"aesecb/internal/auth"
	"aesecb/internal/models"
)

func ListJobs(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var jobs []models.EncryptionJob
		if err := db.Where("user_id = ?", auth.Subject(r.Context())).
			Order("created_at desc").Limit(200).Find(&jobs).Error; err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, map[string]any{"data": jobs, "count": len(jobs)})
	}
}

func GetJob(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := uuid.Validate(id); err != nil {
			http.Error(w, "id must be a valid UUID", http.StatusBadRequest)
			return
		}
		var job models.EncryptionJob
		err := db.First(&job, "id = ? AND user_id = ?", id, auth.Subject(r.Context())).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, job)
	}
}
