package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"aesecb/internal/auth"
	"aesecb/internal/models"
	"aesecb/internal/services/vector"
)

const maxVectorCount = 1000

// persistVectors stores encrypt records; the transaction is opened by the caller.
func persistVectors(tx *gorm.DB, userID string, v vector.TestVector) error {
	for _, e := range v.Encrypt {
		row := models.Vector{
			UserID:     userID,
			Algorithm:  v.Algorithm,
			Mode:       v.Mode,
			TestMode:   v.TestMode,
			KatVariant: v.KatVariant,
			Count:      e.Count,
			KeyHex:     strings.ToLower(e.KeyHex),
			InputHex:   sp(strings.ToLower(e.Plaintext)),
			OutputHex:  sp(strings.ToLower(e.Ciphertext)),
			Status:     "ready",
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// POST /v1/vectors/generate
func GenerateVectors(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	type reqT struct {
		TestMode string `json:"test_mode"`
		// When KAT, this selects the KAT subtype: gfsbox | keysbox | varkey | vartxt
		InputMode       string `json:"input_mode"`
		KeyBits         int    `json:"key_bits"`
		Count           int    `json:"count"`
		IncludeExpected bool   `json:"include_expected"`
		Format          string `json:"format"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req reqT
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.KeyBits != 0 && req.KeyBits != 128 {
			http.Error(w, "only key_bits 128 is supported", http.StatusBadRequest)
			return
		}
		if req.Count > maxVectorCount {
			http.Error(w, fmt.Sprintf("count must be <= %d", maxVectorCount), http.StatusBadRequest)
			return
		}
		tmode, err := vector.ParseTestMode(req.TestMode)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		vec, err := vector.GenerateECB(tmode, vector.GenParams{
			Count:           req.Count,
			IncludeExpected: req.IncludeExpected,
			KatVariant:      req.InputMode,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		uid := auth.Subject(r.Context())
		if err := db.Transaction(func(tx *gorm.DB) error {
			return persistVectors(tx, uid, vec)
		}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		audit(db, lg, uid, "VECTOR_GENERATE", map[string]any{
			"test_mode": vec.TestMode, "kat_variant": vec.KatVariant, "count": len(vec.Encrypt),
		})

		if strings.EqualFold(req.Format, "txt") {
			name := "aes_ecb_" + strings.ToLower(vec.TestMode)
			if vec.KatVariant != "" {
				name += "_" + strings.ToLower(vec.KatVariant)
			}
			w.Header().Set("Content-Type", "text/plain")
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_128.txt", name))
			_, _ = w.Write([]byte(vec.ToTXT()))
			return
		}
		respondJSON(w, vec)
	}
}

// POST /v1/vectors/validate
func ValidateVectors(db *gorm.DB, lg *zap.SugaredLogger, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := auth.Subject(r.Context())
		if !limitBody(w, r, maxUploadBytes) || !parseUpload(w, r) {
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer file.Close()
		recs, err := vector.ParseVectorFile(file)
		if err != nil {
			http.Error(w, "parse error: "+err.Error(), http.StatusBadRequest)
			return
		}
		result, err := vector.ValidateECB(recs)
		if err != nil {
			http.Error(w, "validate error: "+err.Error(), http.StatusBadRequest)
			return
		}
		audit(db, lg, uid, "VALIDATE_AES_ECB", map[string]any{
			"total": result.Total, "passed": result.Passed, "failed": result.Failed, "skipped": result.Skipped,
		})
		respondJSON(w, result)
	}
}

// GET /v1/vectors/known
func KnownVectors(lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vs := vector.KnownECB128()
		ok := vector.RunKnown(vs)
		if !ok {
			lg.Errorw("known answer test failed")
		}
		respondJSON(w, map[string]any{"ok": ok, "data": vs, "count": len(vs)})
	}
}
