package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"aesecb/internal/auth"
	"aesecb/internal/cipher/aes128"
	"aesecb/internal/models"
	"aesecb/internal/services/ecb"
	"aesecb/internal/util"
)

type EncryptOptions struct {
	Workers        int
	MaxUploadBytes int64
}

// sealed is a finished ciphertext spooled to disk. Nothing is sent to the
// client until the whole input has been encrypted.
type sealed struct {
	file   *os.File
	result ecb.Result
	sha256 string
}

func (s *sealed) Close() error {
	name := s.file.Name()
	err := s.file.Close()
	_ = os.Remove(name)
	return err
}

func sealToTemp(ctx context.Context, src io.Reader, key aes128.Key, workers int) (*sealed, error) {
	tmp, err := os.CreateTemp("", "aesecb-*.enc")
	if err != nil {
		return nil, err
	}
	s := &sealed{file: tmp}
	h := sha256.New()
	res, err := ecb.EncryptStream(ctx, src, io.MultiWriter(tmp, h), key, ecb.Options{Workers: workers})
	if err == nil {
		_, err = tmp.Seek(0, io.SeekStart)
	}
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.result = res
	s.sha256 = hex.EncodeToString(h.Sum(nil))
	return s, nil
}

func saveFailedJob(db *gorm.DB, lg *zap.SugaredLogger, job models.EncryptionJob) {
	if err := db.Create(&job).Error; err != nil {
		lg.Warnw("failed job write failed", "user_id", job.UserID, "filename", job.Filename, "error", err)
	}
}

func encName(name string) string {
	return strings.TrimSuffix(name, path.Ext(name)) + ".enc"
}

// EncryptFile takes a multipart upload with a "file" part and a "key" field
// of 32 hex digits, and answers with the ECB ciphertext.
func EncryptFile(db *gorm.DB, lg *zap.SugaredLogger, opts EncryptOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := auth.Subject(r.Context())
		if !limitBody(w, r, opts.MaxUploadBytes) || !parseUpload(w, r) {
			return
		}
		key, err := util.ParseKey(r.FormValue("key"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		file, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer file.Close()
		name := safeFilename(path.Base(hdr.Filename))

		out, err := sealToTemp(r.Context(), file, key, opts.Workers)
		if err != nil {
			lg.Errorw("encryption failed", "user_id", uid, "filename", name, "error", err)
			saveFailedJob(db, lg, models.EncryptionJob{UserID: uid, Filename: name, Status: "failed", Error: sp(err.Error())})
			http.Error(w, "encryption failed", http.StatusInternalServerError)
			return
		}
		defer out.Close()

		job := models.EncryptionJob{
			UserID:           uid,
			Filename:         name,
			PlaintextBytes:   out.result.PlaintextBytes,
			CiphertextBytes:  out.result.CiphertextBytes,
			Blocks:           out.result.Blocks,
			CiphertextSHA256: out.sha256,
			Status:           "done",
		}
		if err := db.Create(&job).Error; err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		audit(db, lg, uid, "ENCRYPT_ECB", map[string]any{"job_id": job.ID, "filename": name, "blocks": job.Blocks})
		lg.Infow("file encrypted", "job_id", job.ID, "plaintext_bytes", job.PlaintextBytes, "blocks", job.Blocks)

		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", encName(name)))
		w.Header().Set("Content-Length", strconv.FormatInt(out.result.CiphertextBytes, 10))
		w.Header().Set("X-Job-ID", job.ID)
		w.Header().Set("X-Ciphertext-SHA256", out.sha256)
		if _, err := io.Copy(w, out.file); err != nil {
			lg.Warnw("response write failed", "job_id", job.ID, "error", err)
		}
	}
}
