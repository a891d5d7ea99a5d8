package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/qiuyou/courtside/internal/i18n"
	"github.com/qiuyou/courtside/internal/remote"
)

type uploadResponse struct {
	URL string `json:"url"`
}

// handleUploadImage serves POST /api/upload/image (multipart field "file").
func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, remote.MaxImageBytes+maxBodyBytes)
	if err := r.ParseMultipartForm(remote.MaxImageBytes); err != nil {
		writeProblem(w, r, i18n.Describe(remote.ErrInvalidImage))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeProblem(w, r, i18n.BadRequest)
		return
	}
	file.Close()

	url, err := s.svc.Remote.UploadImage(r.Context(), header.Filename, header.Size)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeOK(w, r, http.StatusCreated, uploadResponse{URL: url})
}

// handlePaymentStatus serves GET /api/payments/{id}
func (s *Server) handlePaymentStatus(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Remote.PaymentStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeOK(w, r, http.StatusOK, p)
}
