package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/text/language"

	"github.com/qiuyou/courtside/internal/i18n"
)

const maxBodyBytes = 1 << 20

// envelope is the body of every API response.
type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
}

type langKey struct{}

// LanguageMiddleware resolves the response language once per request.
func LanguageMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), langKey{}, i18n.ResolveTag(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func languageFrom(r *http.Request) language.Tag {
	if tag, ok := r.Context().Value(langKey{}).(language.Tag); ok {
		return tag
	}
	return i18n.ResolveTag(r)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeOK(w http.ResponseWriter, r *http.Request, status int, data any) {
	writeJSON(w, status, envelope{
		Code:    i18n.CodeOK,
		Message: i18n.Text(languageFrom(r), i18n.KeyOK),
		Success: true,
		Data:    data,
	})
}

func writeProblem(w http.ResponseWriter, r *http.Request, p i18n.Problem) {
	writeJSON(w, p.Status, envelope{
		Code:    p.Code,
		Message: p.Message(languageFrom(r)),
		Success: false,
	})
}

// writeError maps err to a localized problem. Unrecognized errors are logged
// and reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	p := i18n.Describe(err)
	if p.Status >= http.StatusInternalServerError && logger != nil {
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeProblem(w, r, p)
}

var errEmptyBody = errors.New("empty request body")

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}
