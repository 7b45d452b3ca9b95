package http

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"github.com/custodia-labs/profanity/internal/core/domain"
	"github.com/custodia-labs/profanity/internal/logger"
)

// maxBodyBytes bounds the request body. A 1000 character message is at most
// 4000 bytes of UTF-8 plus JSON escaping.
const maxBodyBytes = 64 << 10

// Error messages returned to clients.
const (
	msgInvalidContentType = "Invalid Content-Type"
	msgMessageRequired    = "Argument message is required"
	msgMessageTooLong     = "Message is too long"
	msgInternal           = "Something went wrong"
)

type detectRequest struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleDetect handles POST /.
func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		writeError(w, http.StatusNotAcceptable, msgInvalidContentType)
		return
	}

	var req detectRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, msgMessageTooLong)
			return
		}
		log.Debug("decode request body", zap.Error(err))
		writeError(w, http.StatusBadRequest, msgMessageRequired)
		return
	}

	verdict, err := s.detection.Detect(r.Context(), req.Message)
	if err != nil {
		status, message := errorStatus(err)
		if status == http.StatusInternalServerError {
			log.Error("detection failed", zap.Error(err))
		}
		writeError(w, status, message)
		return
	}

	writeJSON(w, http.StatusOK, verdict)
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// errorStatus maps a detection error to a status code and client message.
// Anything that is not a validation failure is reported as opaque.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrEmptyMessage):
		return http.StatusBadRequest, msgMessageRequired
	case errors.Is(err, domain.ErrMessageTooLong):
		return http.StatusRequestEntityTooLarge, msgMessageTooLong
	case errors.Is(err, domain.ErrInvalidContentType):
		return http.StatusNotAcceptable, msgInvalidContentType
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("write response: %v", err)
	}
}
