package handler

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/credit-system/internal/apperror"
)

const (
	badRequestTitle = "Bad Request: consult the documentation"
	conflictTitle   = "Conflict: consult the documentation"
	internalTitle   = "Internal Server Error"
)

// ExceptionDetails описывает тело ответа с ошибкой.
type ExceptionDetails struct {
	Title     string            `json:"title"`
	Timestamp time.Time         `json:"timestamp"`
	Status    int               `json:"status"`
	Exception string            `json:"exception"`
	Details   map[string]string `json:"details"`
}

// writeError превращает ошибку приложения в HTTP-ответ. Других мест с такой логикой нет.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	body := ExceptionDetails{
		Timestamp: h.now(),
		Details:   map[string]string{},
	}

	appErr, ok := apperror.As(err)
	if !ok {
		h.logger.Error("request failed",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		body.Title = internalTitle
		body.Status = http.StatusInternalServerError
		body.Exception = apperror.Kind(0).String()
		h.writeJSON(w, body.Status, body)
		return
	}

	body.Exception = appErr.Kind.String()
	if appErr.Details != nil {
		body.Details = appErr.Details
	}

	switch appErr.Kind {
	case apperror.KindConflict:
		h.logger.Warn("constraint violation", zap.Error(err), zap.String("path", r.URL.Path))
		body.Title = conflictTitle
		body.Status = http.StatusConflict
	case apperror.KindValidation, apperror.KindBusiness:
		body.Title = badRequestTitle
		body.Status = http.StatusBadRequest
	default:
		h.logger.Error("unknown error kind", zap.Error(err), zap.Int("kind", int(appErr.Kind)))
		body.Title = internalTitle
		body.Status = http.StatusInternalServerError
		body.Details = map[string]string{}
	}

	h.writeJSON(w, body.Status, body)
}
