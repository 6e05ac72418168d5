package transport

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/muhammadheryan/store/constant"
	"github.com/muhammadheryan/store/model"
	"github.com/muhammadheryan/store/utils/errors"
	"github.com/muhammadheryan/store/utils/logger"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("[writeJSON] err encode response", zap.String("error", err.Error()))
	}
}

func writeSuccess(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, model.ApiResponse{
		Data:          data,
		StatusMessage: constant.StatusSuccess,
		Timestamp:     time.Now().UTC(),
	})
}

// writeError renders err inside the failure envelope. Errors that are not a
// CustomError are reported as internal errors without leaking their text.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	ce, ok := errors.AsCustomError(err)
	if !ok {
		logger.Error("[writeError] unexpected error", zap.String("path", r.URL.Path), zap.String("error", err.Error()))
		ce = errors.SetCustomError(constant.ErrInternal)
	}

	status := ce.ErrorHTTPCode()
	if status == 0 {
		status = http.StatusInternalServerError
	}

	now := time.Now().UTC()
	writeJSON(w, status, model.ApiResponse{
		Data: model.ErrorResponse{
			Status:    status,
			Error:     statusName(status),
			Message:   ce.Error(),
			Path:      r.URL.Path,
			Timestamp: now,
		},
		StatusMessage: constant.StatusFailed,
		Timestamp:     now,
	})
}

// statusName turns "Not Found" into "NOT_FOUND".
func statusName(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}
