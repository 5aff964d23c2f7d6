package httpapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/saswath-06/roommait/internal/service"
)

// writeServiceError maps service errors onto HTTP statuses. Unexpected
// errors are logged and answered with a generic message.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, op string, err error, fields ...zap.Field) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, Fail(verr.Error()))
	case errors.Is(err, service.ErrScanNotFound):
		writeJSON(w, http.StatusNotFound, Fail("Room scan not found"))
	case errors.Is(err, service.ErrPlacementNotFound):
		writeJSON(w, http.StatusNotFound, Fail("Placement not found"))
	case errors.Is(err, service.ErrScanExists):
		writeJSON(w, http.StatusConflict, Fail("Room scan already exists"))
	default:
		logger.Error(op+" failed", append(fields, zap.Error(err))...)
		writeJSON(w, http.StatusInternalServerError, Fail(op+" failed"))
	}
}

func writeBadRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, Fail("method not allowed"))
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, Fail("not found"))
}
