package handlers

import (
	"net/http"

	"github.com/SergioM098/Monitoring-proyect/internal/pkg/errors"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/utils"
)

// writeServiceError maps service errors onto the HTTP response, falling back
// to a generic 500 for anything that is not an AppError
func writeServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		utils.WriteError(w, appErr)
		return
	}
	utils.WriteError(w, errors.Internal("internal server error", err))
}
