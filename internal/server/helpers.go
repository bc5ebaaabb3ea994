package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/api"
	apperrors "github.com/DeanGilewicz/serverless-recipes-BE/internal/errors"
)

var validate = validator.New()

// writeJSON writes v with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErrorResponse writes a JSON error body without an error code.
func writeErrorResponse(w http.ResponseWriter, statusCode int, message, details string) {
	writeJSON(w, statusCode, api.ErrorResponse{
		Error:   message,
		Details: details,
	})
}

// writeErrorResponseWithCode writes a JSON error body carrying an error code.
func writeErrorResponseWithCode(w http.ResponseWriter, statusCode int, code, message, details string) {
	writeJSON(w, statusCode, api.ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
}

// extractErrorInfo extracts statusCode, errorCode, and errorDetails from an error.
func extractErrorInfo(err error) (statusCode int, errorCode, errorDetails string) {
	return apperrors.GetStatusCode(err),
		apperrors.GetErrorCode(err),
		apperrors.GetErrorDetails(err)
}

// decodeRequestBody decodes the JSON body into v and validates it.
// If decoding or validation fails, writes a 400 response and returns the error.
func decodeRequestBody(w http.ResponseWriter, req *http.Request, v any) error {
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "invalid request body", err.Error())
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	if err := validate.Struct(v); err != nil {
		writeErrorResponseWithCode(w, http.StatusBadRequest,
			apperrors.ErrCodeInvalidRequest, "invalid request body", err.Error())
		return fmt.Errorf("request body validation failed: %w", err)
	}
	return nil
}

// getRequiredURLParam extracts and validates a required URL parameter.
// If the parameter is missing or empty, writes a bad request error response and returns "", false.
func getRequiredURLParam(w http.ResponseWriter, req *http.Request, name string) (string, bool) {
	param := strings.TrimSpace(chi.URLParam(req, name))
	if param == "" {
		writeErrorResponse(w, http.StatusBadRequest, "invalid "+name, name+" is required")
		return "", false
	}
	return param, true
}

// getRecipeID parses the {id} URL parameter as a positive integer.
func getRecipeID(w http.ResponseWriter, req *http.Request) (int64, bool) {
	raw, ok := getRequiredURLParam(w, req, "id")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeErrorResponse(w, http.StatusBadRequest, "invalid id", "id must be a positive integer")
		return 0, false
	}
	return id, true
}

// handleAndLogError logs an error and writes a standardized error response.
// Use this for all service call failures in handlers.
func (r *Router) handleAndLogError(
	w http.ResponseWriter,
	req *http.Request,
	err error,
	operationName string,
) {
	logger := r.GetLoggerFromContext(req.Context())
	statusCode, errorCode, errorDetails := extractErrorInfo(err)

	logArgs := []any{
		"operation", operationName,
		"error", err,
		"status_code", statusCode,
		"error_code", errorCode,
	}
	if statusCode >= http.StatusInternalServerError {
		logger.Error("operation failed", logArgs...)
	} else {
		logger.Warn("operation failed", logArgs...)
	}

	writeErrorResponseWithCode(w, statusCode, errorCode, apperrors.GetErrorMessage(err), errorDetails)
}
