package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/niveshai/niveshai-backend/internal/api/response"
	"github.com/niveshai/niveshai-backend/internal/apperrors"
	"github.com/niveshai/niveshai-backend/internal/validation"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into T. Unknown fields and trailing
// data are rejected.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	if r.Body == nil {
		return v, fmt.Errorf("request body is empty")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, fmt.Errorf("request body is empty")
		}
		return v, err
	}
	if dec.More() {
		return v, fmt.Errorf("request body must contain a single JSON object")
	}
	return v, nil
}

// respondServiceError maps a service error to its HTTP status.
// Validation failures report their per-field messages as details; failed is
// the message used for anything that is neither NotFound nor InvalidInput.
func respondServiceError(w http.ResponseWriter, err error, failed error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		response.RespondError(w, http.StatusBadRequest, "validation failed", verr.Fields)
	case errors.Is(err, apperrors.ErrPortfolioNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrInvestmentNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestmentNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrInvalidInput):
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
	default:
		log.Printf("%v: %v", failed, err)
		response.RespondError(w, http.StatusInternalServerError, failed.Error(), err.Error())
	}
}
