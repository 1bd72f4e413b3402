package validation

import (
	"strings"

	"github.com/niveshai/niveshai-backend/internal/api/request"
	"github.com/niveshai/niveshai-backend/internal/apperrors"
	"github.com/niveshai/niveshai-backend/internal/riskprofile"
)

// MaxChatMessageLength bounds the chat message size.
const MaxChatMessageLength = 2000

// ValidateRiskProfile checks that every required question has a known answer.
func ValidateRiskProfile(req request.RiskProfileRequest) error {
	errors := newError()
	for field, msg := range riskprofile.Validate(req.Responses) {
		errors.add(field, msg, apperrors.ErrMissingRequiredField)
	}
	return errors.orNil()
}

// ValidateChat checks the chat message.
func ValidateChat(req request.ChatRequest) error {
	errors := newError()

	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		errors.add("message", "Message is required and must be a string", apperrors.ErrMissingRequiredField)
	} else if len(msg) > MaxChatMessageLength {
		errors.add("message", "message is too long", apperrors.ErrInvalidInput)
	}

	if req.PortfolioID != "" {
		if err := ValidateUUID(req.PortfolioID); err != nil {
			errors.add("portfolioId", err.Error(), apperrors.ErrInvalidUUID)
		}
	}

	return errors.orNil()
}
