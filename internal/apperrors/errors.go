package apperrors

import (
	"errors"
	"fmt"
)

// Domain entity errors represent missing entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrPortfolioNotFound indicates that a portfolio with the given ID does not exist.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrInvestmentNotFound indicates that the portfolio holds no investment with the given ID.
	ErrInvestmentNotFound = errors.New("investment not found")

	// ErrSymbolNotFound indicates that a symbol lookup returned no results.
	ErrSymbolNotFound = errors.New("symbol not found")
)

// ErrInvalidInput is the root of every validation failure. Callers match it
// with errors.Is to map any of the more specific errors below to a 400.
var ErrInvalidInput = errors.New("invalid input")

// Business logic errors represent validation failures or constraint violations.
// All of them wrap ErrInvalidInput.
var (
	// ErrInvalidQuantity indicates a negative quantity.
	ErrInvalidQuantity = fmt.Errorf("%w: quantity cannot be negative", ErrInvalidInput)

	// ErrInvalidPrice indicates a negative price or a non-positive average cost.
	ErrInvalidPrice = fmt.Errorf("%w: invalid price", ErrInvalidInput)

	// ErrInvalidTargetAllocation indicates a target allocation with unknown
	// asset classes, out-of-range percentages or a sum too far from 100.
	ErrInvalidTargetAllocation = fmt.Errorf("%w: invalid target allocation", ErrInvalidInput)

	// ErrInvalidRiskProfile indicates a risk profile label outside the known set.
	ErrInvalidRiskProfile = fmt.Errorf("%w: invalid risk profile", ErrInvalidInput)

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = fmt.Errorf("%w: missing required field", ErrInvalidInput)

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = fmt.Errorf("%w: invalid UUID format", ErrInvalidInput)
)

// Upstream errors are absorbed per symbol during a refresh and only ever
// reported in the refresh summary.
var (
	// ErrPriceUnavailable indicates that the price lookup could not produce a price.
	ErrPriceUnavailable = errors.New("price unavailable")
)

// Operation failure errors are the user-facing messages for failures that are
// neither missing entities nor validation problems.
var (
	ErrFailedToCreatePortfolio     = errors.New("failed to create portfolio")
	ErrFailedToRetrievePortfolio   = errors.New("failed to retrieve portfolio")
	ErrFailedToRetrievePortfolios  = errors.New("failed to retrieve portfolios")
	ErrFailedToDeletePortfolio     = errors.New("failed to delete portfolio")
	ErrFailedToAddInvestment       = errors.New("failed to add investment")
	ErrFailedToUpdateInvestment    = errors.New("failed to update investment")
	ErrFailedToRemoveInvestment    = errors.New("failed to remove investment")
	ErrFailedToRefreshPrices       = errors.New("failed to refresh portfolio prices")
	ErrFailedToAnalyzePortfolio    = errors.New("failed to analyze portfolio")
	ErrFailedToGetVersionInfo      = errors.New("failed to get version information")
	ErrFailedToScoreRiskProfile    = errors.New("failed to score risk profile")
	ErrFailedToAnswerChatMessage   = errors.New("internal server error, please try again")
	ErrFailedToRefreshAllPortfolio = errors.New("failed to refresh portfolios")
)
