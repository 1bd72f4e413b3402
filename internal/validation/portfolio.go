package validation

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/niveshai/niveshai-backend/internal/analytics"
	"github.com/niveshai/niveshai-backend/internal/api/request"
	"github.com/niveshai/niveshai-backend/internal/apperrors"
	"github.com/niveshai/niveshai-backend/internal/riskprofile"
)

// ValidateCreatePortfolio validates a portfolio creation request.
//
// Required fields:
//   - userId: non-empty
//
// Optional fields (validated if provided):
//   - name: 100 characters or less
//   - description: 500 characters or less
//   - riskProfile: one of the questionnaire profile types
//   - targetAllocation: see ValidateTargetAllocation
func ValidateCreatePortfolio(req request.CreatePortfolioRequest, tolerance float64) error {
	errors := newError()

	if strings.TrimSpace(req.UserID) == "" {
		errors.add("userId", "userId is required", apperrors.ErrMissingRequiredField)
	}

	if len(req.Name) > 100 {
		errors.add("name", "name must be 100 characters or less", apperrors.ErrInvalidInput)
	}

	if len(req.Description) > 500 {
		errors.add("description", "description must be 500 characters or less", apperrors.ErrInvalidInput)
	}

	if req.RiskProfile != "" && !riskprofile.IsValid(req.RiskProfile) {
		errors.add("riskProfile", fmt.Sprintf("invalid risk profile: %s", req.RiskProfile), apperrors.ErrInvalidRiskProfile)
	}

	if req.TargetAllocation != nil {
		if msg := targetAllocationProblem(req.TargetAllocation, tolerance); msg != "" {
			errors.add("targetAllocation", msg, apperrors.ErrInvalidTargetAllocation)
		}
	}

	return errors.orNil()
}

// ValidateTargetAllocation checks that every key is an asset class, every
// percentage is within [0, 100] and the percentages sum to 100 within tolerance.
func ValidateTargetAllocation(alloc map[string]float64, tolerance float64) error {
	if msg := targetAllocationProblem(alloc, tolerance); msg != "" {
		errors := newError()
		errors.add("targetAllocation", msg, apperrors.ErrInvalidTargetAllocation)
		return errors
	}
	return nil
}

func targetAllocationProblem(alloc map[string]float64, tolerance float64) string {
	if len(alloc) == 0 {
		return "targetAllocation must name at least one asset class"
	}

	keys := make([]string, 0, len(alloc))
	for k := range alloc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sum float64
	for _, k := range keys {
		if !analytics.IsAssetClass(k) {
			return fmt.Sprintf("unknown asset class: %s (must be one of: %s)", k, strings.Join(analytics.AssetClasses, ", "))
		}
		v := alloc[k]
		if math.IsNaN(v) || v < 0 || v > 100 {
			return fmt.Sprintf("%s must be between 0 and 100", k)
		}
		sum += v
	}

	if math.Abs(sum-100) > tolerance {
		return fmt.Sprintf("percentages must sum to 100, got %g", sum)
	}
	return ""
}

// ValidateAddInvestment validates an add-investment request.
//
// Required fields:
//   - type: non-empty
//   - name or symbol: at least one
//   - quantity: zero or positive
//   - averagePrice: positive
//
// Optional fields (validated if provided):
//   - currentPrice: zero or positive
//   - purchaseDate: YYYY-MM-DD or RFC3339
func ValidateAddInvestment(req request.AddInvestmentRequest) error {
	errors := newError()

	if strings.TrimSpace(req.Type) == "" {
		errors.add("type", "type is required", apperrors.ErrMissingRequiredField)
	}

	if strings.TrimSpace(req.Name) == "" && strings.TrimSpace(req.Symbol) == "" {
		errors.add("name", "name or symbol is required", apperrors.ErrMissingRequiredField)
	}

	if req.Quantity == nil {
		errors.add("quantity", "quantity is required", apperrors.ErrMissingRequiredField)
	} else if *req.Quantity < 0 {
		errors.add("quantity", "quantity cannot be negative", apperrors.ErrInvalidQuantity)
	}

	if req.AveragePrice == nil {
		errors.add("averagePrice", "averagePrice is required", apperrors.ErrMissingRequiredField)
	} else if *req.AveragePrice <= 0 {
		errors.add("averagePrice", "averagePrice must be positive", apperrors.ErrInvalidPrice)
	}

	if req.CurrentPrice != nil && *req.CurrentPrice < 0 {
		errors.add("currentPrice", "currentPrice cannot be negative", apperrors.ErrInvalidPrice)
	}

	if req.PurchaseDate != "" {
		if _, err := ParseDate(req.PurchaseDate); err != nil {
			errors.add("purchaseDate", err.Error(), apperrors.ErrInvalidInput)
		}
	}

	if len(errors.Fields) == 0 {
		currentPrice := *req.AveragePrice
		if req.CurrentPrice != nil {
			currentPrice = *req.CurrentPrice
		}
		if err := ValidateHolding(*req.Quantity, *req.AveragePrice, currentPrice); err != nil {
			return err
		}
	}

	return errors.orNil()
}

// MaxHoldingValue bounds quantity × price of a single investment (₹1000
// trillion). Larger products lose precision and eventually overflow the
// derived fields to ±Inf, which cannot be encoded as JSON.
const MaxHoldingValue = 1e15

// ValidateHolding checks that the invested amount and current value implied
// by quantity, averageCost and currentPrice stay within MaxHoldingValue.
// Signs are checked by the request validators.
func ValidateHolding(quantity, averageCost, currentPrice float64) error {
	errors := newError()

	if !withinHoldingLimit(quantity, averageCost) {
		errors.add("quantity", fmt.Sprintf("quantity × averagePrice exceeds %g", MaxHoldingValue), apperrors.ErrInvalidQuantity)
	}
	if !withinHoldingLimit(quantity, currentPrice) {
		errors.add("currentPrice", fmt.Sprintf("quantity × currentPrice exceeds %g", MaxHoldingValue), apperrors.ErrInvalidPrice)
	}

	return errors.orNil()
}

func withinHoldingLimit(quantity, price float64) bool {
	v := quantity * price
	return !math.IsNaN(v) && math.Abs(v) <= MaxHoldingValue
}

// ValidateUpdateInvestment validates an update-investment request.
// All fields are optional, but at least one must be provided, and provided
// fields must meet the same constraints as on create.
func ValidateUpdateInvestment(req request.UpdateInvestmentRequest) error {
	errors := newError()

	if req.IsEmpty() {
		errors.add("request", "at least one field must be provided", apperrors.ErrMissingRequiredField)
		return errors
	}

	if req.Quantity != nil && *req.Quantity < 0 {
		errors.add("quantity", "quantity cannot be negative", apperrors.ErrInvalidQuantity)
	}

	if req.AveragePrice != nil && *req.AveragePrice <= 0 {
		errors.add("averagePrice", "averagePrice must be positive", apperrors.ErrInvalidPrice)
	}

	if req.CurrentPrice != nil && *req.CurrentPrice < 0 {
		errors.add("currentPrice", "currentPrice cannot be negative", apperrors.ErrInvalidPrice)
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors.add("name", "name cannot be empty", apperrors.ErrInvalidInput)
	}

	return errors.orNil()
}
