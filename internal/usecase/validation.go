package usecase

import (
	"math"
	"net/mail"
	"strings"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

// OrderTotal validates order lines and returns the exact sum of quantity*unitPrice.
func OrderTotal(lines []model.OrderLine) (int64, error) {
	if len(lines) == 0 {
		return 0, domainErrors.Validationf("order must contain at least one line")
	}

	var total int64
	for i, line := range lines {
		if line.ProductID <= 0 {
			return 0, domainErrors.Validationf("line %d: product id must be positive", i)
		}
		if line.Quantity <= 0 {
			return 0, domainErrors.Validationf("line %d: quantity must be positive", i)
		}
		if line.UnitPrice < 0 {
			return 0, domainErrors.Validationf("line %d: unit price must not be negative", i)
		}
		if line.UnitPrice > math.MaxInt64/line.Quantity {
			return 0, domainErrors.Validationf("line %d: subtotal overflows", i)
		}
		subtotal := line.Quantity * line.UnitPrice
		if total > math.MaxInt64-subtotal {
			return 0, domainErrors.Validationf("order total overflows")
		}
		total += subtotal
	}

	return total, nil
}

// NormalizeEmail lowercases and validates an email address.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", domainErrors.Validationf("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", domainErrors.Validationf("malformed email %q", email)
	}
	return email, nil
}
