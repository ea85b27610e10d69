package request

import (
	"errors"
	"regexp"
	"time"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

var (
	// Either 000.000.000-00 or 00000000000. The back-reference rejects mixed separators.
	cpfPattern = regexp2.MustCompile(`^\d{3}(\.?)\d{3}\1\d{3}(-?)\d{2}$`, regexp2.None)

	zipCodePattern = regexp.MustCompile(`^\d{5}-?\d{3}$`)
	phonePattern   = regexp.MustCompile(`^\+?[0-9 ()-]{8,20}$`)
)

var (
	errInvalidCPF       = errors.New("must be a valid CPF (000.000.000-00)")
	errNotPositive      = errors.New("must be greater than zero")
	errNegative         = errors.New("cannot be negative")
	errInvalidLatitude  = errors.New("must be between -90 and 90")
	errInvalidLongitude = errors.New("must be between -180 and 180")
)

var cpfRule = validation.By(func(value interface{}) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	s, _ := v.(string)
	if s == "" {
		return nil
	}

	ok, err := cpfPattern.MatchString(s)
	if err != nil {
		return validation.NewInternalError(err)
	}
	if !ok {
		return errInvalidCPF
	}

	return nil
})

func decimalRule(check func(d decimal.Decimal) error) validation.Rule {
	// validation.Indirect would turn the decimal into its driver.Valuer string.
	return validation.By(func(value interface{}) error {
		switch d := value.(type) {
		case decimal.Decimal:
			return check(d)
		case *decimal.Decimal:
			if d == nil {
				return nil
			}
			return check(*d)
		default:
			return validation.NewInternalError(errors.New("decimal rule used on a non decimal field"))
		}
	})
}

var positiveDecimal = decimalRule(func(d decimal.Decimal) error {
	if !d.IsPositive() {
		return errNotPositive
	}
	return nil
})

var nonNegativeDecimal = decimalRule(func(d decimal.Decimal) error {
	if d.IsNegative() {
		return errNegative
	}
	return nil
})

var latitudeRule = validation.By(func(value interface{}) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	if f, _ := v.(float64); f < -90 || f > 90 {
		return errInvalidLatitude
	}
	return nil
})

var longitudeRule = validation.By(func(value interface{}) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	if f, _ := v.(float64); f < -180 || f > 180 {
		return errInvalidLongitude
	}
	return nil
})

// parseDate reads an optional YYYY-MM-DD value. Call it after Validate.
func parseDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}

	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}

	return &t
}
