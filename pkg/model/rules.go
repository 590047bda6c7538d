package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Present fails when the value is missing, null or a blank string
func Present(field string) validation.Rule {
	return validation.By(func(value interface{}) error {
		if isBlank(value) {
			return fmt.Errorf("The %s field is required.", field)
		}
		return nil
	})
}

// IsString fails when a present value is not a JSON string
func IsString(field string) validation.Rule {
	return validation.By(func(value interface{}) error {
		if value == nil {
			return nil
		}
		if _, ok := value.(string); !ok {
			return fmt.Errorf("The %s field must be a string.", field)
		}
		return nil
	})
}

// MaxChars fails when a string is longer than max characters
func MaxChars(field string, max int) validation.Rule {
	return validation.RuneLength(0, max).
		Error(fmt.Sprintf("The %s field must not be greater than %d characters.", field, max))
}

// MinChars fails when a string is shorter than min characters
func MinChars(field string, min int) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, ok := value.(string)
		if ok && utf8.RuneCountInString(s) < min {
			return fmt.Errorf("The %s field must be at least %d characters.", field, min)
		}
		return nil
	})
}

// IsNumber fails when a present value is neither a JSON number nor a numeric string
func IsNumber(field string) validation.Rule {
	return validation.By(func(value interface{}) error {
		if value == nil {
			return nil
		}
		if _, err := ToFloat(value); err != nil {
			return fmt.Errorf("The %s field must be a number.", field)
		}
		return nil
	})
}

// GreaterThanZero fails when a numeric value is zero or negative
func GreaterThanZero(field string) validation.Rule {
	return validation.By(func(value interface{}) error {
		f, err := ToFloat(value)
		if err == nil && f <= 0 {
			return fmt.Errorf("The %s field must be greater than 0.", field)
		}
		return nil
	})
}

// MaxDecimals fails when a numeric value carries more than places decimal digits
func MaxDecimals(field string, places int) validation.Rule {
	return validation.By(func(value interface{}) error {
		f, err := ToFloat(value)
		if err == nil && decimalPlaces(f) > places {
			return fmt.Errorf("The %s field must have 0-%d decimal places.", field, places)
		}
		return nil
	})
}

// MaxNumber fails when a numeric value is above limit
func MaxNumber(field string, limit float64) validation.Rule {
	return validation.By(func(value interface{}) error {
		f, err := ToFloat(value)
		if err == nil && f > limit {
			return fmt.Errorf("The %s field must not be greater than %s.", field, strconv.FormatFloat(limit, 'f', -1, 64))
		}
		return nil
	})
}

var errNotNumeric = errors.New("value is not numeric")

// decimalPlaces counts the digits after the point in the shortest decimal form of f
func decimalPlaces(f float64) int {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// ToFloat converts decoded JSON numbers and numeric strings to float64
func ToFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, errNotNumeric
		}
		return f, nil
	default:
		return 0, errNotNumeric
	}
}

func isBlank(value interface{}) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
