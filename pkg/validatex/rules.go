package validatex

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Rule codes reported by the built-in rule constructors.
const (
	CodeIsEmail        = "isEmail"
	CodeIsString       = "isString"
	CodeIsNumber       = "isNumber"
	CodeIsIn           = "isIn"
	CodeLength         = "length"
	CodeMin            = "min"
	CodeMax            = "max"
	CodeNonWhitelisted = "whitelistValidation"
)

// Rule is a single named constraint attached to a field.
type Rule struct {
	// Code identifies the rule in an ArgumentValidationError (e.g. "isEmail").
	Code string

	// Tag is the validator tag expression evaluated against the field value.
	Tag string

	// Message is the human readable text reported when the rule fails.
	Message string
}

// validate is shared by every schema, validator.Validate caches parsed tags
// and is safe for concurrent use.
var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("isnumber", isNumber)
	_ = v.RegisterValidation("isstring", isString)
	return v
}

// isNumber accepts any integer or finite float kind.
func isNumber(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	case reflect.Float32, reflect.Float64:
		v := f.Float()
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	default:
		return false
	}
}

func isString(fl validator.FieldLevel) bool {
	return fl.Field().Kind() == reflect.String
}

// IsEmail requires a string holding a valid email address.
func IsEmail(message ...string) Rule {
	return newRule(CodeIsEmail, "isstring,email", "must be an email", message)
}

// IsString requires a string value.
func IsString(message ...string) Rule {
	return newRule(CodeIsString, "isstring", "must be a string", message)
}

// IsNumber requires a numeric value.
func IsNumber(message ...string) Rule {
	return newRule(CodeIsNumber, "isnumber", "must be a number", message)
}

// Length requires a string whose length in characters is within [minLen, maxLen].
func Length(minLen, maxLen int, message ...string) Rule {
	tag := fmt.Sprintf("isstring,min=%d,max=%d", minLen, maxLen)
	def := fmt.Sprintf("must be between %d and %d characters", minLen, maxLen)
	if minLen == maxLen {
		tag = fmt.Sprintf("isstring,len=%d", minLen)
		def = fmt.Sprintf("must be exactly %d characters", minLen)
	}
	return newRule(CodeLength, tag, def, message)
}

// Min requires a number greater than or equal to n.
func Min(n float64, message ...string) Rule {
	p := formatNumber(n)
	return newRule(CodeMin, "isnumber,min="+p, "must not be less than "+p, message)
}

// Max requires a number less than or equal to n.
func Max(n float64, message ...string) Rule {
	p := formatNumber(n)
	return newRule(CodeMax, "isnumber,max="+p, "must not be greater than "+p, message)
}

// IsIn requires a string equal to one of values.
func IsIn(values []string, message ...string) Rule {
	return newRule(
		CodeIsIn,
		"isstring,oneof="+strings.Join(values, " "),
		"must be one of the following values: "+strings.Join(values, ", "),
		message,
	)
}

func newRule(code, tag, def string, message []string) Rule {
	msg := def
	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}
	return Rule{Code: code, Tag: tag, Message: msg}
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
