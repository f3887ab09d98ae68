package authclient

import (
	"fmt"
	"math"
	"reflect"

	"github.com/aussiebroadwan/authclient/pkg/validatex"
)

// MaxExpiresIn is the longest token lifetime a caller may request, 30 days.
const MaxExpiresIn = 2592000

// PasswordInput is the schema of the credential exchange payload.
var PasswordInput = validatex.NewSchema(
	validatex.Field{
		Name:  "email",
		Rules: []validatex.Rule{validatex.IsEmail("InvalidEmail")},
	},
	validatex.Field{
		Name:  "password",
		Rules: []validatex.Rule{validatex.Length(8, 32, "InvalidLength")},
	},
	validatex.Field{
		Name:     "expiresIn",
		Optional: true,
		Rules: []validatex.Rule{
			validatex.IsNumber("InvalidNumber"),
			validatex.Min(0, "Min"),
			validatex.Max(MaxExpiresIn, "Max"),
		},
	},
)

// DecodedTokenInput is the schema a verified token must satisfy.
var DecodedTokenInput = validatex.NewSchema(
	validatex.Field{
		Name:  "id",
		Rules: []validatex.Rule{validatex.IsString(), validatex.Length(24, 24)},
	},
	validatex.Field{
		Name:  "email",
		Rules: []validatex.Rule{validatex.IsEmail()},
	},
	validatex.Field{
		Name:  "role",
		Rules: []validatex.Rule{validatex.IsIn(roleNames())},
	},
	validatex.Field{
		Name:  "iat",
		Rules: []validatex.Rule{validatex.IsNumber()},
	},
	validatex.Field{
		Name:  "exp",
		Rules: []validatex.Rule{validatex.IsNumber()},
	},
)

// NewPasswordInput builds a credential payload. expiresIn is only included
// when non-nil.
func NewPasswordInput(email, password string, expiresIn *int) validatex.Payload {
	raw := map[string]any{
		"email":    email,
		"password": password,
	}
	if expiresIn != nil {
		raw["expiresIn"] = *expiresIn
	}
	return PasswordInput.Build(raw)
}

func roleNames() []string {
	roles := Roles()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return names
}

// decodedToken projects a validated DecodedTokenInput payload onto exactly
// the five claim fields. Timestamps must be whole numbers that fit in an int64.
func decodedToken(p validatex.Payload) (DecodedToken, error) {
	id, _ := p["id"].(string)
	email, _ := p["email"].(string)
	role, _ := p["role"].(string)

	iat, ok := toInt64(p["iat"])
	if !ok {
		return DecodedToken{}, fmt.Errorf("iat %v is not a whole number of seconds", p["iat"])
	}
	exp, ok := toInt64(p["exp"])
	if !ok {
		return DecodedToken{}, fmt.Errorf("exp %v is not a whole number of seconds", p["exp"])
	}

	return DecodedToken{
		ID:    id,
		Email: email,
		Role:  Role(role),
		Iat:   iat,
		Exp:   exp,
	}, nil
}

// toInt64 converts v without loss, reporting false for fractions and
// values outside the int64 range.
func toInt64(v any) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch {
	case rv.CanInt():
		return rv.Int(), true
	case rv.CanUint():
		u := rv.Uint()
		return int64(u), u <= math.MaxInt64
	case rv.CanFloat():
		f := rv.Float()
		// -2^63 is exact in float64, 2^63 is the first value past MaxInt64.
		if f != math.Trunc(f) || f < math.MinInt64 || f >= -math.MinInt64 {
			return 0, false
		}
		return int64(f), true
	default:
		return 0, false
	}
}
