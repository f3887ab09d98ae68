// Package validatex declares field constraints on request payloads and checks
// them in a single pass, collecting every violation instead of stopping at the
// first one.
//
// A Schema is an explicit table of fields and their rules. Payloads are plain
// maps restricted to the schema's allow-list at construction time:
//
//	schema := validatex.NewSchema(
//		validatex.Field{Name: "email", Rules: []validatex.Rule{validatex.IsEmail()}},
//		validatex.Field{Name: "password", Rules: []validatex.Rule{validatex.Length(8, 32)}},
//	)
//
//	payload := schema.Build(raw)
//	if _, err := schema.Validate(payload, validatex.Options{}); err != nil {
//		var verr *validatex.ArgumentValidationError
//		if errors.As(err, &verr) && verr.HasError("email", validatex.CodeIsEmail) {
//			// ...
//		}
//	}
package validatex

import (
	"reflect"
)

// Field attaches rules to a single payload key.
type Field struct {
	Name  string
	Rules []Rule

	// Optional fields are only validated when a value is present.
	Optional bool
}

// Schema is an ordered set of fields. The field names form the allow-list of
// keys a payload built from this schema may carry.
type Schema struct {
	fields  []Field
	allowed map[string]struct{}
}

// Options adjusts a single Validate call. The zero value is the strict mode.
type Options struct {
	// SkipMissing skips every field whose value is missing, not only optional ones.
	SkipMissing bool

	// AllowUnknown disables the non-whitelisted key check.
	AllowUnknown bool
}

// Payload is the field-restricted structure that is validated and sent.
type Payload map[string]any

// NewSchema builds a schema from fields in declaration order.
func NewSchema(fields ...Field) *Schema {
	allowed := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		allowed[f.Name] = struct{}{}
	}
	return &Schema{fields: fields, allowed: allowed}
}

// Fields returns the allow-list in declaration order.
func (s *Schema) Fields() []string {
	names := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		names = append(names, f.Name)
	}
	return names
}

// Build copies the allow-listed keys of raw into a new payload.
func (s *Schema) Build(raw map[string]any) Payload {
	return Pick(raw, s.Fields())
}

// Pick copies only the keys named in allowed from raw. Keys missing from raw
// stay missing, extra keys are dropped.
func Pick(raw map[string]any, allowed []string) Payload {
	p := make(Payload, len(allowed))
	for _, key := range allowed {
		if v, ok := raw[key]; ok {
			p[key] = v
		}
	}
	return p
}

// Validate runs every rule of every field against p. On success p itself is
// returned; otherwise the error is an *ArgumentValidationError holding all
// violations.
func (s *Schema) Validate(p Payload, opts Options) (Payload, error) {
	violations := make(map[string]map[string]string)
	add := func(field, code, msg string) {
		if violations[field] == nil {
			violations[field] = make(map[string]string)
		}
		violations[field][code] = msg
	}

	if !opts.AllowUnknown {
		for key := range p {
			if _, ok := s.allowed[key]; !ok {
				add(key, CodeNonWhitelisted, "property "+key+" should not exist")
			}
		}
	}

	for _, f := range s.fields {
		value, missing := lookup(p, f.Name)
		if missing && (f.Optional || opts.SkipMissing) {
			continue
		}

		for _, r := range f.Rules {
			if missing || validate.Var(value, r.Tag) != nil {
				add(f.Name, r.Code, r.Message)
			}
		}
	}

	if len(violations) > 0 {
		return nil, &ArgumentValidationError{Errors: violations}
	}
	return p, nil
}

// lookup returns the dereferenced value of key and whether it is missing.
// Absent keys, nil values and nil pointers all count as missing.
func lookup(p Payload, key string) (any, bool) {
	value, ok := p[key]
	if !ok || value == nil {
		return nil, true
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, true
		}
		rv = rv.Elem()
	}
	return rv.Interface(), false
}
