package properties

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/propstore/winspskb/pkg/constants"
	"github.com/propstore/winspskb/pkg/errors"
)

// Validate checks definitions for canonical form and key uniqueness. It
// returns one error per violation rather than stopping at the first, so a
// validation pass can report everything wrong with a knowledge base file.
func Validate(defs []*Definition) []error {
	var errs []error

	seen := make(map[Key]bool, len(defs))
	for i, def := range defs {
		if def == nil {
			errs = append(errs, &errors.ValidationError{
				Field:   "definition",
				Value:   fmt.Sprintf("index %d", i),
				Message: "cannot be nil",
			})
			continue
		}

		key := def.Key()
		if seen[key] {
			errs = append(errs, &errors.ValidationError{
				Field:   "key",
				Value:   key.String(),
				Message: "duplicate property key",
			})
		}
		seen[key] = true

		errs = append(errs, validateDefinition(def)...)
	}

	return errs
}

// validateDefinition checks a single definition's fields.
func validateDefinition(def *Definition) []error {
	var errs []error

	if err := validateFormatIdentifier(def.FormatIdentifier); err != nil {
		errs = append(errs, err)
	}

	if len(def.Name) > constants.MaxNameLength {
		errs = append(errs, &errors.ValidationError{
			Field:   "name",
			Value:   def.Key().String(),
			Message: fmt.Sprintf("exceeds %d characters", constants.MaxNameLength),
		})
	}

	if err := validateValueType(def.ValueType); err != nil {
		errs = append(errs, &errors.ValidationError{
			Field:   "value_type",
			Value:   def.ValueType,
			Message: err.Error(),
		})
	}

	return errs
}

// validateFormatIdentifier requires the canonical form: lower-case
// hyphenated GUID text without braces.
func validateFormatIdentifier(fid string) error {
	id, err := uuid.Parse(fid)
	if err != nil || id.String() != fid {
		return &errors.ValidationError{
			Field:   "format_identifier",
			Value:   fid,
			Message: "not in canonical lower-case hyphenated form",
		}
	}
	return nil
}

// validateValueType accepts an empty tag, normalized hexadecimal text
// such as "0x000b", or named tag text such as "VT_LPWSTR" or
// "VT_VECTOR | VT_LPWSTR".
func validateValueType(vt string) error {
	if vt == "" {
		return nil
	}
	if vt != strings.TrimSpace(vt) {
		return fmt.Errorf("has leading or trailing whitespace")
	}

	if strings.HasPrefix(vt, "0x") {
		digits := vt[len("0x"):]
		if len(digits) < 4 || len(digits) > 8 {
			return fmt.Errorf("hexadecimal tag must have 4 to 8 digits")
		}
		for _, r := range digits {
			if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
				return fmt.Errorf("hexadecimal tag must use lower-case digits")
			}
		}
		return nil
	}

	for _, r := range vt {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case r == '_', r == ' ', r == '|', r == '(', r == ')':
		default:
			return fmt.Errorf("contains unsupported character %q", r)
		}
	}
	return nil
}
