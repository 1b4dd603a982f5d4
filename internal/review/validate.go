// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"
)

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// ValidatedGenerate sends req to the backend and returns the reply decoded
// into T. It is the only place raw model output is handled: the reply must
// parse as JSON, satisfy req.Schema, and pass T's validate tags. Call errors
// are returned as-is; every check failure wraps ErrValidation.
func ValidatedGenerate[T any](ctx context.Context, b Backend, req Request) (T, error) {
	var zero T
	raw, err := b.Generate(ctx, req)
	if err != nil {
		return zero, fmt.Errorf("%s backend: %w", b.Name(), err)
	}
	return Validate[T](raw, req.Schema)
}

// Validate checks raw against schema (skipped when nil), decodes it into T,
// and runs struct validation.
func Validate[T any](raw string, schema map[string]any) (T, error) {
	var zero T

	text := stripCodeFence(raw)
	if text == "" {
		return zero, fmt.Errorf("%w: empty response", ErrValidation)
	}

	if schema != nil {
		result, err := gojsonschema.Validate(
			gojsonschema.NewGoLoader(schema),
			gojsonschema.NewStringLoader(text),
		)
		if err != nil {
			return zero, fmt.Errorf("%w: malformed JSON: %v", ErrValidation, err)
		}
		if !result.Valid() {
			msgs := make([]string, 0, len(result.Errors()))
			for _, e := range result.Errors() {
				msgs = append(msgs, e.String())
			}
			return zero, fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
		}
	}

	var out T
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return zero, fmt.Errorf("%w: decoding: %v", ErrValidation, err)
	}

	if err := structValidator.Struct(&out); err != nil {
		var invalid *validator.InvalidValidationError
		if !errors.As(err, &invalid) {
			return zero, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	return out, nil
}

// stripCodeFence removes a surrounding ```json ... ``` fence that some
// models add despite being asked for bare JSON.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = ""
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
