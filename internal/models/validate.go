package models

import (
	"fmt"
	"time"
	"unicode/utf8"

	"stock-board/internal/utils"
)

// Write-boundary validation. Constraints are declared as data per entity and
// walked by the checkers below; reads trust that stored documents already
// passed these checks.

type stringField struct {
	name     string
	value    string
	required bool
	minLen   int
	maxLen   int // 0 means unbounded
}

type counterField struct {
	name  string
	value int
	max   int
}

func newFieldError(field, problem string) *utils.AppError {
	return utils.NewAppError(utils.ErrInvalidInput, fmt.Sprintf("Field %s %s", field, problem), nil)
}

func checkStringFields(fields []stringField) error {
	for _, f := range fields {
		n := utf8.RuneCountInString(f.value)
		if n == 0 {
			if f.required {
				return newFieldError(f.name, "is required")
			}
			continue
		}
		if n < f.minLen {
			return newFieldError(f.name, fmt.Sprintf("must be at least %d characters", f.minLen))
		}
		if f.maxLen > 0 && n > f.maxLen {
			return newFieldError(f.name, fmt.Sprintf("must be at most %d characters", f.maxLen))
		}
	}
	return nil
}

func checkCounterFields(fields []counterField) error {
	for _, f := range fields {
		if f.value < 0 {
			return newFieldError(f.name, "must not be negative")
		}
		if f.value > f.max {
			return newFieldError(f.name, fmt.Sprintf("must be at most %d", f.max))
		}
	}
	return nil
}

func checkRequiredTime(field string, value time.Time) error {
	if value.IsZero() {
		return newFieldError(field, "is required")
	}
	return nil
}
