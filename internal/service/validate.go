package service

import (
	"strings"

	apperrors "recipehub/internal/errors"
)

// required takes name/value pairs and fails on the first blank value.
func required(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return apperrors.Validation(pairs[i] + " is required")
		}
	}
	return nil
}

func positive(name string, v int) error {
	if v <= 0 {
		return apperrors.Validation(name + " must be a positive integer")
	}
	return nil
}
