package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/ppiankov/budget/internal/budget"
)

// enhanceError wraps an error with context and suggestions for common issues.
func enhanceError(action string, err error) error {
	var hint string
	switch {
	case errors.Is(err, budget.ErrConfigurationMissing):
		hint = "Pass --dir, set " + financesEnv + ", or add root: to .budget.yaml"
	case errors.Is(err, budget.ErrNotADirectory):
		hint = "The finances directory must exist and be a directory"
	case errors.Is(err, budget.ErrMalformedCost):
		hint = "Cost lines look like 'cost: 12.50'"
	case errors.Is(err, budget.ErrMalformedLine):
		hint = "Every non-blank line must be 'key: value'; use --keep-going to skip bad files"
	case errors.Is(err, fs.ErrPermission):
		hint = "Check read permissions on the finances directory"
	}

	if hint != "" {
		return fmt.Errorf("%s: %w\n  hint: %s", action, err, hint)
	}
	return fmt.Errorf("%s: %w", action, err)
}

// loadDotEnv reads .env from the working directory when present. Variables
// already set in the environment win.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env", "error", err)
	}
}
