package promo

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
)

// Validator checks a submitted promo code and returns the matching record.
// Validation never mutates state; usage counters move only when an order
// actually applies the code.
type Validator interface {
	Validate(ctx context.Context, code string) (*Code, error)
}

// RepoValidator implements Validator by looking up promo codes from a
// Repository.
type RepoValidator struct {
	repo Repository
}

// NewRepoValidator creates a RepoValidator backed by the given Repository.
func NewRepoValidator(repo Repository) *RepoValidator {
	return &RepoValidator{repo: repo}
}

// Validate looks up the given code (trimmed, case-insensitive) and checks
// that it is active with remaining uses. It returns ErrInvalidCode for
// unknown or inactive codes and ErrUsageLimitReached for exhausted ones.
// Callers handle the empty-code case themselves; an empty code here is
// treated as invalid.
func (v *RepoValidator) Validate(ctx context.Context, code string) (*Code, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrInvalidCode
	}

	pc, err := v.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrInvalidCode) {
			return nil, ErrInvalidCode
		}
		return nil, errors.Wrap(err, "lookup promo code")
	}

	if !pc.Remaining() {
		return nil, ErrUsageLimitReached
	}

	return pc, nil
}
