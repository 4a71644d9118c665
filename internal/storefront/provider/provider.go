package provider

import (
	"context"
	"errors"

	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
)

// ErrTemporary marks failures worth retrying: timeouts, connection errors,
// 429 and 5xx responses.
var ErrTemporary = errors.New("temporary provider error")

type Provider interface {
	Name() string
	Search(ctx context.Context, c entity.SearchCriteria) ([]entity.Flight, error)
}
