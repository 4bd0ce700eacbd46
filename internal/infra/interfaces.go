package infra

import (
	"context"

	"github.com/At1ass/Bakery/internal/domain"
)

// IdentityVerifier resolves a bearer credential to a caller identity.
type IdentityVerifier interface {
	Resolve(ctx context.Context, credential string) (*domain.Identity, error)
}

// CatalogResolver returns the authoritative product snapshot for a set
// of product ids in a single batched call. Ids absent from the result
// do not exist in the catalog.
type CatalogResolver interface {
	ResolveBatch(ctx context.Context, productIDs []string) (map[string]ProductInfo, error)
}

var (
	_ IdentityVerifier = (*IdentityClient)(nil)
	_ CatalogResolver  = (*CatalogClient)(nil)
)
