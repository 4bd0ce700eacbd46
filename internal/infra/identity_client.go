package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/At1ass/Bakery/internal/domain"
)

// IdentityClient talks to the auth service to resolve bearer tokens
// into caller identities.
type IdentityClient struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *zap.Logger
}

func NewIdentityClient(baseURL string, timeout time.Duration, logger *zap.Logger) *IdentityClient {
	return &IdentityClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
		logger:     logger,
	}
}

// Resolve returns the identity behind credential. An invalid or expired
// credential yields domain.ErrUnauthorized; an unreachable or failing
// auth service yields domain.ErrDependencyUnavailable after one
// immediate retry.
func (c *IdentityClient) Resolve(ctx context.Context, credential string) (*domain.Identity, error) {
	if credential == "" {
		return nil, domain.ErrUnauthorized
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var identity *domain.Identity
	err := doOnce(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/me", nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+credential)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("%w: auth service: %v", domain.ErrDependencyUnavailable, err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			var id domain.Identity
			if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
				return fmt.Errorf("%w: auth service: decode: %v", domain.ErrDependencyUnavailable, err)
			}
			if id.Role == "" {
				id.Role = domain.RoleCustomer
			}
			identity = &id
			return nil
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return domain.ErrUnauthorized
		default:
			return fmt.Errorf("%w: auth service returned status %d", domain.ErrDependencyUnavailable, resp.StatusCode)
		}
	})
	if err != nil {
		c.logger.Warn("identity resolution failed", zap.Error(err))
		return nil, err
	}
	return identity, nil
}
