package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/At1ass/Bakery/internal/domain"
)

// ProductInfo is the catalog snapshot for one product. Price is in
// integer cents.
type ProductInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Available bool   `json:"available"`
}

// CatalogClient resolves product snapshots against the catalog service
// in one batched request, with an optional short-lived Redis cache in
// front of it.
type CatalogClient struct {
	baseURL     string
	httpClient  *http.Client
	timeout     time.Duration
	logger      *zap.Logger
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewCatalogClient(baseURL string, timeout time.Duration, logger *zap.Logger) *CatalogClient {
	return &CatalogClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
		logger:     logger,
	}
}

// WithCache attaches a Redis product snapshot cache. A nil client
// leaves caching disabled.
func (c *CatalogClient) WithCache(client *redis.Client, ttl time.Duration) *CatalogClient {
	c.redisClient = client
	c.cacheTTL = ttl
	return c
}

// wireProduct is the catalog service's representation; prices arrive as
// decimal numbers and are converted to cents on decode.
type wireProduct struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

type batchResponse struct {
	Products map[string]wireProduct `json:"products"`
}

// ResolveBatch fetches name/price/availability for every id in
// productIDs. Ids missing from the returned map do not exist in the
// catalog. The catalog being unreachable or failing yields
// domain.ErrDependencyUnavailable after one immediate retry.
func (c *CatalogClient) ResolveBatch(ctx context.Context, productIDs []string) (map[string]ProductInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resolved := make(map[string]ProductInfo, len(productIDs))

	missing := c.fromCache(ctx, productIDs, resolved)
	if len(missing) == 0 {
		return resolved, nil
	}

	var fetched map[string]ProductInfo
	err := doOnce(ctx, func(ctx context.Context) error {
		var err error
		fetched, err = c.fetchBatch(ctx, missing)
		return err
	})
	if err != nil {
		c.logger.Warn("catalog batch resolution failed", zap.Error(err), zap.Int("ids", len(missing)))
		return nil, err
	}

	for id, p := range fetched {
		resolved[id] = p
		c.toCache(ctx, id, p)
	}
	return resolved, nil
}

func (c *CatalogClient) fetchBatch(ctx context.Context, productIDs []string) (map[string]ProductInfo, error) {
	q := url.Values{"ids": {strings.Join(productIDs, ",")}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products/batch?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: catalog service: %v", domain.ErrDependencyUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: catalog service returned status %d", domain.ErrDependencyUnavailable, resp.StatusCode)
	}

	var body batchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: catalog service: decode: %v", domain.ErrDependencyUnavailable, err)
	}

	out := make(map[string]ProductInfo, len(body.Products))
	for id, p := range body.Products {
		out[id] = ProductInfo{
			ID:        id,
			Name:      p.Name,
			Price:     int64(math.Round(p.Price * 100)),
			Available: p.Available,
		}
	}
	return out, nil
}

// fromCache fills resolved with cached snapshots and returns the ids
// that still need a catalog round trip.
func (c *CatalogClient) fromCache(ctx context.Context, productIDs []string, resolved map[string]ProductInfo) []string {
	if c.redisClient == nil {
		return productIDs
	}

	keys := make([]string, len(productIDs))
	for i, id := range productIDs {
		keys[i] = cacheKey(id)
	}

	values, err := c.redisClient.MGet(ctx, keys...).Result()
	if err != nil {
		return productIDs
	}

	missing := make([]string, 0, len(productIDs))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			missing = append(missing, productIDs[i])
			continue
		}
		var p ProductInfo
		if err := json.Unmarshal([]byte(s), &p); err != nil {
			missing = append(missing, productIDs[i])
			continue
		}
		resolved[productIDs[i]] = p
	}
	return missing
}

func (c *CatalogClient) toCache(ctx context.Context, id string, p ProductInfo) {
	if c.redisClient == nil {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.redisClient.Set(ctx, cacheKey(id), data, c.cacheTTL).Err(); err != nil {
		c.logger.Debug("product cache write failed", zap.String("productId", id), zap.Error(err))
	}
}

func cacheKey(productID string) string {
	return "product:" + productID
}
