package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyService fetches exchange rates from a fixer.io-compatible API.
// Rates are cached in Redis for an hour; the cache is optional (nil skips
// caching).
type CurrencyService struct {
	baseURL string
	apiKey  string
	client  *http.Client
	cache   *RedisCache
}

const rateCacheTTL = time.Hour

func NewCurrencyService(cache *RedisCache) *CurrencyService {
	base := os.Getenv("CURRENCY_API_URL")
	if base == "" {
		base = "https://data.fixer.io"
	}
	return &CurrencyService{
		baseURL: base,
		apiKey:  os.Getenv("CURRENCY_API_KEY"),
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
	}
}

type convertResponse struct {
	Success bool        `json:"success"`
	Result  json.Number `json:"result"`
	Error   struct {
		Code int    `json:"code"`
		Type string `json:"type"`
	} `json:"error"`
}

// Rate returns the conversion rate from one currency to another.
func (s *CurrencyService) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	fetch := func() (string, error) {
		rate, err := s.fetchRate(ctx, from, to)
		if err != nil {
			return "", err
		}
		return rate.String(), nil
	}

	var rateStr string
	var err error
	if s.cache != nil {
		key := fmt.Sprintf("fx:%s:%s", from, to)
		rateStr, err = GetOrSet(s.cache, ctx, key, rateCacheTTL, fetch)
	} else {
		rateStr, err = fetch()
	}
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(rateStr)
}

// Convert converts an amount from one currency to another.
func (s *CurrencyService) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	rate, err := s.Rate(ctx, from, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to convert currency: %w", err)
	}
	return amount.Mul(rate), nil
}

func (s *CurrencyService) fetchRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	params := url.Values{}
	params.Set("access_key", s.apiKey)
	params.Set("from", from)
	params.Set("to", to)
	params.Set("amount", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/api/convert?%s", s.baseURL, params.Encode()), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decimal.Zero, fmt.Errorf("rate request failed with status %d", resp.StatusCode)
	}

	var parsed convertResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode rate response: %w", err)
	}
	if !parsed.Success {
		return decimal.Zero, fmt.Errorf("rate request rejected: %s (code %d)", parsed.Error.Type, parsed.Error.Code)
	}

	rate, err := decimal.NewFromString(parsed.Result.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid rate %q: %w", parsed.Result, err)
	}
	return rate, nil
}
