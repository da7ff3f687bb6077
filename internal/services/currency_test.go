package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCurrencyServiceConvert(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.URL.Query().Get("from") != "EUR" || r.URL.Query().Get("to") != "USD" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"result":1.25}`))
	}))
	defer server.Close()

	svc := &CurrencyService{
		baseURL: server.URL,
		apiKey:  "test-key",
		client:  server.Client(),
	}

	got, err := svc.Convert(context.Background(), decimal.NewFromInt(80), "EUR", "USD")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if want := decimal.NewFromInt(100); !got.Equal(want) {
		t.Errorf("Convert = %s; want %s", got, want)
	}
	if gotPath != "/api/convert" {
		t.Errorf("request path = %q; want /api/convert", gotPath)
	}
}

func TestCurrencyServiceSameCurrency(t *testing.T) {
	svc := &CurrencyService{} // no HTTP client needed; must not be called
	got, err := svc.Convert(context.Background(), decimal.NewFromInt(42), "USD", "USD")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if want := decimal.NewFromInt(42); !got.Equal(want) {
		t.Errorf("Convert = %s; want %s", got, want)
	}
}

func TestCurrencyServiceAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false,"error":{"code":101,"type":"invalid_access_key"}}`))
	}))
	defer server.Close()

	svc := &CurrencyService{
		baseURL: server.URL,
		client:  server.Client(),
	}

	if _, err := svc.Rate(context.Background(), "EUR", "USD"); err == nil {
		t.Error("Rate succeeded on API error response; want error")
	}
}
