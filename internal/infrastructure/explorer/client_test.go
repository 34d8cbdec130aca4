package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"cryptotracker.io/internal/infrastructure/logger"
)

const testAddress = "12cbQLTFMXRnSzktFkuoG3eHoMeFtpTu3S"

// dashboardFixture builds a Blockchair-shaped dashboard body with txCount transactions.
func dashboardFixture(t *testing.T, address string, txCount int) string {
	t.Helper()

	transactions := make([]map[string]any, 0, txCount)
	for i := 0; i < txCount; i++ {
		transactions = append(transactions, map[string]any{
			"block_id":       712000 + i,
			"hash":           fmt.Sprintf("hash-%02d", i),
			"time":           fmt.Sprintf("2022-01-18 23:%02d:15", i%60),
			"balance_change": 1000 * (i + 1),
		})
	}

	body := map[string]any{
		"data": map[string]any{
			address: map[string]any{
				"address": map[string]any{
					"type":         "pubkeyhash",
					"balance":      5460,
					"balance_usd":  2.3254431,
					"received":     1201000,
					"received_usd": 112.4563,
				},
				"transactions": transactions,
			},
		},
		"context": map[string]any{"code": 200},
	}

	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return string(b)
}

// newTestServer serves body for every request and counts hits.
func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

// unreachableURL returns the URL of a server that has already been shut down.
func unreachableURL() string {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()
	return url
}

func TestClient_DashboardURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
	}{
		{
			name:    "default base",
			baseURL: "",
			want:    "https://api.blockchair.com/bitcoin/dashboards/address/" + testAddress + "?transaction_details=true",
		},
		{
			name:    "trailing slash trimmed",
			baseURL: "http://localhost:9000/",
			want:    "http://localhost:9000/bitcoin/dashboards/address/" + testAddress + "?transaction_details=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.baseURL, 0, logger.NewNop())
			if got := client.DashboardURL("bitcoin", testAddress); got != tt.want {
				t.Errorf("DashboardURL() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClient_FetchRaw(t *testing.T) {
	t.Run("reachable URL returns status 200", func(t *testing.T) {
		var accept string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accept = r.Header.Get("Accept")
			if r.Method != http.MethodGet {
				t.Errorf("method = %v, want GET", r.Method)
			}
			_, _ = w.Write([]byte(`{"data":{}}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, 0, logger.NewNop())
		resp := client.FetchRaw(context.Background(), server.URL+"/bitcoin/dashboards/address/x")
		if resp == nil {
			t.Fatal("FetchRaw() = nil, want response")
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("StatusCode = %v, want %v", resp.StatusCode, http.StatusOK)
		}
		if string(resp.Body) != `{"data":{}}` {
			t.Errorf("Body = %q", resp.Body)
		}
		if accept != "application/json" {
			t.Errorf("Accept header = %q, want application/json", accept)
		}
	})

	t.Run("non-2xx status is returned, not swallowed", func(t *testing.T) {
		server, _ := newTestServer(t, http.StatusTooManyRequests, `{"data":null}`)

		client := NewClient(server.URL, 0, logger.NewNop())
		resp := client.FetchRaw(context.Background(), server.URL)
		if resp == nil {
			t.Fatal("FetchRaw() = nil, want response")
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			t.Errorf("StatusCode = %v, want %v", resp.StatusCode, http.StatusTooManyRequests)
		}
	})

	t.Run("unreachable host returns nil", func(t *testing.T) {
		client := NewClient("", 0, logger.NewNop())
		if resp := client.FetchRaw(context.Background(), unreachableURL()); resp != nil {
			t.Errorf("FetchRaw() = %+v, want nil", resp)
		}
	})

	t.Run("malformed URL returns nil", func(t *testing.T) {
		client := NewClient("", 0, logger.NewNop())
		if resp := client.FetchRaw(context.Background(), "://not-a-url"); resp != nil {
			t.Errorf("FetchRaw() = %+v, want nil", resp)
		}
	})

	t.Run("timeout returns nil", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer server.Close()

		client := NewClient(server.URL, 50*time.Millisecond, logger.NewNop())
		if resp := client.FetchRaw(context.Background(), server.URL); resp != nil {
			t.Errorf("FetchRaw() = %+v, want nil", resp)
		}
	})
}

func TestClient_FetchBalance(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		body            string
		wantNil         bool
		wantBalance     int64
		wantBalanceUSD  string
		wantReceived    int64
		wantReceivedUSD string
	}{
		{
			name:            "valid dashboard",
			status:          http.StatusOK,
			body:            dashboardFixture(t, testAddress, 3),
			wantBalance:     5460,
			wantBalanceUSD:  "2.3254431",
			wantReceived:    1201000,
			wantReceivedUSD: "112.4563",
		},
		{
			name:            "numbers encoded as strings",
			status:          http.StatusOK,
			body:            `{"data":{"` + testAddress + `":{"address":{"balance":"42","balance_usd":"0.01","received":"100","received_usd":"1.5"}}}}`,
			wantBalance:     42,
			wantBalanceUSD:  "0.01",
			wantReceived:    100,
			wantReceivedUSD: "1.5",
		},
		{
			name:            "address key differs in case",
			status:          http.StatusOK,
			body:            `{"data":{"` + strings.ToLower(testAddress) + `":{"address":{"balance":1,"balance_usd":0,"received":1,"received_usd":0}}}}`,
			wantBalance:     1,
			wantBalanceUSD:  "0",
			wantReceived:    1,
			wantReceivedUSD: "0",
		},
		{
			name:    "missing balance_usd",
			status:  http.StatusOK,
			body:    `{"data":{"` + testAddress + `":{"address":{"balance":1,"received":1,"received_usd":0}}}}`,
			wantNil: true,
		},
		{
			name:    "balance_usd is null",
			status:  http.StatusOK,
			body:    `{"data":{"` + testAddress + `":{"address":{"balance":1,"balance_usd":null,"received":1,"received_usd":0}}}}`,
			wantNil: true,
		},
		{
			name:    "missing address object",
			status:  http.StatusOK,
			body:    `{"data":{"` + testAddress + `":{"transactions":[]}}}`,
			wantNil: true,
		},
		{
			name:    "address not in data",
			status:  http.StatusOK,
			body:    `{"data":{"someone-else":{"address":{}}}}`,
			wantNil: true,
		},
		{
			name:    "data is an empty array",
			status:  http.StatusOK,
			body:    `{"data":[],"context":{"code":404,"error":"Address not found"}}`,
			wantNil: true,
		},
		{
			name:    "rate limited with null data",
			status:  http.StatusTooManyRequests,
			body:    `{"data":null,"context":{"code":430,"error":"Too many requests"}}`,
			wantNil: true,
		},
		{
			name:    "body is not JSON",
			status:  http.StatusOK,
			body:    `<html>maintenance</html>`,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newTestServer(t, tt.status, tt.body)
			client := NewClient(server.URL, 0, logger.NewNop())

			got := client.FetchBalance(context.Background(), "bitcoin", testAddress)

			if tt.wantNil {
				if got != nil {
					t.Errorf("FetchBalance() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("FetchBalance() = nil, want address")
			}
			if got.AddressID != testAddress {
				t.Errorf("AddressID = %v, want %v", got.AddressID, testAddress)
			}
			if got.CryptoType != "bitcoin" {
				t.Errorf("CryptoType = %v, want bitcoin", got.CryptoType)
			}
			if got.Balance != tt.wantBalance {
				t.Errorf("Balance = %v, want %v", got.Balance, tt.wantBalance)
			}
			if got.Received != tt.wantReceived {
				t.Errorf("Received = %v, want %v", got.Received, tt.wantReceived)
			}
			if !got.BalanceUSD.Equal(decimal.RequireFromString(tt.wantBalanceUSD)) {
				t.Errorf("BalanceUSD = %v, want %v", got.BalanceUSD, tt.wantBalanceUSD)
			}
			if !got.ReceivedUSD.Equal(decimal.RequireFromString(tt.wantReceivedUSD)) {
				t.Errorf("ReceivedUSD = %v, want %v", got.ReceivedUSD, tt.wantReceivedUSD)
			}
		})
	}
}

func TestClient_FetchBalance_Unreachable(t *testing.T) {
	client := NewClient(unreachableURL(), 0, logger.NewNop())
	if got := client.FetchBalance(context.Background(), "bitcoin", testAddress); got != nil {
		t.Errorf("FetchBalance() = %+v, want nil", got)
	}
}

func TestClient_FetchBalance_RequestPath(t *testing.T) {
	var path, query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(dashboardFixture(t, testAddress, 0)))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0, logger.NewNop())
	if got := client.FetchBalance(context.Background(), "bitcoin", testAddress); got == nil {
		t.Fatal("FetchBalance() = nil, want address")
	}

	if path != "/bitcoin/dashboards/address/"+testAddress {
		t.Errorf("path = %v", path)
	}
	if query != "transaction_details=true" {
		t.Errorf("query = %v", query)
	}
}
