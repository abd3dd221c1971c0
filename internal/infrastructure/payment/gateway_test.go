package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testGateway(t *testing.T, handler http.HandlerFunc) *Gateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGateway(Config{
		BaseURL:    srv.URL,
		MerchantID: "m-1",
		PublicKey:  "pub",
		PrivateKey: "priv",
	}, nil)
}

func TestClientToken(t *testing.T) {
	t.Parallel()

	g := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/merchants/m-1/client_token" {
			t.Errorf("path = %q", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "pub" || pass != "priv" {
			t.Errorf("basic auth = %q %q %v", user, pass, ok)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"client_token": "ct-123"})
	})

	token, err := g.ClientToken(context.Background())
	if err != nil {
		t.Fatalf("ClientToken error: %v", err)
	}
	if token != "ct-123" {
		t.Fatalf("token = %q, want %q", token, "ct-123")
	}
}

func TestSale(t *testing.T) {
	t.Parallel()

	g := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/merchants/m-1/transactions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var payload struct {
			AmountCents int64  `json:"amount_cents"`
			Nonce       string `json:"payment_method_nonce"`
			Options     struct {
				SubmitForSettlement bool `json:"submit_for_settlement"`
			} `json:"options"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode: %v", err)
		}
		if payload.AmountCents != 4200 || payload.Nonce != "nonce-1" || !payload.Options.SubmitForSettlement {
			t.Errorf("payload = %+v", payload)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"transaction": map[string]any{"id": "tx-9", "status": "submitted_for_settlement", "amount_cents": 4200},
		})
	})

	tx, err := g.Sale(context.Background(), 4200, "nonce-1")
	if err != nil {
		t.Fatalf("Sale error: %v", err)
	}
	if tx.ID != "tx-9" || tx.AmountCents != 4200 {
		t.Fatalf("transaction = %+v", tx)
	}
}

func TestSale_Declined(t *testing.T) {
	t.Parallel()

	g := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "insufficient funds"})
	})

	_, err := g.Sale(context.Background(), 4200, "nonce-1")
	if err == nil {
		t.Fatal("Sale succeeded on decline")
	}
	if !strings.Contains(err.Error(), "insufficient funds") {
		t.Fatalf("error = %v", err)
	}
}

func TestSale_OpaqueError(t *testing.T) {
	t.Parallel()

	g := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := g.Sale(context.Background(), 4200, "nonce-1")
	if err == nil {
		t.Fatal("Sale succeeded on gateway failure")
	}
	if !strings.Contains(err.Error(), "status 502") {
		t.Fatalf("error = %v", err)
	}
}
