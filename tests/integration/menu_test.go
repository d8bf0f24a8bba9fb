//go:build integration

package integration

import (
	"net/http"
	"strings"
	"testing"
)

func TestMenu_RendersOrderForm(t *testing.T) {
	resp := doGet(t, "/")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Fatalf("Content-Type: got %q, want text/html", ct)
	}

	body := readBody(t, resp)
	for _, want := range []string{"Margherita", "14.99", "pizza_id", "quantity", "customer_name", "promo_code"} {
		if !strings.Contains(body, want) {
			t.Errorf("menu page missing %q", want)
		}
	}
}

func TestMenuJSON(t *testing.T) {
	resp := doGet(t, "/api/menu")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("Content-Type: got %q, want application/json", ct)
	}

	items := decodeJSON[[]menuItemResponse](t, resp)
	if len(items) != 8 {
		t.Fatalf("expected 8 items, got %d", len(items))
	}

	for _, item := range items {
		if item.ID <= 0 {
			t.Errorf("item %q: id %d, want > 0", item.Name, item.ID)
		}
		if item.Name == "" {
			t.Error("item with empty name")
		}
		if item.Price <= 0 {
			t.Errorf("item %q: price %v, want > 0", item.Name, item.Price)
		}
	}
}
