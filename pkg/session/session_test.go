package session

import (
	"testing"

	"github.com/brunomacedo/vitrinezap-backend/pkg/config"
)

func testConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:            "unit-test-secret",
		Issuer:            "vitrinezap",
		ExpirationMinutes: 60,
	}
}

func TestIssueAndParse(t *testing.T) {
	cfg := testConfig()

	raw, err := Issue(cfg, "cart-123", "store-456")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := Parse(cfg, raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.CartID != "cart-123" {
		t.Errorf("cart id = %q, want cart-123", claims.CartID)
	}
	if claims.StoreID != "store-456" {
		t.Errorf("store id = %q, want store-456", claims.StoreID)
	}
	if claims.Issuer != "vitrinezap" {
		t.Errorf("issuer = %q, want vitrinezap", claims.Issuer)
	}
}

func TestIssueRequiresCartID(t *testing.T) {
	if _, err := Issue(testConfig(), "", ""); err == nil {
		t.Fatal("expected error for empty cart id")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	cfg := testConfig()
	raw, err := Issue(cfg, "cart-123", "")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	other := cfg
	other.Secret = "a-different-secret"
	if _, err := Parse(other, raw); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	cfg := testConfig()
	raw, err := Issue(cfg, "cart-123", "")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	other := cfg
	other.Issuer = "someone-else"
	if _, err := Parse(other, raw); err == nil {
		t.Fatal("expected error for token from another issuer")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse(testConfig(), "not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
