package helpers

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTitleCaseCountry(t *testing.T) {
	tests := []struct {
		slug string
		want string
	}{
		{"united-states", "United States"},
		{"india", "India"},
		{"united-kingdom", "United Kingdom"},
		{"österreich", "Österreich"},
		{"côte-d'ivoire", "Côte D'ivoire"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := TitleCaseCountry(tt.slug); got != tt.want {
			t.Errorf("TitleCaseCountry(%q) = %q, want %q", tt.slug, got, tt.want)
		}
	}
}

func TestHeroImageFallback(t *testing.T) {
	if got := HeroImageFor("Italy"); got != HeroImages["Italy"] {
		t.Errorf("HeroImageFor(Italy) = %q", got)
	}
	if got := HeroImageFor("Atlantis"); got != DefaultHeroImage {
		t.Errorf("HeroImageFor(Atlantis) = %q, want the default", got)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	userID := primitive.NewObjectID()
	secret := "test-secret"

	token, err := GenerateToken(secret, userID, "sam", "sam@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.Username != "sam" || claims.Email != "sam@example.com" {
		t.Errorf("claims = %+v", claims)
	}
	got, err := claims.UserID()
	if err != nil {
		t.Fatalf("UserID failed: %v", err)
	}
	if got != userID {
		t.Errorf("user id = %s, want %s", got.Hex(), userID.Hex())
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("right-secret", primitive.NewObjectID(), "sam", "sam@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := ValidateToken("wrong-secret", token); err == nil {
		t.Error("expected verification to fail with the wrong secret")
	}
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	if _, err := GenerateToken("", primitive.NewObjectID(), "sam", "sam@example.com", time.Hour); err == nil {
		t.Error("expected an error for an empty secret")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateToken("secret", primitive.NewObjectID(), "sam", "sam@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := ValidateToken("secret", token); err == nil {
		t.Error("expected an expired token to be rejected")
	}
}
