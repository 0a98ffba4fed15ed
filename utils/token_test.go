package authUtils

import (
	"testing"

	"civicpulse-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	official := &models.Official{
		ID:    primitive.NewObjectID(),
		Email: "officer@city.gov",
		Role:  models.RoleSupervisor,
	}

	token, err := GenerateToken(official)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.OfficialID != official.ID.Hex() {
		t.Errorf("official_id = %q, want %q", claims.OfficialID, official.ID.Hex())
	}
	if claims.Email != official.Email {
		t.Errorf("email = %q, want %q", claims.Email, official.Email)
	}
	if claims.Role != string(models.RoleSupervisor) {
		t.Errorf("role = %q, want supervisor", claims.Role)
	}
}

func TestParseTokenRejectsTampered(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	official := &models.Official{ID: primitive.NewObjectID(), Email: "a@b.c", Role: models.RoleWardOfficer}
	token, err := GenerateToken(official)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseToken(token + "x"); err == nil {
		t.Error("tampered token accepted")
	}
	if _, err := ParseToken("not-a-token"); err == nil {
		t.Error("garbage token accepted")
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-one")
	official := &models.Official{ID: primitive.NewObjectID(), Email: "a@b.c", Role: models.RoleWardOfficer}
	token, err := GenerateToken(official)
	if err != nil {
		t.Fatal(err)
	}

	t.Setenv("JWT_SECRET", "secret-two")
	if _, err := ParseToken(token); err == nil {
		t.Error("token signed with a different secret accepted")
	}
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	official := &models.Official{ID: primitive.NewObjectID()}
	if _, err := GenerateToken(official); err == nil {
		t.Error("expected error with no JWT_SECRET configured")
	}
}
