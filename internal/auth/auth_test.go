package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := TokenIssuer{Secret: []byte("test-secret"), TTL: time.Hour}
	sess := Session{
		SubjectID:      "u1",
		Role:           RoleStaff,
		MunicipalityID: "m1",
		Name:           "Operator",
	}

	token, err := issuer.Issue(sess)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	got, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got != sess {
		t.Fatalf("expected %+v, got %+v", sess, got)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := TokenIssuer{Secret: []byte("test-secret"), TTL: time.Hour}
	token, err := issuer.Issue(Session{SubjectID: "u1", Role: RoleCitizen})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	other := TokenIssuer{Secret: []byte("different-secret")}
	if _, err := other.Parse(token); err == nil {
		t.Fatalf("expected token signed with another secret to be rejected")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuer := TokenIssuer{Secret: []byte("test-secret"), TTL: time.Millisecond}
	token, err := issuer.Issue(Session{SubjectID: "u1", Role: RoleCitizen})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, err := issuer.Parse(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !CheckPassword(hash, "s3cret") {
		t.Fatalf("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatalf("expected non-matching password to fail")
	}
}
