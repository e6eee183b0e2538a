package token_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mytodoapp/todo/internal/apperrors"
	"github.com/mytodoapp/todo/internal/auth/token"
	"github.com/mytodoapp/todo/internal/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newCodec(t *testing.T, accessTTL, refreshTTL time.Duration) *token.Codec {
	t.Helper()
	codec, err := token.NewCodec(&token.Config{
		Secret:          testSecret,
		Issuer:          "todo-test",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: refreshTTL,
	})
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}
	return codec
}

// ---------------------------------------------------------------------------
// Issue / Parse round trip
// ---------------------------------------------------------------------------

func TestCodec_IssueAccess_RoundTrip(t *testing.T) {
	codec := newCodec(t, 15*time.Minute, time.Hour)

	signed, err := codec.IssueAccess("alice@example.com", domain.RoleUser, 42)
	if err != nil {
		t.Fatalf("IssueAccess failed: %v", err)
	}

	claims, err := codec.Parse(signed)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.Subject != "alice@example.com" {
		t.Errorf("expected subject alice@example.com, got %s", claims.Subject)
	}
	if claims.Role != "USER" {
		t.Errorf("expected role USER, got %s", claims.Role)
	}
	if claims.UserID != 42 {
		t.Errorf("expected userId 42, got %d", claims.UserID)
	}
	if claims.Issuer != "todo-test" {
		t.Errorf("expected issuer todo-test, got %s", claims.Issuer)
	}
}

func TestCodec_IssueRefresh_NoRoleClaims(t *testing.T) {
	codec := newCodec(t, 15*time.Minute, time.Hour)

	signed, err := codec.IssueRefresh("alice@example.com")
	if err != nil {
		t.Fatalf("IssueRefresh failed: %v", err)
	}

	claims, err := codec.Parse(signed)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.Role != "" {
		t.Errorf("refresh token must not carry a role, got %s", claims.Role)
	}
	if claims.UserID != 0 {
		t.Errorf("refresh token must not carry a userId, got %d", claims.UserID)
	}
}

// ---------------------------------------------------------------------------
// Rejection paths
// ---------------------------------------------------------------------------

func TestCodec_Parse_Expired(t *testing.T) {
	codec := newCodec(t, -time.Minute, time.Hour)

	signed, err := codec.IssueAccess("alice@example.com", domain.RoleUser, 1)
	if err != nil {
		t.Fatalf("IssueAccess failed: %v", err)
	}

	_, err = codec.Parse(signed)
	if err == nil {
		t.Fatal("expected error for expired token")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeInvalidToken {
		t.Fatalf("expected INVALID_TOKEN, got %v", err)
	}
}

func TestCodec_Parse_TamperedSignature(t *testing.T) {
	codec := newCodec(t, 15*time.Minute, time.Hour)

	signed, err := codec.IssueAccess("alice@example.com", domain.RoleUser, 1)
	if err != nil {
		t.Fatalf("IssueAccess failed: %v", err)
	}

	tampered := signed[:len(signed)-4] + "AAAA"
	if _, err := codec.Parse(tampered); err == nil {
		t.Fatal("expected error for tampered signature")
	}
}

func TestCodec_Parse_WrongSecret(t *testing.T) {
	codec := newCodec(t, 15*time.Minute, time.Hour)
	other, err := token.NewCodec(&token.Config{
		Secret:          strings.Repeat("x", 32),
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}

	signed, err := other.IssueAccess("alice@example.com", domain.RoleUser, 1)
	if err != nil {
		t.Fatalf("IssueAccess failed: %v", err)
	}
	if _, err := codec.Parse(signed); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}
}

func TestCodec_Parse_Garbage(t *testing.T) {
	codec := newCodec(t, 15*time.Minute, time.Hour)
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := codec.Parse(tok); err == nil {
			t.Errorf("expected error for %q", tok)
		}
	}
}

// ---------------------------------------------------------------------------
// ExtractSubject
// ---------------------------------------------------------------------------

func TestCodec_ExtractSubject_IgnoresExpiry(t *testing.T) {
	codec := newCodec(t, -time.Minute, time.Hour)

	signed, err := codec.IssueAccess("alice@example.com", domain.RoleUser, 1)
	if err != nil {
		t.Fatalf("IssueAccess failed: %v", err)
	}

	// Parse refuses the expired token, but the subject is still extractable
	// because the signature verifies.
	if _, err := codec.Parse(signed); err == nil {
		t.Fatal("expected Parse to reject expired token")
	}
	subject, err := codec.ExtractSubject(signed)
	if err != nil {
		t.Fatalf("ExtractSubject failed: %v", err)
	}
	if subject != "alice@example.com" {
		t.Errorf("expected alice@example.com, got %s", subject)
	}
}

func TestCodec_ExtractSubject_BadSignature(t *testing.T) {
	codec := newCodec(t, 15*time.Minute, time.Hour)

	signed, err := codec.IssueRefresh("alice@example.com")
	if err != nil {
		t.Fatalf("IssueRefresh failed: %v", err)
	}

	tampered := signed[:len(signed)-4] + "AAAA"
	if _, err := codec.ExtractSubject(tampered); err == nil {
		t.Fatal("expected error for tampered signature")
	}
}

// ---------------------------------------------------------------------------
// IsValid
// ---------------------------------------------------------------------------

func TestCodec_IsValid(t *testing.T) {
	codec := newCodec(t, 15*time.Minute, time.Hour)
	expired := newCodec(t, -2*time.Minute, -time.Minute+time.Hour)

	fresh, err := codec.IssueRefresh("alice@example.com")
	if err != nil {
		t.Fatalf("IssueRefresh failed: %v", err)
	}

	tests := []struct {
		name    string
		token   string
		subject string
		want    bool
	}{
		{"valid token and subject", fresh, "alice@example.com", true},
		{"subject mismatch", fresh, "bob@example.com", false},
		{"garbage token", "nope", "alice@example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := codec.IsValid(tt.token, tt.subject); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}

	// Expired tokens fail IsValid even with the right subject.
	old, err := expired.IssueAccess("alice@example.com", domain.RoleUser, 1)
	if err != nil {
		t.Fatalf("IssueAccess failed: %v", err)
	}
	if expired.IsValid(old, "alice@example.com") {
		t.Error("expected IsValid to reject expired token")
	}
}

// ---------------------------------------------------------------------------
// Config
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     token.Config
		wantErr bool
	}{
		{
			name:    "valid",
			cfg:     token.Config{Secret: testSecret, AccessTokenTTL: 15 * time.Minute, RefreshTokenTTL: time.Hour},
			wantErr: false,
		},
		{
			name:    "missing secret",
			cfg:     token.Config{AccessTokenTTL: 15 * time.Minute, RefreshTokenTTL: time.Hour},
			wantErr: true,
		},
		{
			name:    "short secret",
			cfg:     token.Config{Secret: "too-short", AccessTokenTTL: 15 * time.Minute, RefreshTokenTTL: time.Hour},
			wantErr: true,
		},
		{
			name:    "refresh not longer than access",
			cfg:     token.Config{Secret: testSecret, AccessTokenTTL: time.Hour, RefreshTokenTTL: time.Hour},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := token.Config{Secret: testSecret}
	cfg.ApplyDefaults()
	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Errorf("expected default access TTL 15m, got %s", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 7*24*time.Hour {
		t.Errorf("expected default refresh TTL 168h, got %s", cfg.RefreshTokenTTL)
	}
}

func TestCodec_AccessTTLMillis(t *testing.T) {
	codec := newCodec(t, 15*time.Minute, time.Hour)
	if got := codec.AccessTTLMillis(); got != 900000 {
		t.Errorf("expected 900000, got %d", got)
	}
}
