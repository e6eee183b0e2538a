package domain_test

import (
	"testing"

	"github.com/mytodoapp/todo/internal/domain"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.Role
		wantErr bool
	}{
		{"USER", domain.RoleUser, false},
		{"ADMIN", domain.RoleAdmin, false},
		{"", "", true},
		{"user", "", true},
		{"SUPERADMIN", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseRole(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRole(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRole(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRole_Valid(t *testing.T) {
	if !domain.RoleUser.Valid() || !domain.RoleAdmin.Valid() {
		t.Error("expected USER and ADMIN to be valid")
	}
	if domain.Role("GUEST").Valid() {
		t.Error("expected GUEST to be invalid")
	}
}
