package config

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       Settings
		wantErr bool
	}{
		{"defaults are valid", DefaultSettings(), false},
		{"zero timeout rejected", Settings{TimeoutMS: 0}, true},
		{"named sandbox user valid", Settings{TimeoutMS: 1000, SandboxUID: &SandboxIdentity{Name: "nobody"}}, false},
		{"empty sandbox identity rejected", Settings{TimeoutMS: 1000, SandboxUID: &SandboxIdentity{}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.s)
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error does not wrap ErrInvalidConfig: %v", err)
			}
		})
	}
}
