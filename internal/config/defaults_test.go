package config

import "testing"

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.AllowShell {
		t.Error("AllowShell should default to false")
	}
	if s.TimeoutMS != DefaultTimeoutMS {
		t.Errorf("TimeoutMS = %d, want %d", s.TimeoutMS, DefaultTimeoutMS)
	}
	if s.SandboxUID != nil {
		t.Error("SandboxUID should default to nil")
	}
	if s.AuditLogging {
		t.Error("AuditLogging should default to false")
	}
	if s.DebugMode {
		t.Error("DebugMode should default to false")
	}
}

func TestApplyDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   Settings
		want uint64
	}{
		{"zero timeout filled in", Settings{}, DefaultTimeoutMS},
		{"explicit timeout preserved", Settings{TimeoutMS: 5000}, 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.in
			ApplyDefaults(&s)
			if s.TimeoutMS != tt.want {
				t.Errorf("TimeoutMS = %d, want %d", s.TimeoutMS, tt.want)
			}
		})
	}
}
