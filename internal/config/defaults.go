package config

// Default values for Settings fields absent from the root config.
const (
	DefaultTimeoutMS = uint64(30000)
)

// DefaultSettings returns a Settings populated with the compiled defaults.
func DefaultSettings() Settings {
	return Settings{
		AllowShell:   false,
		TimeoutMS:    DefaultTimeoutMS,
		SandboxUID:   nil,
		AuditLogging: false,
		DebugMode:    false,
	}
}

// ApplyDefaults fills zero-valued fields of s with compiled defaults.
// YAML unmarshaling leaves fields absent from the document at their Go
// zero value, which for TimeoutMS (0) is never a sensible setting, so it
// is the one field that needs an explicit fill-in after decode.
func ApplyDefaults(s *Settings) {
	if s.TimeoutMS == 0 {
		s.TimeoutMS = DefaultTimeoutMS
	}
}
