package config

// Validate checks Settings for correctness after defaults have been applied.
func Validate(s *Settings) error {
	var errs []ValidationError

	if s.TimeoutMS == 0 {
		errs = append(errs, ValidationError{
			Field:   "timeout_ms",
			Message: "must be greater than zero",
			Value:   s.TimeoutMS,
			Wrapped: ErrInvalidConfig,
		})
	}

	if s.SandboxUID != nil && s.SandboxUID.Name == "" && s.SandboxUID.UID == 0 {
		errs = append(errs, ValidationError{
			Field:   "sandbox_uid",
			Message: "must name a non-root user or a nonzero uid",
			Wrapped: ErrInvalidConfig,
		})
	}

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}
