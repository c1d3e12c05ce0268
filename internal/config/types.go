// Package config defines Cupcake's process-wide Settings: the handful of
// global knobs (shell permission, timeout, sandbox identity, audit and
// debug flags) loaded once per invocation from the root policy config's
// settings: section.
package config

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Settings holds the process-wide configuration loaded once per invocation.
type Settings struct {
	AllowShell   bool             `yaml:"allow_shell"`
	TimeoutMS    uint64           `yaml:"timeout_ms"`
	SandboxUID   *SandboxIdentity `yaml:"sandbox_uid"`
	AuditLogging bool             `yaml:"audit_logging"`
	DebugMode    bool             `yaml:"debug_mode"`
}

// SandboxIdentity is the optional uid drop target for shell-mode execution.
// It accepts either a numeric uid or a user name in YAML, matching the
// NumericOrName convention from the data model.
type SandboxIdentity struct {
	UID  uint32
	Name string
}

// UnmarshalYAML implements custom decoding so sandbox_uid may be written as
// either an integer or a string in policy YAML.
func (s *SandboxIdentity) UnmarshalYAML(value *yaml.Node) error {
	var asInt int
	if err := value.Decode(&asInt); err == nil {
		s.UID = uint32(asInt)
		return nil
	}

	var asString string
	if err := value.Decode(&asString); err != nil {
		return fmt.Errorf("config: sandbox_uid must be an integer or a string: %w", err)
	}

	if uid, err := strconv.ParseUint(asString, 10, 32); err == nil {
		s.UID = uint32(uid)
		return nil
	}
	s.Name = asString
	return nil
}
