// Package command implements the Command Executor: the security-critical
// component that turns a policy-authored CommandSpec into a spawned
// process tree, in one of three modes (array, string, shell), with
// template substitution, timeouts, and — for shell mode — a permission
// gate, privilege drop, and audit logging.
package command

import "gopkg.in/yaml.v3"

// Mode discriminates CommandSpec's three execution modes.
type Mode int

const (
	// ModeArray is the canonical, safe form: argv[0] is never templated
	// and the process is always spawned directly, never through a shell.
	ModeArray Mode = iota
	// ModeString is parsed by a limited grammar into an Array equivalent.
	ModeString
	// ModeShell is forbidden unless the global setting allow_shell is true.
	ModeShell
)

// EnvVar is a single environment variable assignment for Array mode.
type EnvVar struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// CommandSpec is the tagged union over the three execution modes. Exactly
// one of the mode-specific field groups is populated, selected by Mode.
type CommandSpec struct {
	Mode Mode `yaml:"-"`

	// Array mode.
	Command       []string      `yaml:"command"`
	Args          []string      `yaml:"args,omitempty"`
	WorkingDir    string        `yaml:"working_dir,omitempty"`
	Env           []EnvVar      `yaml:"env,omitempty"`
	Pipe          []CommandSpec `yaml:"pipe,omitempty"`
	RedirectOut   string        `yaml:"redirect_stdout,omitempty"`
	AppendOut     string        `yaml:"append_stdout,omitempty"`
	RedirectErr   string        `yaml:"redirect_stderr,omitempty"`
	MergeStderr   bool          `yaml:"merge_stderr,omitempty"`
	OnSuccessCmds []CommandSpec `yaml:"on_success,omitempty"`
	OnFailureCmds []CommandSpec `yaml:"on_failure,omitempty"`

	// String mode.
	CommandLine string `yaml:"-"`

	// Shell mode.
	Script string `yaml:"-"`
}

// UnmarshalYAML implements custom decoding so the YAML author writes one of
// three shapes — { command: [...] }, { command: "..." }, { script: "..." }
// — and the resulting CommandSpec carries the right Mode.
func (c *CommandSpec) UnmarshalYAML(value *yaml.Node) error {
	var probe struct {
		Command  any      `yaml:"command"`
		Args     []string `yaml:"args"`
		Script   *string  `yaml:"script"`
		WorkDir  string   `yaml:"working_dir"`
		Env      []EnvVar `yaml:"env"`
		Pipe     []CommandSpec
		RedirOut string        `yaml:"redirect_stdout"`
		AppOut   string        `yaml:"append_stdout"`
		RedirErr string        `yaml:"redirect_stderr"`
		Merge    bool          `yaml:"merge_stderr"`
		OnSucc   []CommandSpec `yaml:"on_success"`
		OnFail   []CommandSpec `yaml:"on_failure"`
	}
	if err := value.Decode(&probe); err != nil {
		return err
	}

	if probe.Script != nil {
		c.Mode = ModeShell
		c.Script = *probe.Script
		return nil
	}

	switch v := probe.Command.(type) {
	case string:
		c.Mode = ModeString
		c.CommandLine = v
		return nil
	case []any:
		c.Mode = ModeArray
		c.Command = make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				c.Command = append(c.Command, s)
			}
		}
		c.Args = probe.Args
		c.WorkingDir = probe.WorkDir
		c.Env = probe.Env
		c.Pipe = probe.Pipe
		c.RedirectOut = probe.RedirOut
		c.AppendOut = probe.AppOut
		c.RedirectErr = probe.RedirErr
		c.MergeStderr = probe.Merge
		c.OnSuccessCmds = probe.OnSucc
		c.OnFailureCmds = probe.OnFail
		return nil
	default:
		return errEmptyCommandSpec
	}
}
