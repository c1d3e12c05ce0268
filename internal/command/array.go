package command

// substituteArray walks an Array-mode CommandSpec tree and returns a copy
// with every templated field expanded against vars, except command[0] at
// every level, which is checked for template syntax and rejected outright:
// argv[0] is never templated, in the spec as authored or after expansion.
func substituteArray(vars map[string]string, spec CommandSpec) (CommandSpec, error) {
	if len(spec.Command) == 0 {
		return CommandSpec{}, errEmptyCommandSpec
	}
	if containsTemplate(spec.Command[0]) {
		return CommandSpec{}, ErrTemplateInCommandPath
	}

	out := spec
	out.Command = append([]string(nil), spec.Command...)

	out.Args = make([]string, len(spec.Args))
	for i, a := range spec.Args {
		out.Args[i] = substitute(vars, a)
	}

	out.WorkingDir = substitute(vars, spec.WorkingDir)
	out.RedirectOut = substitute(vars, spec.RedirectOut)
	out.AppendOut = substitute(vars, spec.AppendOut)
	out.RedirectErr = substitute(vars, spec.RedirectErr)

	out.Env = make([]EnvVar, len(spec.Env))
	for i, e := range spec.Env {
		out.Env[i] = EnvVar{Name: e.Name, Value: substitute(vars, e.Value)}
	}

	out.Pipe = make([]CommandSpec, len(spec.Pipe))
	for i, p := range spec.Pipe {
		sub, err := substituteArray(vars, p)
		if err != nil {
			return CommandSpec{}, err
		}
		out.Pipe[i] = sub
	}

	out.OnSuccessCmds = make([]CommandSpec, len(spec.OnSuccessCmds))
	for i, s := range spec.OnSuccessCmds {
		sub, err := substituteArray(vars, s)
		if err != nil {
			return CommandSpec{}, err
		}
		out.OnSuccessCmds[i] = sub
	}

	out.OnFailureCmds = make([]CommandSpec, len(spec.OnFailureCmds))
	for i, s := range spec.OnFailureCmds {
		sub, err := substituteArray(vars, s)
		if err != nil {
			return CommandSpec{}, err
		}
		out.OnFailureCmds[i] = sub
	}

	return out, nil
}

// buildArrayGraph substitutes and validates an Array-mode CommandSpec, then
// builds its Graph.
func buildArrayGraph(vars map[string]string, spec CommandSpec) (*Graph, error) {
	resolved, err := substituteArray(vars, spec)
	if err != nil {
		return nil, err
	}
	return buildGraph(resolved)
}
