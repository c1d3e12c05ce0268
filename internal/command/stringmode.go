package command

import (
	"strings"

	"github.com/junegunn/go-shellwords"
)

// forbiddenSubstrings are string-mode constructs that the limited grammar
// rejects outright, regardless of where they appear in the line. Command
// substitution and backticks would let a templated value run an arbitrary
// second command; that defeats the purpose of String mode existing at all.
var forbiddenSubstrings = []string{"$(", "`", "2>&1"}

// buildStringGraph parses a String-mode command line into a Graph. line is
// the raw, unsubstituted command text: the grammar's operator positions
// ("|", "&&", "||", a single trailing ">", ">>" or "2>") are recognized by
// tokenizing line BEFORE any {{name}} substitution runs, so an
// attacker-controlled template value can never introduce a new pipe or
// redirect — by the time a token is classified as a structural operator,
// no substitution has touched it, and substitution is only ever applied
// afterward to tokens already classified as data (arguments, redirect
// targets). This mirrors Array mode confining substitution to
// argument/env/redirect-path slots and never to structural positions.
//
// The grammar recognized is deliberately small: a left-to-right sequence
// of simple commands joined by "|", "&&", "||", with a single trailing
// ">", ">>" or "2>" redirect. No operator precedence, no subshells, no
// brace or glob expansion, no environment expansion.
func buildStringGraph(line string, vars map[string]string) (*Graph, error) {
	for _, bad := range forbiddenSubstrings {
		if strings.Contains(line, bad) {
			return nil, ErrUnsupportedSyntax
		}
	}

	parser := shellwords.NewParser()
	parser.ParseEnv = false
	parser.ParseBacktick = false

	tokens, err := parser.Parse(line)
	if err != nil {
		return nil, ErrUnsupportedSyntax
	}
	if len(tokens) == 0 {
		return nil, errEmptyCommandSpec
	}
	switch tokens[len(tokens)-1] {
	case "|", "&&", "||", ">", ">>", "2>":
		return nil, ErrUnsupportedSyntax
	}

	g := &Graph{}
	var current []string
	var pendingAnd, pendingOr []*Graph

	flush := func() error {
		if len(current) == 0 {
			return ErrUnsupportedSyntax
		}
		if containsTemplate(current[0]) {
			return ErrTemplateInCommandPath
		}
		argv := make([]string, len(current))
		argv[0] = current[0]
		for i := 1; i < len(current); i++ {
			argv[i] = substitute(vars, current[i])
		}
		g.Stages = append(g.Stages, Stage{Argv: argv})
		current = nil
		return nil
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok {
		case "|":
			if err := flush(); err != nil {
				return nil, err
			}
		case ">", ">>":
			if err := flush(); err != nil {
				return nil, err
			}
			if i+1 >= len(tokens) {
				return nil, ErrUnsupportedSyntax
			}
			i++
			target := substitute(vars, tokens[i])
			if tok == ">" {
				g.RedirectStdout = target
			} else {
				g.AppendStdout = target
			}
		case "2>":
			if err := flush(); err != nil {
				return nil, err
			}
			if i+1 >= len(tokens) {
				return nil, ErrUnsupportedSyntax
			}
			i++
			g.RedirectStderr = substitute(vars, tokens[i])
		case "&&", "||":
			if err := flush(); err != nil {
				return nil, err
			}
			rest := tokens[i+1:]
			if len(rest) == 0 {
				return nil, ErrUnsupportedSyntax
			}
			sub, err := buildStringGraph(strings.Join(rest, " "), vars)
			if err != nil {
				return nil, err
			}
			if tok == "&&" {
				pendingAnd = append(pendingAnd, sub)
			} else {
				pendingOr = append(pendingOr, sub)
			}
			i = len(tokens)
		default:
			current = append(current, tok)
		}
	}
	if len(current) > 0 {
		if err := flush(); err != nil {
			return nil, err
		}
	}
	if len(g.Stages) == 0 {
		return nil, errEmptyCommandSpec
	}

	g.OnSuccess = pendingAnd
	g.OnFailure = pendingOr

	return g, nil
}
