package command

import "time"

// Result is the outcome of executing a CommandSpec, passed to the caller by
// value so the executor cannot be mutated through it after the call
// returns.
type Result struct {
	ExitStatus int
	Stdout     []byte
	Stderr     []byte
	Duration   time.Duration
	Success    bool
}
