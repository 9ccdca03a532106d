package cluster

import "fmt"

// ConfigError reports an unreadable or malformed transform config file.
type ConfigError struct {
	Path   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Path, e.Reason)
}

// MissingColumnError reports a requested marker that is absent from the
// source table.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not found in input table", e.Column)
}

// MissingIdentityColumnError reports a source table without the CellID
// column. Cleaning never drops CellID, so its absence is always an input
// problem.
type MissingIdentityColumnError struct {
	Path string
}

func (e *MissingIdentityColumnError) Error() string {
	return fmt.Sprintf("%s: identity column %q not found", e.Path, CellID)
}

// ExternalProcessError reports a failed FastPG invocation: the program could
// not be started, exited non-zero, or printed something other than a
// modularity score. ExitCode is -1 when the process never ran.
type ExternalProcessError struct {
	Prog     string
	ExitCode int
	Stderr   string
	Reason   string
	Err      error
}

func (e *ExternalProcessError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Prog, e.Reason)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ExternalProcessError) Unwrap() error { return e.Err }
