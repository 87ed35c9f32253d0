package ptybridge

import "strings"

// scrubbedVars are stripped from the child's environment: size/capability
// hints the host controls exclusively through resize, plus the terminal
// capability name the parent process happened to launch under.
var scrubbedVars = []string{"COLUMNS", "LINES", "TERMCAP"}

// defaultEnv is set unless an EnvOption overrides it.
var defaultEnv = map[string]string{
	"TERM":     "xterm-256color",
	"LANG":     "en_GB.UTF-8",
	"LC_CTYPE": "en_GB.UTF-8",
}

// EnvOption customizes Env's output.
type EnvOption func(map[string]string)

// WithTerm overrides the default TERM value.
func WithTerm(term string) EnvOption {
	return func(env map[string]string) { env["TERM"] = term }
}

// WithExtraScrubbed adds host-specific variable names to strip in addition
// to the built-in set.
func WithExtraScrubbed(names ...string) EnvOption {
	return func(env map[string]string) {
		for _, n := range names {
			delete(env, n)
		}
	}
}

// Env builds the child's environment from parent (typically os.Environ()):
// COLUMNS/LINES/TERMCAP and any host-specific variables named via
// WithExtraScrubbed are removed, TERM/LANG/LC_CTYPE get their terminal-
// emulator defaults unless an option overrides them, and every other
// variable passes through unchanged.
func Env(parent []string, opts ...EnvOption) []string {
	out := make(map[string]string, len(parent)+len(defaultEnv))
	for _, kv := range parent {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		out[k] = v
	}
	for _, name := range scrubbedVars {
		delete(out, name)
	}
	for k, v := range defaultEnv {
		out[k] = v
	}
	for _, o := range opts {
		o(out)
	}

	result := make([]string, 0, len(out))
	for k, v := range out {
		result = append(result, k+"="+v)
	}
	return result
}
