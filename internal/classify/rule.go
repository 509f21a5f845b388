package classify

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// CountUnknown marks an error result whose line did not report how many
// errors occurred.
const CountUnknown = -1

// Analysis is the status signal carried by a single output line.
type Analysis int

const (
	// AnalysisNone means the line carries no status information and the
	// process status must not change.
	AnalysisNone Analysis = iota

	// AnalysisSuccess means the line reports a clean state.
	AnalysisSuccess

	// AnalysisError means the line reports a failure.
	AnalysisError
)

// String returns a human-readable name for the analysis.
func (a Analysis) String() string {
	switch a {
	case AnalysisNone:
		return "none"
	case AnalysisSuccess:
		return "success"
	case AnalysisError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the outcome of classifying one line.
type Result struct {
	Analysis Analysis

	// ErrorCount is the number of errors the line reported, or
	// CountUnknown when the matching rule has no capture group.
	// Only meaningful when Analysis is AnalysisError.
	ErrorCount int
}

// Rule classifies output lines for one process. The error regex is
// always evaluated before the success regex, so a line matching both
// reports an error.
type Rule struct {
	errorRe   *regexp.Regexp
	successRe *regexp.Regexp
}

// tscWatchRe matches the summary line the TypeScript compiler prints in
// watch mode after every recompile.
var tscWatchRe = regexp.MustCompile(` Found ([0-9]+) error[s]?\. Watching for file changes\.`)

// builtins maps process type names to their preset detection rules.
var builtins = map[string]*Rule{
	"tsc-watch": {errorRe: tscWatchRe},
}

// NewRule builds a Rule from optional success and error regex sources.
// Empty strings disable the corresponding check.
func NewRule(errorRegex, successRegex string) (*Rule, error) {
	r := &Rule{}

	if errorRegex != "" {
		re, err := regexp.Compile(errorRegex)
		if err != nil {
			return nil, fmt.Errorf("invalid error_regex: %w", err)
		}
		r.errorRe = re
	}

	if successRegex != "" {
		re, err := regexp.Compile(successRegex)
		if err != nil {
			return nil, fmt.Errorf("invalid success_regex: %w", err)
		}
		r.successRe = re
	}

	return r, nil
}

// Builtin returns the preset Rule for a named process type.
func Builtin(name string) (*Rule, bool) {
	r, ok := builtins[name]
	return r, ok
}

// BuiltinNames lists the recognized process type names, sorted so
// error messages are stable.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Classify analyzes one completed output line. Blank lines carry no
// status information. When the error regex has a capture group, the
// captured value is read as an error count: zero counts report success,
// positive counts report an error, and an unparseable capture is
// treated as if the error regex had not matched at all.
func (r *Rule) Classify(line string) Result {
	if strings.TrimSpace(line) == "" {
		return Result{Analysis: AnalysisNone}
	}

	if r.errorRe != nil {
		if m := r.errorRe.FindStringSubmatch(line); m != nil {
			if r.errorRe.NumSubexp() == 0 {
				return Result{Analysis: AnalysisError, ErrorCount: CountUnknown}
			}

			count, err := strconv.ParseUint(m[1], 10, 32)
			if err == nil {
				if count == 0 {
					return Result{Analysis: AnalysisSuccess}
				}
				return Result{Analysis: AnalysisError, ErrorCount: int(count)}
			}
			// Unparseable capture: fall through to the success check.
		}
	}

	if r.successRe != nil && r.successRe.MatchString(line) {
		return Result{Analysis: AnalysisSuccess}
	}

	return Result{Analysis: AnalysisNone}
}
