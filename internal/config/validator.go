package config

import (
	"errors"
	"fmt"
)

// Structural configuration errors. All of them are fatal at startup:
// the supervisor refuses to run on a manifest it cannot fully resolve.
var (
	ErrNoProcesses        = errors.New("no processes declared")
	ErrMissingCommand     = errors.New("process has no command")
	ErrDuplicateName      = errors.New("duplicate process name")
	ErrUnknownAfterTarget = errors.New("after refers to an unknown process")
	ErrSelfDependency     = errors.New("process cannot come after itself")
	ErrDependencyCycle    = errors.New("dependency cycle in after graph")
)

// Validate checks the manifest for structural problems: empty
// commands, duplicate names, unresolvable or cyclic `after` references,
// unknown process types, and regexes that do not compile.
func (c *Config) Validate() error {
	if len(c.Processes) == 0 {
		return ErrNoProcesses
	}

	byName := make(map[string]int, len(c.Processes))
	for i, spec := range c.Processes {
		if len(spec.Command) == 0 {
			return fmt.Errorf("process %q: %w", spec.DisplayName(), ErrMissingCommand)
		}
		name := spec.DisplayName()
		if _, dup := byName[name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		byName[name] = i

		if _, err := spec.Rule(); err != nil {
			return fmt.Errorf("process %q: %w", name, err)
		}
	}

	for _, spec := range c.Processes {
		if spec.After == "" {
			continue
		}
		if spec.After == spec.DisplayName() {
			return fmt.Errorf("%w: %q", ErrSelfDependency, spec.DisplayName())
		}
		if _, ok := byName[spec.After]; !ok {
			return fmt.Errorf("process %q: %w: %q", spec.DisplayName(), ErrUnknownAfterTarget, spec.After)
		}
	}

	if err := c.checkCycles(byName); err != nil {
		return err
	}

	return nil
}

// checkCycles walks the after edges from every process; revisiting a
// process on the current path means the graph loops. The runtime has no
// policy for resolving a cycle, so it is rejected here.
func (c *Config) checkCycles(byName map[string]int) error {
	for start := range c.Processes {
		seen := map[int]bool{start: true}
		i := start
		for c.Processes[i].After != "" {
			next := byName[c.Processes[i].After]
			if seen[next] {
				return fmt.Errorf("%w: involving %q", ErrDependencyCycle, c.Processes[next].DisplayName())
			}
			seen[next] = true
			i = next
		}
	}
	return nil
}

// UpstreamIndex resolves every `after` reference to a process index,
// returning a map from upstream index to the indices of its dependents
// in declaration order. Call only after Validate.
func (c *Config) UpstreamIndex() map[int][]int {
	byName := make(map[string]int, len(c.Processes))
	for i, spec := range c.Processes {
		byName[spec.DisplayName()] = i
	}

	downstream := make(map[int][]int)
	for i, spec := range c.Processes {
		if spec.After == "" {
			continue
		}
		up := byName[spec.After]
		downstream[up] = append(downstream[up], i)
	}
	return downstream
}
