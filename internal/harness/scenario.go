// Package harness runs YAML-scripted end-to-end scenarios: a tree of
// job batches with scripted lifecycles, executed against the in-memory
// fake scheduler. Scenarios keep the whole-system tests declarative;
// the packages under test stay the real ones, only the queueing
// service is faked.
package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gridwork/jobflow/internal/status"
	"github.com/gridwork/jobflow/internal/testutil"
)

// Scenario is one scripted run.
type Scenario struct {
	// Name identifies the scenario in test output.
	Name string `yaml:"name"`

	// Description explains what the scenario demonstrates.
	Description string `yaml:"description,omitempty"`

	// Scripts maps batch names to job lifecycles, one event kind name
	// per tick (see status.EventKind.String). Batches without a script
	// run EXECUTE then TERMINATED.
	Scripts map[string][]string `yaml:"scripts,omitempty"`

	// Flow is the forest of batch nodes to execute.
	Flow []Node `yaml:"flow"`

	// Expect holds the scenario's outcome assertions.
	Expect Expect `yaml:"expect"`
}

// Node is one batch in the flow tree. The node submits its cluster and
// waits for it, then runs Children concurrently, then runs Then nodes
// once every child has finished.
type Node struct {
	Name     string `yaml:"name"`
	Batch    string `yaml:"batch,omitempty"`
	Count    int    `yaml:"count"`
	Children []Node `yaml:"children,omitempty"`
	Then     []Node `yaml:"then,omitempty"`
}

// Expect is the set of outcome checks applied after the run.
type Expect struct {
	// Clusters is the total number of clusters submitted.
	Clusters int `yaml:"clusters"`

	// MaxTracked is the peak number of live producers, zero to skip.
	MaxTracked int `yaml:"max_tracked,omitempty"`

	// Completed asserts every submitted job finished.
	Completed bool `yaml:"completed,omitempty"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s has no name", path)
	}
	if len(s.Flow) == 0 {
		return nil, fmt.Errorf("scenario %q has no flow", s.Name)
	}
	if err := validateNodes(s.Flow); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return &s, nil
}

func validateNodes(nodes []Node) error {
	for _, n := range nodes {
		if n.Name == "" {
			return fmt.Errorf("flow node has no name")
		}
		if n.Count < 1 {
			return fmt.Errorf("node %q has count %d", n.Name, n.Count)
		}
		if err := validateNodes(n.Children); err != nil {
			return err
		}
		if err := validateNodes(n.Then); err != nil {
			return err
		}
	}
	return nil
}

// scripts compiles the scenario's script table into the fake
// scheduler's form.
func (s *Scenario) scripts() (map[string]testutil.Script, error) {
	out := make(map[string]testutil.Script, len(s.Scripts))
	for batch, names := range s.Scripts {
		script := make(testutil.Script, len(names))
		for i, name := range names {
			kind, err := status.ParseKind(name)
			if err != nil {
				return nil, fmt.Errorf("script %q: %w", batch, err)
			}
			script[i] = kind
		}
		out[batch] = script
	}
	return out, nil
}
