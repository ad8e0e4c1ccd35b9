package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/model"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/recovery"
)

// Expected holds the checks applied to a step result. Zero values are not checked.
type Expected struct {
	TEGActive     *bool   `yaml:"teg_active,omitempty"`
	TEGStatus     string  `yaml:"teg_status,omitempty"`
	MinRecoveredW float64 `yaml:"min_recovered_w,omitempty"`
	// Error is the expected error kind, e.g. "emergency_shutdown".
	Error string `yaml:"error,omitempty"`
}

// Step is one braking event, optionally repeated.
type Step struct {
	Name   string                        `yaml:"name"`
	Repeat int                           `yaml:"repeat,omitempty"`
	Inputs model.IntegratedBrakingInputs `yaml:",inline"`
	Expect Expected                      `yaml:"expect,omitempty"`
}

type Scenario struct {
	Name        string                   `yaml:"name"`
	Description string                   `yaml:"description,omitempty"`
	Strategy    *recovery.StrategyUpdate `yaml:"strategy,omitempty"`
	Steps       []Step                   `yaml:"steps"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s: no steps", path)
	}
	for i := range sc.Steps {
		if sc.Steps[i].Repeat <= 0 {
			sc.Steps[i].Repeat = 1
		}
		if sc.Steps[i].Name == "" {
			sc.Steps[i].Name = fmt.Sprintf("step-%d", i+1)
		}
	}
	return &sc, nil
}
