package scenarios

import (
	"fmt"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/model"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/recovery"
)

// StepResult is the outcome of one executed braking event.
type StepResult struct {
	Step     string                         `json:"step"`
	Outputs  model.IntegratedBrakingOutputs `json:"outputs"`
	TEG      recovery.TEGStatus             `json:"teg_status,omitempty"`
	Err      string                         `json:"error,omitempty"`
	Failures []string                       `json:"failures,omitempty"`
}

// Report collects the step results of a scenario run.
type Report struct {
	Scenario string       `json:"scenario"`
	Results  []StepResult `json:"results"`
	Failed   int          `json:"failed"`
}

// Run applies the scenario strategy to c, then executes every step in order
// and checks its expectations. Expectations on repeated steps apply to the
// last repetition only.
func Run(c *recovery.Coordinator, sc *Scenario) (*Report, error) {
	if sc.Strategy != nil {
		if _, err := c.UpdateStrategy(*sc.Strategy); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
	}
	rep := &Report{Scenario: sc.Name}
	for _, st := range sc.Steps {
		repeat := max(st.Repeat, 1)
		var res StepResult
		for i := 0; i < repeat; i++ {
			res = runStep(c, st)
		}
		res.Failures = check(st.Expect, res)
		if len(res.Failures) > 0 {
			rep.Failed++
		}
		rep.Results = append(rep.Results, res)
	}
	return rep, nil
}

func runStep(c *recovery.Coordinator, st Step) StepResult {
	res := StepResult{Step: st.Name}
	out, err := c.CalculateIntegratedBraking(st.Inputs)
	if err != nil {
		res.Err = model.KindOf(err).String()
		return res
	}
	res.Outputs = out
	res.TEG = c.Diagnostics().TEG
	return res
}

func check(exp Expected, res StepResult) []string {
	var failures []string
	if exp.Error != "" || res.Err != "" {
		if exp.Error != res.Err {
			failures = append(failures, fmt.Sprintf("error: want %q, got %q", exp.Error, res.Err))
		}
		return failures
	}
	if exp.TEGActive != nil && res.Outputs.TEGActive != *exp.TEGActive {
		failures = append(failures, fmt.Sprintf("teg_active: want %t, got %t", *exp.TEGActive, res.Outputs.TEGActive))
	}
	if exp.TEGStatus != "" && string(res.TEG) != exp.TEGStatus {
		failures = append(failures, fmt.Sprintf("teg_status: want %s, got %s", exp.TEGStatus, res.TEG))
	}
	if res.Outputs.TotalRecoveredPower < exp.MinRecoveredW {
		failures = append(failures, fmt.Sprintf("recovered power %.1f W below %.1f W", res.Outputs.TotalRecoveredPower, exp.MinRecoveredW))
	}
	return failures
}
