package core

import (
	"fmt"
)

// StepReport is the outcome of one step, kept for the CLI summary.
type StepReport struct {
	Phase  string
	Name   string
	Type   string
	Result Result
}

// Engine applies install steps strictly in order. The first failing step
// aborts the run; steps already applied stay applied.
type Engine struct {
	Context *SystemContext
	Reports []StepReport
}

// NewEngine creates a new engine instance.
func NewEngine(ctx *SystemContext) *Engine {
	return &Engine{Context: ctx}
}

// Run processes the steps of one phase. In dry-run mode steps are only checked.
func (e *Engine) Run(phase string, steps []Step) error {
	log := e.Context.Logger.With("phase", phase)

	for i, s := range steps {
		var (
			result Result
			err    error
		)
		if e.Context.DryRun {
			result, err = e.check(s)
		} else {
			result, err = s.Apply(e.Context)
		}

		if err != nil {
			e.record(phase, s, Failure(err, "failed"))
			log.Error(fmt.Sprintf("[%s] Failed: %v", s.GetName(), err), "step", i+1)
			return fmt.Errorf("%s: step %d (%s): %w", phase, i+1, s.GetName(), err)
		}

		e.record(phase, s, result)
		if result.Changed {
			log.Info(fmt.Sprintf("[%s] %s", s.GetName(), result.Message), "step", i+1)
		} else {
			log.Debug(fmt.Sprintf("[%s] %s", s.GetName(), result.Message), "step", i+1)
		}
	}
	return nil
}

// Changed counts the steps that modified (or would modify) the guest.
func (e *Engine) Changed() int {
	n := 0
	for _, r := range e.Reports {
		if r.Result.Changed {
			n++
		}
	}
	return n
}

func (e *Engine) check(s Step) (Result, error) {
	needsAction, err := s.Check(e.Context)
	if err != nil {
		return Failure(err, "check failed"), err
	}
	if !needsAction {
		return SuccessNoChange("up to date"), nil
	}

	if differ, ok := s.(Differ); ok {
		if d, err := differ.Diff(e.Context); err == nil && d != "" {
			e.Context.Logger.Debug(fmt.Sprintf("[%s] pending diff\n%s", s.GetName(), d))
		}
	}
	return SuccessChange("[DryRun] would apply"), nil
}

func (e *Engine) record(phase string, s Step, r Result) {
	e.Reports = append(e.Reports, StepReport{
		Phase:  phase,
		Name:   s.GetName(),
		Type:   s.GetType(),
		Result: r,
	})
}
