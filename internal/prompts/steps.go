// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/dacolabs/shapes/internal/pipeline"
)

// RunSelectStepForm asks the user to pick a step of p and stores its ID in id.
func RunSelectStepForm(id *string, p *pipeline.Pipeline) error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("pipeline %q has no steps", p.Name)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Step").
				Options(StepOptions(p)...).
				Value(id),
		),
	).WithTheme(Theme()).Run()
}

// StepOptions builds one select option per step, labelled "id (kind)" or
// "id (kind) name".
func StepOptions(p *pipeline.Pipeline) []huh.Option[string] {
	options := make([]huh.Option[string], len(p.Steps))
	for i, s := range p.Steps {
		label := fmt.Sprintf("%s (%s)", s.ID, s.Kind)
		if s.Name != "" {
			label += " " + s.Name
		}
		options[i] = huh.NewOption(label, s.ID)
	}
	return options
}
