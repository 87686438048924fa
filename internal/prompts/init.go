// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"github.com/charmbracelet/huh"
)

// RunInitForm runs the interactive form for the init command.
// It fills the provided pointers with user input.
func RunInitForm(pipelinePath *string, handlers *[]string, available []string, codec *string, codecs []string) error {
	handlerOpts := make([]huh.Option[string], len(available))
	for i, h := range available {
		handlerOpts[i] = huh.NewOption(h, h).Selected(true)
	}
	codecOpts := make([]huh.Option[string], len(codecs))
	for i, c := range codecs {
		codecOpts[i] = huh.NewOption(c, c)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Path to pipeline file").
				Placeholder("pipeline.yaml").
				Validate(requiredValidator("pipeline path")).
				Value(pipelinePath),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Metadata handlers (in registration order)").
				Options(handlerOpts...).
				Value(handlers),
			huh.NewSelect[string]().
				Title("Default specification codec").
				Options(codecOpts...).
				Value(codec),
		),
	).WithTheme(Theme()).Run()
}
