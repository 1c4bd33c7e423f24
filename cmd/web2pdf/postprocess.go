package main

import (
	"errors"
	"fmt"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"

	web2pdf "github.com/alnah/go-web2pdf"
	"github.com/alnah/go-web2pdf/internal/config"
)

// ErrInvalidOutput marks a rendered PDF that failed validation.
var ErrInvalidOutput = errors.New("produced PDF failed validation")

// postProcess optionally validates each produced PDF and merges them
// into a single file. Validation failures are charged to the owning
// work item so they count toward the exit code; a merge failure is
// logged but does not rewrite per-item outcomes.
func postProcess(outcomes []web2pdf.TaskOutcome, flags *cliFlags, cfg *config.Config, env *Environment) []web2pdf.TaskOutcome {
	if flags.post.validate || cfg.Output.Validate {
		for i := range outcomes {
			if outcomes[i].Err != nil {
				continue
			}
			if err := pdfapi.ValidateFile(outcomes[i].Item.Destination, nil); err != nil {
				outcomes[i].Err = fmt.Errorf("%w: %v", ErrInvalidOutput, err)
				fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", outcomes[i].Item.Destination, outcomes[i].Err)
			}
		}
	}

	if flags.post.mergeInto != "" {
		mergeOutputs(outcomes, flags.post.mergeInto, flags.common.quiet, env)
	}

	return outcomes
}

// mergeOutputs merges all successfully produced PDFs, in work item
// order, into a single file.
func mergeOutputs(outcomes []web2pdf.TaskOutcome, dest string, quiet bool, env *Environment) {
	var produced []string
	for _, o := range outcomes {
		if o.Err == nil {
			produced = append(produced, o.Item.Destination)
		}
	}
	if len(produced) == 0 {
		fmt.Fprintf(env.Stderr, "FAILED merging into %s: no PDFs were produced\n", dest)
		return
	}

	if err := pdfapi.MergeCreateFile(produced, dest, false, nil); err != nil {
		fmt.Fprintf(env.Stderr, "FAILED merging into %s: %v\n", dest, err)
		return
	}
	if !quiet {
		fmt.Fprintf(env.Stdout, "Merged %d PDFs into %s\n", len(produced), dest)
	}
}
