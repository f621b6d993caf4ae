package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gruntwork-io/treehook/internal/errors"
	"github.com/gruntwork-io/treehook/internal/plan"
	"github.com/gruntwork-io/treehook/internal/workspace"
	"github.com/gruntwork-io/treehook/options"
)

type projectSummary struct {
	Project string `json:"project"`
	Path    string `json:"path"`
	Config  string `json:"config"`
	Index   int    `json:"index"`
	Depth   int    `json:"depth"`
	Parent  int    `json:"parent"`
}

type planOutput struct {
	Root     string         `json:"root"`
	Mode     string         `json:"mode"`
	Projects []plan.Summary `json:"projects"`
	Unowned  []string       `json:"unowned,omitempty"`
}

func writeProjects(w io.Writer, ws *workspace.Workspace, outputFormat string) error {
	if outputFormat == options.OutputFormatJSON {
		summaries := make([]projectSummary, 0, len(ws.Projects))

		for _, project := range ws.Projects {
			summaries = append(summaries, projectSummary{
				Project: project.String(),
				Path:    project.Path,
				Config:  project.ConfigPath,
				Index:   project.Index,
				Depth:   project.Depth,
				Parent:  project.Parent,
			})
		}

		return writeJSON(w, summaries)
	}

	for _, project := range ws.Projects {
		if _, err := fmt.Fprintln(w, project); err != nil {
			return errors.New(err)
		}
	}

	return nil
}

func writePlan(w io.Writer, p *plan.Plan, outputFormat string) error {
	if outputFormat == options.OutputFormatJSON {
		return writeJSON(w, planOutput{
			Root:     p.Workspace.Root,
			Mode:     p.Workspace.Mode.String(),
			Projects: p.Summaries(),
			Unowned:  p.Unowned.Paths(),
		})
	}

	for _, entry := range p.Entries() {
		if entry.State() == plan.Skipped {
			if _, err := fmt.Fprintf(w, "%s (skipped)\n", entry.Project); err != nil {
				return errors.New(err)
			}

			continue
		}

		if _, err := fmt.Fprintf(w, "%s (%d files)\n", entry.Project, entry.Files.Len()); err != nil {
			return errors.New(err)
		}

		for file := range entry.Files.All() {
			if _, err := fmt.Fprintf(w, "  %s\n", file); err != nil {
				return errors.New(err)
			}
		}
	}

	return nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(v); err != nil {
		return errors.New(err)
	}

	return nil
}
