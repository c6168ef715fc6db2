package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/solarreach/goalscan/internal/goals"
	"github.com/solarreach/goalscan/internal/models"
	"github.com/solarreach/goalscan/internal/wizard"
)

func newGoalsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Inspect and edit the stored goal definitions",
	}
	cmd.AddCommand(newGoalsListCommand())
	cmd.AddCommand(newGoalsValidateCommand())
	cmd.AddCommand(newGoalsAddCommand())
	return cmd
}

func openStore(paths *pathFlags) (*goals.FileStore, error) {
	cfg, err := paths.loadConfig()
	if err != nil {
		return nil, err
	}
	return goals.NewFileStore(cfg.GoalsPath()), nil
}

func newGoalsListCommand() *cobra.Command {
	var (
		paths  pathFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(&paths)
			if err != nil {
				return err
			}
			list, err := store.Load()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string][]models.Goal{"goals": list})
			}

			if len(list) == 0 {
				fmt.Fprintf(w, "No goals in %s\n", store.Path()) //nolint:errcheck
				return nil
			}
			idWidth := len("ID")
			catWidth := len("CATEGORY")
			for _, g := range list {
				idWidth = max(idWidth, runewidth.StringWidth(truncateName(g.ID, maxIDWidth)))
				catWidth = max(catWidth, runewidth.StringWidth(g.Category))
			}
			fmt.Fprintf(w, "%s  %s  %s\n", padRight("ID", idWidth), padRight("CATEGORY", catWidth), "TITLE") //nolint:errcheck
			for _, g := range list {
				fmt.Fprintf(w, "%s  %s  %s\n", padRight(truncateName(g.ID, maxIDWidth), idWidth), padRight(g.Category, catWidth), g.Title) //nolint:errcheck
			}
			fmt.Fprintf(w, "\n%d goal(s) in %s\n", len(list), store.Path()) //nolint:errcheck
			return nil
		},
	}

	paths.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the goals as JSON")
	return cmd
}

func newGoalsValidateCommand() *cobra.Command {
	var paths pathFlags

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the goals document against the goals schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(&paths)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(store.Path())
			if err != nil {
				return fmt.Errorf("%w: %w", goals.ErrRead, err)
			}
			if err := goals.Validate(data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", store.Path()) //nolint:errcheck
			return nil
		},
	}

	paths.register(cmd)
	return cmd
}

type addOptions struct {
	paths       pathFlags
	id          string
	title       string
	description string
	category    string
	guidance    string
}

func newGoalsAddCommand() *cobra.Command {
	opts := &addOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a goal to the goals document",
		Long: `Add a goal to the goals document.

With --title the goal is built from flags. Otherwise an interactive form
asks for each field. The goals document is created when it does not exist.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGoalsAdd(cmd, opts)
		},
	}

	opts.paths.register(cmd)
	cmd.Flags().StringVar(&opts.id, "id", "", "Goal id (kebab-case; derived from --title when empty)")
	cmd.Flags().StringVar(&opts.title, "title", "", "Goal title; skips the interactive form")
	cmd.Flags().StringVar(&opts.description, "description", "", "Goal description")
	cmd.Flags().StringVar(&opts.category, "category", "", "Goal category")
	cmd.Flags().StringVar(&opts.guidance, "guidance", "", "Guidance for fixing the goal")

	return cmd
}

func runGoalsAdd(cmd *cobra.Command, opts *addOptions) error {
	store, err := openStore(&opts.paths)
	if err != nil {
		return err
	}

	list, err := store.Load()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		list = []models.Goal{}
	}
	existing := make([]string, 0, len(list))
	for _, g := range list {
		existing = append(existing, g.ID)
	}

	var goal *models.Goal
	if strings.TrimSpace(opts.title) != "" {
		id := strings.TrimSpace(opts.id)
		if id == "" {
			id = wizard.Slugify(opts.title)
		}
		if err := wizard.ValidateID(id, existing); err != nil {
			return err
		}
		goal = &models.Goal{
			ID:          id,
			Title:       strings.TrimSpace(opts.title),
			Description: strings.TrimSpace(opts.description),
			Category:    strings.TrimSpace(opts.category),
			Guidance:    strings.TrimSpace(opts.guidance),
		}
	} else {
		goal, err = wizard.RunGoalWizard(cmd.InOrStdin(), cmd.OutOrStdout(), existing)
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(store.Path()), 0o755); err != nil {
		return fmt.Errorf("creating goals directory: %w", err)
	}
	if err := store.Save(append(list, *goal)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added goal %q to %s\n", goal.ID, store.Path()) //nolint:errcheck
	return nil
}
