package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/storybook/internal/activity"
	"github.com/abhisek/storybook/internal/content"
	"github.com/abhisek/storybook/internal/slides"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a story pack",
	Long: `Load every page of the story pack and attach its activity.

Reports each page that fails to parse or does not carry what its
activity needs. Uses the built-in story unless --content is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		loader, fsys, err := content.Open(cfg.ContentDir)
		if err != nil {
			return err
		}
		m, err := content.LoadManifest(fsys, slides.Count)
		if err != nil {
			return err
		}
		fmt.Printf("%s by %s (format %s)\n", m.Title, m.Author, m.Format)

		problems := checkPages(cmd.Context(), loader)
		for i, err := range problems {
			if err != nil {
				fmt.Printf("  page %s: %v\n", slides.Number(i), err)
			}
		}
		if err := errors.Join(problems...); err != nil {
			return fmt.Errorf("%d of %d pages have problems", countErrs(problems), slides.Count)
		}
		fmt.Printf("All %d pages OK.\n", slides.Count)
		return nil
	},
}

// checkPages loads and attaches every slide concurrently. The result holds
// one entry per slide, nil when the slide is fine.
func checkPages(ctx context.Context, loader content.Loader) []error {
	problems := make([]error, slides.Count)
	reg := activity.NewRegistry(nil)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := range slides.Count {
		g.Go(func() error {
			problems[i] = checkPage(ctx, loader, reg, i)
			return nil
		})
	}
	_ = g.Wait()
	return problems
}

func checkPage(ctx context.Context, loader content.Loader, reg *activity.Registry, index int) error {
	page, err := loader.Load(ctx, index)
	if err != nil {
		return err
	}
	ev, err := reg.New(index, checkEnv{})
	if err != nil {
		return err
	}
	defer ev.Detach()
	return ev.Attach(page)
}

func countErrs(errs []error) int {
	n := 0
	for _, err := range errs {
		if err != nil {
			n++
		}
	}
	return n
}

// checkEnv is an activity environment that goes nowhere.
type checkEnv struct{}

func (checkEnv) MarkComplete()          {}
func (checkEnv) Aux() activity.AuxStore { return noAux{} }
func (checkEnv) Celebrate()             {}

type noAux struct{}

func (noAux) Load(string) string  { return "" }
func (noAux) Save(string, string) {}
