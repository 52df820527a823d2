package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/storybook/internal/session"
	"github.com/abhisek/storybook/internal/slides"
	"github.com/abhisek/storybook/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show reading statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.EventRepo().QueryEvents(ctx, store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		sum := store.Summarize(events, slides.Count)

		ps := session.NewProgressStore(st.KVRepo(), slides.Count, nil)
		if p, ok := ps.Load(ctx); ok {
			fmt.Printf("Progress: %s\n", p)
		} else {
			fmt.Println("Progress: not started")
		}
		fmt.Printf("Sessions: %d   Resets: %d\n", sum.Sessions, sum.Resets)
		if !sum.LastSeen.IsZero() {
			fmt.Printf("Last read: %s\n", sum.LastSeen.Local().Format("2006-01-02 15:04"))
		}
		fmt.Println()

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "PAGE\tACTIVITY\tVISITS\tRETRIES\tDONE\tERRORS")
		for _, s := range sum.Slides {
			d, _ := slides.Get(s.Slide)
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\n",
				slides.Number(s.Slide), d.Activity, s.Visits, s.Retries, s.Completions, s.Failures)
		}
		return tw.Flush()
	},
}
