package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/storybook/internal/session"
	"github.com/abhisek/storybook/internal/slides"
	"github.com/abhisek/storybook/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget reading progress and saved answers",
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

		ps := session.NewProgressStore(st.KVRepo(), slides.Count, nil)
		p, ok := ps.Load(ctx)
		if !ok {
			fmt.Println("Nothing to reset.")
			return nil
		}
		ps.Clear(ctx)
		if err := st.EventRepo().AppendEvent(ctx, store.EventData{Kind: store.EventReset}); err != nil {
			return fmt.Errorf("record reset: %w", err)
		}
		fmt.Printf("Progress cleared (was %s).\n", p)
		return nil
	},
}
