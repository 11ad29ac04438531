package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCommand(application *app) *cobra.Command {
	var interactions bool
	var suggest bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the supplement database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			query := strings.Join(args, " ")
			if suggest {
				names, err := application.client.AutocompleteSupplements(ctx, query)
				if err != nil {
					application.notifier.HandleAPIError(err, "Suggestions failed.")
					return err
				}
				for _, name := range names {
					fmt.Println(name)
				}
				return nil
			}
			supplements, err := application.client.SearchSupplements(ctx, query)
			if err != nil {
				application.notifier.HandleAPIError(err, "Search failed.")
				return err
			}
			if len(supplements) == 0 {
				fmt.Println("No supplements found.")
				return nil
			}

			for _, supplement := range supplements {
				line := fmt.Sprintf("#%d  %s", supplement.ID, supplement.Name)
				if supplement.Brand != "" {
					line += "  (" + supplement.Brand + ")"
				}
				fmt.Println(line)
				if interactions {
					found, err := application.client.GetInteractions(ctx, supplement.ID)
					if err != nil {
						continue
					}
					for _, interaction := range found {
						fmt.Printf("      interacts with %s: %s\n", interaction.OtherName, interaction.Description)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&interactions, "interactions", false, "also list known interactions")
	cmd.Flags().BoolVar(&suggest, "suggest", false, "list name completions for a prefix instead of full results")
	return cmd
}
