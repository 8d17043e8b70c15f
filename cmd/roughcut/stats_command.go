package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AndrewOch/ClapperRoughCutBackend/model"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var (
		scriptPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show class statistics for a script's actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, scriptID, err := ctx.localEngine(cmd, scriptPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			stats, err := eng.Statistics(scriptID)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, stats)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderStatistics(stats))
			return nil
		},
	}

	cmd.Flags().StringVar(&scriptPath, "script", "", "Script definition JSON file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of tables")
	_ = cmd.MarkFlagRequired("script")
	return cmd
}

func renderStatistics(stats model.ClassStatistics) string {
	classes := make([][]string, len(stats.Classes))
	for i, c := range stats.Classes {
		classes[i] = []string{c.Class, strconv.Itoa(c.Frequency)}
	}

	synonyms := make([][]string, len(stats.SynonymCounts))
	for i, s := range stats.SynonymCounts {
		synonyms[i] = []string{s.Class, s.Keyword, strconv.Itoa(s.Count)}
	}

	unused := make([][]string, len(stats.UnusedWords))
	for i, w := range stats.UnusedWords {
		unused[i] = []string{w.Word, strconv.Itoa(w.Count)}
	}

	title := fmt.Sprintf("Classes (%d actions)", stats.ActionCount)
	return renderTable(title, []string{"Class", "Frequency"}, classes, []columnAlignment{alignLeft, alignRight}) + "\n" +
		renderTable("Synonyms", []string{"Class", "Keyword", "Count"}, synonyms, []columnAlignment{alignLeft, alignLeft, alignRight}) + "\n" +
		renderTable("Unused words", []string{"Word", "Count"}, unused, []columnAlignment{alignLeft, alignRight})
}
