package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AndrewOch/ClapperRoughCutBackend/services"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	matchCmd := &cobra.Command{
		Use:   "match",
		Short: "Match local file exports against a script",
	}
	matchCmd.AddCommand(newMatchPhrasesCommand(ctx))
	matchCmd.AddCommand(newMatchActionsCommand(ctx))
	return matchCmd
}

func newMatchPhrasesCommand(ctx *commandContext) *cobra.Command {
	var (
		scriptPath string
		filesPath  string
		strategy   string
		summary    bool
	)

	cmd := &cobra.Command{
		Use:   "phrases",
		Short: "Find the script phrase spoken in each file",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := readFiles(filesPath)
			if err != nil {
				return err
			}
			eng, scriptID, err := ctx.localEngine(cmd, scriptPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			resp, err := eng.MatchPhrases(cmd.Context(), scriptID, files, strategy)
			if err != nil {
				return err
			}
			if summary {
				fmt.Fprintln(cmd.OutOrStdout(), renderPhraseSummary(resp))
				return nil
			}
			return writeJSON(cmd, resp)
		},
	}

	cmd.Flags().StringVar(&scriptPath, "script", "", "Script definition JSON file")
	cmd.Flags().StringVar(&filesPath, "files", "", "Media files JSON file")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Matching strategy (stream or combination); defaults to the configured one")
	cmd.Flags().BoolVar(&summary, "summary", false, "Render a table instead of JSON")
	_ = cmd.MarkFlagRequired("script")
	_ = cmd.MarkFlagRequired("files")
	return cmd
}

func newMatchActionsCommand(ctx *commandContext) *cobra.Command {
	var (
		scriptPath string
		filesPath  string
		summary    bool
	)

	cmd := &cobra.Command{
		Use:   "actions",
		Short: "Find the script action shown in each file",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := readFiles(filesPath)
			if err != nil {
				return err
			}
			eng, scriptID, err := ctx.localEngine(cmd, scriptPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			resp, err := eng.MatchActions(cmd.Context(), scriptID, files)
			if err != nil {
				return err
			}
			if summary {
				fmt.Fprintln(cmd.OutOrStdout(), renderActionSummary(resp))
				return nil
			}
			return writeJSON(cmd, resp)
		},
	}

	cmd.Flags().StringVar(&scriptPath, "script", "", "Script definition JSON file")
	cmd.Flags().StringVar(&filesPath, "files", "", "Media files JSON file")
	cmd.Flags().BoolVar(&summary, "summary", false, "Render a table instead of JSON")
	_ = cmd.MarkFlagRequired("script")
	_ = cmd.MarkFlagRequired("files")
	return cmd
}

func renderPhraseSummary(resp *services.PhraseMatchResponse) string {
	rows := make([][]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		phraseID, accuracy := "-", "-"
		if r.BestMatch != nil {
			phraseID = r.BestMatch.PhraseID
			accuracy = formatScore(r.BestMatch.Accuracy)
		}
		rows = append(rows, []string{r.FileID, phraseID, accuracy, strconv.Itoa(len(r.Subtitles))})
	}
	title := fmt.Sprintf("Phrases (%s, %d ms)", resp.Strategy, resp.Took)
	return renderTable(title, []string{"File", "Phrase", "Accuracy", "Subtitles"}, rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight})
}

func renderActionSummary(resp *services.ActionMatchResponse) string {
	rows := make([][]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		actionID, similarity := "-", "-"
		if r.BestMatch != nil {
			actionID = r.BestMatch.ActionID
			similarity = formatScore(r.BestMatch.Similarity)
		}
		rows = append(rows, []string{r.FileID, actionID, similarity})
	}
	title := fmt.Sprintf("Actions (%d ms)", resp.Took)
	return renderTable(title, []string{"File", "Action", "Similarity"}, rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight})
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
