package cmd

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hzfm/catalog"
	"hzfm/model"
	"hzfm/server"
)

var (
	matchBPM  float64
	matchHz   float64
	matchKind string
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Print the tracks matching a tempo and frequency",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := model.ParseMediaKind(matchKind)
		if err != nil {
			return err
		}

		f, cleanup, err := server.NewFinder(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		resp, err := f.Match(cmd.Context(), matchBPM, matchHz, kind)
		var fe *catalog.FetchError
		if errors.As(err, &fe) {
			fmt.Fprintln(cmd.OutOrStdout(), model.NoDataNotice)
			return err
		}
		if err != nil {
			return err
		}
		return printMatches(cmd.OutOrStdout(), resp)
	},
}

func printMatches(out io.Writer, resp *model.MatchResponse) error {
	if resp.Count == 0 {
		_, err := fmt.Fprintln(out, resp.Notice)
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PUBLIC ID\tBPM\tKEY\tURL")
	for _, m := range resp.Matches {
		url := m.MediaURL
		if url == "" {
			url = "(unavailable: " + m.MediaError + ")"
		}
		fmt.Fprintf(tw, "%s\t%g\t%s\t%s\n", m.PublicID, m.BPM, m.KeyName, url)
	}
	return tw.Flush()
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().Float64Var(&matchBPM, "bpm", server.DefaultBPM, "target tempo in beats per minute")
	matchCmd.Flags().Float64Var(&matchHz, "hz", server.DefaultHz, "target entrainment frequency in Hz")
	matchCmd.Flags().StringVar(&matchKind, "kind", string(model.MediaAudio), "media kind for URLs: audio or video")

	matchCmd.Example = `  # 60 BPM at the Schumann resonance
  hzfm match --bpm 60 --hz 7.83

  # video URLs instead of audio
  hzfm match --bpm 70 --hz 7 --kind video`
}
