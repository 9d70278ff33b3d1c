// Package cmd implements the command-line interface of tubemux.
package cmd

import (
	"encoding/json"
	"os"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tubemux/tubemux/color"
	"github.com/tubemux/tubemux/history"
	"github.com/tubemux/tubemux/icon"
	"github.com/tubemux/tubemux/style"
	"github.com/tubemux/tubemux/util"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	historyCmd.Flags().IntP("limit", "n", 0, "Show only the most recent downloads")
	historyCmd.SetOut(os.Stdout)
}

// historyCmd lists the published downloads.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously published downloads, most recent first",
	Run: func(cmd *cobra.Command, args []string) {
		saved, err := history.List()
		handleErr(err)

		if limit := lo.Must(cmd.Flags().GetInt("limit")); limit > 0 && limit < len(saved) {
			saved = saved[:limit]
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(saved))
			return
		}

		if len(saved) == 0 {
			cmd.Println(style.Faint("No downloads yet"))
			return
		}

		for _, s := range saved {
			cmd.Printf("%s %s\n", icon.Get(icon.Video), style.Bold(s.Title))
			cmd.Printf("  %s\n", style.Fg(color.Yellow)(s.Output))

			details := []string{s.At.Format(time.DateTime)}
			if s.Subtitles != "" {
				details = append(details, "subtitles: "+s.Subtitles)
			}
			if s.Playlist != "" {
				details = append(details, "playlist: "+s.Playlist)
			}
			if s.Count > 1 {
				details = append(details, util.Quantify(s.Count, "time", "times"))
			}
			for _, d := range details {
				cmd.Printf("  %s\n", style.Faint(d))
			}
		}
	},
}
