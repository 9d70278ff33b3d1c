// Package cmd implements the command-line interface of tubemux.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tubemux/tubemux/filesystem"
	"github.com/tubemux/tubemux/history"
	"github.com/tubemux/tubemux/key"
	"github.com/tubemux/tubemux/log"
	"github.com/tubemux/tubemux/open"
	"github.com/tubemux/tubemux/pipeline"
	"github.com/tubemux/tubemux/progress"
	"github.com/tubemux/tubemux/provider"
	"github.com/tubemux/tubemux/query"
	"github.com/tubemux/tubemux/report"
	"github.com/tubemux/tubemux/version"
	"github.com/tubemux/tubemux/where"
)

// downloadFlags are shared by the video and playlist commands.
type downloadFlags struct {
	json      bool
	report    string
	subtitles bool
}

func addDownloadFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "Directory receiving the downloaded videos")
	// Both commands share the key, so the flag is bound once the command is known.
	cmd.PreRun = func(cmd *cobra.Command, _ []string) {
		lo.Must0(viper.BindPFlag(key.DownloadsDir, cmd.Flags().Lookup("output")))
	}

	cmd.Flags().Bool("no-subtitles", false, "Do not look for a caption track")
	cmd.Flags().BoolP("json", "j", false, "Write a JSON report to the standard output instead of progress")
	cmd.Flags().StringP("report", "r", "", "Write a JSON report to the given file")

	lo.Must0(cmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveFilterDirs
	}))
}

func readDownloadFlags(cmd *cobra.Command) downloadFlags {
	return downloadFlags{
		json:      lo.Must(cmd.Flags().GetBool("json")),
		report:    lo.Must(cmd.Flags().GetString("report")),
		subtitles: !lo.Must(cmd.Flags().GetBool("no-subtitles")),
	}
}

func urlCompletion(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(videoCmd)
	addDownloadFlags(videoCmd)
}

// videoCmd downloads a single video.
var videoCmd = &cobra.Command{
	Use:               "video <url>",
	Short:             "Download a single video with its best streams and subtitles",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: urlCompletion,
	Example:           "  tubemux video https://www.youtube.com/watch?v=dQw4w9WgXcQ -o ~/Videos",
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		if !downloadVideo(args[0], readDownloadFlags(cmd)) {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(playlistCmd)
	addDownloadFlags(playlistCmd)
}

// playlistCmd downloads every video of a playlist.
var playlistCmd = &cobra.Command{
	Use:               "playlist <url>",
	Short:             "Download every video of a playlist, one after another",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: urlCompletion,
	Example:           "  tubemux playlist https://www.youtube.com/playlist?list=PL590L5WQmH8fJ54F369BLDSqIwcs-TCfs",
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		if !downloadPlaylist(args[0], readDownloadFlags(cmd)) {
			os.Exit(1)
		}
	},
}

func newPipeline(url string, flags downloadFlags, out io.Writer) (*pipeline.Pipeline, error) {
	p := provider.ForURL(url)
	src, err := p.CreateSource()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}

	options := pipeline.OptionsFromConfig()
	options.OutputDir = where.Downloads()
	options.Fetch.Subtitles = options.Fetch.Subtitles && flags.subtitles

	pipe := pipeline.New(src, options)
	if !flags.json {
		pipe.Observer = progress.NewTerminal(out).Observer()
	}

	return pipe, nil
}

func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func downloadVideo(url string, flags downloadFlags) bool {
	pipe, err := newPipeline(url, flags, os.Stdout)
	handleErr(err)

	ctx, cancel := interruptible()
	defer cancel()

	result := pipe.Run(ctx, url)
	afterDownload(result, "")
	remember(url, result.OK())

	handleErr(writeReport(report.FromResult(result), flags))
	if !flags.json {
		fmt.Println(progress.Summary(result.OK(), "Download"))
		version.Notify()
	}

	return result.OK()
}

func downloadPlaylist(url string, flags downloadFlags) bool {
	pipe, err := newPipeline(url, flags, os.Stdout)
	handleErr(err)

	ctx, cancel := interruptible()
	defer cancel()

	batch := pipe.RunPlaylist(ctx, url)
	for _, result := range batch.Items {
		afterDownload(result, batch.Title)
	}
	remember(url, batch.OK())

	r := report.FromBatch(batch)
	handleErr(writeReport(r, flags))
	if !flags.json {
		fmt.Println(progress.BatchSummary(batch))
		version.Notify()
	}

	return batch.OK()
}

// afterDownload records a published video and reveals it when configured to.
func afterDownload(result pipeline.Result, playlist string) {
	if !result.OK() {
		return
	}

	if viper.GetBool(key.HistorySave) {
		if err := history.Save(result, playlist); err != nil {
			log.Warnf("history: %s", err)
		}
	}

	if viper.GetBool(key.DownloadsReveal) && playlist == "" {
		if err := open.Reveal(result.Output); err != nil {
			log.Warnf("reveal %s: %s", result.Output, err)
		}
	}
}

func remember(url string, ok bool) {
	weight := 1
	if ok {
		weight = 2
	}

	if err := query.Remember(url, weight); err != nil {
		log.Warnf("remember %s: %s", url, err)
	}
}

func writeReport(r *report.Report, flags downloadFlags) error {
	if flags.json {
		if err := r.Write(os.Stdout); err != nil {
			return err
		}
	}

	if flags.report == "" {
		return nil
	}

	file, err := filesystem.API().Create(flags.report)
	if err != nil {
		return err
	}
	defer file.Close()

	return r.Write(file)
}
