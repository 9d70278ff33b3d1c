// Package cmd implements the command-line interface of tubemux.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tubemux/tubemux/color"
	"github.com/tubemux/tubemux/constant"
	"github.com/tubemux/tubemux/icon"
	"github.com/tubemux/tubemux/key"
	"github.com/tubemux/tubemux/log"
	"github.com/tubemux/tubemux/query"
	"github.com/tubemux/tubemux/style"
	"github.com/tubemux/tubemux/version"
)

const (
	modeVideo    = "A single video"
	modePlaylist = "A whole playlist"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")
	rootCmd.Flags().Bool("no-subtitles", false, "Do not look for a caption track")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Record published videos in the download history")
	lo.Must0(viper.BindPFlag(key.HistorySave, rootCmd.PersistentFlags().Lookup("write-history")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})
}

// rootCmd starts the interactive mode.
var rootCmd = &cobra.Command{
	Use:   constant.Tubemux,
	Short: "Download videos and playlists with their best streams muxed into a single file",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Download videos and playlists with their best streams muxed into a single file"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		mode, url, err := ask()
		handleErr(err)

		flags := downloadFlags{subtitles: !lo.Must(cmd.Flags().GetBool("no-subtitles"))}

		var ok bool
		switch mode {
		case modePlaylist:
			ok = downloadPlaylist(url, flags)
		default:
			ok = downloadVideo(url, flags)
		}

		if !ok {
			os.Exit(1)
		}
	},
}

// ask prompts for the download mode and the URL.
func ask() (mode, url string, err error) {
	err = survey.AskOne(&survey.Select{
		Message: "What do you want to download?",
		Options: []string{modeVideo, modePlaylist},
		Default: modeVideo,
	}, &mode)
	if err != nil {
		return "", "", err
	}

	input := &survey.Input{
		Message: "URL:",
		Help:    "Paste a video or playlist link. Press tab for previously used links.",
	}
	if viper.GetBool(key.SearchShowQuerySuggestions) {
		input.Suggest = query.SuggestMany
	}

	err = survey.AskOne(input, &url, survey.WithValidator(survey.Required))
	if err != nil {
		return "", "", err
	}

	url = strings.TrimSpace(url)
	if url == "" {
		return "", "", errors.New("no URL given")
	}

	return mode, url, nil
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
