// Package cmd implements the command-line interface of tubemux.
package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/tubemux/tubemux/icon"
	"github.com/tubemux/tubemux/muxer"
	"github.com/tubemux/tubemux/style"
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.SetOut(os.Stdout)
}

// checkCmd reports whether the transcoder can be found.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that ffmpeg is installed and reachable",
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()
		cmd.Printf("%s %s found\n", icon.Get(icon.Success), ffmpegName(muxer.NewFFmpeg()))
	},
}

// CheckDependencies exits when the configured ffmpeg executable is missing.
func CheckDependencies() {
	ffmpeg := muxer.NewFFmpeg()
	if !ffmpeg.Available() {
		printMissingDependencyError(ffmpegName(ffmpeg))
		os.Exit(1)
	}
}

func ffmpegName(ffmpeg *muxer.FFmpeg) string {
	if ffmpeg.Path == "" {
		return "ffmpeg"
	}
	return ffmpeg.Path
}

func installCommand(goos string) string {
	switch goos {
	case "darwin":
		return "brew install ffmpeg"
	case "linux":
		return "sudo apt install ffmpeg"
	case "windows":
		return "scoop install ffmpeg"
	default:
		return ""
	}
}

func printMissingDependencyError(dep string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.ErrorColor).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.ErrorColor).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The required dependency '%s' was not found in your PATH.", dep))

	suggestion := ""
	if installCmd := installCommand(runtime.GOOS); installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s\nor point %s at the executable.",
			style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd),
			style.Bold("mux.ffmpeg"),
		)
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
