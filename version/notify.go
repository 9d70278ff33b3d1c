package version

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/tubemux/tubemux/color"
	"github.com/tubemux/tubemux/constant"
	"github.com/tubemux/tubemux/icon"
	"github.com/tubemux/tubemux/key"
	"github.com/tubemux/tubemux/style"
	"github.com/tubemux/tubemux/util"
)

// Notify prints a notice when a newer release exists. It stays silent when the
// check is disabled, the output is not a terminal or the lookup fails.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) || !util.IsTerminal() {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest()
	erase()
	if err != nil {
		return
	}

	if msg, ok := notice(latest, constant.Version); ok {
		fmt.Print(msg)
	}
}

func notice(latest, current string) (string, bool) {
	if c, err := Compare(latest, current); err != nil || c <= 0 {
		return "", false
	}

	return fmt.Sprintf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", current)),
		style.Faint(fmt.Sprintf("https://github.com/tubemux/%s/releases/tag/v%s", constant.Tubemux, latest)),
	), true
}
