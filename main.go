// Package main is the entry point of tubemux.
package main

import (
	"github.com/samber/lo"
	"github.com/tubemux/tubemux/cmd"
	"github.com/tubemux/tubemux/config"
	"github.com/tubemux/tubemux/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
