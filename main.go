package main

import (
	"github.com/reelcast/reelcast/cmd"
	"github.com/reelcast/reelcast/config"
	"github.com/reelcast/reelcast/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())
	cmd.Execute()
}
