package main

import (
	"github.com/replaysync/replaysync/cmd"
	"github.com/replaysync/replaysync/config"
	"github.com/replaysync/replaysync/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
