package main

import (
	"os"

	"github.com/firefly-engineering/firefly-forage/packages/scon/cmd"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
