package main

import (
	"os"

	"github.com/firefly-engineering/chartlit/cmd"
	"github.com/firefly-engineering/chartlit/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
