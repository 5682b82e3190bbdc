package main // Entry point package

import (
	"fmt" // error output
	"os"  // exit status

	"github.com/iliyamo/bowling-center/internal/cli" // command tree
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
