package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/zurustar/decopatch/pkg/app"
	"github.com/zurustar/decopatch/pkg/compiler"
)

func main() {
	application := app.New()
	if err := application.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		// Script problems exit with 2 so build scripts can tell them
		// apart from usage and I/O failures.
		var ce *compiler.CompileError
		if errors.As(err, &ce) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
