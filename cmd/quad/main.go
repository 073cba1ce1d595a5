// Command quad approximates definite integrals with composite
// Newton-Cotes rules.
//
//	quad solve '1/(x+1)' 2 3 --rule simpson -n 10
//	quad study 'sin(x)' 0 pi --reference 2 --plot convergence.png
//	quad batch integrals.yaml -o json
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewCmdRoot(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
