// MinAgent - minimal conversational agent
// License: MIT
//
// Copyright (c) 2026 MinAgent contributors

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

const appName = "minagent"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := executeCLI(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
