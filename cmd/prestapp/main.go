// Command prestapp serves the prestapp JSON API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/xy-planning-network/prestapp/logger"
	"github.com/xy-planning-network/prestapp/ranger"
)

func main() {
	cfg, err := ranger.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "prestapp: %s\n", err)
		os.Exit(1)
	}

	rng, err := ranger.New(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "prestapp: %s\n", err)
		os.Exit(1)
	}

	if err := rng.Guide(); err != nil {
		rng.Logger().Error("web server stopped uncleanly", &logger.LogContext{Error: err})
		os.Exit(1)
	}
}
