package main

import (
	"context"

	"askpablos-go/cmd/askpablos-cli/commands"
	"askpablos-go/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "askpablos-cli")
	commands.ExecuteContext(context.Background())
}
