// Command niveshctl talks to a running NiveshAI server: it lists portfolios,
// shows analyses, triggers price refreshes and asks the chat advisor.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

var (
	serverURL = flag.String("server", envOr("NIVESHAI_SERVER", "http://localhost:5001"), "Base URL of the NiveshAI server")
	apiKey    = flag.String("api-key", os.Getenv("INTERNAL_API_KEY"), "Key for internal endpoints (refresh-all)")
	plain     = flag.Bool("plain", false, "print markdown without terminal styling")
)

// commands lists every subcommand with its group.
var commands = []struct {
	cmd   subcommands.Command
	group string
}{
	{&portfoliosCmd{}, "portfolios"},
	{&analysisCmd{}, "portfolios"},
	{&refreshCmd{}, "portfolios"},
	{&refreshAllCmd{}, "portfolios"},
	{&riskQuestionsCmd{}, "advisor"},
	{&askCmd{}, "advisor"},
}

func main() {
	completion().Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range commands {
		commander.Register(c.cmd, c.group)
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
