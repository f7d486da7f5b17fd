package cmd

import (
	"flag"
	"os"
)

type CLIArgs struct {
	Mode       string
	ListenAddr string
	LogLevel   string
	DBPath     string
}

func ParseArgs() CLIArgs {
	return ParseArgsWithArgs(os.Args[1:])
}

func ParseArgsWithArgs(args []string) CLIArgs {
	cliArgs := CLIArgs{}

	fs := flag.NewFlagSet("opendota-mcp", flag.ContinueOnError)
	fs.StringVar(&cliArgs.Mode, "mode", "stdio", "Serve mode: stdio or http")
	fs.StringVar(&cliArgs.ListenAddr, "listen", ":8080", "HTTP listen address (http mode)")
	fs.StringVar(&cliArgs.LogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
	fs.StringVar(&cliArgs.DBPath, "db", "", "SQLite audit database path (default: in-memory)")

	fs.Parse(args)

	return cliArgs
}
