package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"movie-booking-cli/config"
	"movie-booking-cli/service"
	"movie-booking-cli/session"
	"movie-booking-cli/store"
	"movie-booking-cli/tui"
)

const appName = "movie-booking-cli"

var (
	version = "dev"
	commit  = "none"
)

func printUsage(out *os.File) {
	fmt.Fprintf(out, "Usage: %s [--version]\n", appName)
}

func printVersion() {
	fmt.Printf("%s %s", appName, version)
	if commit != "none" && commit != "" {
		fmt.Printf(" (%s)", commit)
	}
	fmt.Println()
}

func handleArgs(args []string) bool {
	if len(args) == 0 {
		return true
	}

	for _, arg := range args {
		switch arg {
		case "-h", "--help", "help":
			printUsage(os.Stdout)
			return false
		case "-v", "--version", "version":
			printVersion()
			return false
		default:
			fmt.Fprintf(os.Stderr, "Unknown argument: %s\n", arg)
			printUsage(os.Stderr)
			os.Exit(2)
		}
	}

	return false
}

func main() {
	if !handleArgs(os.Args[1:]) {
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	sessionPath := cfg.SessionFile
	if sessionPath == "" {
		sessionPath, err = store.DefaultSessionPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	tokens := session.NewCacheProvider(cfg.SessionSecret, sessionPath)
	client := service.NewClient(nil, cfg.BaseURL, tokens)
	auth := session.NewAuthenticator(client, cfg.SessionSecret, sessionPath)

	if _, err := tea.NewProgram(tui.New(client, auth), tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
