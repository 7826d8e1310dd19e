// Package main is the entry point for the mailstorm compose dispatcher.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dshills/mailstorm/internal/agent"
	"github.com/dshills/mailstorm/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// headerFlags collects repeatable -header NAME:VALUE flags.
type headerFlags []agent.Header

func (h *headerFlags) String() string {
	parts := make([]string, 0, len(*h))
	for _, hdr := range *h {
		parts = append(parts, hdr.Name+":"+hdr.Value)
	}
	return strings.Join(parts, ",")
}

func (h *headerFlags) Set(value string) error {
	name, val, ok := strings.Cut(value, ":")
	if !ok || strings.TrimSpace(name) == "" {
		return fmt.Errorf("header must be NAME:VALUE, got %q", value)
	}
	*h = append(*h, agent.Header{
		Name:  strings.TrimSpace(name),
		Value: strings.TrimSpace(val),
	})
	return nil
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, req := parseFlags()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	if err := application.Compose(req); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() (app.Options, *agent.Request) {
	var opts app.Options
	var req agent.Request
	var headers headerFlags
	var showVersion bool
	var showHelp bool

	flag.StringVar(&req.To, "to", "", "Recipient address")
	flag.StringVar(&req.Subject, "subject", "", "Message subject")
	flag.Var(&headers, "header", "Additional header as NAME:VALUE (repeatable; forces fallback dispatch)")
	flag.BoolVar(&req.Continue, "continue", false, "Continue a saved draft (forces fallback dispatch)")
	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.Debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&opts.Debug, "d", false, "Enable debug logging (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Mailstorm - open the desktop mail client to compose a message\n\n")
		fmt.Fprintf(os.Stderr, "Usage: mailstorm [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  mailstorm                                Open an empty composer\n")
		fmt.Fprintf(os.Stderr, "  mailstorm -to dev@example.com            Compose to a recipient\n")
		fmt.Fprintf(os.Stderr, "  mailstorm -to dev@example.com -subject \"Re: hi\"\n")
		fmt.Fprintf(os.Stderr, "  mailstorm -header Cc:qa@example.com      Delegate to the fallback composer\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Mailstorm %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	req.OtherHeaders = headers
	return opts, &req
}
