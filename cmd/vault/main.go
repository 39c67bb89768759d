package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"ideavault/internal/config"
	"ideavault/internal/db"
	"ideavault/internal/logging"
)

// Version is the current CLI version string.
const Version = "v0.3"

// PrintHelp prints the CLI usage and examples.
func PrintHelp() {
	fmt.Print(
		`Idea Vault: a personal tracker for problems worth solving

         Usage:
         vault <command> [args]

         Commands:
         help, h                  Show this help
         version, -v              Show version
         problem, p               Manage problems (add/list/show/edit/rm)
         idea, i                  Manage ideas (add/list/show/edit/rm)
         note, n                  Manage research notes (add/list/show/edit/rm)
         link                     Link a problem to an idea
         unlink                   Remove a problem-idea link
         links                    Show or replace an idea's problem links
         stats                    Vault overview counts
         recent                   Recently added problems and ideas
         report                   Write an HTML overview report
         export                   Write the vault to a JSON backup
         import                   Restore the vault from a JSON backup
         clear                    Delete every record in the vault

         Examples:
         vault problem add -title "Freelancers chase unpaid invoices" -severity 4
         vault problem list -status open -tag fintech
         vault idea add -title "Invoice reminder bot" -score 70
         vault link 1 2
         vault note add -content "Spoke to 3 freelancers" -type interview -problem 1
         vault export -o backups/vault.json
`)
}

// App bundles the handles a command needs once the vault is open.
type App struct {
	Config *config.Config
	Log    *logging.Logger
	DB     *db.DB
	Repo   *db.Repository
}

// openApp loads configuration, builds the logger, opens the vault, and
// returns a close function.
func openApp() (*App, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("init logging: %w", err)
	}

	d, err := db.Open(cfg.DataDir)
	if err != nil {
		log.Sync()
		return nil, nil, fmt.Errorf("open vault: %w", err)
	}

	repo := db.NewRepository(d.DB, log.Named("db").With("vault_id", d.VaultID))

	closeFn := func() {
		_ = repo.Close()
		_ = d.Close()
		log.Sync()
	}
	return &App{Config: cfg, Log: log, DB: d, Repo: repo}, closeFn, nil
}

// parseID parses a positive record id argument.
func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	return id, err == nil && id > 0
}

// overview flattens s to a single line of at most max bytes.
func overview(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

// shortTime renders a stored timestamp for table output.
func shortTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}

// main dispatches CLI commands to their corresponding handlers.
func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		PrintHelp()
		return
	}

	cmd := args[0]
	rest := args[1:]

	switch cmd {
	case "help", "h":
		PrintHelp()
		return

	case "version", "-v":
		fmt.Println("Idea Vault " + Version)
		return

	case "problem", "p":
		os.Exit(cmdProblem(rest))

	case "idea", "i":
		os.Exit(cmdIdea(rest))

	case "note", "n":
		os.Exit(cmdNote(rest))

	case "link":
		os.Exit(cmdLink(rest))

	case "unlink":
		os.Exit(cmdUnlink(rest))

	case "links":
		os.Exit(cmdLinks(rest))

	case "stats":
		os.Exit(cmdStats(rest))

	case "recent":
		os.Exit(cmdRecent(rest))

	case "report":
		os.Exit(cmdReport(rest))

	case "export":
		os.Exit(cmdExport(rest))

	case "import":
		os.Exit(cmdImport(rest))

	case "clear":
		os.Exit(cmdClear(rest))

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		PrintHelp()
		os.Exit(2)
	}
}
