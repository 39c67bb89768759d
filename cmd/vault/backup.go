package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"ideavault/internal/export"
)

// cmdExport writes the whole vault to a JSON backup file.
func cmdExport(args []string) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	out := fs.String("o", "", "backup file path (default: backup dir from config)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	app, closeApp, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "export: %v\n", err)
		return 1
	}
	defer closeApp()

	path := *out
	if path == "" {
		path = filepath.Join(app.Config.BackupDir, export.DefaultFileName)
	}

	service := export.NewService(app.Repo, app.Log.Named("export"))
	res, err := service.Backup(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "export: %v\n", err)
		return 1
	}

	fmt.Printf("Backup written to %s (%d bytes)\n", res.Path, res.SizeBytes)
	fmt.Printf("Problems: %d  Ideas: %d  Notes: %d  Links: %d\n",
		res.Counts.Problems, res.Counts.Ideas, res.Counts.Notes, res.Counts.Links)
	fmt.Printf("SHA-256: %s\n", res.Checksum)
	return 0
}

// cmdImport replaces the whole vault with a JSON backup file. The
// backup governs verbatim, counters included.
func cmdImport(args []string) int {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	yes := fs.Bool("yes", false, "confirm overwriting every record in the vault")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "import: expected a backup file path")
		return 2
	}
	if !*yes {
		fmt.Fprintln(os.Stderr, "import: this replaces every record in the vault; rerun with -yes to confirm")
		return 2
	}

	app, closeApp, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "import: %v\n", err)
		return 1
	}
	defer closeApp()

	service := export.NewService(app.Repo, app.Log.Named("export"))
	res, err := service.Restore(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "import: %v\n", err)
		return 1
	}

	fmt.Printf("Restored %s\n", res.Path)
	fmt.Printf("Problems: %d  Ideas: %d  Notes: %d  Links: %d\n",
		res.Counts.Problems, res.Counts.Ideas, res.Counts.Notes, res.Counts.Links)
	return 0
}

// cmdClear deletes every record and resets the id counters.
func cmdClear(args []string) int {
	fs := flag.NewFlagSet("clear", flag.ContinueOnError)
	yes := fs.Bool("yes", false, "confirm deleting every record in the vault")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if !*yes {
		fmt.Fprintln(os.Stderr, "clear: this deletes every record in the vault; rerun with -yes to confirm")
		return 2
	}

	app, closeApp, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "clear: %v\n", err)
		return 1
	}
	defer closeApp()

	if err := app.Repo.ClearAll(); err != nil {
		fmt.Fprintf(os.Stderr, "clear: %v\n", err)
		return 1
	}

	fmt.Println("Vault cleared")
	return 0
}
