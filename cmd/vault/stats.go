package main

import (
	"flag"
	"fmt"
	"os"

	"ideavault/internal/report"
)

// cmdStats prints the vault overview counts.
func cmdStats(args []string) int {
	if len(args) != 0 {
		fmt.Fprintln(os.Stderr, "stats: takes no arguments")
		return 2
	}

	app, closeApp, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "stats: %v\n", err)
		return 1
	}
	defer closeApp()

	stats, err := report.Collect(app.Repo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stats: %v\n", err)
		return 1
	}

	fmt.Print(report.RenderText(stats))
	return 0
}

// cmdRecent lists the most recently added problems and ideas.
func cmdRecent(args []string) int {
	fs := flag.NewFlagSet("recent", flag.ContinueOnError)
	limit := fs.Int("limit", 5, "how many of each to show")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	app, closeApp, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "recent: %v\n", err)
		return 1
	}
	defer closeApp()

	problems, err := app.Repo.RecentProblems(*limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "recent: %v\n", err)
		return 1
	}
	ideas, err := app.Repo.RecentIdeas(*limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "recent: %v\n", err)
		return 1
	}

	if len(problems) == 0 && len(ideas) == 0 {
		fmt.Println("Nothing in the vault yet.")
		return 0
	}

	if len(problems) > 0 {
		fmt.Println("RECENT PROBLEMS")
		printProblemTable(problems)
	}
	if len(ideas) > 0 {
		if len(problems) > 0 {
			fmt.Println()
		}
		fmt.Println("RECENT IDEAS")
		printIdeaTable(ideas)
	}
	return 0
}

// cmdReport writes the HTML overview report.
func cmdReport(args []string) int {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	out := fs.String("o", "idea_vault_report.html", "report file path")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	app, closeApp, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "report: %v\n", err)
		return 1
	}
	defer closeApp()

	stats, err := report.Collect(app.Repo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "report: %v\n", err)
		return 1
	}

	html, err := report.RenderHTML(stats)
	if err != nil {
		fmt.Fprintf(os.Stderr, "report: %v\n", err)
		return 1
	}

	if err := os.WriteFile(*out, html, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "report: %v\n", err)
		return 1
	}

	fmt.Printf("Report written to %s\n", *out)
	return 0
}
