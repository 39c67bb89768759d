package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"ideavault/internal/db"
	"ideavault/internal/models"
)

// cmdProblem dispatches the problem subcommands.
func cmdProblem(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "problem: expected add, list, show, edit, or rm")
		return 2
	}

	switch args[0] {
	case "add", "a":
		return problemAdd(args[1:])
	case "list", "ls":
		return problemList(args[1:])
	case "show":
		return problemShow(args[1:])
	case "edit":
		return problemEdit(args[1:])
	case "rm", "delete":
		return problemRemove(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "problem: unknown subcommand %q\n", args[0])
		return 2
	}
}

func problemAdd(args []string) int {
	fs := flag.NewFlagSet("problem add", flag.ContinueOnError)
	title := fs.String("title", "", "short problem title (required)")
	description := fs.String("desc", "", "what the problem is")
	observed := fs.String("context", "", "where or when the problem shows up")
	severity := fs.Int("severity", 3, "how painful, 1 to 5")
	frequency := fs.String("frequency", "weekly", "rare, weekly, or daily")
	status := fs.String("status", "open", "open, solved, or ignored")
	tags := fs.String("tags", "", "comma-separated tags")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	p := &models.Problem{
		Title:           strings.TrimSpace(*title),
		Description:     *description,
		ObservedContext: *observed,
		Severity:        *severity,
		Frequency:       *frequency,
		Status:          *status,
		Tags:            db.NormalizeTags(db.TagsFromCommaString(*tags)),
	}
	if err := models.Validate(p); err != nil {
		fmt.Fprintf(os.Stderr, "problem add: %v\n", err)
		return 2
	}

	app, closeApp, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "problem add: %v\n", err)
		return 1
	}
	defer closeApp()

	id, err := app.Repo.CreateProblem(p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "problem add: %v\n", err)
		return 1
	}

	fmt.Printf("Saved problem #%d\n", id)
	return 0
}

func problemList(args []string) int {
	fs := flag.NewFlagSet("problem list", flag.ContinueOnError)
	status := fs.String("status", "", "filter by status")
	severity := fs.Int("severity", 0, "filter by severity")
	frequency := fs.String("frequency", "", "filter by frequency")
	tags := fs.String("tag", "", "filter by tags (comma-separated, any match)")
	keyword := fs.String("keyword", "", "search title, description, context, and tags")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	fb := db.NewFilterBuilder()
	if *status != "" {
		fb.ProblemStatus(*status)
	}
	if *severity != 0 {
		fb.Severity(*severity)
	}
	if *frequency != "" {
		fb.Frequency(*frequency)
	}
	if *tags != "" {
		fb.TagsFromCommaString(*tags)
	}
	if *keyword != "" {
		fb.ProblemKeyword(*keyword)
	}

	app, closeApp, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "problem list: %v\n", err)
		return 1
	}
	defer closeApp()

	problems, err := app.Repo.ListProblems(fb)
	if err != nil {
		fmt.Fprintf(os.Stderr, "problem list: %v\n", err)
		return 1
	}

	if len(problems) == 0 {
		fmt.Println("No problems yet.")
		return 0
	}

	printProblemTable(problems)
	return 0
}

func printProblemTable(problems []*models.Problem) {
	fmt.Printf("%-6s %-8s %-4s %-7s %-17s %s\n", "ID", "STATUS", "SEV", "FREQ", "CREATED", "TITLE")
	for _, p := range problems {
		fmt.Printf("%-6d %-8s %-4d %-7s %-17s %s\n",
			p.ID,
			p.Status,
			p.Severity,
			p.Frequency,
			shortTime(p.CreatedAtTime()),
			overview(p.Title, 60),
		)
	}
}

func problemShow(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "problem show: expected an id")
		return 2
	}
	id, ok := parseID(args[0])
	if !ok {
		fmt.Fprintln(os.Stderr, "problem show: invalid id")
		return 2
	}

	app, closeApp, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "problem show: %v\n", err)
		return 1
	}
	defer closeApp()

	p, err := app.Repo.ProblemByID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "problem show: %v\n", err)
		return 1
	}
	if p == nil {
		fmt.Fprintf(os.Stderr, "problem show: #%d not found\n", id)
		return 1
	}

	fmt.Printf("#%d  %s  (severity %d, %s)\n", p.ID, p.Status, p.Severity, p.Frequency)
	fmt.Println()
	fmt.Println("TITLE")
	fmt.Println(p.Title)
	if p.Description != "" {
		fmt.Println()
		fmt.Println("DESCRIPTION")
		fmt.Println(p.Description)
	}
	if p.ObservedContext != "" {
		fmt.Println()
		fmt.Println("OBSERVED CONTEXT")
		fmt.Println(p.ObservedContext)
	}

	fmt.Println()
	fmt.Println("META")
	if p.Tags != "" {
		fmt.Printf("Tags:    %s\n", p.Tags)
	}
	fmt.Printf("Created: %s\n", shortTime(p.CreatedAtTime()))
	fmt.Printf("Updated: %s\n", shortTime(p.UpdatedAtTime()))

	ideas, err := app.Repo.IdeasForProblem(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "problem show: %v\n", err)
		return 1
	}
	if len(ideas) > 0 {
		fmt.Println()
		fmt.Println("LINKED IDEAS")
		for _, i := range ideas {
			fmt.Printf("- #%d %s (%s)\n", i.ID, overview(i.Title, 60), i.Status)
		}
	}

	notes, err := app.Repo.NotesForProblem(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "problem show: %v\n", err)
		return 1
	}
	if len(notes) > 0 {
		fmt.Println()
		fmt.Println("NOTES")
		for _, n := range notes {
			fmt.Printf("- #%d [%s] %s\n", n.ID, n.NoteType, overview(n.Content, 60))
		}
	}

	return 0
}

func problemEdit(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "problem edit: expected an id")
		return 2
	}
	id, ok := parseID(args[0])
	if !ok {
		fmt.Fprintln(os.Stderr, "problem edit: invalid id")
		return 2
	}

	fs := flag.NewFlagSet("problem edit", flag.ContinueOnError)
	title := fs.String("title", "", "new title")
	description := fs.String("desc", "", "new description")
	observed := fs.String("context", "", "new observed context")
	severity := fs.Int("severity", 0, "new severity, 1 to 5")
	frequency := fs.String("frequency", "", "new frequency")
	status := fs.String("status", "", "new status")
	tags := fs.String("tags", "", "new comma-separated tags")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}

	visited := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { visited[f.Name] = true })
	if len(visited) == 0 {
		fmt.Fprintln(os.Stderr, "problem edit: nothing to change")
		return 2
	}

	app, closeApp, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "problem edit: %v\n", err)
		return 1
	}
	defer closeApp()

	p, err := app.Repo.ProblemByID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "problem edit: %v\n", err)
		return 1
	}
	if p == nil {
		fmt.Fprintf(os.Stderr, "problem edit: #%d not found\n", id)
		return 1
	}

	if visited["title"] {
		p.Title = strings.TrimSpace(*title)
	}
	if visited["desc"] {
		p.Description = *description
	}
	if visited["context"] {
		p.ObservedContext = *observed
	}
	if visited["severity"] {
		p.Severity = *severity
	}
	if visited["frequency"] {
		p.Frequency = *frequency
	}
	if visited["status"] {
		p.Status = *status
	}
	if visited["tags"] {
		p.Tags = db.NormalizeTags(db.TagsFromCommaString(*tags))
	}

	if err := models.Validate(p); err != nil {
		fmt.Fprintf(os.Stderr, "problem edit: %v\n", err)
		return 2
	}

	updated, err := app.Repo.UpdateProblem(p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "problem edit: %v\n", err)
		return 1
	}
	if !updated {
		fmt.Fprintf(os.Stderr, "problem edit: #%d not found\n", id)
		return 1
	}

	fmt.Printf("Updated problem #%d\n", id)
	return 0
}

func problemRemove(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "problem rm: expected an id")
		return 2
	}
	id, ok := parseID(args[0])
	if !ok {
		fmt.Fprintln(os.Stderr, "problem rm: invalid id")
		return 2
	}

	app, closeApp, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "problem rm: %v\n", err)
		return 1
	}
	defer closeApp()

	deleted, err := app.Repo.DeleteProblem(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "problem rm: %v\n", err)
		return 1
	}
	if !deleted {
		fmt.Fprintf(os.Stderr, "problem rm: #%d not found\n", id)
		return 1
	}

	fmt.Printf("Deleted problem #%d and detached its links and notes\n", id)
	return 0
}
