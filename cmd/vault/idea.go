package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"ideavault/internal/db"
	"ideavault/internal/models"
)

// cmdIdea dispatches the idea subcommands.
func cmdIdea(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "idea: expected add, list, show, edit, or rm")
		return 2
	}

	switch args[0] {
	case "add", "a":
		return ideaAdd(args[1:])
	case "list", "ls":
		return ideaList(args[1:])
	case "show":
		return ideaShow(args[1:])
	case "edit":
		return ideaEdit(args[1:])
	case "rm", "delete":
		return ideaRemove(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "idea: unknown subcommand %q\n", args[0])
		return 2
	}
}

func ideaAdd(args []string) int {
	fs := flag.NewFlagSet("idea add", flag.ContinueOnError)
	title := fs.String("title", "", "short idea title (required)")
	pitch := fs.String("pitch", "", "one-paragraph pitch")
	target := fs.String("target", "", "target user")
	value := fs.String("value", "", "value proposition")
	diff := fs.String("diff", "", "differentiation from existing options")
	assumptions := fs.String("assumptions", "", "assumptions to validate")
	risks := fs.String("risks", "", "known risks")
	status := fs.String("status", "new", "new, researching, validating, building, or parked")
	score := fs.Int("score", -1, "score 0 to 100 (omit to leave unscored)")
	tags := fs.String("tags", "", "comma-separated tags")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	i := &models.Idea{
		Title:           strings.TrimSpace(*title),
		Pitch:           *pitch,
		TargetUser:      *target,
		ValueProp:       *value,
		Differentiation: *diff,
		Assumptions:     *assumptions,
		Risks:           *risks,
		Status:          *status,
		Tags:            db.NormalizeTags(db.TagsFromCommaString(*tags)),
	}
	if *score >= 0 {
		i.Score = score
	}
	if err := models.Validate(i); err != nil {
		fmt.Fprintf(os.Stderr, "idea add: %v\n", err)
		return 2
	}

	app, closeApp, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "idea add: %v\n", err)
		return 1
	}
	defer closeApp()

	id, err := app.Repo.CreateIdea(i)
	if err != nil {
		fmt.Fprintf(os.Stderr, "idea add: %v\n", err)
		return 1
	}

	fmt.Printf("Saved idea #%d\n", id)
	return 0
}

func ideaList(args []string) int {
	fs := flag.NewFlagSet("idea list", flag.ContinueOnError)
	status := fs.String("status", "", "filter by status")
	tags := fs.String("tag", "", "filter by tags (comma-separated, any match)")
	keyword := fs.String("keyword", "", "search title, pitch, and the evaluation fields")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	fb := db.NewFilterBuilder()
	if *status != "" {
		fb.IdeaStatus(*status)
	}
	if *tags != "" {
		fb.TagsFromCommaString(*tags)
	}
	if *keyword != "" {
		fb.IdeaKeyword(*keyword)
	}

	app, closeApp, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "idea list: %v\n", err)
		return 1
	}
	defer closeApp()

	ideas, err := app.Repo.ListIdeas(fb)
	if err != nil {
		fmt.Fprintf(os.Stderr, "idea list: %v\n", err)
		return 1
	}

	if len(ideas) == 0 {
		fmt.Println("No ideas yet.")
		return 0
	}

	printIdeaTable(ideas)
	return 0
}

func printIdeaTable(ideas []*models.Idea) {
	fmt.Printf("%-6s %-12s %-6s %-17s %s\n", "ID", "STATUS", "SCORE", "CREATED", "TITLE")
	for _, i := range ideas {
		score := "-"
		if i.Score != nil {
			score = fmt.Sprintf("%d", *i.Score)
		}
		fmt.Printf("%-6d %-12s %-6s %-17s %s\n",
			i.ID,
			i.Status,
			score,
			shortTime(i.CreatedAtTime()),
			overview(i.Title, 60),
		)
	}
}

func ideaShow(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "idea show: expected an id")
		return 2
	}
	id, ok := parseID(args[0])
	if !ok {
		fmt.Fprintln(os.Stderr, "idea show: invalid id")
		return 2
	}

	app, closeApp, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "idea show: %v\n", err)
		return 1
	}
	defer closeApp()

	i, err := app.Repo.IdeaByID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "idea show: %v\n", err)
		return 1
	}
	if i == nil {
		fmt.Fprintf(os.Stderr, "idea show: #%d not found\n", id)
		return 1
	}

	if i.Score != nil {
		fmt.Printf("#%d  %s  (score %d)\n", i.ID, i.Status, *i.Score)
	} else {
		fmt.Printf("#%d  %s  (unscored)\n", i.ID, i.Status)
	}
	fmt.Println()
	fmt.Println("TITLE")
	fmt.Println(i.Title)

	sections := []struct {
		heading string
		body    string
	}{
		{"PITCH", i.Pitch},
		{"TARGET USER", i.TargetUser},
		{"VALUE PROPOSITION", i.ValueProp},
		{"DIFFERENTIATION", i.Differentiation},
		{"ASSUMPTIONS", i.Assumptions},
		{"RISKS", i.Risks},
	}
	for _, s := range sections {
		if s.body == "" {
			continue
		}
		fmt.Println()
		fmt.Println(s.heading)
		fmt.Println(s.body)
	}

	fmt.Println()
	fmt.Println("META")
	if i.Tags != "" {
		fmt.Printf("Tags:    %s\n", i.Tags)
	}
	fmt.Printf("Created: %s\n", shortTime(i.CreatedAtTime()))
	fmt.Printf("Updated: %s\n", shortTime(i.UpdatedAtTime()))

	problems, err := app.Repo.ProblemsForIdea(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "idea show: %v\n", err)
		return 1
	}
	if len(problems) > 0 {
		fmt.Println()
		fmt.Println("LINKED PROBLEMS")
		for _, p := range problems {
			fmt.Printf("- #%d %s (%s)\n", p.ID, overview(p.Title, 60), p.Status)
		}
	}

	notes, err := app.Repo.NotesForIdea(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "idea show: %v\n", err)
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

func ideaEdit(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "idea edit: expected an id")
		return 2
	}
	id, ok := parseID(args[0])
	if !ok {
		fmt.Fprintln(os.Stderr, "idea edit: invalid id")
		return 2
	}

	fs := flag.NewFlagSet("idea edit", flag.ContinueOnError)
	title := fs.String("title", "", "new title")
	pitch := fs.String("pitch", "", "new pitch")
	target := fs.String("target", "", "new target user")
	value := fs.String("value", "", "new value proposition")
	diff := fs.String("diff", "", "new differentiation")
	assumptions := fs.String("assumptions", "", "new assumptions")
	risks := fs.String("risks", "", "new risks")
	status := fs.String("status", "", "new status")
	score := fs.Int("score", -1, "new score 0 to 100 (-1 clears)")
	tags := fs.String("tags", "", "new comma-separated tags")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}

	visited := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { visited[f.Name] = true })
	if len(visited) == 0 {
		fmt.Fprintln(os.Stderr, "idea edit: nothing to change")
		return 2
	}

	app, closeApp, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "idea edit: %v\n", err)
		return 1
	}
	defer closeApp()

	i, err := app.Repo.IdeaByID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "idea edit: %v\n", err)
		return 1
	}
	if i == nil {
		fmt.Fprintf(os.Stderr, "idea edit: #%d not found\n", id)
		return 1
	}

	if visited["title"] {
		i.Title = strings.TrimSpace(*title)
	}
	if visited["pitch"] {
		i.Pitch = *pitch
	}
	if visited["target"] {
		i.TargetUser = *target
	}
	if visited["value"] {
		i.ValueProp = *value
	}
	if visited["diff"] {
		i.Differentiation = *diff
	}
	if visited["assumptions"] {
		i.Assumptions = *assumptions
	}
	if visited["risks"] {
		i.Risks = *risks
	}
	if visited["status"] {
		i.Status = *status
	}
	if visited["score"] {
		if *score < 0 {
			i.Score = nil
		} else {
			i.Score = score
		}
	}
	if visited["tags"] {
		i.Tags = db.NormalizeTags(db.TagsFromCommaString(*tags))
	}

	if err := models.Validate(i); err != nil {
		fmt.Fprintf(os.Stderr, "idea edit: %v\n", err)
		return 2
	}

	updated, err := app.Repo.UpdateIdea(i)
	if err != nil {
		fmt.Fprintf(os.Stderr, "idea edit: %v\n", err)
		return 1
	}
	if !updated {
		fmt.Fprintf(os.Stderr, "idea edit: #%d not found\n", id)
		return 1
	}

	fmt.Printf("Updated idea #%d\n", id)
	return 0
}

func ideaRemove(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "idea rm: expected an id")
		return 2
	}
	id, ok := parseID(args[0])
	if !ok {
		fmt.Fprintln(os.Stderr, "idea rm: invalid id")
		return 2
	}

	app, closeApp, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "idea rm: %v\n", err)
		return 1
	}
	defer closeApp()

	deleted, err := app.Repo.DeleteIdea(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "idea rm: %v\n", err)
		return 1
	}
	if !deleted {
		fmt.Fprintf(os.Stderr, "idea rm: #%d not found\n", id)
		return 1
	}

	fmt.Printf("Deleted idea #%d and detached its links and notes\n", id)
	return 0
}
