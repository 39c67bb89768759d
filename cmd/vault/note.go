package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"ideavault/internal/db"
	"ideavault/internal/models"
)

// cmdNote dispatches the note subcommands.
func cmdNote(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "note: expected add, list, show, edit, or rm")
		return 2
	}

	switch args[0] {
	case "add", "a":
		return noteAdd(args[1:])
	case "list", "ls":
		return noteList(args[1:])
	case "show":
		return noteShow(args[1:])
	case "edit":
		return noteEdit(args[1:])
	case "rm", "delete":
		return noteRemove(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "note: unknown subcommand %q\n", args[0])
		return 2
	}
}

func noteAdd(args []string) int {
	fs := flag.NewFlagSet("note add", flag.ContinueOnError)
	content := fs.String("content", "", "note text, markdown allowed (required)")
	noteType := fs.String("type", "general", "interview, competitor, pricing, tech, or general")
	links := fs.String("links", "", "free-text references, e.g. URLs")
	problemID := fs.Int64("problem", 0, "attach to a problem id")
	ideaID := fs.Int64("idea", 0, "attach to an idea id")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	n := &models.Note{
		NoteType: *noteType,
		Content:  strings.TrimSpace(*content),
		Links:    *links,
	}
	if *problemID > 0 {
		n.ProblemID = problemID
	}
	if *ideaID > 0 {
		n.IdeaID = ideaID
	}
	if err := models.Validate(n); err != nil {
		fmt.Fprintf(os.Stderr, "note add: %v\n", err)
		return 2
	}

	app, closeApp, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "note add: %v\n", err)
		return 1
	}
	defer closeApp()

	id, err := app.Repo.CreateNote(n)
	if err != nil {
		fmt.Fprintf(os.Stderr, "note add: %v\n", err)
		return 1
	}

	fmt.Printf("Saved note #%d\n", id)
	return 0
}

func noteList(args []string) int {
	fs := flag.NewFlagSet("note list", flag.ContinueOnError)
	noteType := fs.String("type", "", "filter by note type")
	problemID := fs.Int64("problem", 0, "notes attached to a problem id")
	ideaID := fs.Int64("idea", 0, "notes attached to an idea id")
	keyword := fs.String("keyword", "", "search content and links")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	fb := db.NewFilterBuilder()
	if *noteType != "" {
		fb.NoteType(*noteType)
	}
	if *problemID > 0 {
		fb.NoteForProblem(*problemID)
	}
	if *ideaID > 0 {
		fb.NoteForIdea(*ideaID)
	}
	if *keyword != "" {
		fb.NoteKeyword(*keyword)
	}

	app, closeApp, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "note list: %v\n", err)
		return 1
	}
	defer closeApp()

	notes, err := app.Repo.ListNotes(fb)
	if err != nil {
		fmt.Fprintf(os.Stderr, "note list: %v\n", err)
		return 1
	}

	if len(notes) == 0 {
		fmt.Println("No notes yet.")
		return 0
	}

	printNoteTable(notes)
	return 0
}

func printNoteTable(notes []*models.Note) {
	fmt.Printf("%-6s %-11s %-9s %-17s %s\n", "ID", "TYPE", "REF", "CREATED", "CONTENT")
	for _, n := range notes {
		fmt.Printf("%-6d %-11s %-9s %-17s %s\n",
			n.ID,
			n.NoteType,
			noteRef(n),
			shortTime(n.CreatedAtTime()),
			overview(n.Content, 50),
		)
	}
}

// noteRef renders a note's attachments, e.g. "p3 i7" or "-".
func noteRef(n *models.Note) string {
	var parts []string
	if n.ProblemID != nil {
		parts = append(parts, fmt.Sprintf("p%d", *n.ProblemID))
	}
	if n.IdeaID != nil {
		parts = append(parts, fmt.Sprintf("i%d", *n.IdeaID))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func noteShow(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "note show: expected an id")
		return 2
	}
	id, ok := parseID(args[0])
	if !ok {
		fmt.Fprintln(os.Stderr, "note show: invalid id")
		return 2
	}

	app, closeApp, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "note show: %v\n", err)
		return 1
	}
	defer closeApp()

	n, err := app.Repo.NoteByID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "note show: %v\n", err)
		return 1
	}
	if n == nil {
		fmt.Fprintf(os.Stderr, "note show: #%d not found\n", id)
		return 1
	}

	fmt.Printf("#%d  %s\n", n.ID, n.NoteType)
	fmt.Println()
	fmt.Println("CONTENT")
	fmt.Println(n.Content)

	fmt.Println()
	fmt.Println("META")
	if n.Links != "" {
		fmt.Printf("Links:   %s\n", n.Links)
	}
	if n.ProblemID != nil {
		fmt.Printf("Problem: #%d\n", *n.ProblemID)
	}
	if n.IdeaID != nil {
		fmt.Printf("Idea:    #%d\n", *n.IdeaID)
	}
	fmt.Printf("Created: %s\n", shortTime(n.CreatedAtTime()))

	return 0
}

func noteEdit(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "note edit: expected an id")
		return 2
	}
	id, ok := parseID(args[0])
	if !ok {
		fmt.Fprintln(os.Stderr, "note edit: invalid id")
		return 2
	}

	fs := flag.NewFlagSet("note edit", flag.ContinueOnError)
	content := fs.String("content", "", "new note text")
	noteType := fs.String("type", "", "new note type")
	links := fs.String("links", "", "new references")
	problemID := fs.Int64("problem", 0, "new problem attachment (0 detaches)")
	ideaID := fs.Int64("idea", 0, "new idea attachment (0 detaches)")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}

	visited := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { visited[f.Name] = true })
	if len(visited) == 0 {
		fmt.Fprintln(os.Stderr, "note edit: nothing to change")
		return 2
	}

	app, closeApp, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "note edit: %v\n", err)
		return 1
	}
	defer closeApp()

	n, err := app.Repo.NoteByID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "note edit: %v\n", err)
		return 1
	}
	if n == nil {
		fmt.Fprintf(os.Stderr, "note edit: #%d not found\n", id)
		return 1
	}

	if visited["content"] {
		n.Content = strings.TrimSpace(*content)
	}
	if visited["type"] {
		n.NoteType = *noteType
	}
	if visited["links"] {
		n.Links = *links
	}
	if visited["problem"] {
		if *problemID > 0 {
			n.ProblemID = problemID
		} else {
			n.ProblemID = nil
		}
	}
	if visited["idea"] {
		if *ideaID > 0 {
			n.IdeaID = ideaID
		} else {
			n.IdeaID = nil
		}
	}

	if err := models.Validate(n); err != nil {
		fmt.Fprintf(os.Stderr, "note edit: %v\n", err)
		return 2
	}

	updated, err := app.Repo.UpdateNote(n)
	if err != nil {
		fmt.Fprintf(os.Stderr, "note edit: %v\n", err)
		return 1
	}
	if !updated {
		fmt.Fprintf(os.Stderr, "note edit: #%d not found\n", id)
		return 1
	}

	fmt.Printf("Updated note #%d\n", id)
	return 0
}

func noteRemove(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "note rm: expected an id")
		return 2
	}
	id, ok := parseID(args[0])
	if !ok {
		fmt.Fprintln(os.Stderr, "note rm: invalid id")
		return 2
	}

	app, closeApp, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "note rm: %v\n", err)
		return 1
	}
	defer closeApp()

	deleted, err := app.Repo.DeleteNote(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "note rm: %v\n", err)
		return 1
	}
	if !deleted {
		fmt.Fprintf(os.Stderr, "note rm: #%d not found\n", id)
		return 1
	}

	fmt.Printf("Deleted note #%d\n", id)
	return 0
}
