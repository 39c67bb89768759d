package main

import (
	"fmt"
	"os"
	"strings"
)

// cmdLink links a problem to an idea.
func cmdLink(args []string) int {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "link: expected a problem id and an idea id")
		return 2
	}
	problemID, ok := parseID(args[0])
	if !ok {
		fmt.Fprintln(os.Stderr, "link: invalid problem id")
		return 2
	}
	ideaID, ok := parseID(args[1])
	if !ok {
		fmt.Fprintln(os.Stderr, "link: invalid idea id")
		return 2
	}

	app, closeApp, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "link: %v\n", err)
		return 1
	}
	defer closeApp()

	if code := requireEndpoints(app, "link", problemID, ideaID); code != 0 {
		return code
	}

	created, err := app.Repo.LinkProblemToIdea(problemID, ideaID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "link: %v\n", err)
		return 1
	}
	if !created {
		fmt.Printf("Problem #%d and idea #%d are already linked\n", problemID, ideaID)
		return 0
	}

	fmt.Printf("Linked problem #%d to idea #%d\n", problemID, ideaID)
	return 0
}

// cmdUnlink removes the link between a problem and an idea.
func cmdUnlink(args []string) int {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "unlink: expected a problem id and an idea id")
		return 2
	}
	problemID, ok := parseID(args[0])
	if !ok {
		fmt.Fprintln(os.Stderr, "unlink: invalid problem id")
		return 2
	}
	ideaID, ok := parseID(args[1])
	if !ok {
		fmt.Fprintln(os.Stderr, "unlink: invalid idea id")
		return 2
	}

	app, closeApp, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "unlink: %v\n", err)
		return 1
	}
	defer closeApp()

	removed, err := app.Repo.UnlinkProblemFromIdea(problemID, ideaID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unlink: %v\n", err)
		return 1
	}
	if !removed {
		fmt.Fprintf(os.Stderr, "unlink: problem #%d and idea #%d are not linked\n", problemID, ideaID)
		return 1
	}

	fmt.Printf("Unlinked problem #%d from idea #%d\n", problemID, ideaID)
	return 0
}

// cmdLinks shows or replaces the full set of problems linked to an idea.
func cmdLinks(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "links: expected show or set")
		return 2
	}

	switch args[0] {
	case "show":
		return linksShow(args[1:])
	case "set":
		return linksSet(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "links: unknown subcommand %q\n", args[0])
		return 2
	}
}

func linksShow(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "links show: expected an idea id")
		return 2
	}
	ideaID, ok := parseID(args[0])
	if !ok {
		fmt.Fprintln(os.Stderr, "links show: invalid idea id")
		return 2
	}

	app, closeApp, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "links show: %v\n", err)
		return 1
	}
	defer closeApp()

	idea, err := app.Repo.IdeaByID(ideaID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "links show: %v\n", err)
		return 1
	}
	if idea == nil {
		fmt.Fprintf(os.Stderr, "links show: idea #%d not found\n", ideaID)
		return 1
	}

	problemIDs, err := app.Repo.LinkedProblemIDsForIdea(ideaID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "links show: %v\n", err)
		return 1
	}
	if len(problemIDs) == 0 {
		fmt.Printf("Idea #%d is not linked to any problems\n", ideaID)
		return 0
	}

	ids := make([]string, len(problemIDs))
	for n, pid := range problemIDs {
		ids[n] = fmt.Sprintf("%d", pid)
	}
	fmt.Printf("Idea #%d is linked to problems: %s\n", ideaID, strings.Join(ids, " "))

	problems, err := app.Repo.ProblemsForIdea(ideaID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "links show: %v\n", err)
		return 1
	}
	for _, p := range problems {
		fmt.Printf("- #%d %s (%s)\n", p.ID, overview(p.Title, 60), p.Status)
	}
	return 0
}

func linksSet(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "links set: expected an idea id, then zero or more problem ids")
		return 2
	}
	ideaID, ok := parseID(args[0])
	if !ok {
		fmt.Fprintln(os.Stderr, "links set: invalid idea id")
		return 2
	}

	problemIDs := make([]int64, 0, len(args)-1)
	for _, arg := range args[1:] {
		pid, ok := parseID(arg)
		if !ok {
			fmt.Fprintf(os.Stderr, "links set: invalid problem id %q\n", arg)
			return 2
		}
		problemIDs = append(problemIDs, pid)
	}

	app, closeApp, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "links set: %v\n", err)
		return 1
	}
	defer closeApp()

	idea, err := app.Repo.IdeaByID(ideaID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "links set: %v\n", err)
		return 1
	}
	if idea == nil {
		fmt.Fprintf(os.Stderr, "links set: idea #%d not found\n", ideaID)
		return 1
	}
	for _, pid := range problemIDs {
		p, err := app.Repo.ProblemByID(pid)
		if err != nil {
			fmt.Fprintf(os.Stderr, "links set: %v\n", err)
			return 1
		}
		if p == nil {
			fmt.Fprintf(os.Stderr, "links set: problem #%d not found\n", pid)
			return 1
		}
	}

	if err := app.Repo.SetProblemLinksForIdea(ideaID, problemIDs); err != nil {
		fmt.Fprintf(os.Stderr, "links set: %v\n", err)
		return 1
	}

	if len(problemIDs) == 0 {
		fmt.Printf("Cleared all problem links for idea #%d\n", ideaID)
		return 0
	}
	fmt.Printf("Idea #%d now linked to %d problem(s)\n", ideaID, len(problemIDs))
	return 0
}

// requireEndpoints verifies both records exist before linking.
func requireEndpoints(app *App, cmd string, problemID, ideaID int64) int {
	p, err := app.Repo.ProblemByID(problemID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cmd, err)
		return 1
	}
	if p == nil {
		fmt.Fprintf(os.Stderr, "%s: problem #%d not found\n", cmd, problemID)
		return 1
	}

	i, err := app.Repo.IdeaByID(ideaID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cmd, err)
		return 1
	}
	if i == nil {
		fmt.Fprintf(os.Stderr, "%s: idea #%d not found\n", cmd, ideaID)
		return 1
	}
	return 0
}
