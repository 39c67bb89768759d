package db

import (
	"testing"

	"ideavault/internal/models"
)

// =====================================================
// Problem/Idea Link Tests
// =====================================================

func TestLinkProblemToIdea(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db, nil)
	defer repo.Close()

	pid, err := repo.CreateProblem(&models.Problem{Title: "P"})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	iid, err := repo.CreateIdea(&models.Idea{Title: "I"})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	ok, err := repo.LinkProblemToIdea(pid, iid)
	if err != nil {
		t.Fatalf("LinkProblemToIdea failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected first link to report true")
	}

	// Linking the same pair again is suppressed
	ok, err = repo.LinkProblemToIdea(pid, iid)
	if err != nil {
		t.Fatalf("LinkProblemToIdea failed: %v", err)
	}
	if ok {
		t.Error("Expected duplicate link to report false")
	}

	links, err := repo.AllLinks()
	if err != nil {
		t.Fatalf("AllLinks failed: %v", err)
	}
	if len(links) != 1 {
		t.Errorf("Expected exactly one link row, got %d", len(links))
	}
}

func TestLinkProblemToIdea_danglingEndpoints(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db, nil)
	defer repo.Close()

	// Endpoint existence is not checked
	ok, err := repo.LinkProblemToIdea(999, 888)
	if err != nil {
		t.Fatalf("LinkProblemToIdea failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected dangling link to be accepted")
	}

	// Traversal simply finds no records behind the ids
	ideas, err := repo.IdeasForProblem(999)
	if err != nil {
		t.Fatalf("IdeasForProblem failed: %v", err)
	}
	if len(ideas) != 0 {
		t.Errorf("Expected no ideas behind a dangling link, got %d", len(ideas))
	}
}

func TestUnlinkProblemFromIdea(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db, nil)
	defer repo.Close()

	pid, err := repo.CreateProblem(&models.Problem{Title: "P"})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	iid, err := repo.CreateIdea(&models.Idea{Title: "I"})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if _, err := repo.LinkProblemToIdea(pid, iid); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	ok, err := repo.UnlinkProblemFromIdea(pid, iid)
	if err != nil {
		t.Fatalf("UnlinkProblemFromIdea failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected unlink to report true")
	}

	// Second unlink finds nothing
	ok, err = repo.UnlinkProblemFromIdea(pid, iid)
	if err != nil {
		t.Fatalf("UnlinkProblemFromIdea failed: %v", err)
	}
	if ok {
		t.Error("Expected second unlink to report false")
	}
}

func TestIdeasForProblem_entityInsertionOrder(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db, nil)
	defer repo.Close()

	pid, err := repo.CreateProblem(&models.Problem{Title: "P"})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	var ideaIDs []int64
	for _, title := range []string{"first", "second", "third"} {
		id, err := repo.CreateIdea(&models.Idea{Title: title})
		if err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
		ideaIDs = append(ideaIDs, id)
	}

	// Link newest first; traversal still yields creation order
	if _, err := repo.LinkProblemToIdea(pid, ideaIDs[2]); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if _, err := repo.LinkProblemToIdea(pid, ideaIDs[0]); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	ideas, err := repo.IdeasForProblem(pid)
	if err != nil {
		t.Fatalf("IdeasForProblem failed: %v", err)
	}
	if len(ideas) != 2 {
		t.Fatalf("Expected 2 linked ideas, got %d", len(ideas))
	}
	if ideas[0].ID != ideaIDs[0] || ideas[1].ID != ideaIDs[2] {
		t.Errorf("Expected ids [%d %d], got [%d %d]", ideaIDs[0], ideaIDs[2], ideas[0].ID, ideas[1].ID)
	}
}

func TestProblemsForIdea_deduplicates(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db, nil)
	defer repo.Close()

	pid, err := repo.CreateProblem(&models.Problem{Title: "P"})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	iid, err := repo.CreateIdea(&models.Idea{Title: "I"})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	// Duplicate link rows can exist after a full replace
	if err := repo.SetProblemLinksForIdea(iid, []int64{pid, pid, pid}); err != nil {
		t.Fatalf("SetProblemLinksForIdea failed: %v", err)
	}

	problems, err := repo.ProblemsForIdea(iid)
	if err != nil {
		t.Fatalf("ProblemsForIdea failed: %v", err)
	}
	if len(problems) != 1 {
		t.Errorf("Expected the problem to appear once, got %d", len(problems))
	}
}

func TestLinkedProblemIDsForIdea_preservesDuplicates(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db, nil)
	defer repo.Close()

	iid, err := repo.CreateIdea(&models.Idea{Title: "I"})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	if err := repo.SetProblemLinksForIdea(iid, []int64{4, 9, 4}); err != nil {
		t.Fatalf("SetProblemLinksForIdea failed: %v", err)
	}

	ids, err := repo.LinkedProblemIDsForIdea(iid)
	if err != nil {
		t.Fatalf("LinkedProblemIDsForIdea failed: %v", err)
	}
	want := []int64{4, 9, 4}
	if len(ids) != len(want) {
		t.Fatalf("Expected %d ids, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("Expected id %d at position %d, got %d", want[i], i, ids[i])
		}
	}
}

func TestSetProblemLinksForIdea_replacesExisting(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db, nil)
	defer repo.Close()

	iid, err := repo.CreateIdea(&models.Idea{Title: "I"})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	other, err := repo.CreateIdea(&models.Idea{Title: "Other"})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	if _, err := repo.LinkProblemToIdea(1, iid); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if _, err := repo.LinkProblemToIdea(2, other); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	if err := repo.SetProblemLinksForIdea(iid, []int64{7, 8}); err != nil {
		t.Fatalf("SetProblemLinksForIdea failed: %v", err)
	}

	ids, err := repo.LinkedProblemIDsForIdea(iid)
	if err != nil {
		t.Fatalf("LinkedProblemIDsForIdea failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != 7 || ids[1] != 8 {
		t.Errorf("Expected links [7 8], got %v", ids)
	}

	// Links of the other idea are untouched
	otherIDs, err := repo.LinkedProblemIDsForIdea(other)
	if err != nil {
		t.Fatalf("LinkedProblemIDsForIdea failed: %v", err)
	}
	if len(otherIDs) != 1 || otherIDs[0] != 2 {
		t.Errorf("Expected other idea links to survive, got %v", otherIDs)
	}
}

func TestSetProblemLinksForIdea_emptyClears(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db, nil)
	defer repo.Close()

	iid, err := repo.CreateIdea(&models.Idea{Title: "I"})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if _, err := repo.LinkProblemToIdea(1, iid); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	if err := repo.SetProblemLinksForIdea(iid, nil); err != nil {
		t.Fatalf("SetProblemLinksForIdea failed: %v", err)
	}

	ids, err := repo.LinkedProblemIDsForIdea(iid)
	if err != nil {
		t.Fatalf("LinkedProblemIDsForIdea failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("Expected all links to be cleared, got %v", ids)
	}
}

func TestSetProblemLinksForIdea_mintsFreshIDs(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db, nil)
	defer repo.Close()

	iid, err := repo.CreateIdea(&models.Idea{Title: "I"})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	// First link takes id 1
	if _, err := repo.LinkProblemToIdea(1, iid); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	// Replacing mints fresh ids; the counter never rewinds
	if err := repo.SetProblemLinksForIdea(iid, []int64{1, 2}); err != nil {
		t.Fatalf("SetProblemLinksForIdea failed: %v", err)
	}

	links, err := repo.AllLinks()
	if err != nil {
		t.Fatalf("AllLinks failed: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("Expected 2 link rows, got %d", len(links))
	}
	if links[0].ID != 2 || links[1].ID != 3 {
		t.Errorf("Expected fresh link ids [2 3], got [%d %d]", links[0].ID, links[1].ID)
	}
}
