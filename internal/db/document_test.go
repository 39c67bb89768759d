package db

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"ideavault/internal/models"
)

// =====================================================
// Data Management Tests
// =====================================================

func TestExportAll_emptyVault(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db, nil)
	defer repo.Close()

	doc, err := repo.ExportAll()
	if err != nil {
		t.Fatalf("ExportAll failed: %v", err)
	}

	if doc.Problems == nil || doc.Ideas == nil || doc.Notes == nil || doc.Links == nil {
		t.Error("Expected empty collections, not nil")
	}
	if doc.Counters != (models.Counters{}) {
		t.Errorf("Expected zero counters, got %+v", doc.Counters)
	}

	// Empty collections encode as [], never null
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if strings.Contains(string(data), "null") {
		t.Errorf("Expected no nulls in an empty export, got %s", data)
	}
}

func TestExportAll_contents(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db, nil)
	defer repo.Close()

	pid, err := repo.CreateProblem(&models.Problem{Title: "P1", Tags: "fintech"})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if _, err := repo.CreateProblem(&models.Problem{Title: "P2"}); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	score := 70
	iid, err := repo.CreateIdea(&models.Idea{Title: "I1", Score: &score})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if _, err := repo.CreateNote(&models.Note{NoteType: "general", Content: "N1", ProblemID: &pid}); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if _, err := repo.LinkProblemToIdea(pid, iid); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	doc, err := repo.ExportAll()
	if err != nil {
		t.Fatalf("ExportAll failed: %v", err)
	}

	if len(doc.Problems) != 2 || len(doc.Ideas) != 1 || len(doc.Notes) != 1 || len(doc.Links) != 1 {
		t.Fatalf("Expected 2/1/1/1 records, got %d/%d/%d/%d",
			len(doc.Problems), len(doc.Ideas), len(doc.Notes), len(doc.Links))
	}

	// Collections are in insertion order, oldest first
	if doc.Problems[0].ID != 1 || doc.Problems[1].ID != 2 {
		t.Errorf("Expected problems in insertion order, got [%d %d]", doc.Problems[0].ID, doc.Problems[1].ID)
	}
	if doc.Ideas[0].Score == nil || *doc.Ideas[0].Score != 70 {
		t.Errorf("Expected exported score 70, got %v", doc.Ideas[0].Score)
	}

	want := models.Counters{Problems: 2, Ideas: 1, Notes: 1, Links: 1}
	if doc.Counters != want {
		t.Errorf("Expected counters %+v, got %+v", want, doc.Counters)
	}
}

func TestImportAll_roundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db, nil)
	defer repo.Close()

	// Build a vault with a burned id so counters and row counts differ
	if _, err := repo.CreateProblem(&models.Problem{Title: "Kept"}); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	doomed, err := repo.CreateProblem(&models.Problem{Title: "Doomed"})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if _, err := repo.DeleteProblem(doomed); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	iid, err := repo.CreateIdea(&models.Idea{Title: "I"})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if _, err := repo.CreateNote(&models.Note{NoteType: "tech", Content: "N", IdeaID: &iid}); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if _, err := repo.LinkProblemToIdea(1, iid); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	exported, err := repo.ExportAll()
	if err != nil {
		t.Fatalf("ExportAll failed: %v", err)
	}

	// Import into a fresh vault
	db2 := setupTestDB(t)
	defer db2.Close()
	repo2 := NewRepository(db2, nil)
	defer repo2.Close()

	if err := repo2.ImportAll(exported); err != nil {
		t.Fatalf("ImportAll failed: %v", err)
	}

	reExported, err := repo2.ExportAll()
	if err != nil {
		t.Fatalf("ExportAll after import failed: %v", err)
	}
	if !reflect.DeepEqual(exported, reExported) {
		t.Errorf("Expected export/import round trip to be identity:\nbefore %+v\nafter  %+v", exported, reExported)
	}
}

func TestImportAll_overwrites(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db, nil)
	defer repo.Close()

	// Pre-existing state that must vanish
	if _, err := repo.CreateProblem(&models.Problem{Title: "Old"}); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if _, err := repo.CreateIdea(&models.Idea{Title: "Old idea"}); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	doc := &models.Document{
		Problems: []*models.Problem{{
			ID: 5, Title: "Imported", Severity: 3, Frequency: "weekly", Status: "open",
			CreatedAt: "2024-06-01T00:00:00.000000000Z", UpdatedAt: "2024-06-01T00:00:00.000000000Z",
		}},
		Ideas:    []*models.Idea{},
		Notes:    []*models.Note{},
		Links:    []*models.ProblemIdeaLink{},
		Counters: models.Counters{Problems: 10},
	}
	if err := repo.ImportAll(doc); err != nil {
		t.Fatalf("ImportAll failed: %v", err)
	}

	problems, err := repo.AllProblems()
	if err != nil {
		t.Fatalf("AllProblems failed: %v", err)
	}
	if len(problems) != 1 || problems[0].Title != "Imported" {
		t.Fatalf("Expected only the imported problem, got %d", len(problems))
	}
	if problems[0].ID != 5 || problems[0].CreatedAt != "2024-06-01T00:00:00.000000000Z" {
		t.Errorf("Expected id and timestamps to be written verbatim, got %+v", problems[0])
	}

	ideas, err := repo.AllIdeas()
	if err != nil {
		t.Fatalf("AllIdeas failed: %v", err)
	}
	if len(ideas) != 0 {
		t.Errorf("Expected pre-existing ideas to be overwritten, got %d", len(ideas))
	}
}

func TestImportAll_countersGovernNextID(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db, nil)
	defer repo.Close()

	doc := &models.Document{
		Problems: []*models.Problem{},
		Ideas:    []*models.Idea{},
		Notes:    []*models.Note{},
		Links:    []*models.ProblemIdeaLink{},
		Counters: models.Counters{Problems: 41, Ideas: 3},
	}
	if err := repo.ImportAll(doc); err != nil {
		t.Fatalf("ImportAll failed: %v", err)
	}

	pid, err := repo.CreateProblem(&models.Problem{Title: "Next"})
	if err != nil {
		t.Fatalf("CreateProblem failed: %v", err)
	}
	if pid != 42 {
		t.Errorf("Expected id 42 after importing counter 41, got %d", pid)
	}

	iid, err := repo.CreateIdea(&models.Idea{Title: "Next idea"})
	if err != nil {
		t.Fatalf("CreateIdea failed: %v", err)
	}
	if iid != 4 {
		t.Errorf("Expected id 4 after importing counter 3, got %d", iid)
	}
}

func TestImportAll_trustsDocument(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db, nil)
	defer repo.Close()

	// Foreign documents may carry shapes the store itself never
	// produces: duplicate ids, out-of-range fields, dangling links.
	// All of it is written as given.
	doc := &models.Document{
		Problems: []*models.Problem{
			{ID: 1, Title: "Twin A", Severity: 99, Frequency: "hourly", Status: "open"},
			{ID: 1, Title: "Twin B", Severity: 3, Frequency: "weekly", Status: "open"},
		},
		Ideas: []*models.Idea{},
		Notes: []*models.Note{},
		Links: []*models.ProblemIdeaLink{
			{ID: 1, ProblemID: 1, IdeaID: 777},
			{ID: 2, ProblemID: 1, IdeaID: 777},
		},
		Counters: models.Counters{Problems: 1, Links: 2},
	}
	if err := repo.ImportAll(doc); err != nil {
		t.Fatalf("ImportAll failed: %v", err)
	}

	problems, err := repo.AllProblems()
	if err != nil {
		t.Fatalf("AllProblems failed: %v", err)
	}
	if len(problems) != 2 {
		t.Errorf("Expected duplicate ids to be tolerated, got %d rows", len(problems))
	}

	links, err := repo.AllLinks()
	if err != nil {
		t.Fatalf("AllLinks failed: %v", err)
	}
	if len(links) != 2 {
		t.Errorf("Expected duplicate link pairs to be tolerated, got %d rows", len(links))
	}
}

func TestClearAll(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db, nil)
	defer repo.Close()

	// Vault-level metadata survives a clear
	if _, err := db.Exec(`INSERT INTO meta (key, value) VALUES ('vault_id', 'keep-me')`); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

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
	if _, err := repo.CreateNote(&models.Note{NoteType: "general", Content: "N"}); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	if err := repo.ClearAll(); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}

	doc, err := repo.ExportAll()
	if err != nil {
		t.Fatalf("ExportAll failed: %v", err)
	}
	if len(doc.Problems)+len(doc.Ideas)+len(doc.Notes)+len(doc.Links) != 0 {
		t.Errorf("Expected all collections to be empty, got %+v", doc)
	}
	if doc.Counters != (models.Counters{}) {
		t.Errorf("Expected counters to reset to zero, got %+v", doc.Counters)
	}

	// Unlike import, clear restarts the id sequences
	newPid, err := repo.CreateProblem(&models.Problem{Title: "Fresh"})
	if err != nil {
		t.Fatalf("CreateProblem failed: %v", err)
	}
	if newPid != 1 {
		t.Errorf("Expected id 1 after clear, got %d", newPid)
	}

	var vaultID string
	if err := db.QueryRow(`SELECT value FROM meta WHERE key = 'vault_id'`).Scan(&vaultID); err != nil {
		t.Fatalf("meta lookup failed: %v", err)
	}
	if vaultID != "keep-me" {
		t.Errorf("Expected vault id to survive clear, got %q", vaultID)
	}
}

// TestVaultLifecycle runs a full pass over the store: create, link,
// annotate, delete with cascades, export, clear, and restore.
func TestVaultLifecycle(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db, nil)
	defer repo.Close()

	p1, err := repo.CreateProblem(&models.Problem{Title: "Expense reports take hours", Severity: 4, Tags: "b2b"})
	if err != nil {
		t.Fatalf("CreateProblem failed: %v", err)
	}
	p2, err := repo.CreateProblem(&models.Problem{Title: "Freelancers chase invoices"})
	if err != nil {
		t.Fatalf("CreateProblem failed: %v", err)
	}
	i1, err := repo.CreateIdea(&models.Idea{Title: "Receipt scanner", Status: "researching"})
	if err != nil {
		t.Fatalf("CreateIdea failed: %v", err)
	}

	if _, err := repo.LinkProblemToIdea(p1, i1); err != nil {
		t.Fatalf("LinkProblemToIdea failed: %v", err)
	}
	if _, err := repo.LinkProblemToIdea(p2, i1); err != nil {
		t.Fatalf("LinkProblemToIdea failed: %v", err)
	}
	if _, err := repo.CreateNote(&models.Note{NoteType: "interview", Content: "Two founders confirmed the pain", ProblemID: &p1}); err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	// Deleting p2 cascades its link but leaves p1's intact
	if _, err := repo.DeleteProblem(p2); err != nil {
		t.Fatalf("DeleteProblem failed: %v", err)
	}
	remaining, err := repo.ProblemsForIdea(i1)
	if err != nil {
		t.Fatalf("ProblemsForIdea failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != p1 {
		t.Fatalf("Expected only problem %d linked, got %d links", p1, len(remaining))
	}

	snapshot, err := repo.ExportAll()
	if err != nil {
		t.Fatalf("ExportAll failed: %v", err)
	}

	if err := repo.ClearAll(); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	if err := repo.ImportAll(snapshot); err != nil {
		t.Fatalf("ImportAll failed: %v", err)
	}

	// Restored vault behaves like the original: same records, same
	// traversals, and the id sequence continues past the burned id
	restored, err := repo.ProblemByID(p1)
	if err != nil {
		t.Fatalf("ProblemByID failed: %v", err)
	}
	if restored == nil || restored.Title != "Expense reports take hours" {
		t.Fatalf("Expected problem %d restored, got %+v", p1, restored)
	}
	ideas, err := repo.IdeasForProblem(p1)
	if err != nil {
		t.Fatalf("IdeasForProblem failed: %v", err)
	}
	if len(ideas) != 1 || ideas[0].ID != i1 {
		t.Errorf("Expected restored link to idea %d, got %d links", i1, len(ideas))
	}
	notes, err := repo.NotesForProblem(p1)
	if err != nil {
		t.Fatalf("NotesForProblem failed: %v", err)
	}
	if len(notes) != 1 {
		t.Errorf("Expected restored note, got %d", len(notes))
	}

	next, err := repo.CreateProblem(&models.Problem{Title: "New after restore"})
	if err != nil {
		t.Fatalf("CreateProblem failed: %v", err)
	}
	if next != 3 {
		t.Errorf("Expected id 3 to continue the restored sequence, got %d", next)
	}
}
