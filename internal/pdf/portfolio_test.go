package pdf

import (
	"bytes"
	"testing"

	"github.com/Joules-bit-spec/student-portfolio/internal/models"
)

func strPtr(s string) *string { return &s }

func TestBuildDocument(t *testing.T) {
	user := &models.User{ID: 1, Username: "alice"}
	projects := []models.Project{
		{ID: 1, Title: "Bridge", Description: strPtr("A bridge model"), UserID: 1},
		{ID: 2, Title: "Tower", UserID: 1},
		{ID: 3, Title: "Dam", Description: strPtr("Hydro study"), UserID: 1},
	}

	doc := BuildDocument(user, projects)

	if doc.Title != "alice's Portfolio" {
		t.Fatalf("unexpected title: %s", doc.Title)
	}
	if len(doc.Blocks) != len(projects) {
		t.Fatalf("expected %d blocks, got %d", len(projects), len(doc.Blocks))
	}
	for i, project := range projects {
		if doc.Blocks[i].Title != project.Title {
			t.Fatalf("block %d: expected title %q, got %q", i, project.Title, doc.Blocks[i].Title)
		}
	}
	if doc.Blocks[1].Description != "" {
		t.Fatalf("project without description must produce an empty paragraph")
	}
}

func TestBuildDocumentEmptyPortfolio(t *testing.T) {
	doc := BuildDocument(&models.User{Username: "bob"}, nil)
	if doc.Title != "bob's Portfolio" {
		t.Fatalf("unexpected title: %s", doc.Title)
	}
	if len(doc.Blocks) != 0 {
		t.Fatalf("expected no blocks, got %d", len(doc.Blocks))
	}
}

func TestRenderProducesPDFBytes(t *testing.T) {
	doc := BuildDocument(&models.User{Username: "alice"}, []models.Project{
		{ID: 1, Title: "Bridge", Description: strPtr("A bridge model")},
	})

	output, err := doc.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(output, []byte("%PDF")) {
		t.Fatalf("output does not start with a PDF header")
	}
	if len(output) < 500 {
		t.Fatalf("suspiciously small PDF: %d bytes", len(output))
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("alice"); got != "alice_portfolio.pdf" {
		t.Fatalf("Filename = %q", got)
	}
}
