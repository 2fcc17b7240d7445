// Package pdf turns a user's portfolio into a downloadable PDF document.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/Joules-bit-spec/student-portfolio/internal/models"
	"github.com/go-pdf/fpdf"
)

// Block is one project entry: a bold title line and an optional description
// paragraph.
type Block struct {
	Title       string
	Description string
}

// Document is the linear portfolio layout: a title line naming the user, then
// one Block per project in store order.
type Document struct {
	Title  string
	Blocks []Block
}

// BuildDocument assembles the document for a user and their projects. Project
// order is preserved as given.
func BuildDocument(user *models.User, projects []models.Project) Document {
	doc := Document{
		Title: fmt.Sprintf("%s's Portfolio", user.Username),
	}

	for _, project := range projects {
		block := Block{Title: project.Title}
		if project.Description != nil {
			block.Description = *project.Description
		}
		doc.Blocks = append(doc.Blocks, block)
	}

	return doc
}

// Filename is the suggested attachment name for a user's portfolio export.
func Filename(username string) string {
	return username + "_portfolio.pdf"
}

// Render emits the document as PDF bytes on a letter-sized page.
func (d Document) Render() ([]byte, error) {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetTitle(d.Title, true)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 24, d.Title, "", 1, "C", false, 0, "")
	doc.Ln(12)

	for _, block := range d.Blocks {
		doc.SetFont("Helvetica", "B", 13)
		doc.CellFormat(0, 16, block.Title, "", 1, "L", false, 0, "")
		if block.Description != "" {
			doc.SetFont("Helvetica", "", 11)
			doc.MultiCell(0, 14, block.Description, "", "L", false)
		}
		doc.Ln(12)
	}

	var buffer bytes.Buffer
	if err := doc.Output(&buffer); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}
