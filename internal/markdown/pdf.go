package markdown

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"
)

// WritePDF renders markdown to a PDF file at pdfPath. A non-empty title is
// emitted as a level-1 heading above the content.
func WritePDF(title, content, pdfPath string) error {
	if !strings.HasSuffix(pdfPath, ".pdf") {
		return fmt.Errorf("output file must have .pdf extension: %s", pdfPath)
	}

	src := strings.ReplaceAll(content, "\r\n", "\n")
	if title != "" {
		src = "# " + title + "\n\n" + src
	}

	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process([]byte(src)); err != nil {
		return fmt.Errorf("renderer.Process() > %w", err)
	}
	return nil
}

// ExportPDF renders markdown to PDF and copies the result to w. mdtopdf only
// writes to paths, so the document goes through a temporary directory.
func ExportPDF(w io.Writer, title, content string) error {
	dir, err := os.MkdirTemp("", "studyhub-pdf-")
	if err != nil {
		return fmt.Errorf("os.MkdirTemp() > %w", err)
	}
	defer os.RemoveAll(dir)

	pdfPath := filepath.Join(dir, "export.pdf")
	if err := WritePDF(title, content, pdfPath); err != nil {
		return err
	}

	f, err := os.Open(pdfPath)
	if err != nil {
		return fmt.Errorf("os.Open(%s) > %w", pdfPath, err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("copy pdf: %w", err)
	}
	return nil
}
