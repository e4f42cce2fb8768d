package extract

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// PDFOpener opens PDF files for page-level text extraction.
type PDFOpener struct{}

// NewPDFOpener returns a new PDFOpener.
func NewPDFOpener() *PDFOpener {
	return &PDFOpener{}
}

// Open opens the PDF at path.
func (o *PDFOpener) Open(path string) (Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		if f != nil {
			_ = f.Close()
		}
		return nil, fmt.Errorf("open PDF: %w", err)
	}
	return &pdfDocument{file: f, reader: r}, nil
}

type pdfDocument struct {
	file   *os.File
	reader *pdf.Reader
}

func (d *pdfDocument) NumPages() int {
	return d.reader.NumPage()
}

// PageText extracts the plain text of the given 1-based page. Malformed
// content streams make the underlying reader error or panic; both are
// recovered to an empty string so extraction can continue with later pages.
func (d *pdfDocument) PageText(page int) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	if page < 1 || page > d.reader.NumPage() {
		return ""
	}
	p := d.reader.Page(page)
	if p.V.IsNull() {
		return ""
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}

func (d *pdfDocument) Close() error {
	return d.file.Close()
}
