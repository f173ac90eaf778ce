package printing

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"strings"

	legalapp "github.com/lawai/backend/internal/application/legal"
	"github.com/lawai/backend/internal/domain/legal"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/document.html
var templateFS embed.FS

var documentTemplate = template.Must(template.ParseFS(templateFS, "templates/document.html"))

const footerTemplate = `<div style="font-size:8pt;width:100%;text-align:center;color:#777;">` +
	`<span class="pageNumber"></span> / <span class="totalPages"></span></div>`

// metadataRow is one label/value line of the document header table
type metadataRow struct {
	Label string
	Value string
}

type documentView struct {
	Title      string
	Metadata   []metadataRow
	Paragraphs []string
	Analysis   []string
}

// DocumentRenderer renders legal documents to PDF
type DocumentRenderer struct {
	pdf    PDFRenderer
	title  cases.Caser
	logger *zap.Logger
}

// NewDocumentRenderer creates a DocumentRenderer on top of a PDFRenderer
func NewDocumentRenderer(pdf PDFRenderer, logger *zap.Logger) *DocumentRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentRenderer{
		pdf:    pdf,
		title:  cases.Title(language.BrazilianPortuguese),
		logger: logger,
	}
}

// RenderDocument lays out doc (title, metadata, content and analysis) and
// returns the PDF bytes
func (r *DocumentRenderer) RenderDocument(ctx context.Context, doc *legal.Document) ([]byte, error) {
	page, err := r.RenderHTML(doc)
	if err != nil {
		return nil, err
	}

	result, err := r.pdf.Render(ctx, &RenderRequest{
		HTML:       page,
		Title:      doc.Title,
		Margins:    DefaultMargins(),
		FooterHTML: footerTemplate,
	})
	if err != nil {
		r.logger.Warn("Document PDF rendering failed",
			zap.String("document_id", doc.ID),
			zap.Error(err))
		return nil, err
	}
	return result.PDFData, nil
}

// RenderHTML renders the HTML page for doc
func (r *DocumentRenderer) RenderHTML(doc *legal.Document) (string, error) {
	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, r.view(doc)); err != nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "failed to render document template", err)
	}
	return buf.String(), nil
}

func (r *DocumentRenderer) view(doc *legal.Document) documentView {
	v := documentView{
		Title:      doc.Title,
		Paragraphs: paragraphs(doc.Content),
		Analysis:   paragraphs(doc.Analysis),
	}

	add := func(label, value string) {
		if value = strings.TrimSpace(value); value != "" {
			v.Metadata = append(v.Metadata, metadataRow{Label: label, Value: value})
		}
	}
	add("Tipo de documento", r.title.String(doc.DocumentType))
	add("Cliente", doc.ClientName)
	add("Status", r.title.String(doc.Status))
	add("Formato", strings.ToUpper(doc.FileType))
	if doc.FileInfo != nil {
		add("Arquivo", doc.FileInfo.Filename)
	}
	if !doc.CreatedAt.IsZero() {
		add("Criado em", doc.CreatedAt.Format("02/01/2006 15:04"))
	}
	return v
}

// paragraphs splits text on blank lines; single newlines stay inside a paragraph
func paragraphs(text string) []string {
	text = strings.ReplaceAll(strings.TrimSpace(text), "\r\n", "\n")
	if text == "" {
		return nil
	}
	var out []string
	for _, block := range strings.Split(text, "\n\n") {
		if block = strings.TrimSpace(block); block != "" {
			out = append(out, strings.Join(strings.Fields(block), " "))
		}
	}
	return out
}

var _ legalapp.DocumentRenderer = (*DocumentRenderer)(nil)
