// Package printing turns legal documents into PDF files.
//
// DocumentRenderer lays a document out as HTML with an embedded template and
// hands the page to a PDFRenderer. ChromedpRenderer is the production
// PDFRenderer; it drives a headless Chrome through the DevTools protocol.
//
//	chrome, err := NewChromedpRenderer(cfg.Printing, logger)
//	if err != nil {
//	    return err
//	}
//	defer chrome.Close()
//
//	renderer := NewDocumentRenderer(chrome, logger)
//	pdf, err := renderer.RenderDocument(ctx, doc)
package printing
