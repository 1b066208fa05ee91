package convert

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ledongthuc/pdf"

	"github.com/termdict/termserve/pkg/dictionary"
)

// progressInterval controls how often page progress is logged.
const progressInterval = 25

// ExtractPDF pulls term pairs out of the dictionary PDF, page by page.
// Pages that fail text extraction are skipped with a warning so one bad
// page does not sink the whole run.
func ExtractPDF(path string) ([]dictionary.Term, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	totalPages := reader.NumPage()
	log.Debugf("PDF has %d pages", totalPages)

	var terms []dictionary.Term
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		rows, err := extractRows(page)
		if err != nil {
			log.Warnf("Skipping page %d: %v", pageNum, err)
			continue
		}
		for _, row := range rows {
			var line strings.Builder
			for _, text := range row.Content {
				line.WriteString(text.S)
			}
			if term, ok := ParseLine(line.String()); ok {
				terms = append(terms, term)
			}
		}
		if pageNum%progressInterval == 0 {
			log.Infof("Processed %d/%d pages, %d terms so far", pageNum, totalPages, len(terms))
		}
	}
	return terms, nil
}

// extractRows reads one page's text rows, converting parser panics into
// errors. The upstream reader panics on some malformed content streams.
func extractRows(page pdf.Page) (rows pdf.Rows, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("text extraction failed: %v", r)
		}
	}()
	return page.GetTextByRow()
}

// Convert extracts pdfPath and writes the JSON dictionary to outputPath.
// An empty version falls back to the known source release date.
func Convert(pdfPath, outputPath, version string) (*dictionary.Dictionary, error) {
	terms, err := ExtractPDF(pdfPath)
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("no term pairs found in %s", pdfPath)
	}
	if version == "" {
		version = SourceVersion
	}

	dict := dictionary.New(terms, dictionary.Metadata{
		Source:     dictionary.DefaultSource,
		TotalTerms: len(terms),
		Version:    version,
	})
	if err := dictionary.Save(outputPath, dict); err != nil {
		return nil, err
	}
	log.Debugf("Wrote %d terms to %s", len(terms), outputPath)
	return dict, nil
}
