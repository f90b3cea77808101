// Package extract pulls named fields out of normalized OCR output.
//
// Extraction is layered: spatial label anchoring over word geometry is the
// primary strategy for images, with exact and whitespace-tolerant keyword
// matching over normalized lines as the fallback (and the only strategy for
// PDFs, which carry no geometry). Each field composes these strategies with
// its own cleanup rules. Extraction never fails; the worst case is an
// all-empty field set.
package extract

import (
	"github.com/rs/zerolog"

	"docscan/internal/layout"
	"docscan/internal/logger"
	"docscan/internal/normalize"
	"docscan/internal/ocr"
	"docscan/pkg/models"
)

// Extractor holds one document's recognized words and normalized lines for
// the duration of a single extraction run.
type Extractor struct {
	th      Thresholds
	words   []models.RecognizedWord
	lines   []models.Line // reconstructed lines, image path only
	texts   []string      // normalized line texts, both paths
	rawText string
	log     zerolog.Logger
}

// New prepares an extractor from a transport annotation. When word geometry
// is available, lines are reconstructed from it and Hangul gap collapse is
// applied; otherwise the service's own line segmentation is used as-is.
func New(annotation *ocr.Annotation, th Thresholds) *Extractor {
	e := &Extractor{
		th:      th,
		words:   annotation.Words,
		rawText: annotation.FullText,
		log:     logger.WithComponent("extract"),
	}

	if len(e.words) > 0 {
		e.lines = layout.ReconstructLines(e.words, th.ReconstructToleranceRatio)
		for _, line := range e.lines {
			e.texts = append(e.texts, normalize.CollapseHangulGaps(normalize.Line(line.Text())))
		}
	}
	if len(e.texts) == 0 {
		e.lines = nil
		for _, raw := range layout.SplitRawLines(annotation.FullText) {
			e.texts = append(e.texts, normalize.Line(raw))
		}
	}

	return e
}

// Extract runs the field rules for the given document type.
func (e *Extractor) Extract(docType models.DocumentType) *models.DocumentFields {
	fields := &models.DocumentFields{}

	switch docType {
	case models.Bankbook:
		e.extractBankbook(fields)
	default:
		e.extractBusinessLicense(fields)
	}

	e.log.Debug().
		Str("doc_type", string(docType)).
		Int("line_count", len(e.texts)).
		Int("word_count", len(e.words)).
		Strs("empty_fields", fields.EmptyFields()).
		Msg("Field extraction completed")

	return fields
}

func (e *Extractor) extractBusinessLicense(fields *models.DocumentFields) {
	fields.BusinessNumber = e.businessNumber()
	fields.CorporateNumber = e.corporateNumber()
	fields.EntityName = e.entityName()
	fields.Representative = e.representative()
	fields.BusinessAddress = e.address([]string{"사업장"})
	fields.HQAddress = e.address([]string{"본점"})
	fields.BusinessSector, fields.BusinessType = e.sectorAndType()
	fields.Email = e.email()
	fields.Phone = e.labeledNumber(rePhone)
	fields.Fax = e.labeledNumber(reFax)
}

func (e *Extractor) extractBankbook(fields *models.DocumentFields) {
	fields.BankName = e.bankName()
	fields.AccountNumber = e.accountNumber()
	fields.AccountHolder = e.accountHolder()
}
