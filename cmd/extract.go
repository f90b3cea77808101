package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"docscan/internal/completion"
	"docscan/internal/config"
	"docscan/internal/logger"
	"docscan/internal/ocr"
	"docscan/internal/pipeline"
	"docscan/pkg/models"
)

var extractCmd = &cobra.Command{
	Use:   "extract [document-file]",
	Short: "Extract structured fields from a scanned business document",
	Long: `Process a scanned document image or single-page PDF with Google Cloud
Vision OCR and extract structured fields.

Document types:
  license   Korean business registration certificate (사업자등록증)
  bankbook  bankbook / account passbook copy (통장 사본)

Required environment variables:
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string`,
	Example: `  # Extract business-license fields to a table
  docscan extract license.jpg

  # Bankbook copy, JSON output
  docscan extract bankbook.png --type bankbook --json

  # Include the raw recognized text for diagnostics
  docscan extract license.pdf --raw

  # Let an LLM fill fields the heuristics missed (needs OPENAI_API_KEY)
  docscan extract license.jpg --complete`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("type", "t", "license", "Document type: license or bankbook")
	extractCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	extractCmd.Flags().Bool("json", false, "Output as JSON")
	extractCmd.Flags().Bool("raw", false, "Include the raw recognized text")
	extractCmd.Flags().Bool("complete", false, "Fill missing fields with the LLM completion service")
	extractCmd.Flags().Int("timeout", 120, "Processing timeout in seconds")
}

// mimeTypes maps file extensions to the MIME types the pipeline accepts.
var mimeTypes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
}

func runExtract(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("extract-cmd")

	docTypeFlag, _ := cmd.Flags().GetString("type")
	outputPath, _ := cmd.Flags().GetString("output")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	includeRaw, _ := cmd.Flags().GetBool("raw")
	complete, _ := cmd.Flags().GetBool("complete")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	docType, err := parseDocType(docTypeFlag)
	if err != nil {
		return err
	}

	filePath := args[0]
	mimeType, ok := mimeTypes[strings.ToLower(filepath.Ext(filePath))]
	if !ok {
		return fmt.Errorf("unsupported file type: %s (expected an image or PDF)", filepath.Ext(filePath))
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if !cfg.HasGoogleCredentials() {
		log.Error().Msg("Google Cloud credentials not configured")
		return fmt.Errorf("Google Cloud credentials not configured. Set GOOGLE_APPLICATION_CREDENTIALS " +
			"to a service account JSON file path, or GOOGLE_CREDENTIALS to inline JSON")
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read document file: %w", err)
	}
	if len(content) == 0 {
		return fmt.Errorf("document file is empty: %s", filePath)
	}

	log.Info().
		Str("file", filePath).
		Str("doc_type", string(docType)).
		Str("mime_type", mimeType).
		Int("size", len(content)).
		Msg("Starting document extraction")

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	svc, err := ocr.NewGoogleVisionService(ctx)
	if err != nil {
		if errors.Is(err, ocr.ErrMissingCredentials) {
			return fmt.Errorf("Google Cloud credentials validation failed: %w", err)
		}
		return fmt.Errorf("failed to create OCR service: %w", err)
	}
	defer func() {
		if closeErr := svc.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close OCR client")
		}
	}()

	p := pipeline.New(svc, cfg.Thresholds)
	result, err := p.Run(ctx, pipeline.Request{
		Blob:    ocr.EncodeDataURL(mimeType, content),
		DocType: docType,
	})
	if err != nil {
		return handlePipelineError(err, log)
	}

	if result.Status == pipeline.StatusTextEmpty {
		fmt.Fprintln(os.Stderr, "No text was recognized in the document. Check that the scan is legible.")
	}

	if complete && result.Status == pipeline.StatusDone {
		if err := completeMissingFields(ctx, result, log); err != nil {
			log.Warn().Err(err).Msg("LLM field completion failed; continuing with heuristic result")
		}
	}

	return outputResult(result, docType, outputPath, jsonOutput, includeRaw)
}

func parseDocType(s string) (models.DocumentType, error) {
	switch strings.ToLower(s) {
	case "license", "business_license", "business-license":
		return models.BusinessLicense, nil
	case "bankbook":
		return models.Bankbook, nil
	default:
		return "", fmt.Errorf("unknown document type %q (expected license or bankbook)", s)
	}
}

// createContextWithTimeout creates a context with timeout and signal handling
func createContextWithTimeout(timeoutSecs int, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSecs)*time.Second)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling extraction")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

func completeMissingFields(ctx context.Context, result *pipeline.Result, log zerolog.Logger) error {
	missing := result.Fields.EmptyFields()
	if len(missing) == 0 {
		return nil
	}

	svc, err := completion.NewFromEnv()
	if err != nil {
		return err
	}

	filled, err := svc.CompleteFields(ctx, result.Fields, result.RawText, missing)
	if err != nil {
		return err
	}
	log.Info().Strs("filled_fields", filled).Msg("Completion service filled missing fields")
	return nil
}

// handlePipelineError maps pipeline error categories to user-facing messages.
func handlePipelineError(err error, log zerolog.Logger) error {
	log.Error().Err(err).Msg("Pipeline run failed")

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("processing timed out. Try increasing --timeout")
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("processing was canceled")
	case errors.Is(err, pipeline.ErrMissingCredentials):
		return fmt.Errorf("OCR credentials are not configured. Set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS")
	case errors.Is(err, pipeline.ErrInvalidInput):
		return fmt.Errorf("the document could not be read as an image or PDF: %w", err)
	case errors.Is(err, pipeline.ErrTransport):
		return fmt.Errorf("document processing failed. Check network connectivity and API quota, then retry: %w", err)
	default:
		return fmt.Errorf("document processing failed: %w", err)
	}
}

// fieldDisplay holds the Korean display label shown in table output.
var fieldDisplay = map[string]string{
	models.FieldBusinessNumber:  "사업자등록번호",
	models.FieldCorporateNumber: "법인등록번호",
	models.FieldEntityName:      "법인명/상호",
	models.FieldRepresentative:  "대표자",
	models.FieldBusinessAddress: "사업장 소재지",
	models.FieldHQAddress:       "본점 소재지",
	models.FieldBusinessSector:  "업태",
	models.FieldBusinessType:    "종목",
	models.FieldEmail:           "이메일",
	models.FieldPhone:           "전화번호",
	models.FieldFax:             "팩스번호",
	models.FieldBankName:        "은행명",
	models.FieldAccountNumber:   "계좌번호",
	models.FieldAccountHolder:   "예금주",
}

// displayedFields selects which fields belong to each document type's table.
func displayedFields(docType models.DocumentType) []string {
	if docType == models.Bankbook {
		return []string{models.FieldBankName, models.FieldAccountNumber, models.FieldAccountHolder}
	}
	return []string{
		models.FieldBusinessNumber, models.FieldCorporateNumber,
		models.FieldEntityName, models.FieldRepresentative,
		models.FieldBusinessAddress, models.FieldHQAddress,
		models.FieldBusinessSector, models.FieldBusinessType,
		models.FieldEmail, models.FieldPhone, models.FieldFax,
	}
}

func outputResult(result *pipeline.Result, docType models.DocumentType, outputPath string, jsonOutput, includeRaw bool) error {
	var outputData []byte

	if jsonOutput {
		out := struct {
			Status  pipeline.Status        `json:"status"`
			Fields  *models.DocumentFields `json:"fields"`
			RawText string                 `json:"raw_text,omitempty"`
		}{Status: result.Status, Fields: result.Fields}
		if includeRaw {
			out.RawText = result.RawText
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to create JSON output: %w", err)
		}
		outputData = data
	} else {
		outputData = []byte(renderFieldTable(result, docType, includeRaw))
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, outputData, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return nil
	}

	_, err := os.Stdout.Write(outputData)
	return err
}

// renderFieldTable formats the field set as an aligned two-column table.
// Hangul labels are padded by display width, not byte length.
func renderFieldTable(result *pipeline.Result, docType models.DocumentType, includeRaw bool) string {
	labelColor := color.New(color.FgCyan)
	missingColor := color.New(color.Faint)

	names := displayedFields(docType)
	width := 0
	for _, name := range names {
		if w := runewidth.StringWidth(fieldDisplay[name]); w > width {
			width = w
		}
	}

	var b strings.Builder
	for _, name := range names {
		label := runewidth.FillRight(fieldDisplay[name], width)
		value := result.Fields.Get(name)
		if value == "" {
			fmt.Fprintf(&b, "%s  %s\n", labelColor.Sprint(label), missingColor.Sprint("-"))
			continue
		}
		fmt.Fprintf(&b, "%s  %s\n", labelColor.Sprint(label), value)
	}

	if includeRaw && result.RawText != "" {
		b.WriteString("\n--- recognized text ---\n")
		b.WriteString(result.RawText)
		if !strings.HasSuffix(result.RawText, "\n") {
			b.WriteByte('\n')
		}
	}

	return b.String()
}
