// Package completion optionally fills fields the heuristic extractor left
// empty by asking an LLM to read the raw OCR text. It never overwrites a
// heuristically extracted value and is disabled unless OPENAI_API_KEY is
// configured.
package completion

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"docscan/internal/logger"
	"docscan/pkg/models"
)

// Service fills missing document fields from raw OCR text.
type Service interface {
	// CompleteFields asks the model for values of the named empty fields
	// and merges non-empty answers into fields. Returns the names filled.
	CompleteFields(ctx context.Context, fields *models.DocumentFields, rawText string, missing []string) ([]string, error)
}

// Config configures the completion service.
type Config struct {
	Model       string  // OpenAI model name
	Temperature float32 // sampling temperature
	MaxRetries  int     // request retry attempts
}

// DefaultConfig returns the completion defaults.
func DefaultConfig() Config {
	return Config{
		Model:       "gpt-4o-mini",
		Temperature: 0.1,
		MaxRetries:  3,
	}
}

// OpenAICompletion implements Service with the OpenAI chat API.
type OpenAICompletion struct {
	client *openai.Client
	config Config
	log    zerolog.Logger
}

// NewFromEnv creates a completion service from OPENAI_API_KEY and optional
// OPENAI_MODEL. Returns an error when the key is absent.
func NewFromEnv() (*OpenAICompletion, error) {
	const op = "NewFromEnv"

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("%s: OPENAI_API_KEY environment variable is required", op)
	}

	config := DefaultConfig()
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		config.Model = model
	}

	return NewWithClient(openai.NewClient(apiKey), config), nil
}

// NewWithClient creates a completion service with an explicit client (for testing).
func NewWithClient(client *openai.Client, config Config) *OpenAICompletion {
	return &OpenAICompletion{
		client: client,
		config: config,
		log:    logger.WithComponent("completion"),
	}
}

// CompleteFields asks the model for the missing fields and merges the
// answers. Already-filled fields are passed as context but never replaced.
func (s *OpenAICompletion) CompleteFields(ctx context.Context, fields *models.DocumentFields, rawText string, missing []string) ([]string, error) {
	const op = "CompleteFields"

	if len(missing) == 0 || strings.TrimSpace(rawText) == "" {
		return nil, nil
	}

	prompt := buildPrompt(fields, rawText, missing)

	s.log.Debug().
		Strs("missing_fields", missing).
		Str("model", s.config.Model).
		Int("prompt_length", len(prompt)).
		Msg("Requesting field completion")

	var lastErr error
	for attempt := 1; attempt <= s.config.MaxRetries; attempt++ {
		resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       s.config.Model,
			Temperature: s.config.Temperature,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			MaxTokens: 500,
		})
		if err != nil {
			lastErr = err
			s.log.Warn().Err(err).Int("attempt", attempt).Msg("Completion request failed, retrying")
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("no response choices")
			continue
		}

		content := strings.TrimSpace(resp.Choices[0].Message.Content)
		content = strings.TrimPrefix(content, "```json")
		content = strings.Trim(content, "` \n")

		var answers map[string]string
		if err := json.Unmarshal([]byte(content), &answers); err != nil {
			lastErr = fmt.Errorf("failed to parse completion response: %w", err)
			s.log.Warn().Err(err).Int("attempt", attempt).Msg("Malformed completion response, retrying")
			continue
		}

		var filled []string
		for _, name := range missing {
			value := strings.TrimSpace(answers[name])
			if value == "" || value == "null" {
				continue
			}
			if fields.Get(name) != "" {
				continue
			}
			fields.Set(name, value)
			filled = append(filled, name)
		}

		s.log.Info().
			Strs("filled_fields", filled).
			Int("attempt", attempt).
			Msg("Field completion applied")

		return filled, nil
	}

	return nil, fmt.Errorf("%s: all %d attempts failed, last error: %w", op, s.config.MaxRetries, lastErr)
}

const systemPrompt = `너는 한국 사업자등록증과 통장 사본의 OCR 텍스트에서 정보를 추출하는 도우미다.

규칙:
- 반드시 유효한 JSON 객체만 반환한다. JSON 앞뒤에 다른 텍스트를 붙이지 않는다.
- 요청받은 필드만 키로 사용한다.
- 텍스트에서 확인할 수 없는 값은 null로 둔다. 절대 추측하지 않는다.
- 사업자등록번호는 숫자 10자리, 법인등록번호는 숫자 13자리로 반환한다.
- 계좌번호는 숫자만 반환한다.`

// fieldDescriptions renders one prompt line per requested field.
var fieldDescriptions = map[string]string{
	models.FieldBusinessNumber:  "사업자등록번호 (숫자 10자리)",
	models.FieldCorporateNumber: "법인등록번호 (숫자 13자리)",
	models.FieldEntityName:      "법인명 또는 상호",
	models.FieldRepresentative:  "대표자 성명",
	models.FieldBusinessAddress: "사업장 소재지",
	models.FieldHQAddress:       "본점 소재지",
	models.FieldBusinessSector:  "업태",
	models.FieldBusinessType:    "종목",
	models.FieldEmail:           "이메일 주소",
	models.FieldPhone:           "전화번호 (숫자만)",
	models.FieldFax:             "팩스번호 (숫자만)",
	models.FieldBankName:        "은행명",
	models.FieldAccountNumber:   "계좌번호 (숫자만)",
	models.FieldAccountHolder:   "예금주",
}

func buildPrompt(fields *models.DocumentFields, rawText string, missing []string) string {
	var b strings.Builder

	b.WriteString("다음 OCR 텍스트에서 요청한 필드를 추출하라.\n\n")

	b.WriteString("이미 추출된 값 (참고용, 변경하지 말 것):\n")
	for _, name := range models.FieldNames() {
		if v := fields.Get(name); v != "" {
			fmt.Fprintf(&b, "- %s: %s\n", name, v)
		}
	}

	b.WriteString("\nOCR 텍스트:\n")
	b.WriteString(rawText)

	b.WriteString("\n\n다음 키를 가진 JSON 객체로 답하라:\n{\n")
	for i, name := range missing {
		desc := fieldDescriptions[name]
		if desc == "" {
			desc = name
		}
		fmt.Fprintf(&b, "  %q: %q", name, desc)
		if i < len(missing)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n")

	return b.String()
}
