package assistant

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lawai/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Operation names used in logs and metrics
const (
	OpAnalyzeDocument  = "analyze_document"
	OpLegalSearch      = "legal_search"
	OpGenerateDocument = "generate_document"
	OpTestConnection   = "test_connection"
)

// Call outcomes
const (
	OutcomeSuccess     = "success"
	OutcomeAPIError    = "api_error"
	OutcomeTransport   = "transport_error"
	OutcomeCannedReply = "canned"
)

const defaultDocumentType = "documento jurídico"

type fallback struct {
	unavailable string // provider answered with a non-200 status
	failed      string // transport or decoding failure
}

var (
	analyzeFallback = fallback{
		unavailable: "Não foi possível analisar o documento. Por favor, tente novamente mais tarde.",
		failed:      "Ocorreu um erro durante a análise do documento.",
	}
	searchFallback = fallback{
		unavailable: "Não foi possível realizar a pesquisa. Por favor, tente novamente mais tarde.",
		failed:      "Ocorreu um erro durante a pesquisa jurídica.",
	}
	generateFallback = fallback{
		unavailable: "Não foi possível gerar o documento. Por favor, tente novamente mais tarde.",
		failed:      "Ocorreu um erro durante a geração do documento.",
	}
)

// Option configures a Service
type Option func(*Service)

// WithRecorder sets the metrics recorder
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithTimeouts overrides the per-call and connection-test timeouts
func WithTimeouts(call, test time.Duration) Option {
	return func(s *Service) {
		if call > 0 {
			s.callTimeout = call
		}
		if test > 0 {
			s.testTimeout = test
		}
	}
}

// Service implements the legal assistant operations
type Service struct {
	completer   Completer
	recorder    Recorder
	logger      *zap.Logger
	callTimeout time.Duration
	testTimeout time.Duration
}

// NewService creates a new assistant service
func NewService(completer Completer, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		completer:   completer,
		recorder:    nopRecorder{},
		logger:      logger,
		callTimeout: 60 * time.Second,
		testTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AnalyzeDocument asks for a structured analysis of a document
func (s *Service) AnalyzeDocument(ctx context.Context, req AnalyzeDocumentRequest) (*AnalysisResponse, error) {
	if strings.TrimSpace(req.DocumentText) == "" {
		return nil, shared.NewValidationError("Texto do documento é obrigatório")
	}
	docType := strings.TrimSpace(req.DocumentType)
	if docType == "" {
		docType = defaultDocumentType
	}

	prompt := Prompt{
		System: "Você é um assistente jurídico especializado em análise de documentos legais.",
		User: fmt.Sprintf(`Você é um assistente jurídico especializado em análise de documentos.
Por favor, analise o seguinte %s e forneça insights jurídicos relevantes,
potenciais problemas e recomendações:

%s

Forneça sua análise em formato estruturado, com seções para:
1. Resumo geral
2. Pontos principais
3. Potenciais problemas ou omissões
4. Recomendações`, docType, req.DocumentText),
	}

	text, errText, ok := s.run(ctx, OpAnalyzeDocument, prompt, Params{Temperature: 0.3, MaxTokens: 1500}, analyzeFallback)
	return &AnalysisResponse{Success: ok, Error: errText, Analysis: text}, nil
}

// LegalSearch answers a research query about Brazilian law
func (s *Service) LegalSearch(ctx context.Context, req LegalSearchRequest) (*SearchResponse, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, shared.NewValidationError("Query de pesquisa é obrigatória")
	}
	return s.search(ctx, req.Query, req.Context), nil
}

func (s *Service) search(ctx context.Context, query, extra string) *SearchResponse {
	var contextLine string
	if strings.TrimSpace(extra) != "" {
		contextLine = "Contexto adicional: " + extra
	}

	prompt := Prompt{
		System: "Você é um assistente jurídico especializado em direito brasileiro.",
		User: fmt.Sprintf(`Você é um assistente jurídico especializado em pesquisa legal no Brasil.
Por favor, forneça informações relevantes sobre a seguinte consulta:

%s

%s

Forneça sua resposta em formato estruturado, com:
1. Resposta direta à consulta
2. Fundamentos jurídicos relevantes
3. Legislação aplicável
4. Jurisprudência relevante (quando aplicável)
5. Recomendações práticas`, query, contextLine),
	}

	text, errText, ok := s.run(ctx, OpLegalSearch, prompt, Params{Temperature: 0.4, MaxTokens: 2000}, searchFallback)
	return &SearchResponse{Success: ok, Error: errText, Result: text}
}

// GenerateDocument drafts a document of the requested type
func (s *Service) GenerateDocument(ctx context.Context, req GenerateDocumentRequest) (*GeneratedDocumentResponse, error) {
	docType := strings.TrimSpace(req.DocumentType)
	if docType == "" {
		return nil, shared.NewValidationError("Tipo de documento é obrigatório")
	}

	prompt := Prompt{
		System: "Você é um assistente jurídico especializado em elaboração de documentos legais.",
		User: fmt.Sprintf(`Você é um assistente jurídico especializado em elaboração de documentos.
Por favor, gere um %s com base nos seguintes parâmetros:

%s

O documento deve seguir todas as formalidades e requisitos legais para um %s válido
no sistema jurídico brasileiro.`, docType, formatParameters(req.Parameters), docType),
	}

	text, errText, ok := s.run(ctx, OpGenerateDocument, prompt, Params{Temperature: 0.2, MaxTokens: 3000}, generateFallback)
	return &GeneratedDocumentResponse{Success: ok, Error: errText, Document: text}, nil
}

// AnswerLegalQuestion replies with a predefined text for well-known topics
// and falls back to LegalSearch otherwise.
func (s *Service) AnswerLegalQuestion(ctx context.Context, req LegalQuestionRequest) *SearchResponse {
	if answer, ok := cannedAnswer(req.Question); ok {
		s.recorder.RecordAICall(ctx, OpLegalSearch, OutcomeCannedReply, 0)
		return &SearchResponse{Success: true, Result: answer}
	}
	return s.search(ctx, normalizeQuestion(req.Question), "")
}

// TestConnection sends a tiny prompt and reports whether the provider answered
func (s *Service) TestConnection(ctx context.Context) ConnectionStatus {
	start := time.Now()
	_, err := s.completer.Complete(ctx, Prompt{
		System: "Você é um assistente jurídico.",
		User:   "Olá, teste de conexão.",
	}, Params{MaxTokens: 5, Timeout: s.testTimeout})

	outcome := outcomeOf(err)
	s.recorder.RecordAICall(ctx, OpTestConnection, outcome, time.Since(start))
	if err != nil {
		s.logger.Warn("AI provider connection test failed", zap.Error(err))
	}

	connected := err == nil
	return ConnectionStatus{DeepSeekConnected: connected, AnyServiceConnected: connected}
}

// run performs one completion. It returns the text to show, the error
// description (empty on success) and whether the call succeeded.
func (s *Service) run(ctx context.Context, op string, prompt Prompt, params Params, fb fallback) (string, string, bool) {
	params.Timeout = s.callTimeout
	start := time.Now()
	text, err := s.completer.Complete(ctx, prompt, params)
	outcome := outcomeOf(err)
	s.recorder.RecordAICall(ctx, op, outcome, time.Since(start))

	if err == nil {
		return text, "", true
	}

	s.logger.Error("AI provider call failed",
		zap.String("operation", op),
		zap.String("outcome", outcome),
		zap.Error(err),
	)
	if outcome == OutcomeAPIError {
		return fb.unavailable, err.Error(), false
	}
	return fb.failed, err.Error(), false
}

func outcomeOf(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return OutcomeAPIError
	}
	return OutcomeTransport
}

// formatParameters renders "key: value" lines in key order
func formatParameters(params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %v", k, params[k]))
	}
	return strings.Join(lines, "\n")
}
