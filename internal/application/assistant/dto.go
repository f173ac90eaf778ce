package assistant

// AnalyzeDocumentRequest asks for an analysis of a document's text
type AnalyzeDocumentRequest struct {
	DocumentText string `json:"document_text"`
	DocumentType string `json:"document_type"`
}

// LegalSearchRequest is a free-text legal research query
type LegalSearchRequest struct {
	Query   string `json:"query"`
	Context string `json:"context"`
}

// GenerateDocumentRequest asks for a drafted document of a given type
type GenerateDocumentRequest struct {
	DocumentType string         `json:"document_type"`
	Parameters   map[string]any `json:"parameters"`
}

// LegalQuestionRequest is a question for the legal Q&A endpoint
type LegalQuestionRequest struct {
	Question string `json:"question"`
}

// AnalysisResponse carries a document analysis or its fallback text
type AnalysisResponse struct {
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	Analysis string `json:"analysis"`
}

// SearchResponse carries a research answer or its fallback text
type SearchResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Result  string `json:"result"`
}

// GeneratedDocumentResponse carries a drafted document or its fallback text
type GeneratedDocumentResponse struct {
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	Document string `json:"document"`
}

// ConnectionStatus reports provider reachability
type ConnectionStatus struct {
	DeepSeekConnected   bool `json:"deepseek_connected"`
	AnyServiceConnected bool `json:"any_service_connected"`
}
