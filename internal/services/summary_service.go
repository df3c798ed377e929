package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"boardsuite/internal/common"
	"boardsuite/internal/repositories"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

// SummaryRequest carries the already-computed report figures to narrate.
type SummaryRequest struct {
	ReportMonth  string
	MonthlySales float64
	TotalPending float64
	PaymentCount int
	PendingCount int
}

// SummaryService turns monthly report figures into a one-paragraph
// narrative via the Gemini API.
type SummaryService interface {
	Summarize(ctx context.Context, req *SummaryRequest) (string, error)
}

type summaryService struct {
	settingsRepo repositories.SettingsRepository
	fallbackKey  string
	baseURL      string
	http         *http.Client
	now          func() time.Time
}

// NewSummaryService builds a Gemini-backed summary service. fallbackKey is
// used when no key is stored in settings.
func NewSummaryService(settingsRepo repositories.SettingsRepository, fallbackKey string) SummaryService {
	return &summaryService{
		settingsRepo: settingsRepo,
		fallbackKey:  fallbackKey,
		baseURL:      geminiBaseURL,
		http:         &http.Client{Timeout: 30 * time.Second},
		now:          time.Now,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (s *summaryService) apiKey(ctx context.Context) (string, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return "", err
	}
	if settings.GeminiAPIKey != nil && *settings.GeminiAPIKey != "" {
		return *settings.GeminiAPIKey, nil
	}
	if s.fallbackKey != "" {
		return s.fallbackKey, nil
	}
	return "", &common.DomainError{Message: "No Gemini API key is configured. Add one in Settings."}
}

func (s *summaryService) buildPrompt(req *SummaryRequest) string {
	return fmt.Sprintf(`You are a financial analyst for a property manager.
Your task is to write a concise, professional summary statement based on the following financial data for %s.
The current date is %s.

Financial Data:
- Total Sales This Month: PHP %.2f from %d payments.
- Total Outstanding Dues (All Months): PHP %.2f from %d tenants.

Based on this data, generate a one-paragraph summary. Start with a clear overview of the month's performance. Mention the total sales and then comment on the total outstanding dues. Maintain a professional and slightly formal tone. Conclude with a forward-looking or concluding remark.`,
		req.ReportMonth,
		s.now().Format("Monday, January 2, 2006"),
		req.MonthlySales, req.PaymentCount,
		req.TotalPending, req.PendingCount,
	)
}

func (s *summaryService) Summarize(ctx context.Context, req *SummaryRequest) (string, error) {
	if req.ReportMonth == "" {
		return "", &common.ValidationError{Message: "Report month is required."}
	}

	key, err := s.apiKey(ctx)
	if err != nil {
		return "", err
	}

	payload := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: s.buildPrompt(req)}}},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", s.baseURL, key)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("gemini response parse failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return "", fmt.Errorf("gemini error: %s", parsed.Error.Message)
		}
		return "", fmt.Errorf("gemini error: status %d", resp.StatusCode)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 || parsed.Candidates[0].Content.Parts[0].Text == "" {
		return "", fmt.Errorf("gemini returned no summary text")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
