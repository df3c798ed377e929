package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"boardsuite/internal/common"
	"boardsuite/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SummaryServiceTestSuite struct {
	suite.Suite
	mockSettingsRepo *MockSettingsRepository
	ctx              context.Context
}

func (suite *SummaryServiceTestSuite) SetupTest() {
	suite.mockSettingsRepo = &MockSettingsRepository{}
	suite.ctx = context.Background()
}

func (suite *SummaryServiceTestSuite) TearDownTest() {
	suite.mockSettingsRepo.AssertExpectations(suite.T())
}

func TestSummaryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SummaryServiceTestSuite))
}

func (suite *SummaryServiceTestSuite) newService(baseURL string) *summaryService {
	svc := NewSummaryService(suite.mockSettingsRepo, "").(*summaryService)
	svc.baseURL = baseURL
	svc.now = func() time.Time {
		return time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	}
	return svc
}

func (suite *SummaryServiceTestSuite) settingsWithKey(key string) *models.Settings {
	return &models.Settings{ID: 1, GeminiAPIKey: &key}
}

func (suite *SummaryServiceTestSuite) summaryRequest() *SummaryRequest {
	return &SummaryRequest{
		ReportMonth:  "March 2025",
		MonthlySales: 25000,
		TotalPending: 7500,
		PaymentCount: 10,
		PendingCount: 3,
	}
}

func (suite *SummaryServiceTestSuite) TestSummarize_ReturnsNarrative() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(suite.T(), "stored-key", r.URL.Query().Get("key"))

		var req geminiRequest
		assert.NoError(suite.T(), json.NewDecoder(r.Body).Decode(&req))
		assert.Len(suite.T(), req.Contents, 1)
		assert.Contains(suite.T(), req.Contents[0].Parts[0].Text, "March 2025")
		assert.Contains(suite.T(), req.Contents[0].Parts[0].Text, "25000.00")

		json.NewEncoder(w).Encode(geminiResponse{
			Candidates: []struct {
				Content geminiContent `json:"content"`
			}{
				{Content: geminiContent{Parts: []geminiPart{{Text: "March closed strong."}}}},
			},
		})
	}))
	defer server.Close()

	suite.mockSettingsRepo.On("Get", mock.Anything).Return(suite.settingsWithKey("stored-key"), nil).Once()

	summary, err := suite.newService(server.URL).Summarize(suite.ctx, suite.summaryRequest())

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "March closed strong.", summary)
}

func (suite *SummaryServiceTestSuite) TestSummarize_SurfacesAPIError() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "API key not valid"}}`))
	}))
	defer server.Close()

	suite.mockSettingsRepo.On("Get", mock.Anything).Return(suite.settingsWithKey("bad-key"), nil).Once()

	_, err := suite.newService(server.URL).Summarize(suite.ctx, suite.summaryRequest())

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "API key not valid")
}

func (suite *SummaryServiceTestSuite) TestSummarize_NoKeyConfigured() {
	suite.mockSettingsRepo.On("Get", mock.Anything).Return(&models.Settings{ID: 1}, nil).Once()

	_, err := suite.newService("http://unused").Summarize(suite.ctx, suite.summaryRequest())

	var domainErr *common.DomainError
	assert.ErrorAs(suite.T(), err, &domainErr)
}

func (suite *SummaryServiceTestSuite) TestSummarize_EmptyCandidates() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	suite.mockSettingsRepo.On("Get", mock.Anything).Return(suite.settingsWithKey("stored-key"), nil).Once()

	_, err := suite.newService(server.URL).Summarize(suite.ctx, suite.summaryRequest())

	assert.Error(suite.T(), err)
}
