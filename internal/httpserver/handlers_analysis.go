package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tsawler/litsense"
	"github.com/tsawler/litsense/internal/domain"
	apperrors "github.com/tsawler/litsense/internal/errors"
)

const maxCompareTexts = 10

type analyzeRequest struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

type analyzeResponse struct {
	Success bool                     `json:"success"`
	ID      uuid.UUID                `json:"id"`
	Cached  bool                     `json:"cached"`
	Results *litsense.AnalysisResult `json:"results"`
	Summary string                   `json:"summary"`
}

type compareRequest struct {
	Texts  []string `json:"texts"`
	Labels []string `json:"labels,omitempty"`
}

type compareResponse struct {
	Success     bool                  `json:"success"`
	Comparisons []litsense.Comparison `json:"comparisons"`
}

type analysisListItem struct {
	ID               uuid.UUID               `json:"id"`
	CreatedAt        time.Time               `json:"created_at"`
	TextType         litsense.TextType       `json:"text_type"`
	OverallSentiment litsense.SentimentLabel `json:"overall_sentiment"`
	PrimaryEmotion   litsense.Emotion        `json:"primary_emotion"`
}

type recentResponse struct {
	Success  bool               `json:"success"`
	Analyses []analysisListItem `json:"analyses"`
}

func (s *Server) handleAnalyze(c echo.Context) error {
	var req analyzeRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return apperrors.ValidationError("No text provided")
	}
	textType, err := litsense.ParseTextType(req.Type)
	if err != nil {
		return apperrors.ValidationError(fmt.Sprintf("unknown text type %q", req.Type)).
			WithContext("allowed", litsense.TextTypes)
	}

	record, err := s.app.Analyze(c.Request().Context(), req.Text, textType)
	if err != nil {
		return apperrors.FromAnalysis(err)
	}

	if err := c.JSON(http.StatusOK, recordResponse(record)); err != nil {
		return fmt.Errorf("failed to write analysis response: %w", err)
	}
	return nil
}

func (s *Server) handleCompare(c echo.Context) error {
	var req compareRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if len(req.Texts) == 0 {
		return apperrors.ValidationError("No texts provided")
	}
	if len(req.Texts) > maxCompareTexts {
		return apperrors.ValidationError(fmt.Sprintf("at most %d texts can be compared", maxCompareTexts))
	}
	if len(req.Labels) > 0 && len(req.Labels) != len(req.Texts) {
		return apperrors.ValidationError(fmt.Sprintf("got %d labels for %d texts", len(req.Labels), len(req.Texts)))
	}

	var labels []string
	if len(req.Labels) > 0 {
		labels = req.Labels
	}
	comparisons, err := s.app.Compare(c.Request().Context(), req.Texts, labels)
	if err != nil {
		return apperrors.FromAnalysis(err)
	}

	if err := c.JSON(http.StatusOK, compareResponse{Success: true, Comparisons: comparisons}); err != nil {
		return fmt.Errorf("failed to write comparison response: %w", err)
	}
	return nil
}

func (s *Server) handleGetAnalysis(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid analysis id")
	}

	record, err := s.app.Get(c.Request().Context(), id)
	if err != nil {
		return historyError(err)
	}

	if err := c.JSON(http.StatusOK, recordResponse(record)); err != nil {
		return fmt.Errorf("failed to write analysis response: %w", err)
	}
	return nil
}

func (s *Server) handleRecent(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return apperrors.ValidationError("limit must be a positive integer")
		}
		limit = n
	}

	records, err := s.app.Recent(c.Request().Context(), limit)
	if err != nil {
		return historyError(err)
	}

	items := make([]analysisListItem, 0, len(records))
	for _, record := range records {
		item := analysisListItem{ID: record.ID, CreatedAt: record.CreatedAt, TextType: record.TextType}
		if record.Result != nil {
			item.OverallSentiment = record.Result.Sentiment.OverallSentiment
			item.PrimaryEmotion = record.Result.Emotions.PrimaryEmotion
		}
		items = append(items, item)
	}

	if err := c.JSON(http.StatusOK, recentResponse{Success: true, Analyses: items}); err != nil {
		return fmt.Errorf("failed to write analyses response: %w", err)
	}
	return nil
}

func recordResponse(record *domain.Record) analyzeResponse {
	return analyzeResponse{
		Success: true,
		ID:      record.ID,
		Cached:  record.Cached,
		Results: record.Result,
		Summary: record.Summary,
	}
}

func historyError(err error) error {
	switch {
	case errors.Is(err, domain.ErrAnalysisNotFound):
		return apperrors.NotFoundError("analysis not found")
	case errors.Is(err, domain.ErrHistoryDisabled):
		return apperrors.UnavailableError("analysis history is not configured", err)
	default:
		return apperrors.InternalError("failed to read analysis history", err)
	}
}
