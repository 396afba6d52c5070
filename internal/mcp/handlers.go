package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vijay-prabhu/empscore/internal/database"
	"github.com/vijay-prabhu/empscore/internal/model"
)

const defaultLimit = 20

func (s *Server) registerHandlers() {
	s.handlers["list_scores"] = s.handleListScores
	s.handlers["get_score"] = s.handleGetScore
	s.handlers["list_batches"] = s.handleListBatches
	s.handlers["get_batch"] = s.handleGetBatch
	s.handlers["get_stats"] = s.handleGetStats
}

type listScoresParams struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func (s *Server) handleListScores(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p listScoresParams
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid parameters: %w", err)
		}
	}

	opts := database.ListOptions{Limit: p.Limit, Offset: p.Offset}
	if opts.Limit <= 0 {
		opts.Limit = defaultLimit
	}

	details, err := s.store.ListScoreDetailsWithOptions(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if details == nil {
		details = []model.ScoreDetail{}
	}
	return details, nil
}

type getScoreParams struct {
	EmpID          string `json:"emp_id"`
	IncludeHistory bool   `json:"include_history"`
}

type scoreWithHistory struct {
	Detail  *model.ScoreDetail   `json:"detail"`
	History []model.ScoreHistory `json:"history,omitempty"`
}

func (s *Server) handleGetScore(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getScoreParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if p.EmpID == "" {
		return nil, fmt.Errorf("emp_id is required")
	}

	detail, err := s.store.GetScoreDetail(ctx, p.EmpID)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if detail == nil {
		return nil, fmt.Errorf("no score for employee: %s", p.EmpID)
	}

	result := scoreWithHistory{Detail: detail}
	if p.IncludeHistory {
		result.History, err = s.store.ListScoreHistory(ctx, p.EmpID)
		if err != nil {
			return nil, fmt.Errorf("failed to get history: %w", err)
		}
	}

	return result, nil
}

type listBatchesParams struct {
	Limit int `json:"limit"`
}

func (s *Server) handleListBatches(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p listBatchesParams
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid parameters: %w", err)
		}
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}

	batches, err := s.store.ListBatches(ctx, p.Limit)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if batches == nil {
		batches = []model.Batch{}
	}
	return batches, nil
}

type getBatchParams struct {
	BatchID int `json:"batch_id"`
}

func (s *Server) handleGetBatch(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getBatchParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if p.BatchID < 1 {
		return nil, fmt.Errorf("batch_id is required")
	}

	batch, err := s.store.GetBatch(ctx, p.BatchID)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if batch == nil {
		return nil, fmt.Errorf("batch not found: %d", p.BatchID)
	}
	return batch, nil
}

func (s *Server) handleGetStats(ctx context.Context, params json.RawMessage) (interface{}, error) {
	stats, err := s.store.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return stats, nil
}

// Resource handlers

func (s *Server) handleReadResource(ctx context.Context, uri string) (string, error) {
	switch uri {
	case URISummary:
		return s.getResourceSummary(ctx)
	case URITop:
		return s.getResourceTop(ctx)
	case URIBatches:
		return s.getResourceBatches(ctx)
	default:
		return "", fmt.Errorf("unknown resource: %s", uri)
	}
}

func (s *Server) getResourceSummary(ctx context.Context) (string, error) {
	stats, err := s.store.GetStats(ctx)
	if err != nil {
		return "", err
	}

	summary := fmt.Sprintf(`Score Summary
=============
Scored employees: %d
Archived states:  %d
Avg prscore:      %.1f (max %d)
Avg vrscore:      %.1f (max %d)
`, stats.ScoreDetails, stats.HistoryRows,
		stats.AvgPRScore, stats.MaxPRScore, stats.AvgVRScore, stats.MaxVRScore)

	if stats.LatestBatch > 0 {
		summary += fmt.Sprintf("Latest run:       batch %d (%s)\n", stats.LatestBatch, stats.LatestStatus)
	} else {
		summary += "Latest run:       none\n"
	}

	return summary, nil
}

func (s *Server) getResourceTop(ctx context.Context) (string, error) {
	details, err := s.store.ListScoreDetailsWithOptions(ctx, database.ListOptions{Limit: 10})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Top Scores\n==========\n\n")

	if len(details) == 0 {
		b.WriteString("No scores yet. Run 'empscore run' to score flagged profiles.\n")
		return b.String(), nil
	}

	for i, d := range details {
		fmt.Fprintf(&b, "%2d. %s | prscore %d | vrscore %d\n", i+1, d.EmpID, d.PRScore, d.VRScore)
	}

	return b.String(), nil
}

func (s *Server) getResourceBatches(ctx context.Context) (string, error) {
	batches, err := s.store.ListBatches(ctx, 10)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Recent Runs\n===========\n\n")

	if len(batches) == 0 {
		b.WriteString("No runs yet.\n")
		return b.String(), nil
	}

	for _, batch := range batches {
		fmt.Fprintf(&b, "- batch %d | %s | %s | %s\n",
			batch.BatchID, batch.Status, batch.RequestedBy, batch.UpdatedTime.Format("2006-01-02 15:04"))
	}

	return b.String(), nil
}
