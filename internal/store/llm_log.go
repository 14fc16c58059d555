package store

import (
	"context"
	"database/sql"
	"fmt"
)

type llmRequestRepo struct {
	db *sql.DB
}

func (r *llmRequestRepo) Append(ctx context.Context, rec LLMRequestRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO llm_request_log
			(model, operation, latency_ms, input_tokens, output_tokens, success, error_message, request_body, response_body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Model, rec.Operation, rec.LatencyMs, rec.InputTokens, rec.OutputTokens,
		rec.Success, rec.ErrorMessage, rec.RequestBody, rec.ResponseBody)
	if err != nil {
		return fmt.Errorf("insert llm request: %w", err)
	}
	return nil
}

func (r *llmRequestRepo) Recent(ctx context.Context, limit int) ([]LLMRequestRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, model, operation, latency_ms, input_tokens, output_tokens, success, error_message, request_body, response_body, created_at
		FROM llm_request_log
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query llm requests: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestRecord
	for rows.Next() {
		var rec LLMRequestRecord
		if err := rows.Scan(&rec.ID, &rec.Model, &rec.Operation, &rec.LatencyMs,
			&rec.InputTokens, &rec.OutputTokens, &rec.Success, &rec.ErrorMessage,
			&rec.RequestBody, &rec.ResponseBody, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan llm request: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
