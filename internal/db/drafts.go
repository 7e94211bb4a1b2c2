package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Draft is one saved generated email. Rows live in the email_drafts table:
//
//	CREATE TABLE email_drafts (
//	    id              uuid PRIMARY KEY DEFAULT gen_random_uuid(),
//	    user_id         text NOT NULL,
//	    url             text NOT NULL DEFAULT '',
//	    subject         text NOT NULL,
//	    body            text NOT NULL,
//	    recipient_name  text NOT NULL DEFAULT '',
//	    recipient_email text NOT NULL DEFAULT '',
//	    page_context    text NOT NULL DEFAULT 'generic',
//	    created_at      timestamptz NOT NULL DEFAULT now()
//	);
type Draft struct {
	ID             uuid.UUID `json:"id"`
	UserID         string    `json:"user_id"`
	URL            string    `json:"url,omitempty"`
	Subject        string    `json:"subject"`
	Body           string    `json:"body"`
	RecipientName  string    `json:"recipient_name,omitempty"`
	RecipientEmail string    `json:"recipient_email,omitempty"`
	PageContext    string    `json:"page_context"`
	CreatedAt      time.Time `json:"created_at"`
}

// SaveDraft inserts a draft and returns its generated ID.
func (db *DB) SaveDraft(ctx context.Context, d *Draft) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO email_drafts (user_id, url, subject, body, recipient_name, recipient_email, page_context)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		d.UserID, d.URL, d.Subject, d.Body, d.RecipientName, d.RecipientEmail, d.PageContext,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return id, nil
}

// ListDraftsByUser returns a user's drafts, newest first.
func (db *DB) ListDraftsByUser(ctx context.Context, userID string, limit int) ([]Draft, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, url, subject, body, recipient_name, recipient_email, page_context, created_at
		 FROM email_drafts
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	drafts := make([]Draft, 0)
	for rows.Next() {
		var d Draft
		if err := rows.Scan(&d.ID, &d.UserID, &d.URL, &d.Subject, &d.Body,
			&d.RecipientName, &d.RecipientEmail, &d.PageContext, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan draft: %w", err)
		}
		drafts = append(drafts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read drafts: %w", err)
	}

	return drafts, nil
}
