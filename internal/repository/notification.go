package repository

import (
	"context"
	"time"

	"e1xp_creator_backend/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type notification struct {
	ID          uuid.UUID `db:"id"`
	UserAddress string    `db:"user_address"`
	Type        string    `db:"type"`
	Title       string    `db:"title"`
	Message     string    `db:"message"`
	Metadata    []byte    `db:"metadata"`
	Read        bool      `db:"read"`
	CreatedAt   time.Time `db:"created_at"`
}

func (n *notification) toModel() (*model.Notification, error) {
	out := &model.Notification{
		ID:          n.ID,
		UserAddress: n.UserAddress,
		Type:        n.Type,
		Title:       n.Title,
		Message:     n.Message,
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
	}
	if len(n.Metadata) > 0 {
		var meta model.NotificationMetadata
		if err := json.Unmarshal(n.Metadata, &meta); err != nil {
			return nil, err
		}
		out.Metadata = &meta
	}
	return out, nil
}

func (r *Repository) CreateNotification(ctx context.Context, n *model.Notification) error {
	id := uuid.New()
	now := time.Now().UTC()

	var metadata []byte
	if n.Metadata != nil {
		encoded, err := json.Marshal(n.Metadata)
		if err != nil {
			return err
		}
		metadata = encoded
	}

	query, args, err := squirrel.
		Insert("notifications").
		SetMap(map[string]interface{}{
			"id":           id,
			"user_address": n.UserAddress,
			"type":         n.Type,
			"title":        n.Title,
			"message":      n.Message,
			"metadata":     metadata,
			"read":         false,
			"created_at":   now,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	n.ID = id
	n.Read = false
	n.CreatedAt = now
	return nil
}

func (r *Repository) GetNotificationsByUser(ctx context.Context, userAddress string, unreadOnly bool) ([]*model.Notification, error) {
	builder := squirrel.
		Select("id", "user_address", "type", "title", "message",
			"metadata", "read", "created_at").
		From("notifications").
		Where(squirrel.Eq{"user_address": userAddress}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if unreadOnly {
		builder = builder.Where(squirrel.Eq{"read": false})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var notifications []notification
	err = r.db.SelectContext(ctx, &notifications, query, args...)
	if err != nil {
		return nil, err
	}

	out := make([]*model.Notification, len(notifications))
	for i := range notifications {
		n, err := notifications[i].toModel()
		if err != nil {
			return nil, err
		}
		out[i] = n
	}

	return out, nil
}

func (r *Repository) MarkNotificationRead(ctx context.Context, id uuid.UUID) error {
	query, args, err := squirrel.
		Update("notifications").
		Set("read", true).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *Repository) MarkAllNotificationsRead(ctx context.Context, userAddress string) error {
	query, args, err := squirrel.
		Update("notifications").
		Set("read", true).
		Where(squirrel.Eq{"user_address": userAddress, "read": false}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *Repository) DeleteNotification(ctx context.Context, id uuid.UUID) error {
	query, args, err := squirrel.
		Delete("notifications").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
