package order

import (
	"context"
	"errors"
	"fmt"

	"canteen/internal/entities"
	"canteen/internal/repository"
	"canteen/internal/service/order"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var columns = []string{
	"id",
	"user_id::text",
	"user_name",
	"user_email",
	"items",
	"total_amount::text",
	"status",
	"created_at",
	"updated_at",
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, orderEntity entities.Order) (*entities.Order, error) {
	orderModel, err := FromDomain(&orderEntity)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	query := `
		INSERT INTO orders (id, user_id, user_name, user_email, items, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id, user_id::text, user_name, user_email, items, total_amount::text, status, created_at, updated_at
	`

	var created OrderDB
	err = r.querier.QueryRow(
		ctx,
		query,
		orderModel.ID,
		orderModel.UserID,
		orderModel.UserName,
		orderModel.UserEmail,
		orderModel.Items,
		orderModel.TotalAmount,
		orderModel.Status,
		orderModel.CreatedAt,
	).Scan(scanTargets(&created)...)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, order.ErrOrderAlreadyExists
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return nil, order.ErrUserNotFound
		}
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	return ToDomain(&created)
}

// GetByUserEmail возвращает заказы пользователя, новые первыми.
func (r *Repository) GetByUserEmail(ctx context.Context, email string) ([]entities.Order, error) {
	builder := qb.
		Select(columns...).
		From("orders").
		Where(sq.Eq{"user_email": email}).
		OrderBy("created_at DESC", "id DESC")

	orders, err := r.list(ctx, builder)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository getbyuseremail error: %w", err)
	}
	return orders, nil
}

// GetByFilter возвращает заказы с указанными статусами, старые первыми:
// так их видит кухня.
func (r *Repository) GetByFilter(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error) {
	builder := qb.
		Select(columns...).
		From("orders").
		OrderBy("created_at ASC", "id ASC")

	if len(filter.Statuses) > 0 {
		builder = builder.Where(sq.Eq{"status": statusStrings(filter.Statuses)})
	}

	orders, err := r.list(ctx, builder)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository getbyfilter error: %w", err)
	}
	return orders, nil
}

// UpdateStatus перезаписывает статус без проверки текущего и возвращает
// предыдущий.
func (r *Repository) UpdateStatus(ctx context.Context, orderID string, status entities.OrderStatus) (*entities.StatusUpdate, error) {
	query := `
		WITH prev AS (
			SELECT id, status FROM orders WHERE id = $1 FOR UPDATE
		)
		UPDATE orders o
		SET status = $2, updated_at = NOW()
		FROM prev
		WHERE o.id = prev.id
		RETURNING o.id, o.user_id::text, o.user_name, o.user_email, o.items, o.total_amount::text,
			o.status, o.created_at, o.updated_at, prev.status
	`

	update, err := r.updateStatus(ctx, query, orderID, status.String())
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, order.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository updatestatus error: %w", err)
	}

	return update, nil
}

// UpdateStatusFrom пишет статус, только если текущий входит в from.
// Иначе ErrStatusConflict, для отсутствующего заказа ErrOrderNotFound.
func (r *Repository) UpdateStatusFrom(
	ctx context.Context,
	orderID string,
	from []entities.OrderStatus,
	to entities.OrderStatus,
) (*entities.StatusUpdate, error) {
	query := `
		WITH prev AS (
			SELECT id, status FROM orders WHERE id = $1 FOR UPDATE
		)
		UPDATE orders o
		SET status = $2, updated_at = NOW()
		FROM prev
		WHERE o.id = prev.id AND prev.status = ANY($3)
		RETURNING o.id, o.user_id::text, o.user_name, o.user_email, o.items, o.total_amount::text,
			o.status, o.created_at, o.updated_at, prev.status
	`

	update, err := r.updateStatus(ctx, query, orderID, to.String(), statusStrings(from))
	if err == nil {
		return update, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("unexpected order repository updatestatusfrom error: %w", err)
	}

	var exists bool
	err = r.querier.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, orderID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository updatestatusfrom error: %w", err)
	}
	if !exists {
		return nil, order.ErrOrderNotFound
	}

	return nil, order.ErrStatusConflict
}

func (r *Repository) CountByStatus(ctx context.Context) (map[entities.OrderStatus]int64, error) {
	query, args, err := qb.
		Select("status", "COUNT(*)").
		From("orders").
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository countbystatus error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository countbystatus error: %w", err)
	}
	defer rows.Close()

	counts := make(map[entities.OrderStatus]int64)
	for rows.Next() {
		var (
			status string
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("unexpected order repository countbystatus error: %w", err)
		}
		counts[entities.OrderStatus(status)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected order repository countbystatus error: %w", err)
	}

	return counts, nil
}

func (r *Repository) updateStatus(ctx context.Context, query string, args ...any) (*entities.StatusUpdate, error) {
	var (
		orderModel OrderDB
		previous   string
	)
	err := r.querier.QueryRow(ctx, query, args...).
		Scan(append(scanTargets(&orderModel), &previous)...)
	if err != nil {
		return nil, err
	}

	orderEntity, err := ToDomain(&orderModel)
	if err != nil {
		return nil, err
	}

	return &entities.StatusUpdate{
		Order:          *orderEntity,
		PreviousStatus: entities.OrderStatus(previous),
	}, nil
}

func (r *Repository) list(ctx context.Context, builder sq.SelectBuilder) ([]entities.Order, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orderModels := make([]OrderDB, 0, 8)
	for rows.Next() {
		var orderModel OrderDB
		if err := rows.Scan(scanTargets(&orderModel)...); err != nil {
			return nil, err
		}
		orderModels = append(orderModels, orderModel)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ToDomainList(orderModels)
}

func scanTargets(o *OrderDB) []any {
	return []any{
		&o.ID,
		&o.UserID,
		&o.UserName,
		&o.UserEmail,
		&o.Items,
		&o.TotalAmount,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	}
}
