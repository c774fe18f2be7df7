package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/finashka_bot/internal/model"
	"github.com/Freeeeeet/finashka_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PostgresHomeworkRepository то же хранилище ДЗ поверх PostgreSQL
type PostgresHomeworkRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewPostgresHomeworkRepository(pool *pgxpool.Pool, logger *zap.Logger) *PostgresHomeworkRepository {
	return &PostgresHomeworkRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// Insert добавляет запись в таблицу группы
func (r *PostgresHomeworkRepository) Insert(ctx context.Context, group string, hw *model.Homework) error {
	key, err := groupKey(group)
	if err != nil {
		return fmt.Errorf("insert homework: %w", err)
	}

	files, err := encodeFiles(hw.Files)
	if err != nil {
		return fmt.Errorf("insert homework: %w", err)
	}

	err = r.InTx(ctx, func(tx pgx.Tx) error {
		table, err := r.ensureTable(ctx, tx, key, strings.TrimSpace(group))
		if err != nil {
			return err
		}

		query := fmt.Sprintf(`
			INSERT INTO %s (subject, deadline, task, files)
			VALUES ($1, $2, $3, $4::jsonb)
			RETURNING id, created_at
		`, base.Quote(table))

		return tx.QueryRow(ctx, query, hw.Subject, hw.Deadline, hw.Task, files).Scan(&hw.ID, &hw.CreatedAt)
	})
	if err != nil {
		r.logger.Error("Failed to insert homework",
			zap.String("group", group),
			zap.Error(err))
		return fmt.Errorf("insert homework: %w", err)
	}

	r.logger.Info("Homework inserted",
		zap.String("group", group),
		zap.Int64("homework_id", hw.ID),
		zap.String("deadline", hw.Deadline))

	return nil
}

// FindByDeadlines возвращает записи группы по вариантам написания дедлайна
func (r *PostgresHomeworkRepository) FindByDeadlines(ctx context.Context, group string, deadlines []string) ([]model.Homework, error) {
	key, err := groupKey(group)
	if err != nil {
		return nil, fmt.Errorf("find homework: %w", err)
	}
	if len(deadlines) == 0 {
		return nil, nil
	}

	table, err := r.resolveTable(ctx, key, group)
	if err != nil {
		return nil, fmt.Errorf("find homework: %w", err)
	}
	if table == "" {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT id, subject, deadline, task, files, created_at
		FROM %s
		WHERE deadline = ANY($1)
		ORDER BY id
	`, base.Quote(table))

	rows, err := r.Pool().Query(ctx, query, deadlines)
	if err != nil {
		return nil, fmt.Errorf("query homework: %w", err)
	}
	defer rows.Close()

	var out []model.Homework
	for rows.Next() {
		var (
			hw    model.Homework
			files []byte
		)
		if err := rows.Scan(&hw.ID, &hw.Subject, &hw.Deadline, &hw.Task, &files, &hw.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan homework: %w", err)
		}
		hw.Files = decodeFiles(files, r.logger)
		out = append(out, hw)
	}

	return out, rows.Err()
}

// GroupExists сообщает, есть ли у группы таблица
func (r *PostgresHomeworkRepository) GroupExists(ctx context.Context, group string) (bool, error) {
	key, err := groupKey(group)
	if err != nil {
		return false, fmt.Errorf("group exists: %w", err)
	}
	table, err := r.resolveTable(ctx, key, group)
	if err != nil {
		return false, fmt.Errorf("group exists: %w", err)
	}
	return table != "", nil
}

func (r *PostgresHomeworkRepository) resolveTable(ctx context.Context, key, group string) (string, error) {
	var table string
	err := r.Pool().QueryRow(ctx, `SELECT table_name FROM homework_groups WHERE name_key = $1`, key).Scan(&table)
	if err == nil {
		return table, nil
	}
	if !base.IsNotFound(err) {
		return "", fmt.Errorf("lookup registry: %w", err)
	}

	tables, err := r.QueryStrings(ctx, `
		SELECT table_name::text
		FROM information_schema.tables
		WHERE table_schema = current_schema()
	`)
	if err != nil {
		return "", fmt.Errorf("list tables: %w", err)
	}

	if t, ok := matchTable(tables, group); ok {
		return t, nil
	}
	return "", nil
}

func (r *PostgresHomeworkRepository) ensureTable(ctx context.Context, tx pgx.Tx, key, group string) (string, error) {
	table, err := r.resolveTable(ctx, key, group)
	if err != nil {
		return "", err
	}
	if table == "" {
		table = group
	}

	ddl := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id         BIGSERIAL PRIMARY KEY,
			subject    TEXT NOT NULL,
			deadline   TEXT NOT NULL,
			task       TEXT NOT NULL,
			files      JSONB NOT NULL DEFAULT '[]'::jsonb,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`, base.Quote(table))
	if _, err := tx.Exec(ctx, ddl); err != nil {
		return "", fmt.Errorf("create group table: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO homework_groups (name_key, name, table_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (name_key) DO NOTHING
	`, key, group, table)
	if err != nil {
		return "", fmt.Errorf("register group: %w", err)
	}

	return table, nil
}
