package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Freeeeeet/finashka_bot/internal/model"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

// Так SQLite пишет CURRENT_TIMESTAMP (UTC)
const sqliteTimestampLayout = "2006-01-02 15:04:05"

// OpenSQLite открывает файл базы, создавая каталог при необходимости
func OpenSQLite(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	dsn := path + sep + "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Один писатель, иначе SQLITE_BUSY на параллельных вставках
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

// SQLiteHomeworkRepository хранит ДЗ в локальном файле SQLite, по таблице на группу
type SQLiteHomeworkRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewSQLiteHomeworkRepository(db *sql.DB, logger *zap.Logger) *SQLiteHomeworkRepository {
	return &SQLiteHomeworkRepository{
		db:     db,
		logger: logger,
	}
}

// Insert добавляет запись в таблицу группы, создавая таблицу при первом обращении
func (r *SQLiteHomeworkRepository) Insert(ctx context.Context, group string, hw *model.Homework) error {
	key, err := groupKey(group)
	if err != nil {
		return fmt.Errorf("insert homework: %w", err)
	}

	files, err := encodeFiles(hw.Files)
	if err != nil {
		return fmt.Errorf("insert homework: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	table, err := r.ensureTable(ctx, tx, key, strings.TrimSpace(group))
	if err != nil {
		return fmt.Errorf("insert homework: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (subject, deadline, task, files)
		VALUES (?, ?, ?, ?)
		RETURNING id, created_at
	`, quoteSQLite(table))

	var createdAt string
	err = tx.QueryRowContext(ctx, query, hw.Subject, hw.Deadline, hw.Task, files).Scan(&hw.ID, &createdAt)
	if err != nil {
		r.logger.Error("Failed to insert homework",
			zap.String("group", group),
			zap.String("table", table),
			zap.Error(err))
		return fmt.Errorf("insert homework: %w", err)
	}
	hw.CreatedAt = parseSQLiteTime(createdAt)

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit homework: %w", err)
	}

	r.logger.Info("Homework inserted",
		zap.String("group", group),
		zap.Int64("homework_id", hw.ID),
		zap.String("deadline", hw.Deadline))

	return nil
}

// FindByDeadlines возвращает записи группы, у которых дедлайн совпадает с одним из вариантов.
// Для группы без таблицы возвращает nil без ошибки.
func (r *SQLiteHomeworkRepository) FindByDeadlines(ctx context.Context, group string, deadlines []string) ([]model.Homework, error) {
	key, err := groupKey(group)
	if err != nil {
		return nil, fmt.Errorf("find homework: %w", err)
	}
	if len(deadlines) == 0 {
		return nil, nil
	}

	table, err := r.resolveTable(ctx, r.db, key, group)
	if err != nil {
		return nil, fmt.Errorf("find homework: %w", err)
	}
	if table == "" {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(deadlines)), ", ")
	query := fmt.Sprintf(`
		SELECT id, subject, deadline, task, files, created_at
		FROM %s
		WHERE deadline IN (%s)
		ORDER BY id
	`, quoteSQLite(table), placeholders)

	args := make([]any, len(deadlines))
	for i, d := range deadlines {
		args[i] = d
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query homework: %w", err)
	}
	defer rows.Close()

	var out []model.Homework
	for rows.Next() {
		var (
			hw        model.Homework
			files     sql.NullString
			createdAt sql.NullString
		)
		if err := rows.Scan(&hw.ID, &hw.Subject, &hw.Deadline, &hw.Task, &files, &createdAt); err != nil {
			return nil, fmt.Errorf("scan homework: %w", err)
		}
		hw.Files = decodeFiles([]byte(files.String), r.logger)
		hw.CreatedAt = parseSQLiteTime(createdAt.String)
		out = append(out, hw)
	}

	return out, rows.Err()
}

// GroupExists сообщает, есть ли у группы таблица
func (r *SQLiteHomeworkRepository) GroupExists(ctx context.Context, group string) (bool, error) {
	key, err := groupKey(group)
	if err != nil {
		return false, fmt.Errorf("group exists: %w", err)
	}
	table, err := r.resolveTable(ctx, r.db, key, group)
	if err != nil {
		return false, fmt.Errorf("group exists: %w", err)
	}
	return table != "", nil
}

type sqliteQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// resolveTable сначала смотрит реестр, потом каталог sqlite_master.
// Пустая строка означает, что таблицы нет.
func (r *SQLiteHomeworkRepository) resolveTable(ctx context.Context, q sqliteQuerier, key, group string) (string, error) {
	var table string
	err := q.QueryRowContext(ctx, `SELECT table_name FROM homework_groups WHERE name_key = ?`, key).Scan(&table)
	switch {
	case err == nil:
		return table, nil
	case !errors.Is(err, sql.ErrNoRows):
		return "", fmt.Errorf("lookup registry: %w", err)
	}

	rows, err := q.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table'`)
	if err != nil {
		return "", fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return "", fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	if t, ok := matchTable(tables, group); ok {
		return t, nil
	}
	return "", nil
}

func (r *SQLiteHomeworkRepository) ensureTable(ctx context.Context, tx *sql.Tx, key, group string) (string, error) {
	table, err := r.resolveTable(ctx, tx, key, group)
	if err != nil {
		return "", err
	}
	if table == "" {
		table = group
	}

	ddl := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			subject    TEXT NOT NULL,
			deadline   TEXT NOT NULL,
			task       TEXT NOT NULL,
			files      TEXT NOT NULL DEFAULT '[]',
			created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`, quoteSQLite(table))
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return "", fmt.Errorf("create group table: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO homework_groups (name_key, name, table_name)
		VALUES (?, ?, ?)
		ON CONFLICT (name_key) DO NOTHING
	`, key, group, table)
	if err != nil {
		return "", fmt.Errorf("register group: %w", err)
	}

	return table, nil
}

func quoteSQLite(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func parseSQLiteTime(s string) time.Time {
	if t, err := time.Parse(sqliteTimestampLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	return time.Time{}
}
