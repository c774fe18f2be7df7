package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Freeeeeet/finashka_bot/internal/config"
	"github.com/Freeeeeet/finashka_bot/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// Migrator обёртка над goose с миграциями, вшитыми в бинарник
type Migrator struct {
	db     *sql.DB
	dir    string
	ownsDB bool
	logger *zap.Logger
}

// NewSQLiteMigrator мигрирует уже открытую базу SQLite; закрывать её будет вызывающий
func NewSQLiteMigrator(db *sql.DB, logger *zap.Logger) (*Migrator, error) {
	return newMigrator(db, config.DriverSQLite, false, logger)
}

// NewPostgresMigrator открывает *sql.DB поверх пула, goose не умеет работать с pgxpool напрямую
func NewPostgresMigrator(pool *pgxpool.Pool, logger *zap.Logger) (*Migrator, error) {
	return newMigrator(stdlib.OpenDBFromPool(pool), config.DriverPostgres, true, logger)
}

func newMigrator(db *sql.DB, driver string, ownsDB bool, logger *zap.Logger) (*Migrator, error) {
	var dialect, dir string
	switch driver {
	case config.DriverSQLite:
		dialect, dir = "sqlite3", repository.MigrationsDirSQLite
	case config.DriverPostgres:
		dialect, dir = "postgres", repository.MigrationsDirPostgres
	default:
		return nil, fmt.Errorf("unknown driver %q", driver)
	}

	goose.SetBaseFS(repository.Migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}

	return &Migrator{
		db:     db,
		dir:    dir,
		ownsDB: ownsDB,
		logger: logger,
	}, nil
}

// Run применяет все pending миграции
func (mg *Migrator) Run(ctx context.Context) error {
	mg.logger.Info("Applying database migrations", zap.String("dir", mg.dir))

	if err := goose.UpContext(ctx, mg.db, mg.dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := mg.Version(ctx)
	if err != nil {
		return err
	}

	mg.logger.Info("Migrations applied", zap.Int64("version", version))
	return nil
}

// Version текущая версия схемы
func (mg *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := goose.GetDBVersionContext(ctx, mg.db)
	if err != nil {
		return 0, fmt.Errorf("get version: %w", err)
	}
	return version, nil
}

// Close закрывает sql.DB, если мигратор открыл его сам. Пул остаётся в main.
func (mg *Migrator) Close() error {
	if mg.ownsDB && mg.db != nil {
		return mg.db.Close()
	}
	return nil
}
