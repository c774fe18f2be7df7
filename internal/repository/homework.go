package repository

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Migrations SQL-миграции реестра групп для обоих драйверов
//
//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var Migrations embed.FS

const (
	MigrationsDirSQLite   = "migrations/sqlite"
	MigrationsDirPostgres = "migrations/postgres"

	registryTable = "homework_groups"
)

var (
	ErrEmptyGroup    = errors.New("empty group name")
	ErrReservedGroup = errors.New("group name collides with a service table")
)

// Имена служебных таблиц, которые нельзя занимать под группы
var reservedTables = []string{registryTable, "goose_db_version", "sqlite_sequence"}

// groupKey ключ поиска группы без учёта регистра
func groupKey(group string) (string, error) {
	name := strings.TrimSpace(group)
	if name == "" {
		return "", ErrEmptyGroup
	}
	for _, r := range reservedTables {
		if strings.EqualFold(name, r) {
			return "", fmt.Errorf("%q: %w", name, ErrReservedGroup)
		}
	}
	return strings.ToLower(name), nil
}

// matchTable ищет среди имён таблиц совпадение с группой без учёта регистра
func matchTable(tables []string, group string) (string, bool) {
	name := strings.TrimSpace(group)
	for _, t := range tables {
		if strings.EqualFold(t, name) {
			return t, true
		}
	}
	return "", false
}

func encodeFiles(files []string) (string, error) {
	if files == nil {
		files = []string{}
	}
	data, err := json.Marshal(files)
	if err != nil {
		return "", fmt.Errorf("encode files: %w", err)
	}
	return string(data), nil
}

// decodeFiles битый список файлов не мешает показать само задание
func decodeFiles(raw []byte, logger *zap.Logger) []string {
	if len(raw) == 0 {
		return nil
	}
	var files []string
	if err := json.Unmarshal(raw, &files); err != nil {
		logger.Warn("Stored files list is not valid JSON", zap.ByteString("raw", raw), zap.Error(err))
		return nil
	}
	return files
}
