package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Freeeeeet/finashka_bot/internal/model"
	"go.uber.org/zap"
)

const (
	humanDateLayout = "02.01.2006"
	isoDateLayout   = "2006-01-02"

	// Просмотр недели ДЗ идёт с понедельника по субботу
	homeworkWeekDays = 6
)

var ErrIncompleteDraft = errors.New("homework draft is incomplete")

// HomeworkStore хранилище ДЗ с таблицей на группу
type HomeworkStore interface {
	Insert(ctx context.Context, group string, hw *model.Homework) error
	FindByDeadlines(ctx context.Context, group string, deadlines []string) ([]model.Homework, error)
	GroupExists(ctx context.Context, group string) (bool, error)
}

// BestEffort результат необязательной проверки: Err можно игнорировать, Value при этом нулевое
type BestEffort[T any] struct {
	Value T
	Err   error
}

// DayHomework задания группы на один день
type DayHomework struct {
	Day   time.Time
	Known bool // у группы вообще есть таблица ДЗ
	Items []model.Homework
}

type HomeworkService struct {
	store    HomeworkStore
	filesDir string
	logger   *zap.Logger
}

func NewHomeworkService(store HomeworkStore, filesDir string, logger *zap.Logger) *HomeworkService {
	return &HomeworkService{
		store:    store,
		filesDir: filesDir,
		logger:   logger,
	}
}

// ForDate ищет ДЗ группы с дедлайном в этот день (в любом из двух форматов)
func (s *HomeworkService) ForDate(ctx context.Context, group string, day time.Time) (*DayHomework, error) {
	known, err := s.store.GroupExists(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("homework for date: %w", err)
	}

	res := &DayHomework{Day: day, Known: known}
	if !known {
		return res, nil
	}

	items, err := s.store.FindByDeadlines(ctx, group, DeadlineVariants(day))
	if err != nil {
		return nil, fmt.Errorf("homework for date: %w", err)
	}
	res.Items = items
	return res, nil
}

// HasHomeworkOn проверка для расписания группы. Ошибки только логируются.
func (s *HomeworkService) HasHomeworkOn(ctx context.Context, group string, day time.Time) BestEffort[bool] {
	items, err := s.store.FindByDeadlines(ctx, group, DeadlineVariants(day))
	if err != nil {
		s.logger.Debug("Homework cross-check failed",
			zap.String("group", group),
			zap.String("day", day.Format(isoDateLayout)),
			zap.Error(err))
		return BestEffort[bool]{Err: err}
	}
	return BestEffort[bool]{Value: len(items) > 0}
}

// Add сохраняет собранный черновик. Неполный черновик не записывается.
func (s *HomeworkService) Add(ctx context.Context, draft *model.HomeworkDraft) (*model.Homework, error) {
	if draft == nil || !draft.Complete() {
		return nil, ErrIncompleteDraft
	}

	hw := &model.Homework{
		Subject:  strings.TrimSpace(draft.Subject),
		Deadline: draft.Deadline.Format(humanDateLayout),
		Task:     strings.TrimSpace(draft.Task),
		Files:    append([]string(nil), draft.Files...),
	}

	if err := s.store.Insert(ctx, strings.TrimSpace(draft.Group), hw); err != nil {
		return nil, fmt.Errorf("add homework: %w", err)
	}

	s.logger.Info("Homework added",
		zap.String("group", draft.Group),
		zap.String("subject", hw.Subject),
		zap.String("deadline", hw.Deadline),
		zap.Int("files", len(hw.Files)))

	return hw, nil
}

// AcceptAttachments переименовывает вложения под дедлайн и готовит каталог группы.
// Вложения без имени пропускаются.
func (s *HomeworkService) AcceptAttachments(group string, deadline time.Time, atts []model.Attachment) []string {
	var names []string
	for _, a := range atts {
		if strings.TrimSpace(a.FileName) == "" {
			continue
		}
		names = append(names, RenameAttachment(a.FileName, deadline))
	}

	if len(names) > 0 {
		if err := os.MkdirAll(s.groupDir(group), 0o755); err != nil {
			s.logger.Warn("Failed to create homework files dir", zap.String("group", group), zap.Error(err))
		}
	}
	return names
}

// ExistingFiles возвращает пути файлов, которые реально лежат в каталоге группы
func (s *HomeworkService) ExistingFiles(group string, files []string) []string {
	var out []string
	for _, fn := range files {
		p := s.FilePath(group, fn)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			out = append(out, p)
		}
	}
	return out
}

// FilePath путь к файлу ДЗ внутри каталога группы
func (s *HomeworkService) FilePath(group, fileName string) string {
	return filepath.Join(s.groupDir(group), filepath.Base(fileName))
}

// groupDir каталог группы; имя группы не может выйти за пределы filesDir
func (s *HomeworkService) groupDir(group string) string {
	return filepath.Join(s.filesDir, filepath.Base(filepath.Clean("/"+strings.TrimSpace(group))))
}

// DeadlineVariants оба формата, в которых дедлайн мог попасть в таблицу
func DeadlineVariants(day time.Time) []string {
	return []string{day.Format(humanDateLayout), day.Format(isoDateLayout)}
}

// RenameAttachment превращает "report.pdf" в "report_12.12.2025.pdf".
// Расширением считается всё после первой точки.
func RenameAttachment(fileName string, deadline time.Time) string {
	stem, ext, hasExt := strings.Cut(fileName, ".")
	name := stem + "_" + deadline.Format(humanDateLayout)
	if hasExt {
		name += "." + ext
	}
	return name
}

// WeekDays дни просмотра ДЗ: понедельник..суббота недели, в которую попадает anchor
func WeekDays(anchor time.Time) []time.Time {
	y, m, d := anchor.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, anchor.Location())
	monday := day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))

	days := make([]time.Time, homeworkWeekDays)
	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}
	return days
}
