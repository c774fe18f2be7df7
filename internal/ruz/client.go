package ruz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Freeeeeet/finashka_bot/internal/model"
	"github.com/allegro/bigcache/v3"
	"go.uber.org/zap"
)

const (
	// Формат дат в query-параметрах расписания
	apiDateLayout = "2006.01.02"

	// Сколько тела ответа попадает в текст ошибки
	maxErrorBody = 200
)

type (
	// Client клиент API расписания (РУЗ Финуниверситета)
	Client struct {
		baseURL string
		cl      *http.Client
		cache   *bigcache.BigCache
		logger  *zap.Logger
	}

	Options struct {
		BaseURL  string
		Timeout  time.Duration
		CacheTTL time.Duration // 0: результаты поиска не кешируются
	}

	HTTPError struct {
		URL     string
		Code    int
		Message string
	}
)

// ErrUnexpectedStatus РУЗ ответил не 200
var ErrUnexpectedStatus = errors.New("unexpected status")

func (e *HTTPError) Error() string {
	return fmt.Sprintf("ruz request %s failed with code %d: %s", e.URL, e.Code, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return ErrUnexpectedStatus
}

// New создаёт клиент. Кеш поиска поднимается только при положительном TTL.
func New(opts Options, logger *zap.Logger) (*Client, error) {
	c := &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		cl: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				IdleConnTimeout:     30 * time.Second,
				MaxIdleConnsPerHost: 5,
			},
		},
		logger: logger,
	}

	if opts.CacheTTL > 0 {
		cfg := bigcache.DefaultConfig(opts.CacheTTL)
		cfg.Shards = 64
		cfg.HardMaxCacheSize = 16 // MB
		cfg.Verbose = false
		cache, err := bigcache.NewBigCache(cfg)
		if err != nil {
			return nil, fmt.Errorf("create search cache: %w", err)
		}
		c.cache = cache
	}

	return c, nil
}

// Close освобождает кеш
func (c *Client) Close() error {
	if c.cache != nil {
		return c.cache.Close()
	}
	return nil
}

// SearchGroup ищет группы по названию
func (c *Client) SearchGroup(ctx context.Context, query string) ([]model.SearchHit, error) {
	raw, err := c.search(ctx, "group", query)
	if err != nil {
		return nil, fmt.Errorf("search group: %w", err)
	}

	hits := make([]model.SearchHit, 0, len(raw))
	for _, rec := range raw {
		hits = append(hits, ParseGroupHit(rec, query))
	}
	return hits, nil
}

// SearchTeacher ищет преподавателей по фамилии
func (c *Client) SearchTeacher(ctx context.Context, surname string) ([]model.SearchHit, error) {
	raw, err := c.search(ctx, "person", surname)
	if err != nil {
		return nil, fmt.Errorf("search teacher: %w", err)
	}

	hits := make([]model.SearchHit, 0, len(raw))
	for _, rec := range raw {
		hits = append(hits, ParseTeacherHit(rec))
	}
	return hits, nil
}

// GroupTimetable возвращает занятия группы за период [start, end]
func (c *Client) GroupTimetable(ctx context.Context, groupID string, start, end time.Time) ([]model.Lesson, error) {
	lessons, err := c.timetable(ctx, "group", groupID, start, end)
	if err != nil {
		return nil, fmt.Errorf("group timetable: %w", err)
	}
	return lessons, nil
}

// TeacherTimetable возвращает занятия преподавателя за период [start, end]
func (c *Client) TeacherTimetable(ctx context.Context, teacherID string, start, end time.Time) ([]model.Lesson, error) {
	lessons, err := c.timetable(ctx, "person", teacherID, start, end)
	if err != nil {
		return nil, fmt.Errorf("teacher timetable: %w", err)
	}
	return lessons, nil
}

func (c *Client) search(ctx context.Context, kind, term string) ([]map[string]any, error) {
	cacheKey := kind + ":" + strings.ToLower(strings.TrimSpace(term))

	if c.cache != nil {
		if data, err := c.cache.Get(cacheKey); err == nil {
			var cached []map[string]any
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		} else if !errors.Is(err, bigcache.ErrEntryNotFound) {
			c.logger.Warn("Search cache read failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	q := url.Values{}
	q.Set("term", term)
	q.Set("type", kind)

	var raw []any
	if err := c.getJSON(ctx, "/search", q, &raw); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if rec, ok := item.(map[string]any); ok {
			out = append(out, rec)
		}
	}

	if c.cache != nil && len(out) > 0 {
		if data, err := json.Marshal(out); err == nil {
			if err := c.cache.Set(cacheKey, data); err != nil {
				c.logger.Warn("Search cache write failed", zap.String("key", cacheKey), zap.Error(err))
			}
		}
	}

	return out, nil
}

func (c *Client) timetable(ctx context.Context, kind, id string, start, end time.Time) ([]model.Lesson, error) {
	q := url.Values{}
	q.Set("start", start.Format(apiDateLayout))
	q.Set("finish", end.Format(apiDateLayout))
	q.Set("lng", "1")

	var raw []any
	if err := c.getJSON(ctx, "/schedule/"+kind+"/"+url.PathEscape(id), q, &raw); err != nil {
		return nil, err
	}

	return ParseLessons(raw), nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, dst any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.cl.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("RUZ request done",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(started)))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("RUZ returned error status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return &HTTPError{URL: u, Code: resp.StatusCode, Message: shortBody(body)}
	}

	// Пустой ответ значит нет данных
	if len(strings.TrimSpace(string(body))) == 0 || strings.TrimSpace(string(body)) == "null" {
		return nil
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// shortBody обрезает тело ответа до maxErrorBody байт по границе символа
func shortBody(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) <= maxErrorBody {
		return s
	}
	cut := maxErrorBody
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
