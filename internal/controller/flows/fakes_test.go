package flows

import (
	"context"
	"time"

	"github.com/Freeeeeet/finashka_bot/internal/controller/formatting"
	"github.com/Freeeeeet/finashka_bot/internal/model"
	"github.com/Freeeeeet/finashka_bot/internal/service"
)

// четверг
var testToday = time.Date(2025, 11, 6, 12, 0, 0, 0, time.UTC)

type recorder struct {
	replies []Reply
}

func (r *recorder) Send(_ context.Context, rep Reply) error {
	r.replies = append(r.replies, rep)
	return nil
}

func (r *recorder) texts() []string {
	out := make([]string, 0, len(r.replies))
	for _, rep := range r.replies {
		out = append(out, rep.Text)
	}
	return out
}

type fakeTimetable struct {
	groups   []model.SearchHit
	teachers []model.SearchHit
	lessons  []model.Lesson
	err      error

	lastStart, lastEnd time.Time
}

func (f *fakeTimetable) SearchGroup(context.Context, string) ([]model.SearchHit, error) {
	return f.groups, f.err
}

func (f *fakeTimetable) SearchTeacher(context.Context, string) ([]model.SearchHit, error) {
	return f.teachers, f.err
}

func (f *fakeTimetable) GroupTimetable(_ context.Context, _ string, start, end time.Time) ([]model.Lesson, error) {
	f.lastStart, f.lastEnd = start, end
	return f.lessons, f.err
}

func (f *fakeTimetable) TeacherTimetable(_ context.Context, _ string, start, end time.Time) ([]model.Lesson, error) {
	f.lastStart, f.lastEnd = start, end
	return f.lessons, f.err
}

type fakeBook struct {
	known  bool
	items  map[string][]model.Homework // ключ: ISO дата
	hasErr error
	forErr error
	addErr error

	added    []*model.HomeworkDraft
	accepted []model.Attachment
}

func (f *fakeBook) ForDate(_ context.Context, _ string, day time.Time) (*service.DayHomework, error) {
	if f.forErr != nil {
		return nil, f.forErr
	}
	return &service.DayHomework{Day: day, Known: f.known, Items: f.items[formatting.ISODate(day)]}, nil
}

func (f *fakeBook) HasHomeworkOn(_ context.Context, _ string, day time.Time) service.BestEffort[bool] {
	if f.hasErr != nil {
		return service.BestEffort[bool]{Err: f.hasErr}
	}
	return service.BestEffort[bool]{Value: len(f.items[formatting.ISODate(day)]) > 0}
}

func (f *fakeBook) Add(_ context.Context, d *model.HomeworkDraft) (*model.Homework, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	f.added = append(f.added, d)
	return &model.Homework{Subject: d.Subject, Deadline: formatting.HumanDate(d.Deadline), Task: d.Task}, nil
}

func (f *fakeBook) AcceptAttachments(_ string, deadline time.Time, atts []model.Attachment) []string {
	f.accepted = append(f.accepted, atts...)
	var names []string
	for _, a := range atts {
		names = append(names, service.RenameAttachment(a.FileName, deadline))
	}
	return names
}

func (f *fakeBook) ExistingFiles(string, []string) []string {
	return nil
}
