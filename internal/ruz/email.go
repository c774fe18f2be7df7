package ruz

import "regexp"

var emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

var (
	recordEmailKeys   = []string{"lecturerEmail", "email", "teacherEmail", "lecturer_email"}
	lecturerEmailKeys = []string{"lecturerEmail", "email", "mail", "e_mail"}
	emailListKeys     = []string{"listOfLecturers", "teachers", "lecturers"}
	freeTextKeys      = []string{"comment", "note", "notes", "desc", "description", "info", "title", "subject", "details"}
)

// FindEmail ищет email преподавателя в записи занятия: сначала явные поля записи,
// затем поля каждого преподавателя из списка, затем свободный текст.
func FindEmail(rec map[string]any) string {
	for _, key := range recordEmailKeys {
		if e := emailFromValue(rec[key]); e != "" {
			return e
		}
	}

	for _, key := range emailListKeys {
		arr, ok := rec[key].([]any)
		if !ok {
			continue
		}
		for _, item := range arr {
			t, ok := item.(map[string]any)
			if !ok {
				continue
			}
			for _, k := range lecturerEmailKeys {
				if e := emailFromValue(t[k]); e != "" {
					return e
				}
			}
		}
	}

	for _, key := range freeTextKeys {
		if e := emailFromValue(rec[key]); e != "" {
			return e
		}
	}

	return ""
}

func emailFromValue(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return emailRe.FindString(s)
}
