// Package locale selects display formats for day and time labels and
// the lateral mirroring direction. It never affects grid math.
package locale

import (
	"fmt"
	"time"
)

type Language string

const (
	LangEnglish Language = "en"
	LangArabic  Language = "ar"
)

func (l Language) IsValid() bool {
	return l == LangEnglish || l == LangArabic
}

type Direction string

const (
	DirLTR Direction = "ltr"
	DirRTL Direction = "rtl"
)

type Locale struct {
	Language  Language
	Direction Direction
}

func ForLanguage(lang Language) Locale {
	if lang == LangArabic {
		return Locale{Language: LangArabic, Direction: DirRTL}
	}
	return Locale{Language: LangEnglish, Direction: DirLTR}
}

// Toggle flips between the two supported languages.
func (l Locale) Toggle() Locale {
	if l.Language == LangArabic {
		return ForLanguage(LangEnglish)
	}
	return ForLanguage(LangArabic)
}

func (l Locale) IsRTL() bool {
	return l.Direction == DirRTL
}

// DrawerSide mirrors panel placement: drawers open on the right for
// LTR and on the left for RTL.
func (l Locale) DrawerSide() string {
	if l.IsRTL() {
		return "left"
	}
	return "right"
}

var (
	dayNamesEnglish = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	dayNamesArabic  = [7]string{"الاثنين", "الثلاثاء", "الأربعاء", "الخميس", "الجمعة", "السبت", "الأحد"}

	monthNamesEnglish = [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
	monthNamesArabic = [12]string{
		"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
		"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
	}
)

// DayNames returns the weekday header labels, Monday-first by default
// or Sunday-first when sundayStart is set.
func (l Locale) DayNames(sundayStart bool) []string {
	source := dayNamesEnglish
	if l.Language == LangArabic {
		source = dayNamesArabic
	}
	out := make([]string, 7)
	for i := 0; i < 7; i++ {
		idx := i
		if sundayStart {
			idx = (i + 6) % 7 // rotate so Sunday leads
		}
		out[i] = source[idx]
	}
	return out
}

// MonthName returns the localized month label.
func (l Locale) MonthName(m time.Month) string {
	if l.Language == LangArabic {
		return monthNamesArabic[int(m)-1]
	}
	return monthNamesEnglish[int(m)-1]
}

// FormatDate renders a localized "weekday day month year" header.
func (l Locale) FormatDate(t time.Time) string {
	day := l.DayNames(false)[mondayIndex(t.Weekday())]
	if l.IsRTL() {
		return fmt.Sprintf("%s %d %s %d", day, t.Day(), l.MonthName(t.Month()), t.Year())
	}
	return fmt.Sprintf("%s, %s %d, %d", day, l.MonthName(t.Month()), t.Day(), t.Year())
}

// FormatHour renders an hour as the locale's 12-hour label, e.g.
// "2 PM" or "٢م"-style "2 م".
func (l Locale) FormatHour(hour int) string {
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	if l.Language == LangArabic {
		marker := "ص"
		if hour >= 12 {
			marker = "م"
		}
		return fmt.Sprintf("%d %s", h12, marker)
	}
	marker := "AM"
	if hour >= 12 {
		marker = "PM"
	}
	return fmt.Sprintf("%d %s", h12, marker)
}

// FormatClock renders a HH:mm string in the locale's 12-hour form,
// passing unparseable input through unchanged.
func (l Locale) FormatClock(hhmm string) string {
	var hour, minute int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &hour, &minute); err != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return hhmm
	}
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	marker := "AM"
	if l.Language == LangArabic {
		marker = "ص"
		if hour >= 12 {
			marker = "م"
		}
	} else if hour >= 12 {
		marker = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", h12, minute, marker)
}

func mondayIndex(wd time.Weekday) int {
	if wd == time.Sunday {
		return 6
	}
	return int(wd) - 1
}
