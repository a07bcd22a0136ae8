// Package month содержит календарные расчёты по месяцам.
package month

import "time"

// Layout формат ключа месяца.
const Layout = "2006-01"

// FirstOfNext начало первого дня следующего месяца в часовом поясе t.
func FirstOfNext(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 1, 0, 0, 0, 0, t.Location())
}

// End последняя секунда месяца, в который попадает t.
func End(t time.Time) time.Time {
	return FirstOfNext(t).Add(-time.Second)
}

// Key ключ месяца вида 2006-01.
func Key(t time.Time) string {
	return t.Format(Layout)
}

// IsFirstDay сообщает, приходится ли t на первое число месяца.
func IsFirstDay(t time.Time) bool {
	return t.Day() == 1
}

// DaysUntilNext число дней до начала следующего месяца, неполные сутки округляются вверх.
func DaysUntilNext(t time.Time) int {
	left := FirstOfNext(t).Sub(t)
	days := int(left / (24 * time.Hour))
	if left%(24*time.Hour) != 0 {
		days++
	}
	return days
}
