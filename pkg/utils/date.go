package utils

import "time"

// ParseDate interpreta uma data no formato yyyy-mm-dd como início do dia em loc.
// Texto vazio retorna a data zero.
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, nil
	}

	return time.ParseInLocation(time.DateOnly, dateStr, loc)
}

// EndOfDay retorna o último instante representável do dia de date
func EndOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), date.Location())
}
