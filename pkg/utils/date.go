package utils

import "time"

// ParseDate interpreta uma data YYYY-MM-DD em UTC. String vazia retorna nil sem erro.
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.ParseInLocation(time.DateOnly, dateStr, time.UTC)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// TruncateToDay zera o horário mantendo a data no fuso UTC
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayCount retorna quantos dias existem de start até end, inclusive, sem montar a lista.
// Retorna 0 quando start é posterior a end.
func DayCount(start, end time.Time) int {
	start = TruncateToDay(start)
	end = TruncateToDay(end)

	if start.After(end) {
		return 0
	}

	return int(end.Sub(start)/(24*time.Hour)) + 1
}

// DaysBetween lista as datas (YYYY-MM-DD) de start até end, inclusive.
// Retorna lista vazia quando start é posterior a end.
func DaysBetween(start, end time.Time) []string {
	start = TruncateToDay(start)
	end = TruncateToDay(end)

	days := make([]string, 0)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(time.DateOnly))
	}

	return days
}
