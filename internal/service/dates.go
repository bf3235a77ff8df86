package service

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// validateDateRange проверяет формат дат YYYY-MM-DD и что начало строго раньше
// конца. Пустой интервал (start == end) не бронирует ни одной ночи и отклоняется.
// Лексикографический порядок ISO-дат совпадает с хронологическим, поэтому дальше
// даты сравниваются как строки.
func validateDateRange(start, end string) error {
	for _, d := range []string{start, end} {
		if _, err := time.Parse(dateLayout, d); err != nil {
			return fmt.Errorf("%w: дата %q не соответствует формату YYYY-MM-DD", ErrValidation, d)
		}
	}
	if start >= end {
		return fmt.Errorf("%w: дата начала должна быть раньше даты окончания", ErrValidation)
	}
	return nil
}
