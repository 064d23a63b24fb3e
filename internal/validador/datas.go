package validador

import (
	"errors"
	"time"
)

// ParseData aceita instantes RFC3339 ou datas simples aaaa-mm-dd, os dois
// formatos que os formulários enviam.
func ParseData(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("data inválida, use RFC3339 ou aaaa-mm-dd")
}
