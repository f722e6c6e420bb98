package persistence

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// nextDocumentNumber produces the next number in a PREFIX-YYYY-NNNN sequence
// by reading the highest existing number for the prefix. Callers run this
// inside the same transaction as the insert so the sequence stays monotonic.
func nextDocumentNumber(query *gorm.DB, column, prefix string) (string, error) {
	var numbers []string
	err := query.
		Where(column+" LIKE ?", prefix+"%").
		Order(column + " DESC").
		Limit(1).
		Pluck(column, &numbers).Error
	if err != nil {
		return "", err
	}

	var nextNum int64 = 1
	if len(numbers) > 0 {
		parts := strings.Split(numbers[0], "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%04d", prefix, nextNum), nil
}
