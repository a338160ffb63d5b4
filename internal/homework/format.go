package homework

import (
	"fmt"

	"homework_bot/internal/model"
)

// Format renders the status change notification for a homework record.
func (c *Catalog) Format(h model.Homework) (string, error) {
	verdict, err := c.Lookup(h.Status)
	if err != nil {
		return "", fmt.Errorf("format %q: %w", h.Name, err)
	}
	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", h.Name, verdict), nil
}

// FailureMessage renders the operator report for a failed poll cycle.
func FailureMessage(err error) string {
	return fmt.Sprintf("Сбой в работе программы: %v", err)
}
