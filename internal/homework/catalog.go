// Package homework validates review API payloads and turns homework records
// into notification text.
package homework

import (
	"errors"
	"fmt"

	"homework_bot/internal/model"
)

// Validation and formatting errors.
var (
	ErrMalformedResponse = errors.New("malformed api response")
	ErrMissingField      = errors.New("missing field in api response")
	ErrWrongType         = errors.New("wrong field type in api response")
	ErrUnknownStatus     = errors.New("unknown homework status")
)

// Catalog maps review statuses to verdict sentences.
type Catalog struct {
	verdicts map[model.Status]string
	order    []model.Status
}

// NewCatalog returns the catalog of the three statuses the review API documents.
func NewCatalog() *Catalog {
	return &Catalog{
		verdicts: map[model.Status]string{
			model.StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
			model.StatusReviewing: "Работа взята на проверку ревьюером.",
			model.StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
		},
		order: []model.Status{model.StatusApproved, model.StatusReviewing, model.StatusRejected},
	}
}

// Lookup returns the verdict sentence for a status.
func (c *Catalog) Lookup(status model.Status) (string, error) {
	verdict, ok := c.verdicts[status]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
	return verdict, nil
}

// Statuses lists the known statuses in a stable order.
func (c *Catalog) Statuses() []model.Status {
	out := make([]model.Status, len(c.order))
	copy(out, c.order)
	return out
}
