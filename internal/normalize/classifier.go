package normalize

import (
	"strings"

	"github.com/felipin127/dashboard-analista-de-custos/internal/domain/models"
)

// Classifier assigns a product category from keywords found in the item
// description. Matching is a case-insensitive substring test against each
// keyword in order.
type Classifier struct {
	keywords []string
}

// NewClassifier builds a classifier over the given keyword set.
func NewClassifier(keywords ...string) *Classifier {
	upper := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		upper = append(upper, strings.ToUpper(kw))
	}
	return &Classifier{keywords: upper}
}

// DefaultClassifier matches the business rule for the meat sector: a direct
// CARNE token or the AGEM packaging suffix (EMBALAGEM, PESAGEM) both count
// as meat-category stock.
func DefaultClassifier() *Classifier {
	return NewClassifier("CARNE", "AGEM")
}

// Categorize returns CategoryMeat when any keyword appears in the
// description, CategoryOther otherwise.
func (c *Classifier) Categorize(description string) string {
	upper := strings.ToUpper(description)
	for _, kw := range c.keywords {
		if strings.Contains(upper, kw) {
			return models.CategoryMeat
		}
	}
	return models.CategoryOther
}
