package adapters

import (
	"context"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

var voiceCommandPattern = regexp.MustCompile(`(?i)\badd\s+(\d+(?:[.,]\d{1,2})?)\s+(?:(?:in|to)\s+)?(\w+)`)

var categoryKeywords = map[string]entity.ExpenseCategory{
	"food":          entity.CategoryFoodDining,
	"dining":        entity.CategoryFoodDining,
	"travel":        entity.CategoryTransportation,
	"transport":     entity.CategoryTransportation,
	"shopping":      entity.CategoryShopping,
	"movie":         entity.CategoryEntertainment,
	"entertainment": entity.CategoryEntertainment,
	"medical":       entity.CategoryHealthcare,
	"health":        entity.CategoryHealthcare,
	"rent":          entity.CategoryRentMortgage,
	"education":     entity.CategoryEducation,
	"study":         entity.CategoryEducation,
	"bill":          entity.CategoryUtilities,
	"insurance":     entity.CategoryInsurance,
}

// fuzzyOrder fixes the order in which keywords are tried for a fuzzy match,
// so ties always resolve the same way.
var fuzzyOrder = []string{
	"food", "dining", "travel", "transport", "shopping", "movie", "entertainment",
	"medical", "health", "rent", "education", "study", "bill", "insurance",
}

// maxTypoDistance is how far a word may be from a keyword of the given
// length. Keywords of four letters or fewer only match exactly.
func maxTypoDistance(keywordLength int) int {
	switch {
	case keywordLength <= 4:
		return 0
	case keywordLength <= 6:
		return 1
	default:
		return 2
	}
}

// voiceParser reads commands of the form "add <amount> [in|to] <word>".
type voiceParser struct{}

// NewVoiceParser creates the rule based expense parser.
func NewVoiceParser() adapter.ExpenseParser {
	return &voiceParser{}
}

// Parse extracts the amount and category word from the transcript.
func (p *voiceParser) Parse(ctx context.Context, transcript string) (*adapter.ParsedExpense, error) {
	match := voiceCommandPattern.FindStringSubmatch(transcript)
	if match == nil {
		return nil, adapter.ErrNotParsed
	}

	amount, err := decimal.NewFromString(strings.Replace(match[1], ",", ".", 1))
	if err != nil {
		return nil, adapter.ErrNotParsed
	}

	word := strings.ToLower(match[2])
	return &adapter.ParsedExpense{
		Amount:      amount,
		Category:    MatchCategory(word),
		Description: "Voice expense: " + word,
	}, nil
}

// MatchCategory maps a spoken word to a category. An exact keyword wins,
// then the singular of a plural ("bills", "studies"), then a keyword within
// a typo distance that grows with the keyword length. Anything else is Other.
func MatchCategory(word string) entity.ExpenseCategory {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return entity.CategoryOther
	}

	if category, ok := categoryKeywords[word]; ok {
		return category
	}

	for _, singular := range singularForms(word) {
		if category, ok := categoryKeywords[singular]; ok {
			return category
		}
	}

	best := entity.CategoryOther
	bestDistance := -1
	for _, keyword := range fuzzyOrder {
		limit := maxTypoDistance(len(keyword))
		if limit == 0 {
			continue
		}
		d := levenshtein.ComputeDistance(word, keyword)
		if d <= limit && (bestDistance < 0 || d < bestDistance) {
			best = categoryKeywords[keyword]
			bestDistance = d
		}
	}
	return best
}

func singularForms(word string) []string {
	var forms []string
	if strings.HasSuffix(word, "ies") {
		forms = append(forms, strings.TrimSuffix(word, "ies")+"y")
	}
	if strings.HasSuffix(word, "es") {
		forms = append(forms, strings.TrimSuffix(word, "es"))
	}
	if strings.HasSuffix(word, "s") {
		forms = append(forms, strings.TrimSuffix(word, "s"))
	}
	return forms
}
