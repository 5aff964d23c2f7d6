package layout

import (
	"strings"

	"github.com/shopspring/decimal"
)

type costEntry struct {
	keyword string
	cost    decimal.Decimal
}

// costTable declaration order is the substring fallback order.
var costTable = []costEntry{
	{"bed", decimal.NewFromInt(150)},
	{"desk", decimal.NewFromInt(100)},
	{"chair", decimal.NewFromInt(75)},
	{"shelf", decimal.NewFromInt(50)},
	{"storage", decimal.NewFromInt(40)},
	{"lamp", decimal.NewFromInt(30)},
	{"mirror", decimal.NewFromInt(25)},
	{"plant", decimal.NewFromInt(20)},
}

// DefaultCost for models matching no keyword.
var DefaultCost = decimal.NewFromInt(50)

// EstimateCost prices a model by its id. Whole tokens are tried from the
// last one backwards (the head noun in "bedside-lamp" is "lamp"); without a
// token hit, the first keyword contained anywhere in the id wins.
func EstimateCost(modelID string) decimal.Decimal {
	id := strings.ToLower(modelID)

	tokens := strings.FieldsFunc(id, func(r rune) bool {
		return r == '-' || r == '_' || r == ' ' || r == '.'
	})
	for i := len(tokens) - 1; i >= 0; i-- {
		for _, e := range costTable {
			if tokens[i] == e.keyword {
				return e.cost
			}
		}
	}

	for _, e := range costTable {
		if strings.Contains(id, e.keyword) {
			return e.cost
		}
	}
	return DefaultCost
}
