package layout

import "github.com/saswath-06/roommait/internal/domain"

const (
	AdviceOvercrowded  = "Room may be overcrowded - consider removing some items"
	AdviceSmallRoomCap = "For small rooms, limit to 4 major furniture pieces"
	AdviceMultipleBeds = "Multiple beds detected - ensure adequate spacing between them"
)

const (
	areaPerItem         = 20.0
	smallRoomMaxPieces  = 4
	smallRoomAreaCutoff = 80.0
)

// LayoutSuggestions room-level advice for a full set of items. The result is
// never nil; order follows the rule order.
func LayoutSuggestions(items []domain.FurnitureItem, dims domain.RoomDimensions) []string {
	suggestions := []string{}
	area := dims.Area()
	count := len(items)

	if float64(count) > area/areaPerItem {
		suggestions = append(suggestions, AdviceOvercrowded)
	}

	if area < smallRoomAreaCutoff && count > smallRoomMaxPieces {
		suggestions = append(suggestions, AdviceSmallRoomCap)
	}

	beds := 0
	for _, item := range items {
		if IsBed(item.ModelID) {
			beds++
		}
	}
	if beds > 1 {
		suggestions = append(suggestions, AdviceMultipleBeds)
	}

	return suggestions
}
