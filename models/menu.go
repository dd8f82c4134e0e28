package models

import "errors"

// DietaryDetail tags come from a fixed enumeration shared with the backend.
type DietaryDetail string

const (
	DietaryGlutenFree   DietaryDetail = "Gluten Free"
	DietaryVegetarian   DietaryDetail = "Vegetarian"
	DietaryVegan        DietaryDetail = "Vegan"
	DietarySpicy        DietaryDetail = "Spicy"
	DietaryContainsNuts DietaryDetail = "Contains Nuts"
	DietaryContainsEggs DietaryDetail = "Contains Eggs"
	DietaryContainsSoy  DietaryDetail = "Contains Soy"
)

// AllDietaryDetails is the selectable filter set, in display order.
var AllDietaryDetails = []DietaryDetail{
	DietaryGlutenFree,
	DietaryVegetarian,
	DietaryVegan,
	DietarySpicy,
	DietaryContainsNuts,
	DietaryContainsEggs,
	DietaryContainsSoy,
}

type MenuItem struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Price          float64         `json:"price"`
	Description    string          `json:"description"`
	Ingredients    []string        `json:"ingredients,omitempty"`
	DietaryDetails []DietaryDetail `json:"dietary_details"`
	PhotoURL       *string         `json:"photo_url,omitempty"`
}

// HasDietaryDetails reports whether the item's tag set contains every tag
// in want.
func (m MenuItem) HasDietaryDetails(want []DietaryDetail) bool {
	for _, w := range want {
		found := false
		for _, d := range m.DietaryDetails {
			if d == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// FilterByDietary returns the items whose tag set is a superset of the
// selected filters. An empty filter returns every item.
func FilterByDietary(items []MenuItem, filters []DietaryDetail) []MenuItem {
	if len(filters) == 0 {
		return items
	}
	var out []MenuItem
	for _, item := range items {
		if item.HasDietaryDetails(filters) {
			out = append(out, item)
		}
	}
	return out
}

// Category orders menu item ids; the sequence is display order and is
// reorderable by managers.
type Category struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	MenuItems []string `json:"menu_items"`
	Index     int      `json:"index"`
}

type Menu struct {
	Categories []Category `json:"categories"`
}

// MoveDirection selects the neighbor a reorder swaps with.
type MoveDirection int

const (
	MoveUp MoveDirection = iota
	MoveDown
)

var (
	ErrMoveOutOfBounds = errors.New("cannot move entry past the edge of the list")
	ErrMoveUnknownID   = errors.New("entry not found in list")
)

// MoveEntry returns a new permutation of ids with the named entry swapped
// with its immediate neighbor in the given direction. Moving the first entry
// up or the last entry down is rejected before any call leaves the client.
func MoveEntry(ids []string, id string, dir MoveDirection) ([]string, error) {
	pos := -1
	for i, v := range ids {
		if v == id {
			pos = i
			break
		}
	}
	if pos == -1 {
		return nil, ErrMoveUnknownID
	}

	target := pos + 1
	if dir == MoveUp {
		target = pos - 1
	}
	if target < 0 || target >= len(ids) {
		return nil, ErrMoveOutOfBounds
	}

	out := make([]string, len(ids))
	copy(out, ids)
	out[pos], out[target] = out[target], out[pos]
	return out, nil
}

// CategoryIDs returns the menu's category ids in display order.
func (m Menu) CategoryIDs() []string {
	ids := make([]string, len(m.Categories))
	for i, c := range m.Categories {
		ids[i] = c.ID
	}
	return ids
}
