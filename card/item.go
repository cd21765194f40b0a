// Package card holds the three cards that rotate during a Pick A Card cast
package card

import (
	"fmt"
	"strings"
)

// Item identifies one of the three cards, compared by value
type Item int

const (
	Blue Item = iota // Default card, first shown after a hard reset
	Red
	Gold
	itemCount
)

// Default is the card a fresh or hard-reset hand starts on
const Default = Blue

// Count is the number of cards in the rotation
const Count = int(itemCount)

var itemNames = [itemCount]string{
	Blue: "Blue",
	Red:  "Red",
	Gold: "Gold",
}

// All returns the cards in rotation order
func All() []Item {
	return []Item{Blue, Red, Gold}
}

// Valid reports whether i is one of the three cards
func (i Item) Valid() bool {
	return i >= 0 && i < itemCount
}

// MustValid panics if i is outside the card domain
// Reaching an unknown card is a programming defect, never a recoverable condition
func (i Item) MustValid() Item {
	if !i.Valid() {
		panic(fmt.Sprintf("card: invariant violated, unknown card %d", int(i)))
	}
	return i
}

// String returns the colour name
func (i Item) String() string {
	if !i.Valid() {
		return fmt.Sprintf("Item(%d)", int(i))
	}
	return itemNames[i]
}

// Next returns the successor in the Blue -> Red -> Gold -> Blue rotation
func Next(i Item) Item {
	switch i.MustValid() {
	case Blue:
		return Red
	case Red:
		return Gold
	default:
		return Blue
	}
}

// Parse resolves a colour name, case-insensitive
func Parse(s string) (Item, error) {
	for i, name := range itemNames {
		if strings.EqualFold(s, name) {
			return Item(i), nil
		}
	}
	return Default, fmt.Errorf("unknown card %q", s)
}
