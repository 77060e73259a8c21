package models

import "strings"

type Position string

const (
	POS_UNKNOWN Position = "UNK"
	POS_QB      Position = "QB"
	POS_RB      Position = "RB"
	POS_WR      Position = "WR"
	POS_TE      Position = "TE"
	POS_K       Position = "K"
	POS_DST     Position = "DST"

	// POS_FLEX is a lineup slot and draft-order key, never a player's own position.
	POS_FLEX Position = "FLEX"
)

// Positions lists every rosterable player position in draft-board order.
var Positions = []Position{POS_QB, POS_RB, POS_WR, POS_TE, POS_K, POS_DST}

func ParsePosition(pos string) Position {
	pos = strings.ToLower(strings.TrimSpace(pos))
	switch pos {
	case "qb":
		return POS_QB
	case "rb":
		return POS_RB
	case "wr":
		return POS_WR
	case "te":
		return POS_TE
	case "k", "pk":
		return POS_K
	case "dst", "d/st", "def", "def/st":
		return POS_DST
	case "flex":
		return POS_FLEX
	default:
		return POS_UNKNOWN
	}
}

// FlexEligible reports whether a player at p may fill a FLEX slot.
func (p Position) FlexEligible() bool {
	return p == POS_RB || p == POS_WR || p == POS_TE
}

// Matches reports whether a player at p satisfies a roster or draft-order key.
func (p Position) Matches(key Position) bool {
	if key == POS_FLEX {
		return p.FlexEligible()
	}
	return p == key
}
