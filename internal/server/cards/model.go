// Package cards holds the card domain model, its repository, and the
// creation/retrieval service.
package cards

import (
	"database/sql"
	"time"
)

// Stamp values a creator can pick. Purely decorative.
const (
	StampCatsLove    = "cats-love"
	StampCatsBouquet = "cats-bouquet"
	StampCatLetter   = "cat-letter"
)

// DefaultStamp is applied when the creator picks nothing (or something
// unknown).
const DefaultStamp = StampCatsLove

// DefaultFlowerMessages are the four canned phrases used for any flower slot
// the creator leaves empty. Order is fixed.
var DefaultFlowerMessages = [4]string{
	"I think about you every daisy",
	"My heart rose when I saw you",
	"I love you bunches",
	"I will never leaf you",
}

// Card is one persisted greeting record, addressed by its identifier.
// Optional fields use sql.NullString so that "absent" survives the round trip
// to the database instead of collapsing into "".
type Card struct {
	ID            string
	RecipientName string
	SenderName    string
	ProposalText  string
	LoveLetter    string
	ShortNote     sql.NullString
	Photo1URL     sql.NullString
	Photo1Caption sql.NullString
	Photo2URL     sql.NullString
	Photo2Caption sql.NullString
	FlowerMsg1    string
	FlowerMsg2    string
	FlowerMsg3    string
	FlowerMsg4    string
	StampType     string
	CreatedAt     time.Time
	ViewCount     int64
}
