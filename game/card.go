package game

// Suit represents a card suit.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suits lists every suit in deck order.
var Suits = [...]Suit{Clubs, Diamonds, Hearts, Spades}

// Rank represents a card rank. Schnapsen uses a short deck: ten through ace.
type Rank int

const (
	Ten Rank = iota
	Jack
	Queen
	King
	Ace
)

// Ranks lists every rank in deck order.
var Ranks = [...]Rank{Ten, Jack, Queen, King, Ace}

// Score returns the trick points a rank is worth.
func (r Rank) Score() int {
	switch r {
	case Ten:
		return 10
	case Jack:
		return 2
	case Queen:
		return 3
	case King:
		return 4
	case Ace:
		return 11
	default:
		return 0
	}
}

// Card is a playing card. Cards are immutable value types: two cards are
// equal exactly when they agree in rank and suit.
type Card struct {
	Rank Rank
	Suit Suit
}

// Score returns the trick points the card is worth.
func (c Card) Score() int {
	return c.Rank.Score()
}

// MarriagePartner returns the card completing a marriage with c: the king
// for a queen of the same suit and vice versa. ok is false for every other
// rank.
func (c Card) MarriagePartner() (partner Card, ok bool) {
	switch c.Rank {
	case Queen:
		return Card{Rank: King, Suit: c.Suit}, true
	case King:
		return Card{Rank: Queen, Suit: c.Suit}, true
	default:
		return Card{}, false
	}
}

// DeckSize is the number of cards in a Schnapsen deck.
const DeckSize = 20

// NewDeck returns the fixed 20-card deck in a canonical order.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, rank := range Ranks {
		for _, suit := range Suits {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}
	return deck
}
