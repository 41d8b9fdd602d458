package game

// Move is a single move in a game of Schnapsen: a card to play, whether to
// close the talon first, and the marriage bonus the play declares, if any.
type Move struct {
	Card       Card
	CloseTalon bool
	// MarriagePoints is 20 for a plain marriage, 40 for a trump marriage
	// and 0 otherwise. It is derived from the hand at move-generation time
	// and is not part of the move's identity.
	MarriagePoints int
}

// Same reports whether two moves are interchangeable when applied to a
// state. Marriage points are ignored: they follow from the card and the
// hand, not from the move itself.
func (m Move) Same(other Move) bool {
	return m.Card == other.Card && m.CloseTalon == other.CloseTalon
}
