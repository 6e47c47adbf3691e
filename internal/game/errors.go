package game

import "errors"

// Rejection reasons. Mutating operations wrap one of these with context, so
// callers match them with errors.Is.
var (
	ErrWrongPhase        = errors.New("not allowed in the current phase")
	ErrGameOver          = errors.New("game is over")
	ErrUnknownCard       = errors.New("unknown card")
	ErrNotInHand         = errors.New("card is not in hand")
	ErrNotYourChampion   = errors.New("champion does not belong to the current player")
	ErrInvalidTile       = errors.New("tile is not a valid target")
	ErrTileOccupied      = errors.New("tile is occupied")
	ErrNotAdjacent       = errors.New("target is not adjacent")
	ErrAlreadyMoved      = errors.New("champion already moved this turn")
	ErrAlreadyAttacked   = errors.New("champion already attacked this turn")
	ErrAbilityUsed       = errors.New("ability already used")
	ErrWrongClass        = errors.New("champion class does not have this ability")
	ErrNoTarget          = errors.New("no valid target")
	ErrDeployUnavailable = errors.New("deployment not available this turn")
	ErrAlreadyDrawn      = errors.New("already drew this turn")
	ErrInvalidSelection  = errors.New("invalid draft selection")
	ErrPlayerCount       = errors.New("unsupported number of players")
	ErrEmptyDeck         = errors.New("deck has no cards")
)
