package variant

import "errors"

var (
	ErrInvalidFEN         = errors.New("invalid FEN")
	ErrInvalidColor       = errors.New("invalid color")
	ErrInvalidPieceSet    = errors.New("invalid piece set")
	ErrAmbiguousPromotion = errors.New("ambiguous promotion type")
	ErrUnknownPieceSet    = errors.New("unknown piece set")

	ErrGameOver    = errors.New("game is over")
	ErrIllegalMove = errors.New("illegal move")
	ErrGameStarted = errors.New("game already started")
)
