package engine

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Outcome describes a finished game.
type Outcome struct {
	Winner chess.Colour
	Loser  chess.Colour
	Ply    int
}

// Game owns a board, its detector and the turn. It is the surface the
// rendering and input layers call into. A Game is not safe for concurrent use.
type Game struct {
	board    *chess.Board
	detector *Detector
	turn     chess.Colour

	history   []chess.Move
	outcome   *Outcome
	listeners []func(Outcome)
}

// NewGame creates a game in the standard starting position with White to move.
func NewGame() *Game {
	return newGame(chess.NewInitialBoard(), chess.White)
}

// NewGameFromFEN creates a game from a FEN position. Castling, en passant and
// clock fields are accepted but not used.
func NewGameFromFEN(fen string) (*Game, error) {
	board, turn, err := NewBoardFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return newGame(board, turn), nil
}

func newGame(board *chess.Board, turn chess.Colour) *Game {
	return &Game{
		board:    board,
		detector: NewDetector(board),
		turn:     turn,
	}
}

// Board returns the game's board. Callers must not mutate it.
func (g *Game) Board() *chess.Board {
	return g.board
}

// Grid returns the cells for drawing, indexed [rank][file].
func (g *Game) Grid() [chess.BoardSize][chess.BoardSize]chess.Cell {
	return g.board.Grid()
}

// Detector returns the game's check detector.
func (g *Game) Detector() *Detector {
	return g.detector
}

// CurrentTurn returns the colour whose turn it is. A mating move does not
// pass the turn, so after mate this is the winner.
func (g *Game) CurrentTurn() chess.Colour {
	return g.turn
}

// SideToMove returns the colour to move in the position. It differs from
// CurrentTurn only once the game is over, when the mated side is to move.
func (g *Game) SideToMove() chess.Colour {
	if g.outcome != nil {
		return g.outcome.Loser
	}
	return g.turn
}

// History returns the moves applied so far.
func (g *Game) History() []chess.Move {
	return g.history
}

// Outcome returns the result once a side has been checkmated.
func (g *Game) Outcome() (Outcome, bool) {
	if g.outcome == nil {
		return Outcome{}, false
	}
	return *g.outcome, true
}

// Over reports whether the game has ended in checkmate.
func (g *Game) Over() bool {
	return g.outcome != nil
}

// OnGameOver registers fn to be called when a move checkmates either side.
func (g *Game) OnGameOver(fn func(Outcome)) {
	g.listeners = append(g.listeners, fn)
}

// IsInCheck reports whether the colour's king is attacked.
func (g *Game) IsInCheck(colour chess.Colour) bool {
	return g.detector.InCheck(colour)
}

// IsCheckmated reports whether the colour is checkmated.
func (g *Game) IsCheckmated(colour chess.Colour) bool {
	return g.detector.IsCheckmated(colour)
}

// AllowableSquares returns the cells the side to move may move into.
func (g *Game) AllowableSquares() chess.SquareSet {
	return g.detector.AllowableSquares(g.SideToMove())
}

// MovesFor returns the fully legal destinations of a piece of the side to move.
func (g *Game) MovesFor(id chess.PieceID) chess.SquareSet {
	if g.Over() || int(id) < 0 || int(id) >= g.board.NumPieces() {
		return 0
	}
	if g.board.Piece(id).Colour != g.turn {
		return 0
	}
	allowed := g.AllowableSquares()

	var moves chess.SquareSet
	for _, sq := range LegalDestinations(g.board, id).Squares() {
		if allowed.Has(sq) && g.detector.TestMove(id, sq) {
			moves = moves.Add(sq)
		}
	}
	return moves
}

// MovePiece applies a move if the destination is one of the piece's
// destinations, is allowable this ply and does not leave the mover's king in
// check. Rejected moves leave the game unchanged.
func (g *Game) MovePiece(id chess.PieceID, dest chess.Square) bool {
	if g.Over() || int(id) < 0 || int(id) >= g.board.NumPieces() {
		return false
	}
	piece := g.board.Piece(id)
	if !piece.OnBoard() || piece.Colour != g.turn {
		return false
	}

	if !LegalDestinations(g.board, id).Has(dest) {
		return false
	}
	if !g.detector.AllowableSquares(g.turn).Has(dest) {
		return false
	}
	if !g.detector.TestMove(id, dest) {
		return false
	}

	move := chess.Move{From: piece.Square, To: dest, Piece: piece.Kind, Colour: piece.Colour}
	if captured := g.board.PieceAt(dest); captured != chess.NoPiece {
		move.Captured = g.board.Piece(captured).Kind
	}
	if !g.board.Move(id, dest) {
		return false
	}
	g.detector.Refresh()
	g.history = append(g.history, move)

	g.checkGameOver()
	if !g.Over() {
		g.turn = g.turn.Opposite()
	}
	return true
}

// checkGameOver notifies listeners once either side is checkmated.
func (g *Game) checkGameOver() {
	for _, loser := range []chess.Colour{chess.Black, chess.White} {
		if !g.detector.IsCheckmated(loser) {
			continue
		}
		g.outcome = &Outcome{Winner: loser.Opposite(), Loser: loser, Ply: len(g.history)}
		for _, fn := range g.listeners {
			fn(*g.outcome)
		}
		return
	}
}

// Play applies a move given in coordinate notation ("e2e4"), reporting why it
// was refused.
func (g *Game) Play(text string) error {
	ply := len(g.history) + 1
	moveErr := func(err error) error {
		return &errors.MoveError{Err: err, Ply: ply, MoveText: text, FEN: g.FEN()}
	}

	if g.Over() {
		return moveErr(errors.ErrGameOver)
	}
	from, to, err := chess.ParseCoordinateMove(text)
	if err != nil {
		return moveErr(err)
	}
	id := g.board.PieceAt(from)
	if id == chess.NoPiece {
		return moveErr(errors.ErrNoPiece)
	}
	if g.board.Piece(id).Colour != g.turn {
		return moveErr(errors.ErrWrongTurn)
	}
	if !g.MovePiece(id, to) {
		return moveErr(errors.ErrIllegalMove)
	}
	return nil
}

// FEN returns the current position in FEN notation.
func (g *Game) FEN() string {
	return BoardToFEN(g.board, g.SideToMove())
}
