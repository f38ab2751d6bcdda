package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// AttackMap records, for every square, the pieces of one colour that can
// pseudo-legally move there.
type AttackMap [chess.NumSquares][]chess.PieceID

// Attacked reports whether any piece is recorded at sq.
func (m *AttackMap) Attacked(sq chess.Square) bool {
	return sq.Valid() && len(m[sq]) > 0
}

// buildAttackMaps populates one attack map per colour from every active,
// non-king piece on the board. Kings never appear as attackers.
func buildAttackMaps(board *chess.Board) [chess.NumColours]AttackMap {
	var maps [chess.NumColours]AttackMap
	for colour := range maps {
		addAttacks(board, chess.Colour(colour), &maps[colour])
	}
	return maps
}

func addAttacks(board *chess.Board, colour chess.Colour, m *AttackMap) {
	for _, id := range board.Active(colour) {
		piece := board.Piece(id)
		if piece.Kind == chess.King || !piece.OnBoard() {
			continue
		}
		for _, sq := range LegalDestinations(board, id).Squares() {
			m[sq] = append(m[sq], id)
		}
	}
}

// kingAttacked reports whether the colour's king sits on a cell attacked by
// the opposing colour's non-king pieces or next to the opposing king.
func kingAttacked(board *chess.Board, colour chess.Colour) bool {
	king := board.King(colour)
	if king == chess.NoPiece {
		return false
	}
	kingSq := board.Piece(king).Square
	if kingsAdjacent(board, kingSq, colour.Opposite()) {
		return true
	}
	for _, id := range board.Active(colour.Opposite()) {
		piece := board.Piece(id)
		if piece.Kind == chess.King || !piece.OnBoard() {
			continue
		}
		if LegalDestinations(board, id).Has(kingSq) {
			return true
		}
	}
	return false
}

// kingsAdjacent reports whether the colour's king is on the board within one
// step of sq.
func kingsAdjacent(board *chess.Board, sq chess.Square, colour chess.Colour) bool {
	king := board.King(colour)
	if king == chess.NoPiece || !board.Piece(king).OnBoard() {
		return false
	}
	other := board.Piece(king).Square
	return max(abs(other.File()-sq.File()), abs(other.Rank()-sq.Rank())) <= 1
}

// Detector answers check and checkmate queries for a board and computes the
// cells the side to move may move into. It holds the board by reference and
// must be used from a single goroutine together with that board.
type Detector struct {
	board   *chess.Board
	attacks [chess.NumColours]AttackMap

	// Cells that resolve the current check, or every cell when not in check.
	movable chess.SquareSet
}

// NewDetector creates a detector for board and refreshes it.
func NewDetector(board *chess.Board) *Detector {
	d := &Detector{board: board}
	d.Refresh()
	return d
}

// Refresh rebuilds both attack maps from the current board and clears the
// movable set.
func (d *Detector) Refresh() {
	d.attacks = buildAttackMaps(d.board)
	d.movable = 0
}

// Attackers returns the pieces of colour recorded as attacking sq.
func (d *Detector) Attackers(colour chess.Colour, sq chess.Square) []chess.PieceID {
	if !sq.Valid() {
		return nil
	}
	return d.attacks[colour][sq]
}

// Movable returns the movable set accumulated by the last query.
func (d *Detector) Movable() chess.SquareSet {
	return d.movable
}

// InCheck refreshes the detector and reports whether the colour's king is
// attacked. When it is not, every cell becomes movable.
func (d *Detector) InCheck(colour chess.Colour) bool {
	d.Refresh()

	king := d.board.King(colour)
	if king == chess.NoPiece {
		d.movable = chess.AllSquares
		return false
	}
	if d.attacks[colour.Opposite()].Attacked(d.board.Piece(king).Square) {
		return true
	}
	d.movable = chess.AllSquares
	return false
}

// IsCheckmated reports whether the colour is in check with no way to evade,
// capture the checking piece or block it. Every resolving cell found along the
// way is added to the movable set.
func (d *Detector) IsCheckmated(colour chess.Colour) bool {
	if !d.InCheck(colour) {
		return false
	}

	king := d.board.King(colour)
	threats := d.attacks[colour.Opposite()][d.board.Piece(king).Square]

	// All three run so the movable set holds every resolving cell.
	evade := d.canEvade(colour, king)
	capture := d.canCapture(colour, king, threats)
	block := d.canBlock(colour, king, threats)

	return !evade && !capture && !block
}

// AllowableSquares returns the cells the side to move may move into this ply:
// every cell when turn is not in check, otherwise the cells that resolve it.
func (d *Detector) AllowableSquares(turn chess.Colour) chess.SquareSet {
	d.movable = 0
	if d.InCheck(turn) {
		d.IsCheckmated(turn)
	}
	return d.movable
}

// TestMove reports whether moving the piece to dest would leave its own king
// out of check. The move is simulated on a copy of the board, so neither the
// board nor the detector's state is changed. A move the board refuses is
// rejected.
func (d *Detector) TestMove(id chess.PieceID, dest chess.Square) bool {
	piece := d.board.Piece(id)
	if !piece.OnBoard() || !dest.Valid() {
		return false
	}

	sim := d.board.Copy()
	if !sim.Move(id, dest) {
		return false
	}
	return !kingAttacked(sim, piece.Colour)
}

// canEvade reports whether the king can step to a cell that no opposing piece
// attacks without leaving itself in check.
func (d *Detector) canEvade(colour chess.Colour, king chess.PieceID) bool {
	isEvade := false
	opponent := &d.attacks[colour.Opposite()]

	for _, sq := range LegalDestinations(d.board, king).Squares() {
		if !d.TestMove(king, sq) {
			continue
		}
		if !opponent.Attacked(sq) {
			d.movable = d.movable.Add(sq)
			isEvade = true
		}
	}
	return isEvade
}

// canCapture reports whether a lone checking piece can be taken, by the king
// or by any piece of colour that attacks its cell.
func (d *Detector) canCapture(colour chess.Colour, king chess.PieceID, threats []chess.PieceID) bool {
	if len(threats) != 1 {
		return false
	}

	isCaptured := false
	target := d.board.Piece(threats[0]).Square

	if LegalDestinations(d.board, king).Has(target) && d.TestMove(king, target) {
		d.movable = d.movable.Add(target)
		isCaptured = true
	}

	for _, id := range d.attacks[colour][target] {
		if d.TestMove(id, target) {
			d.movable = d.movable.Add(target)
			isCaptured = true
		}
	}
	return isCaptured
}

// canBlock reports whether a piece of colour can interpose between the king
// and a lone checking piece. Cells on a shared file or rank are always
// candidates; diagonal cells only when the checker is a bishop or queen.
func (d *Detector) canBlock(colour chess.Colour, king chess.PieceID, threats []chess.PieceID) bool {
	if len(threats) != 1 {
		return false
	}

	threat := d.board.Piece(threats[0])
	kingSq := d.board.Piece(king).Square

	var path []chess.Square
	switch {
	case sameLine(threat.Square, kingSq):
		path = squaresBetween(threat.Square, kingSq)
	case sameDiagonal(threat.Square, kingSq) && (threat.Kind == chess.Bishop || threat.Kind == chess.Queen):
		path = squaresBetween(threat.Square, kingSq)
	}

	isBlockable := false
	for _, sq := range path {
		for _, id := range d.attacks[colour][sq] {
			if d.TestMove(id, sq) {
				d.movable = d.movable.Add(sq)
				isBlockable = true
			}
		}
	}
	return isBlockable
}
