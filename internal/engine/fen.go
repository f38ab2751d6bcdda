package engine

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewBoardFromFEN creates a board from a FEN string and returns it with the
// side to move. Castling, en passant and clock fields are not modelled and
// are ignored. The position must hold exactly one king of each colour.
func NewBoardFromFEN(fen string) (*chess.Board, chess.Colour, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, chess.White, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	board := chess.NewBoard()

	if err := parsePiecePositions(board, parts[0]); err != nil {
		return nil, chess.White, err
	}

	turn, err := parseSideToMove(parts)
	if err != nil {
		return nil, chess.White, err
	}

	if err := checkKings(board); err != nil {
		return nil, chess.White, err
	}

	return board, turn, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return fmt.Errorf("%d ranks in %q: %w", len(ranks), positions, errors.ErrInvalidFEN)
	}

	for i, row := range ranks {
		rank := chess.BoardSize - 1 - i
		file := 0

		for _, c := range row {
			switch {
			case c >= '1' && c <= '8':
				file += int(c - '0')
			case c > unicode.MaxASCII:
				return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			default:
				kind := chess.KindFromLetter(byte(c))
				if kind == chess.NoKind {
					return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
				}
				sq, ok := chess.NewSquare(file, rank)
				if !ok {
					return fmt.Errorf("position out of bounds: %w", errors.ErrInvalidFEN)
				}

				colour := chess.White
				if unicode.IsLower(c) {
					colour = chess.Black
				}
				id := board.AddPiece(colour, kind, sq)
				if kind == chess.Pawn && rank != pawnStartRank(colour) {
					board.SetMoved(id, true)
				}
				file++
			}
		}
		if file != chess.BoardSize {
			return fmt.Errorf("rank %d has %d files: %w", rank+1, file, errors.ErrInvalidFEN)
		}
	}
	return nil
}

// parseSideToMove parses the side to move field. White moves when it is absent.
func parseSideToMove(parts []string) (chess.Colour, error) {
	if len(parts) < 2 {
		return chess.White, nil
	}
	switch parts[1] {
	case "w":
		return chess.White, nil
	case "b":
		return chess.Black, nil
	}
	return chess.White, fmt.Errorf("invalid side to move: %s: %w", parts[1], errors.ErrInvalidFEN)
}

// checkKings enforces one king per colour.
func checkKings(board *chess.Board) error {
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		kings := 0
		for _, id := range board.Active(colour) {
			if board.Piece(id).Kind == chess.King {
				kings++
			}
		}
		if kings != 1 {
			return fmt.Errorf("%v has %d kings: %w", colour, kings, errors.ErrInvalidFEN)
		}
	}
	return nil
}

// BoardToFEN converts a board and side to move to a FEN string. Castling and
// en passant are always "-".
func BoardToFEN(board *chess.Board, turn chess.Colour) string {
	var sb strings.Builder

	writePiecePositions(&sb, board)
	sb.WriteByte(' ')
	if turn == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteString(" - - 0 1")

	return sb.String()
}

// PlacementFEN returns only the piece placement field.
func PlacementFEN(board *chess.Board) string {
	var sb strings.Builder
	writePiecePositions(&sb, board)
	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			sq, _ := chess.NewSquare(file, rank)
			id := board.PieceAt(sq)
			if id == chess.NoPiece {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(PieceLetter(board.Piece(id)))
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}

// PieceLetter returns the FEN letter for a piece: uppercase for White.
func PieceLetter(p chess.Piece) byte {
	letter := p.Kind.Letter()
	if p.Colour == chess.Black {
		letter = byte(unicode.ToLower(rune(letter)))
	}
	return letter
}
