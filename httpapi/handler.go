// Package httpapi exposes the engine over the single-endpoint HTTP
// transport: a POST to "/" carrying the whole position in request
// headers and returning the engine's chosen move as JSON.
package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mssparcs/chessembly-bot/engine"
)

const (
	defaultDepth = 3
	minDepth     = 1
	maxDepth     = 4
)

// badRequest is the literal body returned for any parse failure; its
// text is meaningless, only its presence is checked by clients.
const badRequest = "asdf"

// noMove is the literal body returned when the side to move has no
// legal move (checkmate or stalemate).
const noMove = "null"

// Handler serves the engine's single POST endpoint.
type Handler struct {
	log *zap.Logger
}

// NewHandler returns a Handler that logs through log. A nil log falls
// back to zap.NewNop().
func NewHandler(log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{log: log}
}

// ServeHTTP implements the transport contract (spec §6): any parse
// failure (or a recovered panic) answers 200 "asdf"; an empty
// legal-move list answers 200 "null"; otherwise the chosen move is
// serialized as JSON.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.log.Error("panic serving request", zap.Any("panic", rec))
			writePlain(w, badRequest)
		}
	}()

	board, depth, err := parseRequest(r)
	if err != nil {
		h.log.Debug("bad request", zap.Error(err))
		writePlain(w, badRequest)
		return
	}

	eng := engine.NewEngine(board, engine.Options{Depth: depth}, zapSearchLogger{h.log})
	move, ok := eng.Play()
	if !ok {
		writePlain(w, noMove)
		return
	}

	body, err := json.Marshal(wireMove(move))
	if err != nil {
		h.log.Error("marshal move", zap.Error(err))
		writePlain(w, badRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func writePlain(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprint(w, body)
}

// parseRequest builds the initial Board and search depth from the
// request's headers, per spec §6's header table.
func parseRequest(r *http.Request) (*engine.Board, int, error) {
	turn, err := parseColor(r.Header.Get("Turn"))
	if err != nil {
		return nil, 0, err
	}

	chessembly, err := url.QueryUnescape(r.Header.Get("Chessembly"))
	if err != nil {
		return nil, 0, err
	}
	script, err := engine.CompileScript(chessembly)
	if err != nil {
		return nil, 0, err
	}

	_, macho := r.Header["Macho"]
	_, imprisoned := r.Header["Imprisoned"]
	board := engine.NewBoard(script, macho, imprisoned)
	board.SideToMove = turn

	if err := parsePosition(board, r.Header.Get("Position")); err != nil {
		return nil, 0, err
	}
	if err := parseCastling(board, "Castling-OO", r.Header.Get("Castling-OO"), setCastlingOO); err != nil {
		return nil, 0, err
	}
	if err := parseCastling(board, "Castling-OOO", r.Header.Get("Castling-OOO"), setCastlingOOO); err != nil {
		return nil, 0, err
	}
	if err := parseEnPassant(board, engine.White, r.Header.Get("En-Passant-White")); err != nil {
		return nil, 0, err
	}
	if err := parseEnPassant(board, engine.Black, r.Header.Get("En-Passant-Black")); err != nil {
		return nil, 0, err
	}
	if err := parseRegister(board, engine.White, r.Header.Get("Register-White")); err != nil {
		return nil, 0, err
	}
	if err := parseRegister(board, engine.Black, r.Header.Get("Register-Black")); err != nil {
		return nil, 0, err
	}

	depth := parseDepth(r.Header.Get("Depth"))
	return board, depth, nil
}

func parseColor(s string) (engine.Color, error) {
	switch s {
	case "white":
		return engine.White, nil
	case "black":
		return engine.Black, nil
	default:
		return 0, fmt.Errorf("invalid Turn %q", s)
	}
}

// parsePosition fills board's grid from rows top-to-bottom, each row a
// whitespace-separated list of "<kind>:<color>" cells or an
// empty-marker cell.
func parsePosition(board *engine.Board, header string) error {
	if header == "" {
		return fmt.Errorf("missing Position")
	}
	rows := strings.Split(header, "/")
	if len(rows) != engine.Height {
		return fmt.Errorf("Position has %d rows, want %d", len(rows), engine.Height)
	}
	for y, row := range rows {
		cells := strings.Fields(row)
		if len(cells) != engine.Width {
			return fmt.Errorf("Position row %d has %d cells, want %d", y, len(cells), engine.Width)
		}
		for x, cell := range cells {
			if cell == "-" || cell == "." || cell == "_" {
				continue
			}
			kind, colorStr, ok := strings.Cut(cell, ":")
			if !ok {
				return fmt.Errorf("invalid Position cell %q", cell)
			}
			color, err := parseColor(colorStr)
			if err != nil {
				return err
			}
			board.Set(engine.Position{X: int8(x), Y: int8(y)}, &engine.Piece{Kind: kind, Color: color})
		}
	}
	return nil
}

func setCastlingOO(state *engine.BoardState, v bool)  { state.CastlingOO = v }
func setCastlingOOO(state *engine.BoardState, v bool) { state.CastlingOOO = v }

// parseCastling decodes a two-char "white flag, black flag" header
// where '1' means true and anything else means false.
func parseCastling(board *engine.Board, name, header string, set func(*engine.BoardState, bool)) error {
	if len(header) != 2 {
		return fmt.Errorf("%s must be two characters", name)
	}
	set(board.State.For(engine.White), header[0] == '1')
	set(board.State.For(engine.Black), header[1] == '1')
	return nil
}

// parseEnPassant decodes a "/"-separated list of "x,y" coordinates
// into color's en-passant square set.
func parseEnPassant(board *engine.Board, color engine.Color, header string) error {
	if header == "" {
		return nil
	}
	state := board.State.For(color)
	for _, pair := range strings.Split(header, "/") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		x, y, err := parseCoordPair(pair)
		if err != nil {
			return err
		}
		state.EnPassant[engine.Position{X: x, Y: y}] = true
	}
	return nil
}

// parseRegister decodes a "/"-separated list of "key,value" pairs into
// color's register bag; value defaults to 0 if it fails to parse as a
// uint8.
func parseRegister(board *engine.Board, color engine.Color, header string) error {
	if header == "" {
		return nil
	}
	state := board.State.For(color)
	for _, pair := range strings.Split(header, "/") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, valStr, ok := strings.Cut(pair, ",")
		if !ok {
			return fmt.Errorf("invalid register pair %q", pair)
		}
		v, err := strconv.ParseUint(valStr, 10, 8)
		if err != nil {
			v = 0
		}
		state.Register[key] = uint8(v)
	}
	return nil
}

func parseCoordPair(s string) (int8, int8, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid coordinate %q", s)
	}
	x, err := strconv.ParseInt(xs, 10, 8)
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.ParseInt(ys, 10, 8)
	if err != nil {
		return 0, 0, err
	}
	return int8(x), int8(y), nil
}

// parseDepth clamps Depth into [minDepth, maxDepth], defaulting to
// defaultDepth on any parse error. Spec §7 lists an out-of-range depth
// under BadRequest, but §6's header table says unparseable Depth
// defaults to 3 rather than failing the request; an out-of-range
// integer is treated the same way as an unparseable one here, clamped
// rather than rejected, so the request still gets a move instead of
// "asdf".
func parseDepth(header string) int {
	if header == "" {
		return defaultDepth
	}
	d, err := strconv.Atoi(header)
	if err != nil {
		return defaultDepth
	}
	if d < minDepth {
		return minDepth
	}
	if d > maxDepth {
		return maxDepth
	}
	return d
}
