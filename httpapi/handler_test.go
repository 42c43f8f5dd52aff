package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRequest(headers map[string]string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	return r
}

func emptyPositionRow() string {
	row := ""
	for i := 0; i < 8; i++ {
		if i > 0 {
			row += " "
		}
		row += "-"
	}
	return row
}

func emptyPosition() string {
	row := emptyPositionRow()
	out := row
	for i := 1; i < 8; i++ {
		out += "/" + row
	}
	return out
}

func withPiece(position string, x, y int, cell string) string {
	rows := splitRows(position)
	cells := splitCells(rows[y])
	cells[x] = cell
	rows[y] = joinCells(cells)
	return joinRows(rows)
}

func splitRows(s string) []string {
	var rows []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '/' {
			rows = append(rows, s[start:i])
			start = i + 1
		}
	}
	return rows
}

func joinRows(rows []string) string {
	out := rows[0]
	for _, r := range rows[1:] {
		out += "/" + r
	}
	return out
}

func splitCells(row string) []string {
	var cells []string
	cur := ""
	for _, c := range row {
		if c == ' ' {
			if cur != "" {
				cells = append(cells, cur)
				cur = ""
			}
			continue
		}
		cur += string(c)
	}
	if cur != "" {
		cells = append(cells, cur)
	}
	return cells
}

func joinCells(cells []string) string {
	out := cells[0]
	for _, c := range cells[1:] {
		out += " " + c
	}
	return out
}

func TestServeHTTPBadRequestOnMissingPosition(t *testing.T) {
	h := NewHandler(zap.NewNop())
	r := newRequest(map[string]string{"Turn": "white"})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != badRequest {
		t.Fatalf("body = %q, want %q", w.Body.String(), badRequest)
	}
}

func TestServeHTTPWellFormedBareKingsRequest(t *testing.T) {
	pos := emptyPosition()
	pos = withPiece(pos, 0, 0, "king:white")
	pos = withPiece(pos, 7, 7, "king:black")

	h := NewHandler(zap.NewNop())
	r := newRequest(map[string]string{
		"Turn":         "white",
		"Position":     pos,
		"Chessembly":   "",
		"Castling-OO":  "00",
		"Castling-OOO": "00",
		"Depth":        "1",
	})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() == badRequest {
		t.Fatalf("got badRequest body for a well-formed request: %q", w.Body.String())
	}
}

func TestServeHTTPReturnsMoveJSON(t *testing.T) {
	pos := emptyPosition()
	pos = withPiece(pos, 0, 7, "king:white")
	pos = withPiece(pos, 7, 0, "king:black")
	pos = withPiece(pos, 3, 3, "rook:white")

	h := NewHandler(zap.NewNop())
	r := newRequest(map[string]string{
		"Turn":         "white",
		"Position":     pos,
		"Chessembly":   "",
		"Castling-OO":  "00",
		"Castling-OOO": "00",
		"Depth":        "1",
	})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.NotEqual(t, badRequest, body)
	require.NotEqual(t, noMove, body)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var wm wireChessMove
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wm))
	require.Equal(t, "TakeMove", wm.MoveType)
}

func TestParseDepthDefaultsOnParseError(t *testing.T) {
	if got := parseDepth("not-a-number"); got != defaultDepth {
		t.Fatalf("parseDepth(invalid) = %d, want %d", got, defaultDepth)
	}
	if got := parseDepth(""); got != defaultDepth {
		t.Fatalf("parseDepth(empty) = %d, want %d", got, defaultDepth)
	}
	if got := parseDepth("99"); got != maxDepth {
		t.Fatalf("parseDepth(99) = %d, want clamped to %d", got, maxDepth)
	}
	if got := parseDepth("0"); got != minDepth {
		t.Fatalf("parseDepth(0) = %d, want clamped to %d", got, minDepth)
	}
}
