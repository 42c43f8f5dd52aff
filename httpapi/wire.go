package httpapi

import "github.com/mssparcs/chessembly-bot/engine"

// wireStateChange is one [key, value] pair in the JSON state_change
// array.
type wireStateChange [2]interface{}

// wireChessMove is the JSON shape spec §6 requires, distinct from
// engine.ChessMove's Go-idiomatic field names and zero-value
// conventions (a nil StateChange must serialize as null, not [],
// and Transition must serialize as null, not "").
type wireChessMove struct {
	From        [2]int8           `json:"from"`
	Take        [2]int8           `json:"take"`
	MoveTo      [2]int8           `json:"move_to"`
	MoveType    string            `json:"move_type"`
	StateChange []wireStateChange `json:"state_change"`
	Transition  *string           `json:"transition"`
}

func wireMove(m engine.ChessMove) wireChessMove {
	w := wireChessMove{
		From:     [2]int8{m.From.X, m.From.Y},
		Take:     [2]int8{m.Take.X, m.Take.Y},
		MoveTo:   [2]int8{m.MoveTo.X, m.MoveTo.Y},
		MoveType: m.MoveType.String(),
	}
	if len(m.StateChange) > 0 {
		w.StateChange = make([]wireStateChange, len(m.StateChange))
		for i, sc := range m.StateChange {
			w.StateChange[i] = wireStateChange{sc.Key, sc.Value}
		}
	}
	if m.Transition != "" {
		t := m.Transition
		w.Transition = &t
	}
	return w
}
