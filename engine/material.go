package engine

import (
	"os"

	"github.com/BurntSushi/toml"
)

// MaterialValue is the static point value of one piece kind, used by
// the fixed-depth search's leaf evaluation (spec §4.7). Fairy pieces
// not in this table fall back to DefaultMaterialValue.
var MaterialValue = map[string]int{
	"pawn":             100,
	"knight":           300,
	"bishop":           300,
	"rook":             500,
	"queen":            900,
	"king":             20000,
	"dozer":            250,
	"alfil":            200,
	"bard":             350,
	"wasp":             150,
	"tempest-rook":     550,
	"bouncing-bishop":  350,
	"windmill-rook":    550,
	"windmill-bishop":  350,
	"zebra":            300,
	"giraffe":          300,
	"camel":            300,
	"amazon":           1200,
	"chancellor":       850,
	"archbishop":       800,
	"centaur":          650,
	"cannon":           450,
	"beacon":           100,
	"chameleon":        600,
	"mirrored-pawn":    100,
	"mirrored-bishop":  300,
	"mirrored-rook":    500,
	"mirrored-knight":  300,
	"mirrored-queen":   900,
}

// DefaultMaterialValue is used for any kind not present in
// MaterialValue (a move-script-only fairy piece the operator never
// listed an override for).
const DefaultMaterialValue = 300

// materialOverrides is the shape of the optional TOML file named by
// CHESSEMBLY_VALUES: a flat table of kind -> point value, letting an
// operator retune the evaluation without a rebuild (grounded on the
// pack's config-file pattern; see DESIGN.md).
type materialOverrides struct {
	Values map[string]int `toml:"values"`
}

// LoadMaterialOverrides reads CHESSEMBLY_VALUES, if set, and applies
// its [values] table on top of MaterialValue. It is a no-op when the
// variable is unset; a missing or malformed file is an error the
// caller (main) should log and continue past, not crash on.
func LoadMaterialOverrides() error {
	path := os.Getenv("CHESSEMBLY_VALUES")
	if path == "" {
		return nil
	}
	var cfg materialOverrides
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return err
	}
	for kind, v := range cfg.Values {
		MaterialValue[kind] = v
	}
	return nil
}

func materialValue(kind string) int {
	if v, ok := MaterialValue[kind]; ok {
		return v
	}
	return DefaultMaterialValue
}

// Evaluate is the fixed-depth search's static leaf evaluation: sum of
// side-to-move material minus opponent material. No positional terms,
// no mobility bonus, no king safety term: the evaluation is material
// only.
func Evaluate(board *Board) int {
	score := 0
	for y := int8(0); y < Height; y++ {
		for x := int8(0); x < Width; x++ {
			p := Position{X: x, Y: y}
			piece := board.Grid[p.Y][p.X]
			if piece == nil {
				continue
			}
			v := materialValue(piece.Kind)
			if piece.Color == board.SideToMove {
				score += v
			} else {
				score -= v
			}
		}
	}
	return score
}
