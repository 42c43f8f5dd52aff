package engine

import "strings"

// CompiledProgram is an ordered list of independent chains. Chains are
// unioned with de-duplication by (Take, MoveTo); see move.go/pushMove.
type CompiledProgram struct {
	Chains [][]Behavior
}

// CompileScript parses chessembly source text into a CompiledProgram.
//
// Lexical form (spec §4.3): chains are separated by ';'; a chain whose
// trimmed text starts with '#' is a comment and is skipped; a chain
// that is all whitespace is skipped. Within a chain, a new token begins
// wherever whitespace is immediately followed by a letter or a brace,
// matching the original interpreter's tokenizer exactly (this is why a
// parenthesized argument list such as "take-move(1, 1)" stays one
// token: the space after the comma is followed by a digit, not a
// letter or brace).
func CompileScript(script string) (*CompiledProgram, error) {
	prog := &CompiledProgram{}
	for _, chainStr := range strings.Split(script, ";") {
		trimmed := strings.TrimSpace(chainStr)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		chain := []Behavior{}
		for _, tok := range tokenizeChain(chainStr) {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			b, err := ParseBehavior(tok)
			if err != nil {
				return nil, err
			}
			chain = append(chain, b)
		}
		prog.Chains = append(prog.Chains, chain)
	}
	return prog, nil
}

func isTokenStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '{' || c == '}'
}

// tokenizeChain splits one chain's raw text (not yet trimmed) into
// instruction tokens.
func tokenizeChain(chainStr string) []string {
	var toks []string
	if len(chainStr) == 0 {
		return toks
	}
	i := 0
	for j := 0; j < len(chainStr)-1; j++ {
		if chainStr[j] == ' ' || chainStr[j] == '\t' || chainStr[j] == '\n' || chainStr[j] == '\r' {
			if isTokenStart(chainStr[j+1]) {
				if len(strings.TrimSpace(chainStr[i:j])) > 0 {
					toks = append(toks, chainStr[i:j])
					i = j
				}
			}
		}
	}
	if len(strings.TrimSpace(chainStr[i:])) > 0 {
		toks = append(toks, chainStr[i:])
	}
	return toks
}
