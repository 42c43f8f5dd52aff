package engine

// maxChainSteps bounds a single chain's execution (spec §4.3 "Execution
// limits"): a script bug (e.g. a self-referencing jmp/jne) terminates
// that chain cleanly instead of hanging the request.
const maxChainSteps = 1000

// frame is one anchor/block-scope entry on the interpreter's stack.
// blockEnd is the chain index one past this frame's scope: the
// top-level frame's blockEnd is len(chain); a block frame's is the
// index of its matching '}'.
type frame struct {
	anchor   Position
	blockEnd int
}

// generateMoves executes every chain of prog for the piece at
// position, returning the de-duplicated union of emitted moves.
// checkDanger gates the `check` and `danger` predicates: it must be
// false while computing the danger zone itself, or they would recurse
// forever
// (spec §9 "Danger recursion").
func generateMoves(prog *CompiledProgram, board *Board, position Position, checkDanger bool) []ChessMove {
	var nodes []ChessMove
	color, ok := board.ColorOn(position)
	if !ok {
		return nodes
	}

	for _, chain := range prog.Chains {
		nodes = runChain(chain, board, position, color, checkDanger, nodes)
	}
	return nodes
}

func runChain(chain []Behavior, board *Board, position Position, color Color, checkDanger bool, nodes []ChessMove) []ChessMove {
	if len(chain) == 0 {
		return nodes
	}

	stack := []frame{{anchor: position, blockEnd: len(chain)}}
	takeStack := []*Position{nil}
	states := []bool{true}
	var transition string
	var stateChange []StateChange

	ip := 0
	steps := 0

	top := func() *frame { return &stack[len(stack)-1] }
	stateTop := func() bool { return states[len(states)-1] }
	setState := func(v bool) { states[len(states)-1] = v }

	for ip < len(chain) {
		steps++
		if steps > maxChainSteps {
			break
		}

		inst := chain[ip]
		if !stateTop() && !inst.isControl() {
			if len(stack) > 1 {
				ip = top().blockEnd
			} else {
				break
			}
		}
		if len(stack) == 0 || len(states) == 0 {
			break
		}

		// Deltas are reflected against the board's side to move, not the
		// moving piece's own color; the two are the same for ordinary
		// pseudo-move generation and only diverge inside danger-zone
		// computation (see DESIGN.md).
		inst = chain[ip].reflectTurn(board.SideToMove)

		switch inst.Op {
		case OpTakeMove:
			if isZeroDelta(inst.Delta) {
				setState(false)
				ip++
				continue
			}
			wc := moveAnchor(&top().anchor, inst.Delta, color)
			if wc != NoCollision {
				setState(false)
				ip++
				continue
			}
			if isFriendly(board, top().anchor, color) {
				cancelMoveAnchor(&top().anchor, inst.Delta)
				setState(false)
				ip++
				continue
			} else if isEnemy(board, top().anchor, color) {
				nodes = pushMove(nodes, ChessMove{
					From: position, Take: top().anchor, MoveTo: top().anchor,
					MoveType: TakeMove, StateChange: cloneStateChange(stateChange), Transition: transition,
				})
				setState(false)
				ip++
				continue
			}
			nodes = pushMove(nodes, ChessMove{
				From: position, Take: top().anchor, MoveTo: top().anchor,
				MoveType: TakeMove, StateChange: cloneStateChange(stateChange), Transition: transition,
			})
			ip++

		case OpBlockOpen:
			end := ip
			depth := 0
			for end < len(chain) {
				switch chain[end].Op {
				case OpBlockOpen:
					depth++
				case OpBlockClose:
					depth--
					if depth == 0 {
						goto foundEnd
					}
				}
				end++
			}
		foundEnd:
			stack = append(stack, frame{anchor: top().anchor, blockEnd: end})
			last := takeStack[len(takeStack)-1]
			takeStack = append(takeStack, last)
			states = append(states, true)
			ip++

		case OpBlockClose:
			if len(stack) > 1 && len(states) > 1 {
				stack = stack[:len(stack)-1]
				states = states[:len(states)-1]
				takeStack = takeStack[:len(takeStack)-1]
			} else {
				goto done
			}
			ip++

		case OpPeek:
			wc := moveAnchor(&top().anchor, inst.Delta, color)
			if wc != NoCollision {
				setState(false)
				ip++
				continue
			}
			if _, occ := board.ColorOn(top().anchor); occ {
				cancelMoveAnchor(&top().anchor, inst.Delta)
				setState(false)
				ip++
				continue
			}
			ip++

		case OpObserve:
			wc := moveAnchor(&top().anchor, inst.Delta, color)
			if wc != NoCollision {
				setState(false)
				ip++
				continue
			}
			if _, occ := board.ColorOn(top().anchor); occ {
				setState(false)
			}
			cancelMoveAnchor(&top().anchor, inst.Delta)
			ip++

		case OpPiece:
			if kind, ok := board.PieceOn(position); ok {
				setState(kind == inst.Name)
			} else {
				setState(false)
			}
			ip++

		case OpBound:
			wc := wallCollision(top().anchor, inst.Delta, color)
			setState(wc != NoCollision)
			ip++

		case OpEdge:
			wc := wallCollision(top().anchor, inst.Delta, color)
			setState(wc.IsEdge())
			ip++
		case OpCorner:
			wc := wallCollision(top().anchor, inst.Delta, color)
			setState(wc.IsCorner())
			ip++
		case OpEdgeTop:
			setState(wallCollision(top().anchor, inst.Delta, color) == EdgeTop)
			ip++
		case OpEdgeBottom:
			setState(wallCollision(top().anchor, inst.Delta, color) == EdgeBottom)
			ip++
		case OpEdgeLeft:
			setState(wallCollision(top().anchor, inst.Delta, color) == EdgeLeft)
			ip++
		case OpEdgeRight:
			setState(wallCollision(top().anchor, inst.Delta, color) == EdgeRight)
			ip++
		case OpCornerTopLeft:
			setState(wallCollision(top().anchor, inst.Delta, color) == CornerTopLeft)
			ip++
		case OpCornerTopRight:
			setState(wallCollision(top().anchor, inst.Delta, color) == CornerTopRight)
			ip++
		case OpCornerBottomLeft:
			setState(wallCollision(top().anchor, inst.Delta, color) == CornerBottomLeft)
			ip++
		case OpCornerBottomRight:
			setState(wallCollision(top().anchor, inst.Delta, color) == CornerBottomRight)
			ip++

		case OpCheck:
			if !checkDanger {
				setState(false)
				ip++
				continue
			}
			setState(IsCheck(board, color))
			ip++

		case OpDanger:
			if !checkDanger {
				setState(false)
				ip++
				continue
			}
			wc := moveAnchor(&top().anchor, inst.Delta, color)
			if wc != NoCollision {
				setState(false)
				ip++
				continue
			}
			setState(IsDanger(board, top().anchor, color))
			cancelMoveAnchor(&top().anchor, inst.Delta)
			ip++

		case OpEnemy:
			wc := moveAnchor(&top().anchor, inst.Delta, color)
			if wc != NoCollision {
				setState(false)
				ip++
				continue
			}
			setState(isEnemy(board, top().anchor, color))
			cancelMoveAnchor(&top().anchor, inst.Delta)
			ip++

		case OpFriendly:
			wc := moveAnchor(&top().anchor, inst.Delta, color)
			if wc != NoCollision {
				setState(false)
				ip++
				continue
			}
			setState(isFriendly(board, top().anchor, color))
			cancelMoveAnchor(&top().anchor, inst.Delta)
			ip++

		case OpPieceOn:
			wc := moveAnchor(&top().anchor, inst.Delta, color)
			if wc != NoCollision {
				setState(false)
				ip++
				continue
			}
			kind, _ := board.PieceOn(top().anchor)
			setState(kind == inst.Name)
			cancelMoveAnchor(&top().anchor, inst.Delta)
			ip++

		case OpIfState:
			bs := board.State.For(color)
			setState(bs.Get(inst.Key) == inst.N)
			ip++

		case OpSetState:
			stateChange = append(stateChange, StateChange{Key: inst.Key, Value: inst.N})
			ip++

		case OpTransition:
			transition = inst.Name
			ip++

		case OpTake:
			if isZeroDelta(inst.Delta) {
				setState(false)
				ip++
				continue
			}
			wc := moveAnchor(&top().anchor, inst.Delta, color)
			if wc != NoCollision {
				setState(false)
				ip++
				continue
			}
			if isFriendly(board, top().anchor, color) {
				cancelMoveAnchor(&top().anchor, inst.Delta)
				setState(false)
				ip++
				continue
			} else if isEnemy(board, top().anchor, color) {
				nodes = pushMove(nodes, ChessMove{
					From: position, Take: top().anchor, MoveTo: top().anchor,
					MoveType: Take, StateChange: cloneStateChange(stateChange), Transition: transition,
				})
				anchor := top().anchor
				takeStack[len(takeStack)-1] = &anchor
			}
			ip++

		case OpJump:
			tp := takeStack[len(takeStack)-1]
			if tp != nil {
				for i, n := range nodes {
					if n.MoveType == Take && n.Take == *tp {
						nodes[i] = nodes[len(nodes)-1]
						nodes = nodes[:len(nodes)-1]
						break
					}
				}
				if !isZeroDelta(inst.Delta) {
					wc := moveAnchor(&top().anchor, inst.Delta, color)
					if wc == NoCollision {
						if _, occ := board.ColorOn(top().anchor); !occ {
							nodes = pushMove(nodes, ChessMove{
								From: position, Take: *tp, MoveTo: top().anchor,
								MoveType: TakeJump, StateChange: cloneStateChange(stateChange), Transition: transition,
							})
							ip++
							continue
						}
					}
				}
			}
			setState(false)
			ip++
			continue

		case OpCatch:
			if isZeroDelta(inst.Delta) {
				setState(false)
				ip++
				continue
			}
			wc := moveAnchor(&top().anchor, inst.Delta, color)
			if wc != NoCollision {
				setState(false)
				ip++
				continue
			}
			if isFriendly(board, top().anchor, color) {
				cancelMoveAnchor(&top().anchor, inst.Delta)
				setState(false)
				ip++
				continue
			} else if isEnemy(board, top().anchor, color) {
				nodes = pushMove(nodes, ChessMove{
					From: position, Take: top().anchor, MoveTo: position,
					MoveType: Catch, StateChange: cloneStateChange(stateChange), Transition: transition,
				})
			}
			ip++

		case OpMove:
			if isZeroDelta(inst.Delta) {
				setState(false)
				ip++
				continue
			}
			wc := moveAnchor(&top().anchor, inst.Delta, color)
			if wc != NoCollision {
				setState(false)
				ip++
				continue
			}
			if isFriendly(board, top().anchor, color) {
				cancelMoveAnchor(&top().anchor, inst.Delta)
				setState(false)
			} else if isEnemy(board, top().anchor, color) {
				cancelMoveAnchor(&top().anchor, inst.Delta)
				setState(false)
			} else {
				nodes = pushMove(nodes, ChessMove{
					From: position, Take: top().anchor, MoveTo: top().anchor,
					MoveType: Move, StateChange: cloneStateChange(stateChange), Transition: transition,
				})
			}
			ip++

		case OpRepeat:
			if inst.Count <= 0 || inst.Count > ip {
				goto done
			}
			ip -= inst.Count

		case OpNot:
			setState(!stateTop())
			ip++

		case OpDo:
			// An empty "do while" (no body between the two) skips both
			// instructions outright instead of pushing a scope.
			if ip+1 >= len(chain) {
				goto done
			}
			if chain[ip+1].Op == OpWhile {
				ip += 2
			} else {
				states = append(states, true)
				ip++
			}

		case OpWhile:
			if stateTop() {
				depth := 0
				for {
					if chain[ip].Op == OpWhile {
						depth++
					} else if chain[ip].Op == OpDo {
						depth--
						if depth == 0 {
							break
						}
					}
					if ip == 0 {
						break
					}
					ip--
				}
			} else {
				states = states[:len(states)-1]
				if len(states) == 0 {
					goto done
				}
				ip++
			}

		case OpLabel:
			ip++

		case OpJmp:
			if stateTop() {
				if idx, ok := findLabel(chain, inst.Label); ok {
					ip = idx
				} else {
					goto done
				}
			} else {
				ip++
				setState(true)
			}

		case OpJne:
			if !stateTop() {
				if idx, ok := findLabel(chain, inst.Label); ok {
					ip = idx
				} else {
					goto done
				}
			} else {
				ip++
				setState(true)
			}

		case OpAnchor:
			wc := moveAnchor(&top().anchor, inst.Delta, color)
			if wc != NoCollision {
				setState(false)
			}
			ip++

		case OpShift:
			wc := moveAnchor(&top().anchor, inst.Delta, color)
			if wc != NoCollision {
				setState(false)
			} else if _, occ := board.ColorOn(top().anchor); occ {
				nodes = pushMove(nodes, ChessMove{
					From: position, MoveTo: top().anchor, Take: position,
					MoveType: Shift, StateChange: cloneStateChange(stateChange), Transition: transition,
				})
			}
			ip++

		default:
			goto done
		}
	}
done:
	return nodes
}

func findLabel(chain []Behavior, label string) (int, bool) {
	for i, b := range chain {
		if b.Op == OpLabel && b.Label == label {
			return i, true
		}
	}
	return 0, false
}

func isEnemy(board *Board, p Position, color Color) bool {
	c, ok := board.ColorOn(p)
	return ok && c == color.Opposite()
}

func isFriendly(board *Board, p Position, color Color) bool {
	c, ok := board.ColorOn(p)
	return ok && c == color
}

