package preprocess

// State describes whether the current conditional region is emitting.
type State int

const (
	// StateNone is the top level: lines are always emitted.
	StateNone State = iota
	// StateIfFalse is inside a false branch that may still be followed by #elif/#else.
	StateIfFalse
	// StateElseTrue is inside an #else reached after false branches.
	StateElseTrue
	// StateIfTrue is inside a branch whose condition held.
	StateIfTrue
	// StateElseFalse is after a branch already fired; the rest of the chain is skipped.
	StateElseFalse
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateNone:
		return "NONE"
	case StateIfFalse:
		return "IF_FALSE"
	case StateElseTrue:
		return "ELSE_TRUE"
	case StateIfTrue:
		return "IF_TRUE"
	case StateElseFalse:
		return "ELSE_FALSE"
	default:
		return "UNKNOWN"
	}
}

// suppressed reports whether lines in state s are dropped.
func (s State) suppressed() bool {
	return s == StateIfFalse || s == StateElseFalse
}

// frame is the saved condition of an enclosing chain.
type frame struct {
	state    State
	elseSeen bool
}

// conditionalStack tracks the current branch state and the enclosing state of
// every open #if.
type conditionalStack struct {
	state    State
	elseSeen bool
	stack    []frame
}

// Depth returns the current nesting depth.
func (c *conditionalStack) Depth() int {
	return len(c.stack)
}

// State returns the current state.
func (c *conditionalStack) State() State {
	return c.state
}

// If pushes the current state and enters a new chain.
func (c *conditionalStack) If(cond bool) {
	c.stack = append(c.stack, frame{state: c.state, elseSeen: c.elseSeen})
	c.elseSeen = false
	if cond {
		c.state = StateIfTrue
	} else {
		c.state = StateIfFalse
	}
}

// Elif moves to the next branch. eval is only called when no branch has fired yet.
func (c *conditionalStack) Elif(loc Location, eval func() (bool, error)) error {
	if c.elseSeen && c.state != StateNone {
		return newError(ElifAfterElse, "found #elif after #else", loc)
	}
	switch c.state {
	case StateIfTrue, StateElseFalse:
		c.state = StateElseFalse
	case StateIfFalse:
		cond, err := eval()
		if err != nil {
			return err
		}
		if cond {
			c.state = StateIfTrue
		}
	case StateElseTrue:
		return newError(ElifAfterElse, "found #elif after #else", loc)
	default:
		return newError(UnmatchedElif, "found #elif without matching #if", loc)
	}
	return nil
}

// Else moves to the final branch of the chain.
func (c *conditionalStack) Else(loc Location) error {
	switch c.state {
	case StateIfTrue, StateElseFalse:
		c.state = StateElseFalse
		c.elseSeen = true
	case StateIfFalse:
		c.state = StateElseTrue
		c.elseSeen = true
	default:
		return newError(UnmatchedElse, "found #else without matching #if", loc)
	}
	return nil
}

// Endif closes the innermost chain.
func (c *conditionalStack) Endif(loc Location) error {
	if c.state == StateNone || len(c.stack) == 0 {
		return newError(UnmatchedEndif, "found #endif without #if", loc)
	}
	top := c.stack[len(c.stack)-1]
	c.state, c.elseSeen = top.state, top.elseSeen
	c.stack = c.stack[:len(c.stack)-1]
	return nil
}

// Active reports whether directives with side effects run in the current state.
func (c *conditionalStack) Active() bool {
	return !c.state.suppressed()
}

// ancestorSuppressed reports whether any enclosing branch is dropping lines.
func (c *conditionalStack) ancestorSuppressed() bool {
	for _, f := range c.stack {
		if f.state.suppressed() {
			return true
		}
	}
	return false
}

// Balanced reports whether every #if has been closed.
func (c *conditionalStack) Balanced() bool {
	return c.state == StateNone && len(c.stack) == 0
}
