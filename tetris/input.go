package tetris

type Action string

const (
	MoveLeft    Action = "left"      // Moves the Tetromino one step to the left.
	MoveRight   Action = "right"     // Moves the Tetromino one step to the right.
	SoftDrop    Action = "down"      // Pushes the Tetromino down faster than gravity.
	HardDrop    Action = "drop"      // Drops the Tetromino down the stack.
	RotateRight Action = "rotatecw"  // Rotates the Tetromino clockwise.
	RotateLeft  Action = "rotateccw" // Rotates the Tetromino counter-clockwise.
)

// Input is the set of actions held during one tick. Edges are derived by
// the session: rotation and hard drop fire once per press, horizontal
// moves auto-repeat while held.
type Input struct {
	Left, Right             bool
	RotateRight, RotateLeft bool
	SoftDrop, HardDrop      bool
}

func NewInput(actions ...Action) Input {
	var in Input
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// Set marks a as held. Unknown actions are ignored.
func (in *Input) Set(a Action) {
	switch a {
	case MoveLeft:
		in.Left = true
	case MoveRight:
		in.Right = true
	case SoftDrop:
		in.SoftDrop = true
	case HardDrop:
		in.HardDrop = true
	case RotateRight:
		in.RotateRight = true
	case RotateLeft:
		in.RotateLeft = true
	}
}

func (in Input) Empty() bool { return in == Input{} }
