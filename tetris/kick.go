package tetris

// Wall kick data based on https://tetris.wiki/Super_Rotation_System
//
// The wiki lists offsets with Y pointing up. The stack's Y grows downward
// so every dy below has the opposite sign of the wiki table.

type kickClass uint8

const (
	kickJLSTZ kickClass = iota
	kickI
	kickO
)

func classOf(s Shape) kickClass {
	switch s {
	case I:
		return kickI
	case O:
		return kickO
	default:
		return kickJLSTZ
	}
}

// transition indexes a (from, to) rotation pair: 0>R, R>0, R>2, 2>R, 2>L, L>2, L>0, 0>L.
func transition(from, to int) int {
	switch {
	case from == 0 && to == 1:
		return 0
	case from == 1 && to == 0:
		return 1
	case from == 1 && to == 2:
		return 2
	case from == 2 && to == 1:
		return 3
	case from == 2 && to == 3:
		return 4
	case from == 3 && to == 2:
		return 5
	case from == 3 && to == 0:
		return 6
	case from == 0 && to == 3:
		return 7
	}
	panic("tetris: invalid rotation transition")
}

var kicks = map[kickClass][8][]Point{
	kickJLSTZ: {
		{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},  // 0>R
		{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},    // R>0
		{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},    // R>2
		{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},  // 2>R
		{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},     // 2>L
		{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}}, // L>2
		{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}}, // L>0
		{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},     // 0>L
	},
	kickI: {
		{{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}}, // 0>R
		{{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}}, // R>0
		{{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}}, // R>2
		{{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}}, // 2>R
		{{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}}, // 2>L
		{{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}}, // L>2
		{{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}}, // L>0
		{{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}}, // 0>L
	},
	kickO: {
		{{0, 0}}, {{0, 0}}, {{0, 0}}, {{0, 0}},
		{{0, 0}}, {{0, 0}}, {{0, 0}}, {{0, 0}},
	},
}

// WallKicks returns the ordered candidate offsets tried when rotating
// shape from one rotation state to an adjacent one. The first candidate
// that fits wins, so the order matters.
func WallKicks(shape Shape, from, to int) []Point {
	return kicks[classOf(shape)][transition(from, to)]
}
