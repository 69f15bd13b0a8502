package game

// Player is the side a search node is scored for. Scores are always from
// MaxPlayer's point of view.
type Player int8

const (
	MinPlayer Player = -1
	MaxPlayer Player = 1
)

func (p Player) Other() Player {
	return -p
}

// Sign is +1 for MaxPlayer and -1 for MinPlayer.
func (p Player) Sign() int {
	return int(p)
}

func (p Player) String() string {
	if p == MaxPlayer {
		return "MAX"
	}
	return "MIN"
}
