package markup

// Absolute is a screen direction.
type Absolute int

const (
	None Absolute = iota
	Left
	Up
	Right
	Down
)

func (a Absolute) String() string {
	switch a {
	case Left:
		return "left"
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	default:
		return "none"
	}
}

// Relative is a direction along the link sequence.
type Relative int

const (
	// Front is toward the first link.
	Front Relative = iota
	// Back is toward the last link.
	Back
)

// Direction is either an absolute or a relative direction. Hosts use it when
// granting focus to a view, so the view knows which end to start from.
type Direction struct {
	abs   Absolute
	rel   Relative
	isRel bool
}

// Abs wraps an absolute direction.
func Abs(a Absolute) Direction {
	return Direction{abs: a}
}

// Rel wraps a relative direction.
func Rel(r Relative) Direction {
	return Direction{rel: r, isRel: true}
}

// Relative maps the direction onto the link sequence. Up, Left and None
// point to the front; Down and Right to the back.
func (d Direction) Relative() Relative {
	if d.isRel {
		return d.rel
	}
	switch d.abs {
	case Down, Right:
		return Back
	default:
		return Front
	}
}

// Event is an input event understood by a View.
type Event int

const (
	EventNone Event = iota
	EventLeft
	EventRight
	EventUp
	EventDown
	// EventActivate selects the focused link. It is not a direction.
	EventActivate
)

// direction returns the navigation direction for a movement event.
func (e Event) direction() Absolute {
	switch e {
	case EventLeft:
		return Left
	case EventRight:
		return Right
	case EventUp:
		return Up
	case EventDown:
		return Down
	default:
		return None
	}
}

// EventResult tells the host whether a View used an event.
type EventResult int

const (
	Ignored EventResult = iota
	Consumed
)
