// Package input holds the player's input state and parses raw terminal bytes into it.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals report no key-up events, so a held key is inferred from autorepeat.
const keyHoldDuration = 120 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Up      bool
	Down    bool
	Left    bool
	Right   bool
	Space   bool
	Enter   bool
	Pressed []byte
}

// Directions returns the movement directions held in this frame.
func (in Input) Directions() Directions {
	var s Directions
	if in.Up {
		s = s.Press(Up)
	}
	if in.Down {
		s = s.Press(Down)
	}
	if in.Left {
		s = s.Press(Left)
	}
	if in.Right {
		s = s.Press(Right)
	}
	return s
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit  time.Time
	up    time.Time
	down  time.Time
	left  time.Time
	right time.Time
	space time.Time
	enter time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch    chan byte
	state keyState
}

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 128)}
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
// A closed stream reports Quit so the caller stops its loop.
func ReadInput(s *Stream) Input {
	now := time.Now()
	var buf []byte
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	s.apply(buf, now)
	in := s.held(now)
	in.Pressed = buf
	if closed {
		in.Quit = true
	}
	return in
}

// Reset forgets every held key, so a key pressed on a menu screen
// does not carry into the next game.
func (s *Stream) Reset() {
	s.state = keyState{}
}

// apply parses the collected bytes and updates key state timestamps.
func (s *Stream) apply(buf []byte, now time.Time) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.up = now
				i += 2
				continue
			case 'B':
				s.state.down = now
				i += 2
				continue
			case 'C':
				s.state.right = now
				i += 2
				continue
			case 'D':
				s.state.left = now
				i += 2
				continue
			}
		}

		applyByteToState(&s.state, b, now)
	}
}

// held builds input from key state; keys are "pressed" if seen within the hold duration.
func (s *Stream) held(now time.Time) Input {
	return Input{
		Quit:  now.Sub(s.state.quit) < keyHoldDuration,
		Up:    now.Sub(s.state.up) < keyHoldDuration,
		Down:  now.Sub(s.state.down) < keyHoldDuration,
		Left:  now.Sub(s.state.left) < keyHoldDuration,
		Right: now.Sub(s.state.right) < keyHoldDuration,
		Space: now.Sub(s.state.space) < keyHoldDuration,
		Enter: now.Sub(s.state.enter) < keyHoldDuration,
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		state.quit = now
	case 'w', 'W', 'k', 'K':
		state.up = now
	case 's', 'S', 'j', 'J':
		state.down = now
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	}
}
