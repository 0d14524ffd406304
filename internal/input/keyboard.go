// Package input tracks keyboard state and converts terminal bytes into key events.
package input

import (
	"maps"
	"slices"
	"sync"
)

// Key names follow the browser KeyboardEvent.key convention.
const (
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeySpace      = " "
	KeyEnter      = "Enter"
	KeyBackspace  = "Backspace"
	KeyEscape     = "Escape"
	KeyInterrupt  = "Interrupt" // Ctrl+C / Ctrl+D, never delivered to the game
)

// Keyboard holds which keys are currently held down.
// Key events arrive asynchronously; the frame loop reads a copy once per frame.
type Keyboard struct {
	mu   sync.Mutex
	held map[string]bool
}

// NewKeyboard creates an empty keyboard state.
func NewKeyboard() *Keyboard {
	return &Keyboard{held: make(map[string]bool)}
}

// KeyDown marks key as held.
func (k *Keyboard) KeyDown(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.held[key] = true
}

// KeyUp marks key as released. Released keys stay in the map so the frame
// loop observes the transition.
func (k *Keyboard) KeyUp(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.held[key] = false
}

// Held returns a snapshot of the held-key map.
func (k *Keyboard) Held() map[string]bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return maps.Clone(k.held)
}

// Snapshot is the immutable input state for one frame.
type Snapshot struct {
	pressed map[string]bool
	clicked map[string]bool
}

// Pressed reports whether key is held this frame.
func (s Snapshot) Pressed(key string) bool {
	return s.pressed[key]
}

// Clicked reports whether key went from released to held on this frame.
func (s Snapshot) Clicked(key string) bool {
	return s.clicked[key]
}

// ClickedKeys returns every key clicked this frame, sorted by name.
func (s Snapshot) ClickedKeys() []string {
	var keys []string
	for k, v := range s.clicked {
		if v {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// Tracker derives edge-triggered click state from successive held-key maps.
type Tracker struct {
	alreadyClicked map[string]bool
}

// NewTracker creates a tracker with no keys seen.
func NewTracker() *Tracker {
	return &Tracker{alreadyClicked: make(map[string]bool)}
}

// Update consumes this frame's held-key map and returns the frame snapshot.
// A key reads as clicked on the first frame it is held after being released.
func (t *Tracker) Update(held map[string]bool) Snapshot {
	clicked := make(map[string]bool, len(held))
	for key, down := range held {
		if !down {
			t.alreadyClicked[key] = false
			continue
		}
		if !t.alreadyClicked[key] {
			clicked[key] = true
			t.alreadyClicked[key] = true
		}
	}
	return Snapshot{pressed: held, clicked: clicked}
}
