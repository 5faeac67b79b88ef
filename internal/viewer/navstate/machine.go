// Package navstate models the viewer's six-screen navigation flow as an
// explicit state machine, and persists the current screen per card id so a
// viewer resumes where they left off.
package navstate

// Screen is one of the six screens a viewer can be on.
type Screen string

const (
	ScreenProposal   Screen = "proposal"
	ScreenTryAgain   Screen = "tryAgain"
	ScreenSuccessHub Screen = "successHub"
	ScreenPhotos     Screen = "photos"
	ScreenLetter     Screen = "letter"
	ScreenFlowers    Screen = "flowers"
)

// InitialScreen is where every card starts when no saved state exists.
const InitialScreen = ScreenProposal

// Event is a viewer action that may cause a screen transition.
type Event string

const (
	EventYes         Event = "yes"
	EventNo          Event = "no"
	EventRetry       Event = "retry"
	EventOpenPhotos  Event = "openPhotos"
	EventOpenLetter  Event = "openLetter"
	EventOpenFlowers Event = "openFlowers"
	EventRelive      Event = "relive"
	EventBack        Event = "back"
)

// ValidScreen reports whether s is a member of the screen set. Used when
// restoring persisted state that may have been written by an older build.
func ValidScreen(s Screen) bool {
	switch s {
	case ScreenProposal, ScreenTryAgain, ScreenSuccessHub, ScreenPhotos, ScreenLetter, ScreenFlowers:
		return true
	}
	return false
}

var transitions = map[Screen]map[Event]Screen{
	ScreenProposal: {
		EventYes: ScreenSuccessHub,
		EventNo:  ScreenTryAgain,
	},
	ScreenTryAgain: {
		EventRetry: ScreenProposal,
	},
	ScreenSuccessHub: {
		EventOpenPhotos:  ScreenPhotos,
		EventOpenLetter:  ScreenLetter,
		EventOpenFlowers: ScreenFlowers,
		EventRelive:      ScreenProposal,
	},
	ScreenPhotos: {
		EventBack: ScreenSuccessHub,
	},
	ScreenLetter: {
		EventBack: ScreenSuccessHub,
	},
	ScreenFlowers: {
		EventBack: ScreenSuccessHub,
	},
}

// Transition returns the screen reached from current by event. For pairs the
// flow does not define, ok is false and the current screen is returned
// unchanged. There is no terminal screen; the machine cycles indefinitely.
func Transition(current Screen, event Event) (next Screen, ok bool) {
	if m, found := transitions[current]; found {
		if next, found := m[event]; found {
			return next, true
		}
	}
	return current, false
}
