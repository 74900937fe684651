package main

import (
	"fmt"
	"io"

	pagesnap "github.com/porticus-lab/go-pagesnap"
)

// screen renders session state as text. It plays the single screen of the
// app: a fixed layout plus sheets presented as state changes arrive.
type screen struct {
	w             io.Writer
	showedFailure bool
	showedLoaded  bool
	last          pagesnap.State
}

func newScreen(w io.Writer) *screen {
	return &screen{w: w}
}

func (s *screen) layout() {
	fmt.Fprintln(s.w, "This is Top")
	fmt.Fprintln(s.w)
	fmt.Fprintln(s.w, "[ Go To Next Page ]")
	fmt.Fprintln(s.w)
	fmt.Fprintln(s.w, "This is Bottom")
}

// observe presents each sheet at most once.
func (s *screen) observe(st pagesnap.State) {
	s.last = st
	if st.LoadFailed && !s.showedFailure {
		s.showedFailure = true
		s.sheet("Failed to load the page")
	}
	if st.LoadSucceeded && !s.showedLoaded {
		s.showedLoaded = true
		s.sheet("Page loaded")
	}
}

// nextPage is the sheet behind the "Go To Next Page" button.
func (s *screen) nextPage() {
	s.sheet("This is the next page", "the API Response: "+s.last.Response)
}

func (s *screen) sheet(lines ...string) {
	fmt.Fprintln(s.w, "----")
	for _, l := range lines {
		fmt.Fprintln(s.w, l)
	}
	fmt.Fprintln(s.w, "----")
}
