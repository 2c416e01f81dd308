package app

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// screenWriter shows the most recent lines written to it on a tcell
// screen, newest at the bottom.
type screenWriter struct {
	mu      sync.Mutex
	screen  tcell.Screen
	lines   []string
	partial string
}

func newScreenWriter(screen tcell.Screen) *screenWriter {
	return &screenWriter{screen: screen}
}

// Write implements io.Writer.
func (w *screenWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	text := w.partial + string(p)
	parts := strings.Split(text, "\n")
	w.partial = parts[len(parts)-1]
	w.lines = append(w.lines, parts[:len(parts)-1]...)

	_, height := w.screen.Size()
	if height > 0 && len(w.lines) > height {
		w.lines = append([]string(nil), w.lines[len(w.lines)-height:]...)
	}
	w.draw()
	return len(p), nil
}

// draw requires w.mu.
func (w *screenWriter) draw() {
	w.screen.Clear()
	width, _ := w.screen.Size()
	for y, line := range w.lines {
		x := 0
		for _, r := range line {
			if x >= width {
				break
			}
			w.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
			x++
		}
	}
	w.screen.Show()
}

// Lines returns the lines currently shown.
func (w *screenWriter) Lines() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.lines...)
}
