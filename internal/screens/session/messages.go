package session

// startMsg asks the screen to start its runtime. Runtime calls stay on the
// update loop so the screen is the only goroutine touching it.
type startMsg struct{}
