package main

import (
	"time"

	"github.com/gen2brain/beeep"
)

// Sound notification functions - all run in goroutines to avoid blocking.
// Declared as vars so tests can stub them out.

var playPollFailureSound = func() {
	go func() {
		// Low frequency, longer duration - ominous
		beeep.Beep(400, 300)
	}()
}

var playPollRecoveredSound = func() {
	go func() {
		// Ascending two-tone success melody
		beeep.Beep(600, 150)
		time.Sleep(50 * time.Millisecond)
		beeep.Beep(800, 150)
	}()
}
