package cmd

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
)

const spinnerMinDuration = 350 * time.Millisecond

var spin = spinner.New(spinner.CharSets[33], 100*time.Millisecond)
var startedAt time.Time

func startSpinner(msg string) {
	startedAt = time.Now()
	spin.Prefix = msg + " "
	spin.Start()
}

// stopSpinner keeps the spinner up for a minimum time so fast operations don't flicker.
func stopSpinner() {
	if elapsed := time.Since(startedAt); elapsed < spinnerMinDuration {
		time.Sleep(spinnerMinDuration - elapsed)
	}
	spin.Stop()
	fmt.Print("\r\033[K")
}
