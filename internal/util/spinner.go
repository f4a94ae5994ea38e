// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package util

import (
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
)

// SpinFunc is what a spinner runs. It returns the word printed after the message once it completes.
type SpinFunc func() (string, error)

// Spinner writes message to w and runs fn, animating a spinner after message until fn returns. The final line is
// message followed by the word returned from fn, or "failed" if fn returns an error.
func Spinner(w io.Writer, message string, fn SpinFunc) error {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(w))
	// keep the cursor visible; hiding it requires Stop() to run even when interrupted
	s.HideCursor = false
	if err := s.Color("blue", "bold"); err != nil {
		return err
	}
	if !strings.HasSuffix(message, " ") {
		message += " "
	}
	s.Prefix = message
	s.Start()
	word, err := fn()
	if err != nil {
		word = "failed"
	}
	s.FinalMSG = "\r" + message + word + "\n"
	s.Stop()
	return err
}

// NoSpinner runs fn without any animation.
func NoSpinner(w io.Writer, message string, fn SpinFunc) error {
	_, err := fn()
	return err
}
