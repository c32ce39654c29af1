package gosfsynth

import (
	"io"

	"github.com/charmbracelet/log"
)

// logger is used at the control-flow edges of the library: SF2
// loading, synthesizer construction, and voice stealing. It is never
// touched from renderBlock or any oscillator/envelope/filter inner
// loop. Embedding applications that want diagnostics call SetLogOutput;
// by default nothing is written anywhere.
var logger = log.NewWithOptions(io.Discard, log.Options{
	Prefix: "gosfsynth",
})

// SetLogOutput redirects the package logger's output. Passing nil
// silences it again.
func SetLogOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	logger.SetOutput(w)
}
