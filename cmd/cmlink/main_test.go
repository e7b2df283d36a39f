package main

import (
	"os"
	"testing"
)

func TestMainRunsHelpWithoutPanicking(t *testing.T) {
	rescueStdout := os.Stdout
	_, w, _ := os.Pipe()
	os.Stdout = w

	arg := os.Args[0:1]
	os.Args = append(arg, "-h")
	main()
	os.Args = arg

	w.Close()
	os.Stdout = rescueStdout
}
