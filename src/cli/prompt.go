package cli

import (
	"github.com/manifoldco/promptui"
)

// PromptYN asks the user a yes/no question on the terminal and returns true
// if the answer was affirmative. Interrupting counts as no.
func PromptYN(msg string, defaultYes bool) bool {
	deflt := "N"
	if defaultYes {
		deflt = "Y"
	}
	prompt := promptui.Prompt{
		Label:     msg,
		IsConfirm: true,
		Default:   deflt,
	}
	// promptui reports a negative answer as ErrAbort rather than in the result.
	_, err := prompt.Run()
	return err != promptui.ErrInterrupt && err != promptui.ErrAbort
}
