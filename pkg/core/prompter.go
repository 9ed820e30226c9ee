package core

// Cancel is the selection ChooseOne returns when the user backs out.
const Cancel = 0

// Prompter is the boundary to whatever reads from and writes to the user.
// The console menu implements it; tests and batch jobs script it.
type Prompter interface {
	// Prompt shows text and reads a line. Fails with ErrRead.
	Prompt(text string) (string, error)

	// PromptNumber reads a line and parses it as a number.
	// Fails with ErrRead, or ErrParse when the input is not numeric.
	PromptNumber(text string) (float64, error)

	// Notify and NotifyError display a message. Fail with ErrWrite.
	Notify(text string) error
	NotifyError(text string) error

	// ChooseOne shows a numbered menu and returns the 1-based choice or Cancel.
	ChooseOne(title string, options []string) (int, error)
}
