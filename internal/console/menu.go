// Package console implements core.Prompter over a line-oriented text stream.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/carte/pkg/core"
	"github.com/aretw0/carte/pkg/handler"
)

const (
	// DefaultSelectText is shown when ChooseOne gets an empty title.
	DefaultSelectText = "Select item: "
	// InvalidItemMessage is shown when the selection is out of range or not a number.
	InvalidItemMessage = "Please enter the correct menu item number."
)

// Menu reads answers from in and writes menus and messages to out.
type Menu struct {
	in  *bufio.Reader
	out io.Writer
}

var _ core.Prompter = (*Menu)(nil)

// NewMenu creates a menu over the given streams.
func NewMenu(in io.Reader, out io.Writer) *Menu {
	return &Menu{in: bufio.NewReader(in), out: out}
}

// Prompt writes text and returns the next input line without its line ending.
// Running out of input is an ErrRead.
func (m *Menu) Prompt(text string) (string, error) {
	if err := m.write(text); err != nil {
		return "", err
	}
	line, err := m.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("%w: %v", core.ErrRead, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// PromptNumber reads a line and parses it as a number.
func (m *Menu) PromptNumber(text string) (float64, error) {
	line, err := m.Prompt(text)
	if err != nil {
		return 0, err
	}
	return handler.ParseNumber(line)
}

func (m *Menu) Notify(text string) error {
	return m.write(text + "\n")
}

func (m *Menu) NotifyError(text string) error {
	return m.write(text + "\n")
}

// ChooseOne lists options numbered from 1 followed by "0. Cancel." and
// reads a selection, asking again until it gets a listed number.
func (m *Menu) ChooseOne(title string, options []string) (int, error) {
	if title == "" {
		title = DefaultSelectText
	}

	var b strings.Builder
	for i, opt := range options {
		fmt.Fprintf(&b, "%d. %s\n", i+1, opt)
	}
	fmt.Fprintf(&b, "%d. Cancel.\n", core.Cancel)
	if err := m.write(b.String()); err != nil {
		return core.Cancel, err
	}

	for {
		line, err := m.Prompt(title)
		if err != nil {
			return core.Cancel, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && n >= 0 && n <= len(options) {
			return n, nil
		}
		if err := m.NotifyError(InvalidItemMessage); err != nil {
			return core.Cancel, err
		}
	}
}

// Show writes a single record.
func (m *Menu) Show(model core.Model) error {
	return m.write(model.String())
}

// ShowList writes each record under a numbered "<kind> <n>" heading.
func (m *Menu) ShowList(models []core.Model) error {
	var b strings.Builder
	for i, model := range models {
		fmt.Fprintf(&b, "%s %d\n%s\n", model.Kind, i+1, model.String())
	}
	return m.write(b.String())
}

func (m *Menu) write(s string) error {
	if _, err := io.WriteString(m.out, s); err != nil {
		return fmt.Errorf("%w: %v", core.ErrWrite, err)
	}
	return nil
}
