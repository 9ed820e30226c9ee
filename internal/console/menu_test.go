package console_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/carte/internal/console"
	"github.com/aretw0/carte/pkg/core"
)

func newMenu(input string) (*console.Menu, *strings.Builder) {
	var out strings.Builder
	return console.NewMenu(strings.NewReader(input), &out), &out
}

func TestMenu_Prompt(t *testing.T) {
	m, out := newMenu("Borscht\r\nlast line without newline")

	v, err := m.Prompt("Enter name: ")
	require.NoError(t, err)
	assert.Equal(t, "Borscht", v)

	v, err = m.Prompt("Enter name: ")
	require.NoError(t, err)
	assert.Equal(t, "last line without newline", v)

	_, err = m.Prompt("Enter name: ")
	assert.ErrorIs(t, err, core.ErrRead)

	assert.Equal(t, strings.Repeat("Enter name: ", 3), out.String())
}

func TestMenu_PromptNumber(t *testing.T) {
	m, _ := newMenu("4.5\nabc\n")

	f, err := m.PromptNumber("Enter price: ")
	require.NoError(t, err)
	assert.Equal(t, 4.5, f)

	_, err = m.PromptNumber("Enter price: ")
	assert.ErrorIs(t, err, core.ErrParse)
}

func TestMenu_ChooseOne(t *testing.T) {
	t.Run("Re-asks on Invalid Input", func(t *testing.T) {
		m, out := newMenu("x\n5\n-1\n2\n")

		n, err := m.ChooseOne("", []string{"Yes", "No"})
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		assert.True(t, strings.HasPrefix(out.String(), "1. Yes\n2. No\n0. Cancel.\n"))
		assert.Equal(t, 3, strings.Count(out.String(), console.InvalidItemMessage))
		assert.Equal(t, 4, strings.Count(out.String(), console.DefaultSelectText))
	})

	t.Run("Zero Cancels", func(t *testing.T) {
		m, _ := newMenu("0\n")
		n, err := m.ChooseOne("Select dish to operate: ", []string{"Borscht"})
		require.NoError(t, err)
		assert.Equal(t, core.Cancel, n)
	})

	t.Run("Input Exhausted", func(t *testing.T) {
		m, _ := newMenu("9\n")
		_, err := m.ChooseOne("", []string{"Yes"})
		assert.ErrorIs(t, err, core.ErrRead)
	})
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestMenu_WriteFailure(t *testing.T) {
	m := console.NewMenu(strings.NewReader("1\n"), brokenWriter{})

	assert.ErrorIs(t, m.Notify("hello"), core.ErrWrite)
	_, err := m.ChooseOne("", []string{"Yes"})
	assert.ErrorIs(t, err, core.ErrWrite)
	_, err = m.Prompt("Enter name: ")
	assert.ErrorIs(t, err, core.ErrWrite)
}

func TestMenu_ShowList(t *testing.T) {
	m, out := newMenu("")
	models := []core.Model{
		core.NewModel("dish", core.Attribute{Name: "name", Value: "Borscht"}, core.Attribute{Name: "price", Value: "4.5"}),
		core.NewModel("dish", core.Attribute{Name: "name", Value: "Shchi"}),
	}

	require.NoError(t, m.ShowList(models))
	assert.Equal(t, "dish 1\nname: Borscht\nprice: 4.5\n\ndish 2\nname: Shchi\n\n", out.String())
}
