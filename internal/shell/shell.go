// Package shell runs the interactive menu session over a catalog.
package shell

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/carte/internal/console"
	"github.com/aretw0/carte/pkg/core"
	"github.com/aretw0/carte/pkg/handler"
	"github.com/aretw0/carte/pkg/restaurant"
)

// Messages shown by the session.
const (
	MsgMainMenu       = "Main menu"
	MsgWriteFailed    = "Modifying database failed."
	MsgChangeAttrs    = "You can change the following attributes:"
	MsgModifyFailed   = "Some error occurred."
	MsgImportComplete = "Import complete."
	MsgImportFailed   = "Import error!"
	MsgFileNotFound   = "File is not found!"
)

var (
	mainMenu   = []string{"Work with dishes", "Work with categories"}
	kindMenu   = []string{"Show all", "Find", "Add", "Import"}
	findMenu   = []string{"Find concrete", "Find by attribute\n  (works with templates:\n  * - an arbitrary number of characters,\n  ? - one character)"}
	opMenu     = []string{"Modify", "Remove"}
	importMenu = []string{"Import from file"}
	removeAll  = "remove all"
)

// Session drives the menu flow. It is not safe for concurrent use.
type Session struct {
	catalog *restaurant.Catalog
	menu    *console.Menu
	logger  *slog.Logger
}

// New creates a session reading and writing through menu.
func New(catalog *restaurant.Catalog, menu *console.Menu, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{catalog: catalog, menu: menu, logger: logger}
}

// Run shows the main menu until the user cancels it.
//
// Failed writes are reported and the session goes back to the main menu.
// Input and output failures end the session with the error, since there is
// no channel left to report them on.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := s.menu.Notify(MsgMainMenu); err != nil {
			return err
		}
		choice, err := s.menu.ChooseOne("", mainMenu)
		if err != nil {
			return err
		}

		switch choice {
		case core.Cancel:
			return nil
		case 1:
			err = s.workWith(ctx, s.catalog.Dishes())
		case 2:
			err = s.workWith(ctx, s.catalog.Categories())
		}
		if err := s.recover(ctx, err); err != nil {
			return err
		}
	}
}

// recover reports err to the user when the session can go on and returns
// it otherwise.
func (s *Session) recover(ctx context.Context, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, core.ErrRead), errors.Is(err, core.ErrWrite):
		return err
	default:
		s.logger.ErrorContext(ctx, "operation failed", "error", err)
		return s.menu.NotifyError(MsgWriteFailed)
	}
}

func (s *Session) workWith(ctx context.Context, h handler.Handler) error {
	for {
		if err := s.menu.Notify("Working with " + h.Kind()); err != nil {
			return err
		}
		choice, err := s.menu.ChooseOne("", kindMenu)
		if err != nil {
			return err
		}

		switch choice {
		case core.Cancel:
			return nil
		case 1:
			err = s.findByAttribute(ctx, h, h.DefaultAttribute(), "*")
		case 2:
			err = s.find(ctx, h)
		case 3:
			err = s.add(ctx, h)
		case 4:
			err = s.importFile(ctx, h)
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) add(ctx context.Context, h handler.Handler) error {
	m, err := h.ReadModel(s.menu)
	if err != nil {
		return err
	}
	added, err := h.Add(ctx, m)
	if err != nil {
		return err
	}
	if added {
		return s.menu.Notify(h.Kind() + " has been added")
	}
	return s.menu.Notify(h.Kind() + " already exists")
}

func (s *Session) find(ctx context.Context, h handler.Handler) error {
	choice, err := s.menu.ChooseOne("", findMenu)
	if err != nil {
		return err
	}

	switch choice {
	case 1:
		candidate, err := h.ReadModel(s.menu)
		if err != nil {
			return err
		}
		found, ok := h.FindExact(ctx, candidate)
		if !ok {
			return s.menu.Notify(h.Kind() + " doesn't exist.")
		}
		if err := s.menu.Notify("Found " + h.Kind() + ":"); err != nil {
			return err
		}
		if err := s.menu.Show(found); err != nil {
			return err
		}
		return s.operate(ctx, h, found)
	case 2:
		names := h.AttributeNames()
		pick, err := s.menu.ChooseOne("", names)
		if err != nil || pick == core.Cancel {
			return err
		}
		attr, err := h.BuildAttribute(names[pick-1], s.menu)
		if err != nil {
			return err
		}
		return s.findByAttribute(ctx, h, attr.Name, attr.Value)
	}
	return nil
}

// findByAttribute lists the matches and lets the user pick one to operate
// on, or remove them all.
func (s *Session) findByAttribute(ctx context.Context, h handler.Handler, name, pattern string) error {
	found := h.FindByAttribute(ctx, name, pattern)
	if len(found) == 0 {
		return s.menu.Notify(h.Kind() + " doesn't exist.")
	}
	if err := s.menu.ShowList(found); err != nil {
		return err
	}

	options := make([]string, 0, len(found)+1)
	for _, m := range found {
		options = append(options, m.Value(h.DefaultAttribute()))
	}
	options = append(options, removeAll)

	choice, err := s.menu.ChooseOne("Select "+h.Kind()+" to operate: ", options)
	if err != nil {
		return err
	}
	switch {
	case choice == len(options):
		for _, m := range found {
			if err := s.remove(ctx, h, m); err != nil {
				return err
			}
		}
		return nil
	case choice != core.Cancel:
		return s.operate(ctx, h, found[choice-1])
	}
	return nil
}

func (s *Session) operate(ctx context.Context, h handler.Handler, m core.Model) error {
	if err := s.menu.Notify("Selected " + h.Kind() + ":"); err != nil {
		return err
	}
	if err := s.menu.Show(m); err != nil {
		return err
	}

	choice, err := s.menu.ChooseOne("", opMenu)
	if err != nil {
		return err
	}
	switch choice {
	case 1:
		return s.modify(ctx, h, m)
	case 2:
		return s.remove(ctx, h, m)
	}
	return nil
}

// modify keeps offering attributes to change until the user cancels.
// m tracks the record so later changes still find it.
func (s *Session) modify(ctx context.Context, h handler.Handler, m core.Model) error {
	names := h.AttributeNames()
	for {
		if err := s.menu.Notify(MsgChangeAttrs); err != nil {
			return err
		}
		choice, err := s.menu.ChooseOne("", names)
		if err != nil || choice == core.Cancel {
			return err
		}

		attr, err := h.BuildAttribute(names[choice-1], s.menu)
		if err != nil {
			return err
		}
		ok, err := h.ModifyAttribute(ctx, m, attr)
		if err != nil {
			return err
		}
		if !ok {
			if err := s.menu.Notify(MsgModifyFailed); err != nil {
				return err
			}
			continue
		}
		m.Set(attr.Name, attr.Value)
		if err := s.menu.Notify(h.Kind() + " has been modified."); err != nil {
			return err
		}
	}
}

func (s *Session) remove(ctx context.Context, h handler.Handler, m core.Model) error {
	ok, err := h.Remove(ctx, m)
	if err != nil {
		return err
	}
	if ok {
		return s.menu.Notify(h.Kind() + " has been removed.")
	}
	return s.menu.Notify(h.Kind() + " doesn't exist.")
}

// importFile asks for a path, or a glob, and imports it into h's kind.
func (s *Session) importFile(ctx context.Context, h handler.Handler) error {
	choice, err := s.menu.ChooseOne("", importMenu)
	if err != nil || choice != 1 {
		return err
	}

	path, err := s.menu.Prompt("Enter filename: ")
	if err != nil {
		return err
	}

	var n int
	if IsGlob(path) {
		n, err = s.catalog.ImportGlob(ctx, h.Kind(), path)
	} else {
		if _, statErr := os.Stat(path); statErr != nil {
			return s.menu.NotifyError(MsgFileNotFound)
		}
		n, err = s.catalog.ImportFile(ctx, h.Kind(), path)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "import failed", "kind", h.Kind(), "path", path, "error", err)
		return s.menu.NotifyError(MsgImportFailed)
	}

	s.logger.DebugContext(ctx, "import finished", "kind", h.Kind(), "added", n)
	return s.menu.Notify(MsgImportComplete)
}

// IsGlob reports whether path uses glob syntax.
func IsGlob(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}
