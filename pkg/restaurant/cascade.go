package restaurant

import (
	"context"

	"github.com/aretw0/carte/pkg/core"
)

// Action is what a cascade would do to the dishes of a category.
type Action int

const (
	// Rename moves the affected dishes to the category's new name.
	Rename Action = iota + 1
	// Remove deletes the affected dishes.
	Remove
)

func (a Action) String() string {
	switch a {
	case Rename:
		return "rename"
	case Remove:
		return "remove"
	default:
		return "none"
	}
}

// Decision describes a pending cascade: the dishes still pointing at
// Category and what accepting would do to them.
type Decision struct {
	Action   Action
	Category string
	// NewName is set for Rename only.
	NewName  string
	Affected []core.Model
}

// Empty reports whether accepting would change nothing.
func (d Decision) Empty() bool {
	return len(d.Affected) == 0
}

// Question is the yes/no question put to a user.
func (d Decision) Question() string {
	if d.Action == Remove {
		return "There are dishes with this category. Remove them?"
	}
	return "There are dishes with this category. Change their category?"
}

// Decider accepts or declines a cascade.
// Declining is a normal outcome; an error means no answer could be obtained.
type Decider interface {
	Decide(ctx context.Context, d Decision) (bool, error)
}

// DeciderFunc adapts a function to Decider.
type DeciderFunc func(ctx context.Context, d Decision) (bool, error)

func (f DeciderFunc) Decide(ctx context.Context, d Decision) (bool, error) {
	return f(ctx, d)
}

// Always returns a Decider that gives the same answer to every cascade.
func Always(accept bool) Decider {
	return DeciderFunc(func(context.Context, Decision) (bool, error) {
		return accept, nil
	})
}

var yesNo = []string{"Yes", "No"}

// PromptDecider asks through p with a Yes/No menu. Cancel counts as No.
func PromptDecider(p core.Prompter) Decider {
	return DeciderFunc(func(ctx context.Context, d Decision) (bool, error) {
		if err := p.Notify(d.Question()); err != nil {
			return false, err
		}
		choice, err := p.ChooseOne("", yesNo)
		if err != nil {
			return false, err
		}
		return choice == 1, nil
	})
}
