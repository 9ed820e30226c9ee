package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/carte/internal/console"
	"github.com/aretw0/carte/internal/platform"
	"github.com/aretw0/carte/pkg/adapters/fs"
	"github.com/aretw0/carte/pkg/core"
	"github.com/aretw0/carte/pkg/handler"
	"github.com/aretw0/carte/pkg/restaurant"
)

// kindAliases maps the accepted spellings of a kind argument.
var kindAliases = map[string]string{
	"dish":       restaurant.KindDish,
	"dishes":     restaurant.KindDish,
	"category":   restaurant.KindCategory,
	"categories": restaurant.KindCategory,
}

func dataDir() string {
	return settings.GetString(cfgKeyDataDir)
}

func catalogOptions(extra ...platform.Option) []platform.Option {
	opts := []platform.Option{
		platform.WithLogger(slog.Default()),
		platform.WithFormat(settings.GetString(cfgKeyFormat)),
	}
	return append(opts, extra...)
}

// openCatalog opens the configured catalog with cascades answered as the
// cascade setting says, asking on the terminal for "ask".
func openCatalog(extra ...platform.Option) (*restaurant.Catalog, error) {
	decider, err := deciderFor(settings.GetString(cfgKeyCascade), console.NewMenu(os.Stdin, os.Stdout))
	if err != nil {
		return nil, err
	}
	opts := append(catalogOptions(extra...), platform.WithDecider(decider))
	return platform.New(dataDir(), opts...)
}

func deciderFor(mode string, p core.Prompter) (restaurant.Decider, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case cascadeAsk:
		return restaurant.PromptDecider(p), nil
	case cascadeYes:
		return restaurant.Always(true), nil
	case cascadeNo:
		return restaurant.Always(false), nil
	default:
		return nil, fmt.Errorf("invalid cascade mode %q: want %s, %s or %s", mode, cascadeAsk, cascadeYes, cascadeNo)
	}
}

func handlerFor(c *restaurant.Catalog, kind string) (handler.Handler, error) {
	if k, ok := kindAliases[strings.ToLower(kind)]; ok {
		kind = k
	}
	h, ok := c.Handler(kind)
	if !ok {
		return nil, fmt.Errorf("unknown kind %q: want dish or category", kind)
	}
	return h, nil
}

// parseAssignments turns "name=value" pairs into normalized attributes of
// h's kind, keeping their order.
func parseAssignments(h handler.Handler, pairs []string) ([]core.Attribute, error) {
	attrs := make([]core.Attribute, 0, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid assignment %q: want name=value", pair)
		}
		attr, err := h.Normalize(core.Attribute{Name: strings.TrimSpace(name), Value: value})
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

// buildRecord orders attrs by h's schema and requires every field.
func buildRecord(h handler.Handler, attrs []core.Attribute) (core.Model, error) {
	given := core.NewModel(h.Kind(), attrs...)
	m := core.NewModel(h.Kind())
	for _, name := range h.AttributeNames() {
		value, ok := given.Get(name)
		if !ok {
			return core.Model{}, fmt.Errorf("missing %s: set it with --set %s=...", name, name)
		}
		m.Set(name, value)
	}
	return m, nil
}

// printModels writes models as numbered text blocks, or as the same JSON
// document the store files use.
func printModels(w io.Writer, kind string, models []core.Model, asJSON bool) error {
	if asJSON {
		data, err := fs.NewJSONSerializer().Serialize(fs.Document{Kind: kind, Records: models})
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	return console.NewMenu(strings.NewReader(""), w).ShowList(models)
}

// reportCascade warns about a cascade that failed after the primary change
// was saved.
func reportCascade(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: dishes were not updated: %v\n", err)
	}
}
