// Package notion publishes meeting minutes as pages in a Notion
// database, adapting to whatever property schema the database has.
package notion

import (
	"sort"

	"github.com/jomei/notionapi"
)

// Bindings names the database properties a minutes page binds to.
// An empty key means the database has no property of that type.
type Bindings struct {
	TitleKey string
	DateKey  string
}

// SelectBindings scans the database schema for the first title-type and
// first date-type property. Property maps carry no declaration order,
// so "first" means first by sorted property name, which keeps the
// choice stable across calls.
func SelectBindings(props notionapi.PropertyConfigs) Bindings {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	var b Bindings
	for _, name := range names {
		switch props[name].GetType() {
		case notionapi.PropertyConfigTypeTitle:
			if b.TitleKey == "" {
				b.TitleKey = name
			}
		case notionapi.PropertyConfigTypeDate:
			if b.DateKey == "" {
				b.DateKey = name
			}
		}
	}
	return b
}
