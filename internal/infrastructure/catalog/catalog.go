package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"parley/pkg/logger"
)

// Catalog is an in-memory system-message catalog with matcher-based locale
// fallback. Templates interpolate positional string arguments.
type Catalog struct {
	matcher language.Matcher
	tags    []language.Tag
	tables  map[language.Tag]map[string]string
}

func New() *Catalog {
	tags := []language.Tag{language.English, language.French}
	return &Catalog{
		matcher: language.NewMatcher(tags),
		tags:    tags,
		tables: map[language.Tag]map[string]string{
			language.English: {
				"conversation.conference.created":     "%s created the conference",
				"conversation.add.participant":        "%s added %s",
				"conversation.remove.participant":     "%s removed %s",
				"conversation.selfremove.participant": "%s left the conversation",
				"conversation.rename":                 "%s renamed the conversation to %s",
				"conversation.drop.name":              "%s removed the conversation name",
			},
			language.French: {
				"conversation.conference.created":     "%s a créé la conférence",
				"conversation.add.participant":        "%s a ajouté %s",
				"conversation.remove.participant":     "%s a retiré %s",
				"conversation.selfremove.participant": "%s a quitté la conversation",
				"conversation.rename":                 "%s a renommé la conversation en %s",
				"conversation.drop.name":              "%s a supprimé le nom de la conversation",
			},
		},
	}
}

// Resolve renders the template for the best-matching locale. Unknown keys
// render as the key itself so a missing translation never hides the event.
func (c *Catalog) Resolve(key string, args []string, locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	_, index, _ := c.matcher.Match(tag)
	table := c.tables[c.tags[index]]

	template, ok := table[key]
	if !ok {
		logger.Warn("no catalog entry for key %q", key)
		return key
	}

	if strings.Count(template, "%s") != len(args) {
		logger.Warn("catalog key %q expects %d args, got %d", key, strings.Count(template, "%s"), len(args))
		return key
	}

	values := make([]interface{}, len(args))
	for i, arg := range args {
		values[i] = arg
	}
	return fmt.Sprintf(template, values...)
}
