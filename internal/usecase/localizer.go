package usecase

import (
	"encoding/json"

	"parley/internal/domain/entity"
	"parley/pkg/logger"
)

// SystemMessageLocalizer renders system messages for display. Translation
// happens at read time, per request locale; the stored message is never
// mutated.
type SystemMessageLocalizer struct {
	catalog SystemMessageCatalog
}

func NewSystemMessageLocalizer(catalog SystemMessageCatalog) *SystemMessageLocalizer {
	return &SystemMessageLocalizer{catalog: catalog}
}

// TranslateMessageIfSystem returns a transient copy of a system message
// with its key resolved against the catalog. Non-system messages pass
// through unchanged.
func (l *SystemMessageLocalizer) TranslateMessageIfSystem(message *entity.Message, locale string) *entity.Message {
	if !message.IsSystem {
		return message
	}

	translated := *message
	translated.Text = l.catalog.Resolve(message.Text, decodeSystemArgs(message.SystemArgs), locale)
	return &translated
}

// TranslateLastMessage does the same for the denormalized snapshot used in
// list views.
func (l *SystemMessageLocalizer) TranslateLastMessage(last *entity.LastMessage, locale string) *entity.LastMessage {
	if last == nil || !last.IsSystem {
		return last
	}

	translated := *last
	translated.Text = l.catalog.Resolve(last.Text, decodeSystemArgs(last.SystemArgs), locale)
	return &translated
}

func decodeSystemArgs(raw string) []string {
	if raw == "" {
		return nil
	}
	var args []string
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		logger.Warn("malformed system message args %q: %v", raw, err)
		return nil
	}
	return args
}
