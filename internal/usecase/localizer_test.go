package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"parley/internal/domain/entity"
)

func TestTranslatePassesThroughRegularMessages(t *testing.T) {
	localizer := NewSystemMessageLocalizer(fakeCatalog{})
	message := &entity.Message{Text: "hello", IsSystem: false}

	translated := localizer.TranslateMessageIfSystem(message, "en")

	assert.Same(t, message, translated)
}

func TestTranslateSystemMessage(t *testing.T) {
	localizer := NewSystemMessageLocalizer(fakeCatalog{})
	message := &entity.Message{
		Text:       KeyRename,
		IsSystem:   true,
		SystemArgs: `["Alice","Team"]`,
	}

	translated := localizer.TranslateMessageIfSystem(message, "en")

	assert.Equal(t, KeyRename+"|Alice,Team", translated.Text)

	// The stored message is never mutated; translation is idempotent.
	assert.Equal(t, KeyRename, message.Text)
	assert.Equal(t, `["Alice","Team"]`, message.SystemArgs)
	again := localizer.TranslateMessageIfSystem(message, "en")
	assert.Equal(t, translated.Text, again.Text)
}

func TestTranslateLastMessage(t *testing.T) {
	localizer := NewSystemMessageLocalizer(fakeCatalog{})
	last := &entity.LastMessage{
		Text:       KeySelfRemove,
		IsSystem:   true,
		SystemArgs: `["Bob"]`,
	}

	translated := localizer.TranslateLastMessage(last, "fr")

	assert.Equal(t, KeySelfRemove+"|Bob", translated.Text)
	assert.Equal(t, KeySelfRemove, last.Text)
	assert.Nil(t, localizer.TranslateLastMessage(nil, "fr"))
}

func TestTranslateMalformedArgs(t *testing.T) {
	localizer := NewSystemMessageLocalizer(fakeCatalog{})
	message := &entity.Message{
		Text:       KeyDropName,
		IsSystem:   true,
		SystemArgs: `not-json`,
	}

	translated := localizer.TranslateMessageIfSystem(message, "en")

	assert.Equal(t, KeyDropName+"|", translated.Text)
}
