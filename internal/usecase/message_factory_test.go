package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/internal/domain/entity"
	"parley/pkg/errors"
)

func TestCreateRegularMessage(t *testing.T) {
	factory := NewMessageFactory()
	author := participantFixture("a", "Alice")
	receivers := []*entity.Participant{participantFixture("b", "Bob")}

	message, err := factory.Create(author, receivers, "hello", false, nil, nil)

	require.NoError(t, err)
	assert.NotEmpty(t, message.ID)
	assert.Equal(t, "a", message.AuthorID)
	assert.Equal(t, "Alice", message.AuthorName)
	assert.Equal(t, "hello", message.Text)
	assert.False(t, message.IsSystem)
	assert.Empty(t, message.SystemArgs)
	assert.False(t, message.CreatedAt.IsZero())
}

func TestCreateMessageBlankText(t *testing.T) {
	factory := NewMessageFactory()
	author := participantFixture("a", "Alice")
	receivers := []*entity.Participant{participantFixture("b", "Bob")}

	_, err := factory.Create(author, receivers, "  \t ", false, nil, nil)

	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
	assert.NotEmpty(t, errors.Field(err, "text"))
}

func TestCreateMessageWithoutReceivers(t *testing.T) {
	factory := NewMessageFactory()

	_, err := factory.Create(participantFixture("a", "Alice"), nil, "hello", false, nil, nil)

	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

func TestCreateSystemMessage(t *testing.T) {
	factory := NewMessageFactory()
	author := participantFixture("a", "Alice")
	subject := participantFixture("c", "Carol")
	receivers := []*entity.Participant{participantFixture("b", "Bob"), subject}

	message, err := factory.Create(author, receivers, KeyAddParticipant, true, []string{"Alice", "Carol"}, subject)

	require.NoError(t, err)
	assert.True(t, message.IsSystem)
	assert.Equal(t, KeyAddParticipant, message.Text)
	assert.JSONEq(t, `["Alice","Carol"]`, message.SystemArgs)
	assert.Equal(t, "c", message.SubjectID)
	assert.Equal(t, "Carol", message.SubjectName)
}

// A system message carries a key, not literal text; the blank-text rule
// does not apply to it.
func TestCreateSystemMessageSkipsTextValidation(t *testing.T) {
	factory := NewMessageFactory()
	author := participantFixture("a", "Alice")
	receivers := []*entity.Participant{participantFixture("b", "Bob")}

	message, err := factory.Create(author, receivers, KeyDropName, true, []string{"Alice"}, nil)

	require.NoError(t, err)
	assert.Equal(t, KeyDropName, message.Text)
}
