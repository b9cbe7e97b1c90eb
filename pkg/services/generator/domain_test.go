package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSelection(t *testing.T) {

	t.Run("ReturnsSelectionForSingleMode", func(t *testing.T) {

		// act
		selection, err := NewSelection(true, false, false, "", nil, Overrides{})

		assert.Nil(t, err)
		assert.Equal(t, ModeAll, selection.Mode)
	})

	t.Run("ReturnsNamedModeForIntegrationNames", func(t *testing.T) {

		// act
		selection, err := NewSelection(false, false, false, "", []string{"nagios", "papertrail"}, Overrides{})

		assert.Nil(t, err)
		assert.Equal(t, ModeNamed, selection.Mode)
		assert.Equal(t, []string{"nagios", "papertrail"}, selection.Names)
	})

	t.Run("ReturnsSkipUntilModeForSkipUntilName", func(t *testing.T) {

		// act
		selection, err := NewSelection(false, false, false, "nagios", nil, Overrides{})

		assert.Nil(t, err)
		assert.Equal(t, ModeSkipUntil, selection.Mode)
		assert.Equal(t, "nagios", selection.SkipUntil)
	})

	t.Run("ReturnsErrorWhenNoModeIsChosen", func(t *testing.T) {

		// act
		_, err := NewSelection(false, false, false, "", nil, Overrides{})

		assert.NotNil(t, err)
	})

	t.Run("ReturnsErrorWhenTwoModesAreChosen", func(t *testing.T) {

		// act
		_, err := NewSelection(true, true, false, "", nil, Overrides{})

		assert.NotNil(t, err)
	})

	t.Run("ReturnsErrorWhenBatchModeIsCombinedWithNames", func(t *testing.T) {

		// act
		_, err := NewSelection(true, false, false, "", []string{"nagios"}, Overrides{})

		assert.NotNil(t, err)
	})
}

func TestOverridesAny(t *testing.T) {

	t.Run("ReturnsFalseForZeroValue", func(t *testing.T) {

		assert.False(t, Overrides{}.Any())
	})

	t.Run("ReturnsTrueWhenAnyFieldIsSet", func(t *testing.T) {

		assert.True(t, Overrides{FixtureName: "x.json"}.Any())
		assert.True(t, Overrides{UseBasicAuth: true}.Any())
		assert.True(t, Overrides{Topic: "topic"}.Any())
		assert.True(t, Overrides{CustomHeaders: map[string]string{"X-Event-Key": "push"}}.Any())
	})
}

func TestModeString(t *testing.T) {

	t.Run("ReturnsNameForEveryMode", func(t *testing.T) {

		assert.Equal(t, "all", ModeAll.String())
		assert.Equal(t, "webhook", ModeWebhook.String())
		assert.Equal(t, "fixtureless", ModeFixtureless.String())
		assert.Equal(t, "skipuntil", ModeSkipUntil.String())
		assert.Equal(t, "named", ModeNamed.String())
	})
}
