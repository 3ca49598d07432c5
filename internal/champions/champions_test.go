package champions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameFromID(t *testing.T) {
	assert.Equal(t, "Azir", NameFromID(268))
	assert.Equal(t, "Ahri", NameFromID(103))
	assert.Equal(t, "Unknown(999999)", NameFromID(999999))
}

func TestMasteryIcon(t *testing.T) {
	assert.Equal(t, "🎯", MasteryIcon(0))
	assert.Equal(t, "✨", MasteryIcon(3))
	assert.Equal(t, "", MasteryIcon(4))
	assert.Equal(t, "", MasteryIcon(-1))
}
