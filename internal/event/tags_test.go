package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTags(t *testing.T) {
	got := ExtractTags("morning run #fitness #Outdoors then call mom #family #fitness")
	assert.Equal(t, []string{"fitness", "outdoors", "family"}, got)
}

func TestExtractTagsNone(t *testing.T) {
	assert.Nil(t, ExtractTags("no tags here"))
}
