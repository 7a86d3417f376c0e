package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validClassification() *Classification {
	return &Classification{
		RootCategory: "Natural Sciences",
		SubCategory:  "Physics",
		Questions: []Question{
			{Prompt: "q1", Options: []string{"A) a", "B) b"}, Correct: "A"},
			{Prompt: "q2", Options: []string{"A) a", "B) b", "C) c"}, Correct: "C"},
			{Prompt: "q3", Options: []string{"A) a", "B) b", "C) c", "D) d"}, Correct: "B"},
		},
	}
}

func TestClassification_Validate(t *testing.T) {
	assert.NoError(t, validClassification().Validate())

	var nilClassification *Classification
	assert.Error(t, nilClassification.Validate())

	tests := []struct {
		name   string
		mutate func(c *Classification)
	}{
		{"missing root category", func(c *Classification) { c.RootCategory = " " }},
		{"too few questions", func(c *Classification) { c.Questions = c.Questions[:2] }},
		{"too many questions", func(c *Classification) { c.Questions = append(c.Questions, c.Questions[0]) }},
		{"single option", func(c *Classification) { c.Questions[1].Options = []string{"A) only"} }},
		{"missing correct marker", func(c *Classification) { c.Questions[2].Correct = "" }},
		{"empty prompt", func(c *Classification) { c.Questions[0].Prompt = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validClassification()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestVideoURLs(t *testing.T) {
	v := &Video{ID: "dQw4w9WgXcQ"}
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", v.WatchURL())
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", EmbedURL(v.ID))
}

func TestAtlas(t *testing.T) {
	assert.Len(t, Atlas, 6)
	for _, topic := range Atlas {
		assert.Len(t, topic.SubCategories, 5, topic.Root)
	}
	assert.Equal(t, "Formal Sciences", RootCategories()[0])
	assert.True(t, IsRootCategory("Humanities"))
	assert.False(t, IsRootCategory("Cooking"))
}
