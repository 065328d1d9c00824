package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllDefinitionsCoversFullGrid(t *testing.T) {
	defs := AllDefinitions()
	assert.Len(t, defs, TotalAchievements)
	assert.Equal(t, 24, TotalAchievements)

	seen := make(map[string]bool, len(defs))
	for _, d := range defs {
		assert.False(t, seen[d.ID], "duplicate definition %s", d.ID)
		seen[d.ID] = true
		assert.True(t, IsValidCategory(d.Category))
		assert.NotEmpty(t, d.Title)
		assert.Equal(t, d.ID, d.ImageName)
	}
}

func TestAchievementID(t *testing.T) {
	assert.Equal(t, "learning_7", AchievementID("Learning", 7))
	assert.Equal(t, "health_90", AchievementID("Health", 90))
}

func TestAchievementTitleKnownPair(t *testing.T) {
	assert.Equal(t, "Knowledge Seeker", AchievementTitle("Learning", 7))
	assert.Equal(t, "Financial Guru", AchievementTitle("Finance", 90))
}

func TestAchievementTitleFallback(t *testing.T) {
	assert.Equal(t, "Learning Achievement", AchievementTitle("Learning", 11))
	assert.Equal(t, "Gardening Achievement", AchievementTitle("Gardening", 7))
}

func TestDefinitionFor(t *testing.T) {
	def := DefinitionFor("Work", 14)
	assert.Equal(t, "work_14", def.ID)
	assert.Equal(t, "Career Climber", def.Title)
	assert.Equal(t, "Complete 14 Work goals", def.Description)
	assert.Equal(t, 14, def.Milestone)
}
