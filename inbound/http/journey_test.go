package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"design-folio/model"
)

func TestNormalizeJourneyCreate(t *testing.T) {
	t.Run("missing id", func(t *testing.T) {
		_, err := normalizeJourneyCreate(model.JourneyEntryInput{Title: strPtr("Freelance")})
		require.Error(t, err)
	})

	t.Run("body paragraphs from string", func(t *testing.T) {
		entry, err := normalizeJourneyCreate(model.JourneyEntryInput{
			ID:    strPtr("freelance"),
			Title: strPtr("Freelance"),
			Body:  "Started out on my own.\n\n  Second chapter.  \n",
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"Started out on my own.", "Second chapter."}, entry.Body)
	})

	t.Run("body paragraphs from list", func(t *testing.T) {
		entry, err := normalizeJourneyCreate(model.JourneyEntryInput{
			ID:    strPtr("freelance"),
			Title: strPtr("Freelance"),
			Body:  []any{" First ", "", "Second"},
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"First", "Second"}, entry.Body)
	})
}

func TestNormalizeJourneyUpdate(t *testing.T) {
	existing := model.JourneyEntry{
		ID:     "freelance",
		Title:  "Freelance",
		Period: "2019-2021",
		Body:   []string{"Started out on my own."},
	}

	t.Run("omitted body is preserved", func(t *testing.T) {
		updated, idChanged, err := normalizeJourneyUpdate(existing, model.JourneyEntryInput{
			Period: strPtr("2019-2022"),
		})
		require.NoError(t, err)

		assert.False(t, idChanged)
		assert.Equal(t, "2019-2022", updated.Period)
		assert.Equal(t, existing.Body, updated.Body)
	})

	t.Run("rename flags id change", func(t *testing.T) {
		updated, idChanged, err := normalizeJourneyUpdate(existing, model.JourneyEntryInput{
			ID: strPtr("Studio-Years"),
		})
		require.NoError(t, err)

		assert.True(t, idChanged)
		assert.Equal(t, "studio-years", updated.ID)
	})
}
