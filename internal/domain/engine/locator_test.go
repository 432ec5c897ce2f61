//go:build unit

package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gerritforge/internal/domain/engine"
	"github.com/rios0rios0/gerritforge/internal/domain/entities"
	builders "github.com/rios0rios0/gerritforge/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/gerritforge/test/infrastructure/repositorydoubles"
)

func newRepoContext() *entities.RepoContext {
	return &entities.RepoContext{
		Repository: "app",
		Head:       "master",
		Project:    entities.ProjectInfo{Name: "app", State: entities.ProjectStateActive},
		LocalDir:   "/work/app",
	}
}

func TestChangeLocator(t *testing.T) {
	t.Parallel()

	t.Run("should restrict the search to own changes in the context repository", func(t *testing.T) {
		t.Parallel()

		// given
		gerrit := &doubles.SpyGerritRepository{}
		locator := engine.NewChangeLocator(gerrit)

		// when
		_, err := locator.FindOwnChanges(context.Background(), newRepoContext(),
			entities.Filter{Owner: "someone", State: entities.PRStateOpen, Topic: "deps"}, false)

		// then
		require.NoError(t, err)
		require.Len(t, gerrit.Queries, 1)
		assert.Equal(t, "owner:self+project:app+status:open+topic:deps", gerrit.Queries[0].String())
		assert.Equal(t, entities.SearchOptions(), gerrit.Queries[0].Options)
		assert.Equal(t, []bool{true}, gerrit.SearchCaches)
	})

	t.Run("should bypass the cache when refreshing", func(t *testing.T) {
		t.Parallel()

		// given
		gerrit := &doubles.SpyGerritRepository{}
		locator := engine.NewChangeLocator(gerrit)

		// when
		_, err := locator.FindOwnChanges(context.Background(), newRepoContext(), entities.Filter{}, true)

		// then
		require.NoError(t, err)
		assert.Equal(t, []bool{false}, gerrit.SearchCaches)
	})

	t.Run("should pick the last element of the search result", func(t *testing.T) {
		t.Parallel()

		// given
		gerrit := &doubles.SpyGerritRepository{
			SearchResults: [][]entities.Change{{
				builders.NewChangeBuilder().WithNumber(1).BuildChange(),
				builders.NewChangeBuilder().WithNumber(2).BuildChange(),
				builders.NewChangeBuilder().WithNumber(3).BuildChange(),
			}},
		}
		locator := engine.NewChangeLocator(gerrit)

		// when
		change, err := locator.FindChange(context.Background(), newRepoContext(), entities.Filter{}, false)

		// then
		require.NoError(t, err)
		require.NotNil(t, change)
		assert.Equal(t, 3, change.Number)
	})

	t.Run("should return nil when nothing matches", func(t *testing.T) {
		t.Parallel()

		// given
		locator := engine.NewChangeLocator(&doubles.SpyGerritRepository{})

		// when
		change, err := locator.FindChange(context.Background(), newRepoContext(), entities.Filter{}, false)

		// then
		require.NoError(t, err)
		assert.Nil(t, change)
	})

	t.Run("should propagate search failures", func(t *testing.T) {
		t.Parallel()

		// given
		searchErr := errors.New("connection refused")
		locator := engine.NewChangeLocator(&doubles.SpyGerritRepository{SearchErr: searchErr})

		// when
		_, err := locator.FindChange(context.Background(), newRepoContext(), entities.Filter{}, false)

		// then
		require.ErrorIs(t, err, searchErr)
	})
}
