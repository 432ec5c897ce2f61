//go:build unit

package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gerritforge/internal/domain/engine"
	"github.com/rios0rios0/gerritforge/internal/domain/entities"
	builders "github.com/rios0rios0/gerritforge/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/gerritforge/test/infrastructure/repositorydoubles"
)

func TestReviewApplier(t *testing.T) {
	t.Parallel()

	t.Run("EnsureMessage", func(t *testing.T) {
		t.Parallel()

		t.Run("should store the message once when posted twice", func(t *testing.T) {
			t.Parallel()

			// given
			gerrit := &doubles.SpyGerritRepository{}
			review := engine.NewReviewApplier(gerrit)
			ctx := context.Background()

			// when
			first, err1 := review.EnsureMessage(ctx, 7, "Bump x to 1.2.3\n")
			second, err2 := review.EnsureMessage(ctx, 7, "Bump x to 1.2.3\n")

			// then
			require.NoError(t, err1)
			require.NoError(t, err2)
			assert.True(t, first)
			assert.False(t, second)
			require.Len(t, gerrit.Messages[7], 1)
			assert.Equal(t, engine.MessageTag, gerrit.Messages[7][0].Tag)
		})

		t.Run("should skip when an existing message contains the trimmed text", func(t *testing.T) {
			t.Parallel()

			// given
			gerrit := &doubles.SpyGerritRepository{
				Messages: map[int][]entities.ChangeMessage{
					7: {{Message: "Patch Set 2:\n\nBump x to 1.2.3"}},
				},
			}
			review := engine.NewReviewApplier(gerrit)

			// when
			posted, err := review.EnsureMessage(context.Background(), 7, "  Bump x to 1.2.3\n\n")

			// then
			require.NoError(t, err)
			assert.False(t, posted)
			assert.Empty(t, gerrit.Reviews)
		})

		t.Run("should not post an empty message", func(t *testing.T) {
			t.Parallel()

			// given
			gerrit := &doubles.SpyGerritRepository{}
			review := engine.NewReviewApplier(gerrit)

			// when
			posted, err := review.EnsureMessage(context.Background(), 7, " \n")

			// then
			require.NoError(t, err)
			assert.False(t, posted)
			assert.Empty(t, gerrit.Reviews)
		})
	})

	t.Run("EnsureApproval", func(t *testing.T) {
		t.Parallel()

		t.Run("should vote +2 once and then find the label approved", func(t *testing.T) {
			t.Parallel()

			// given
			change := builders.NewChangeBuilder().
				WithNumber(7).
				WithLabel(entities.CodeReviewLabel, entities.LabelInfo{}).
				BuildPointer()
			gerrit := &doubles.SpyGerritRepository{Changes: map[int]*entities.Change{7: change}}
			review := engine.NewReviewApplier(gerrit)
			ctx := context.Background()

			// when
			first, err1 := review.EnsureApproval(ctx, 7)
			second, err2 := review.EnsureApproval(ctx, 7)

			// then
			require.NoError(t, err1)
			require.NoError(t, err2)
			assert.True(t, first)
			assert.False(t, second)
			require.Len(t, gerrit.Reviews, 1)
			assert.Equal(t, map[string]int{entities.CodeReviewLabel: 2}, gerrit.Reviews[0].Input.Labels)
			assert.Equal(t, []bool{false, false}, gerrit.DetailCaches)
		})

		t.Run("should not vote when the label is not configured", func(t *testing.T) {
			t.Parallel()

			// given
			change := builders.NewChangeBuilder().WithNumber(7).BuildPointer()
			gerrit := &doubles.SpyGerritRepository{Changes: map[int]*entities.Change{7: change}}
			review := engine.NewReviewApplier(gerrit)

			// when
			posted, err := review.EnsureApproval(context.Background(), 7)

			// then
			require.NoError(t, err)
			assert.False(t, posted)
			assert.Empty(t, gerrit.Reviews)
		})
	})

	t.Run("HasLabelOutcome", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name     string
			change   *entities.Change
			outcome  engine.LabelOutcome
			expected bool
		}{
			{
				name: "should report a rejected label",
				change: builders.NewChangeBuilder().WithNumber(7).
					WithLabel(entities.CodeReviewLabel, entities.LabelInfo{Rejected: &entities.AccountInfo{AccountID: 1}}).
					BuildPointer(),
				outcome:  engine.LabelRejected,
				expected: true,
			},
			{
				name: "should not report rejection for a label without votes",
				change: builders.NewChangeBuilder().WithNumber(7).
					WithLabel(entities.CodeReviewLabel, entities.LabelInfo{}).
					BuildPointer(),
				outcome:  engine.LabelRejected,
				expected: false,
			},
			{
				name:     "should not report rejection when the label is not configured",
				change:   builders.NewChangeBuilder().WithNumber(7).BuildPointer(),
				outcome:  engine.LabelRejected,
				expected: false,
			},
			{
				name: "should report an approved label",
				change: builders.NewChangeBuilder().WithNumber(7).
					WithLabel(entities.CodeReviewLabel, entities.LabelInfo{Approved: &entities.AccountInfo{AccountID: 1}}).
					BuildPointer(),
				outcome:  engine.LabelApproved,
				expected: true,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				// given
				gerrit := &doubles.SpyGerritRepository{Changes: map[int]*entities.Change{7: tt.change}}
				review := engine.NewReviewApplier(gerrit)

				// when
				result, err := review.HasLabelOutcome(context.Background(), 7, tt.outcome)

				// then
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			})
		}
	})
}
