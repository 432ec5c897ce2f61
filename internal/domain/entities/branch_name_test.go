//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/gerritforge/internal/domain/entities"
	builders "github.com/rios0rios0/gerritforge/test/domain/entitybuilders"
)

func TestSplitTopicAndBranch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected entities.BranchTarget
		encoded  bool
	}{
		{
			name:     "should keep a plain branch",
			input:    "main",
			expected: entities.BranchTarget{Branch: "main"},
		},
		{
			name:     "should decode a topic",
			input:    "main%topic=deps",
			expected: entities.BranchTarget{Branch: "main", Topic: "deps"},
			encoded:  true,
		},
		{
			name:     "should decode a hashtag",
			input:    "release/1.x%t=go",
			expected: entities.BranchTarget{Branch: "release/1.x", Hashtag: "go"},
			encoded:  true,
		},
		{
			name:     "should decode a topic and a hashtag",
			input:    "main%topic=deps%t=go",
			expected: entities.BranchTarget{Branch: "main", Topic: "deps", Hashtag: "go"},
			encoded:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			target, encoded := entities.SplitTopicAndBranch(tt.input)

			// then
			assert.Equal(t, tt.expected, target)
			assert.Equal(t, tt.encoded, encoded)
			assert.Equal(t, tt.input, target.String())
		})
	}
}

func TestBranchTargetFromChange(t *testing.T) {
	t.Parallel()

	t.Run("should encode the topic and only the first hashtag", func(t *testing.T) {
		t.Parallel()

		// given
		change := builders.NewChangeBuilder().
			WithBranch("main").
			WithTopic("deps").
			WithHashtags("go", "security").
			BuildChange()

		// when
		target := entities.BranchTargetFromChange(change)

		// then
		assert.Equal(t, "main%topic=deps%t=go", target.String())
	})

	t.Run("should build the filter of the target", func(t *testing.T) {
		t.Parallel()

		// given
		target := entities.BranchTarget{Branch: "main", Topic: "deps"}

		// when
		filter := target.Filter(entities.PRStateOpen)

		// then
		assert.Equal(t, entities.Filter{State: entities.PRStateOpen, Branch: "main", Topic: "deps"}, filter)
		assert.Equal(t, "sourceBranch-deps/go", entities.SourceBranchHashtag("deps/go"))
	})
}
