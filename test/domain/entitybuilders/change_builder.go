//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"fmt"
	"maps"
	"slices"

	"github.com/rios0rios0/gerritforge/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

const (
	defaultChangeNumber   = 1
	defaultChangeRevision = "0000000000000000000000000000000000000001"
)

// ChangeBuilder helps create test changes with a fluent interface.
type ChangeBuilder struct {
	*testkit.BaseBuilder
	changeID    string
	number      int
	project     string
	branch      string
	topic       string
	hashtags    []string
	subject     string
	status      entities.ChangeStatus
	submittable bool
	problems    []entities.ProblemInfo
	mergeable   *bool
	revision    string
	labels      map[string]entities.LabelInfo
	reviewers   map[string][]entities.AccountInfo
}

// NewChangeBuilder creates a new change builder with sensible defaults: an
// open change on main with one revision and no labels.
func NewChangeBuilder() *ChangeBuilder {
	b := &ChangeBuilder{BaseBuilder: testkit.NewBaseBuilder()}
	b.defaults()
	return b
}

func (b *ChangeBuilder) defaults() {
	b.changeID = "I0000000000000000000000000000000000000001"
	b.number = defaultChangeNumber
	b.project = "app"
	b.branch = "main"
	b.topic = ""
	b.hashtags = nil
	b.subject = "Update dependencies"
	b.status = entities.ChangeStatusNew
	b.submittable = false
	b.problems = nil
	b.mergeable = nil
	b.revision = defaultChangeRevision
	b.labels = nil
	b.reviewers = nil
}

// WithChangeID sets the Change-Id.
func (b *ChangeBuilder) WithChangeID(changeID string) *ChangeBuilder {
	b.changeID = changeID
	return b
}

// WithNumber sets the change number.
func (b *ChangeBuilder) WithNumber(number int) *ChangeBuilder {
	b.number = number
	return b
}

// WithBranch sets the destination branch.
func (b *ChangeBuilder) WithBranch(branch string) *ChangeBuilder {
	b.branch = branch
	return b
}

// WithTopic sets the topic.
func (b *ChangeBuilder) WithTopic(topic string) *ChangeBuilder {
	b.topic = topic
	return b
}

// WithHashtags sets the hashtags.
func (b *ChangeBuilder) WithHashtags(hashtags ...string) *ChangeBuilder {
	b.hashtags = hashtags
	return b
}

// WithStatus sets the change status.
func (b *ChangeBuilder) WithStatus(status entities.ChangeStatus) *ChangeBuilder {
	b.status = status
	return b
}

// WithSubmittable sets the submittable flag.
func (b *ChangeBuilder) WithSubmittable(submittable bool) *ChangeBuilder {
	b.submittable = submittable
	return b
}

// WithProblem adds a consistency problem.
func (b *ChangeBuilder) WithProblem(message string) *ChangeBuilder {
	b.problems = append(b.problems, entities.ProblemInfo{Message: message, Status: "ERROR"})
	return b
}

// WithMergeable sets the mergeable flag.
func (b *ChangeBuilder) WithMergeable(mergeable bool) *ChangeBuilder {
	b.mergeable = &mergeable
	return b
}

// WithRevision sets the current revision sha. An empty sha builds a change
// without revisions.
func (b *ChangeBuilder) WithRevision(sha string) *ChangeBuilder {
	b.revision = sha
	return b
}

// WithLabel configures a label on the change.
func (b *ChangeBuilder) WithLabel(name string, label entities.LabelInfo) *ChangeBuilder {
	if b.labels == nil {
		b.labels = make(map[string]entities.LabelInfo)
	}
	b.labels[name] = label
	return b
}

// WithReviewers sets the reviewers field.
func (b *ChangeBuilder) WithReviewers(reviewers ...entities.AccountInfo) *ChangeBuilder {
	b.reviewers = map[string][]entities.AccountInfo{"REVIEWER": reviewers}
	return b
}

// Build creates the change (satisfies testkit.Builder interface).
func (b *ChangeBuilder) Build() interface{} {
	return b.BuildChange()
}

// BuildChange creates the change with a concrete return type.
func (b *ChangeBuilder) BuildChange() entities.Change {
	change := entities.Change{
		ChangeID:    b.changeID,
		Number:      b.number,
		Project:     b.project,
		Branch:      b.branch,
		Topic:       b.topic,
		Hashtags:    slices.Clone(b.hashtags),
		Subject:     b.subject,
		Status:      b.status,
		Submittable: b.submittable,
		Problems:    slices.Clone(b.problems),
		Mergeable:   b.mergeable,
		Labels:      maps.Clone(b.labels),
		Reviewers:   maps.Clone(b.reviewers),
	}
	if b.revision != "" {
		change.CurrentRevision = b.revision
		change.Revisions = map[string]entities.RevisionInfo{
			b.revision: {Number: 1, Ref: refFor(b.number)},
		}
	}
	return change
}

// BuildPointer creates the change and returns its address.
func (b *ChangeBuilder) BuildPointer() *entities.Change {
	change := b.BuildChange()
	return &change
}

// Reset clears the builder state, allowing it to be reused.
func (b *ChangeBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.defaults()
	return b
}

// Clone creates a deep copy of the ChangeBuilder.
func (b *ChangeBuilder) Clone() testkit.Builder {
	clone := *b
	clone.BaseBuilder = b.BaseBuilder.Clone().(*testkit.BaseBuilder)
	clone.hashtags = slices.Clone(b.hashtags)
	clone.problems = slices.Clone(b.problems)
	clone.labels = maps.Clone(b.labels)
	clone.reviewers = maps.Clone(b.reviewers)
	return &clone
}

// RefFor returns the patch-set ref the builder assigns to change number.
func RefFor(number int) string {
	return refFor(number)
}

func refFor(number int) string {
	return fmt.Sprintf("refs/changes/%02d/%d/1", number%100, number) //nolint:mnd // sharded by the last two digits
}
