package engine

import (
	"context"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gerritforge/internal/domain/entities"
	"github.com/rios0rios0/gerritforge/internal/domain/repositories"
)

const (
	// MessageTag marks messages posted by the engine.
	MessageTag = "pull-request"

	approvalValue = 2
)

// LabelOutcome selects which vote of a label is inspected.
type LabelOutcome string

const (
	LabelApproved LabelOutcome = "approved"
	LabelRejected LabelOutcome = "rejected"
)

// ReviewApplier posts review messages and the default approval idempotently.
// Check and act are separate calls, so a concurrent writer can still cause
// one duplicate post.
type ReviewApplier struct {
	gerrit repositories.GerritRepository
}

// NewReviewApplier creates a ReviewApplier backed by the given client.
func NewReviewApplier(gerrit repositories.GerritRepository) *ReviewApplier {
	return &ReviewApplier{gerrit: gerrit}
}

// EnsureMessage posts message unless an existing message already contains
// its trimmed text. It reports whether a post was made.
func (it *ReviewApplier) EnsureMessage(ctx context.Context, number int, message string) (bool, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return false, nil
	}

	exists, err := it.hasMessage(ctx, number, trimmed)
	if err != nil {
		return false, err
	}
	if exists {
		logger.Debugf("Change %d already carries the message, skipping", number)
		return false, nil
	}

	if postErr := it.gerrit.PostReview(ctx, number, entities.ReviewInput{
		Message: message,
		Tag:     MessageTag,
	}); postErr != nil {
		return false, fmt.Errorf("failed to post message on change %d: %w", number, postErr)
	}
	return true, nil
}

// EnsureApproval votes Code-Review +2 unless the label is already approved
// or not configured for the project. It reports whether a vote was posted.
func (it *ReviewApplier) EnsureApproval(ctx context.Context, number int) (bool, error) {
	change, err := it.gerrit.GetChangeDetail(ctx, number, false)
	if err != nil {
		return false, fmt.Errorf("failed to get change %d: %w", number, err)
	}

	label, configured := change.Label(entities.CodeReviewLabel)
	if !configured || label.Approved != nil {
		logger.Debugf("Change %d needs no approval", number)
		return false, nil
	}

	if postErr := it.gerrit.PostReview(ctx, number, entities.ReviewInput{
		Labels: map[string]int{entities.CodeReviewLabel: approvalValue},
	}); postErr != nil {
		return false, fmt.Errorf("failed to approve change %d: %w", number, postErr)
	}
	return true, nil
}

// HasLabelOutcome reports whether the Code-Review label carries the given
// outcome. A label that is not configured carries no outcome.
func (it *ReviewApplier) HasLabelOutcome(ctx context.Context, number int, outcome LabelOutcome) (bool, error) {
	change, err := it.gerrit.GetChangeDetail(ctx, number, false)
	if err != nil {
		return false, fmt.Errorf("failed to get change %d: %w", number, err)
	}

	label, configured := change.Label(entities.CodeReviewLabel)
	if !configured {
		return false, nil
	}
	switch outcome {
	case LabelApproved:
		return label.Approved != nil, nil
	case LabelRejected:
		return label.Rejected != nil, nil
	default:
		return false, fmt.Errorf("unknown label outcome %q", outcome)
	}
}

func (it *ReviewApplier) hasMessage(ctx context.Context, number int, text string) (bool, error) {
	messages, err := it.gerrit.GetMessages(ctx, number)
	if err != nil {
		return false, fmt.Errorf("failed to get messages of change %d: %w", number, err)
	}
	for _, existing := range messages {
		if strings.Contains(existing.Message, text) {
			return true, nil
		}
	}
	return false, nil
}
