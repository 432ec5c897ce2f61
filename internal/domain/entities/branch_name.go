package entities

import "strings"

const (
	topicMarker   = "%topic="
	hashtagMarker = "%t="

	sourceBranchHashtagPrefix = "sourceBranch-"
)

// BranchTarget is a logical branch name decoded into the destination branch
// and the optional topic/hashtag that identify its change.
//
// Encoded forms are "branch%topic=T", "branch%t=H" and "branch%topic=T%t=H".
type BranchTarget struct {
	Branch  string
	Topic   string
	Hashtag string
}

// SplitTopicAndBranch decodes a logical branch name. The second value is
// false when the name carries neither a topic nor a hashtag suffix.
func SplitTopicAndBranch(name string) (BranchTarget, bool) {
	if branch, rest, found := strings.Cut(name, topicMarker); found {
		topic, hashtag, _ := strings.Cut(rest, hashtagMarker)
		return BranchTarget{Branch: branch, Topic: topic, Hashtag: hashtag}, true
	}
	if branch, hashtag, found := strings.Cut(name, hashtagMarker); found {
		return BranchTarget{Branch: branch, Hashtag: hashtag}, true
	}
	return BranchTarget{Branch: name}, false
}

// String encodes the target back into a logical branch name.
func (t BranchTarget) String() string {
	var sb strings.Builder
	sb.WriteString(t.Branch)
	if t.Topic != "" {
		sb.WriteString(topicMarker)
		sb.WriteString(t.Topic)
	}
	if t.Hashtag != "" {
		sb.WriteString(hashtagMarker)
		sb.WriteString(t.Hashtag)
	}
	return sb.String()
}

// Filter returns the search filter that locates changes for this target.
func (t BranchTarget) Filter(state PRState) Filter {
	return Filter{State: state, Branch: t.Branch, Topic: t.Topic, Hashtag: t.Hashtag}
}

// BranchTargetFromChange builds the logical branch name of an existing change.
// Only the first hashtag is used.
func BranchTargetFromChange(change Change) BranchTarget {
	target := BranchTarget{Branch: change.Branch, Topic: change.Topic}
	if len(change.Hashtags) > 0 {
		target.Hashtag = change.Hashtags[0]
	}
	return target
}

// SourceBranchHashtag is the hashtag that ties a cherry-picked change back to
// the update branch it was produced from.
func SourceBranchHashtag(sourceBranch string) string {
	return sourceBranchHashtagPrefix + sourceBranch
}
