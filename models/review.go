package models

import (
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	Id              int64
	UserId          int64
	ProductId       int64
	ParentReviewId  *int64
	Content         string
	Rating          int
	LikesCount      int
	DislikesCount   int
	CreatedAt       time.Time
	UpdatedAt       time.Time
	FollowUpReviews []Review
}

func (r Review) IsFollowUp() bool {
	return r.ParentReviewId != nil
}

type CreateReviewInput struct {
	ProductId      int64
	ParentReviewId *int64
	Content        string
	Rating         int
}

type UpdateReviewInput struct {
	Content *string
	Rating  *int
}

type Reaction int

const (
	Dislike Reaction = 0
	Like    Reaction = 1
)

type ReactionInput struct {
	ReviewId int64
	Reaction Reaction
}

func ValidateReviewContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.Wrap(BadParameterError, "Content can't be empty.")
	}
	return nil
}

func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return errors.Wrapf(BadParameterError, "Rating must be between %d to %d", MinRating, MaxRating)
	}
	return nil
}

// NestReviews attaches follow-ups to their top-level review. Top-level reviews keep
// the input order, follow-ups are sorted oldest first.
func NestReviews(reviews []Review) []Review {
	followUps := make(map[int64][]Review)
	topLevel := make([]Review, 0, len(reviews))
	for _, r := range reviews {
		if r.ParentReviewId != nil {
			followUps[*r.ParentReviewId] = append(followUps[*r.ParentReviewId], r)
			continue
		}
		topLevel = append(topLevel, r)
	}
	for i, r := range topLevel {
		children := followUps[r.Id]
		sortByCreatedAtAsc(children)
		if children == nil {
			children = []Review{}
		}
		topLevel[i].FollowUpReviews = children
	}
	return topLevel
}

func sortByCreatedAtAsc(reviews []Review) {
	slices.SortStableFunc(reviews, func(a, b Review) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}
