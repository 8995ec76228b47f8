package usecases

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/repositories"
	"github.com/storefront/storefront-backend/usecases/executor_factory"
	"github.com/storefront/storefront-backend/usecases/security"
)

type ReviewRepository interface {
	GetProductById(ctx context.Context, exec repositories.Executor, productId int64) (models.Product, error)
	CreateReview(ctx context.Context, exec repositories.Executor, userId int64, input models.CreateReviewInput) (models.Review, error)
	GetReviewById(ctx context.Context, exec repositories.Executor, reviewId int64) (models.Review, error)
	GetReviewByIdForUpdate(ctx context.Context, exec repositories.Executor, reviewId int64) (models.Review, error)
	ListReviewsOfProduct(ctx context.Context, exec repositories.Executor, productId int64) ([]models.Review, error)
	UpdateReview(ctx context.Context, exec repositories.Executor, reviewId int64, input models.UpdateReviewInput) (models.Review, error)
	DeleteReview(ctx context.Context, exec repositories.Executor, reviewId int64) error
	GetReaction(ctx context.Context, exec repositories.Executor, reviewId, userId int64) (*models.Reaction, error)
	UpsertReaction(ctx context.Context, exec repositories.Executor, reviewId, userId int64, reaction models.Reaction) error
	AdjustReactionCounts(ctx context.Context, exec repositories.Executor, reviewId int64, likesDelta, dislikesDelta int) (models.Review, error)
	ProductRatingStats(ctx context.Context, exec repositories.Executor, productId int64) (models.ProductRatingStats, error)
	SetProductRatingStats(ctx context.Context, exec repositories.Executor, productId int64, stats models.ProductRatingStats) error
}

type ReviewUsecase struct {
	enforceSecurity    security.EnforceSecurityReview
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	repository         ReviewRepository
	taskQueue          repositories.TaskQueueRepository
	credentials        models.Credentials
}

func (usecase *ReviewUsecase) CreateReview(ctx context.Context, input models.CreateReviewInput) (models.Review, error) {
	if err := usecase.enforceSecurity.WriteReview(); err != nil {
		return models.Review{}, err
	}
	input.Content = strings.TrimSpace(input.Content)
	if err := models.ValidateReviewContent(input.Content); err != nil {
		return models.Review{}, err
	}
	if err := models.ValidateRating(input.Rating); err != nil {
		return models.Review{}, err
	}
	userId := usecase.credentials.UserId

	return executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.Review, error) {
			if _, err := usecase.repository.GetProductById(ctx, tx, input.ProductId); err != nil {
				return models.Review{}, err
			}
			if input.ParentReviewId != nil {
				parent, err := usecase.repository.GetReviewById(ctx, tx, *input.ParentReviewId)
				if err != nil {
					return models.Review{}, errors.Wrap(models.NotFoundError, "Parent review not found")
				}
				if err := checkFollowUpTarget(parent, input.ProductId, userId); err != nil {
					return models.Review{}, err
				}
			}

			review, err := usecase.repository.CreateReview(ctx, tx, userId, input)
			if err != nil {
				return models.Review{}, err
			}
			if err := usecase.afterReviewChange(ctx, tx, review.ProductId); err != nil {
				return models.Review{}, err
			}
			review.FollowUpReviews = []models.Review{}
			return review, nil
		})
}

// checkFollowUpTarget only lets an author answer their own top-level review of the same product.
func checkFollowUpTarget(parent models.Review, productId, userId int64) error {
	if parent.IsFollowUp() {
		return models.ErrReviewNestingTooDeep
	}
	if parent.ProductId != productId {
		return errors.Wrap(models.BadParameterError, "Parent review belongs to another product")
	}
	if parent.UserId != userId {
		return errors.Wrap(models.ForbiddenError, "Follow-up reviews can only answer your own review")
	}
	return nil
}

func (usecase *ReviewUsecase) ListProductReviews(ctx context.Context, productId int64) ([]models.Review, error) {
	exec := usecase.executorFactory.NewExecutor()
	if _, err := usecase.repository.GetProductById(ctx, exec, productId); err != nil {
		return nil, err
	}
	reviews, err := usecase.repository.ListReviewsOfProduct(ctx, exec, productId)
	if err != nil {
		return nil, err
	}
	return models.NestReviews(reviews), nil
}

func (usecase *ReviewUsecase) UpdateReview(ctx context.Context, reviewId int64, input models.UpdateReviewInput) (models.Review, error) {
	if input.Content != nil {
		trimmed := strings.TrimSpace(*input.Content)
		if err := models.ValidateReviewContent(trimmed); err != nil {
			return models.Review{}, err
		}
		input.Content = &trimmed
	}
	if input.Rating != nil {
		if err := models.ValidateRating(*input.Rating); err != nil {
			return models.Review{}, err
		}
	}

	return executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.Review, error) {
			review, err := usecase.repository.GetReviewById(ctx, tx, reviewId)
			if err != nil {
				return models.Review{}, err
			}
			if err := usecase.enforceSecurity.UpdateReview(review); err != nil {
				return models.Review{}, err
			}
			updated, err := usecase.repository.UpdateReview(ctx, tx, reviewId, input)
			if err != nil {
				return models.Review{}, err
			}
			if err := usecase.afterReviewChange(ctx, tx, updated.ProductId); err != nil {
				return models.Review{}, err
			}
			return updated, nil
		})
}

// DeleteReview removes the review; its follow-ups go with it.
func (usecase *ReviewUsecase) DeleteReview(ctx context.Context, reviewId int64) error {
	return usecase.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		review, err := usecase.repository.GetReviewById(ctx, tx, reviewId)
		if err != nil {
			return err
		}
		if err := usecase.enforceSecurity.DeleteReview(review); err != nil {
			return err
		}
		if err := usecase.repository.DeleteReview(ctx, tx, reviewId); err != nil {
			return err
		}
		return usecase.afterReviewChange(ctx, tx, review.ProductId)
	})
}

// React records a like or a dislike. Repeating a reaction changes nothing, switching
// moves one count to the other.
func (usecase *ReviewUsecase) React(ctx context.Context, input models.ReactionInput) (models.Review, error) {
	if err := usecase.enforceSecurity.WriteReview(); err != nil {
		return models.Review{}, err
	}
	if input.Reaction != models.Like && input.Reaction != models.Dislike {
		return models.Review{}, errors.Wrap(models.BadParameterError, "like_dislike must be 1 (like) or 0 (dislike)")
	}
	userId := usecase.credentials.UserId

	return executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.Review, error) {
			review, err := usecase.repository.GetReviewByIdForUpdate(ctx, tx, input.ReviewId)
			if err != nil {
				return models.Review{}, err
			}
			previous, err := usecase.repository.GetReaction(ctx, tx, input.ReviewId, userId)
			if err != nil {
				return models.Review{}, err
			}
			likes, dislikes := reactionDeltas(previous, input.Reaction)
			if likes == 0 && dislikes == 0 {
				return review, nil
			}
			if err := usecase.repository.UpsertReaction(ctx, tx, input.ReviewId, userId, input.Reaction); err != nil {
				return models.Review{}, err
			}
			return usecase.repository.AdjustReactionCounts(ctx, tx, input.ReviewId, likes, dislikes)
		})
}

func reactionDeltas(previous *models.Reaction, next models.Reaction) (likes, dislikes int) {
	if previous != nil && *previous == next {
		return 0, 0
	}
	if next == models.Like {
		likes = 1
	} else {
		dislikes = 1
	}
	if previous != nil {
		if *previous == models.Like {
			likes--
		} else {
			dislikes--
		}
	}
	return likes, dislikes
}

func (usecase *ReviewUsecase) afterReviewChange(ctx context.Context, tx repositories.Transaction, productId int64) error {
	if err := RecomputeProductRatingStats(ctx, tx, usecase.repository, productId); err != nil {
		return err
	}
	return usecase.taskQueue.EnqueueIndexProductKnowledge(ctx, tx, productId)
}

type ratingStatsRepository interface {
	ProductRatingStats(ctx context.Context, exec repositories.Executor, productId int64) (models.ProductRatingStats, error)
	SetProductRatingStats(ctx context.Context, exec repositories.Executor, productId int64, stats models.ProductRatingStats) error
}

// RecomputeProductRatingStats refreshes review_count and average_rating from the top-level reviews.
func RecomputeProductRatingStats(ctx context.Context, exec repositories.Executor,
	repository ratingStatsRepository, productId int64,
) error {
	stats, err := repository.ProductRatingStats(ctx, exec, productId)
	if err != nil {
		return err
	}
	return repository.SetProductRatingStats(ctx, exec, productId, stats)
}
