package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/repositories/dbmodels"
)

func selectReviews() squirrel.SelectBuilder {
	return NewQueryBuilder().
		Select(dbmodels.ReviewFields...).
		From(dbmodels.TABLE_REVIEWS)
}

func (repo *StoreDbRepository) CreateReview(ctx context.Context, exec Executor,
	userId int64, input models.CreateReviewInput,
) (models.Review, error) {
	review, err := SqlToModel(ctx, exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_REVIEWS).
			Columns("user_id", "product_id", "parent_review_id", "content", "rating").
			Values(userId, input.ProductId, input.ParentReviewId, input.Content, input.Rating).
			Suffix("RETURNING "+columnList(dbmodels.ReviewFields)),
		dbmodels.AdaptReview,
	)
	if IsCheckViolationError(err) {
		return models.Review{}, errors.Wrap(models.BadParameterError, "Rating must be between 1 to 5")
	}
	return review, err
}

func (repo *StoreDbRepository) GetReviewById(ctx context.Context, exec Executor, reviewId int64) (models.Review, error) {
	return repo.getReview(ctx, exec, reviewId, false)
}

// GetReviewByIdForUpdate locks the review row, which serializes reactions on it even
// before the user's reaction row exists.
func (repo *StoreDbRepository) GetReviewByIdForUpdate(ctx context.Context, exec Executor, reviewId int64) (models.Review, error) {
	return repo.getReview(ctx, exec, reviewId, true)
}

func (repo *StoreDbRepository) getReview(ctx context.Context, exec Executor, reviewId int64, forUpdate bool) (models.Review, error) {
	query := selectReviews().Where(squirrel.Eq{"id": reviewId})
	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}
	review, err := SqlToModel(ctx, exec, query, dbmodels.AdaptReview)
	if errors.Is(err, models.NotFoundError) {
		return models.Review{}, errors.Wrap(models.NotFoundError, "Review not found")
	}
	return review, err
}

// ListReviewsOfProduct returns top-level reviews and follow-ups, newest first.
func (repo *StoreDbRepository) ListReviewsOfProduct(ctx context.Context, exec Executor, productId int64) ([]models.Review, error) {
	return SqlToListOfModels(ctx, exec,
		selectReviews().
			Where(squirrel.Eq{"product_id": productId}).
			OrderBy("created_at DESC", "id DESC"),
		dbmodels.AdaptReview,
	)
}

func (repo *StoreDbRepository) UpdateReview(ctx context.Context, exec Executor,
	reviewId int64, input models.UpdateReviewInput,
) (models.Review, error) {
	if input.Content == nil && input.Rating == nil {
		return repo.GetReviewById(ctx, exec, reviewId)
	}

	query := NewQueryBuilder().
		Update(dbmodels.TABLE_REVIEWS).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": reviewId}).
		Suffix("RETURNING " + columnList(dbmodels.ReviewFields))
	if input.Content != nil {
		query = query.Set("content", *input.Content)
	}
	if input.Rating != nil {
		query = query.Set("rating", *input.Rating)
	}

	review, err := SqlToModel(ctx, exec, query, dbmodels.AdaptReview)
	switch {
	case errors.Is(err, models.NotFoundError):
		return models.Review{}, errors.Wrap(models.NotFoundError, "Review not found")
	case IsCheckViolationError(err):
		return models.Review{}, errors.Wrap(models.BadParameterError, "Rating must be between 1 to 5")
	}
	return review, err
}

func (repo *StoreDbRepository) DeleteReview(ctx context.Context, exec Executor, reviewId int64) error {
	affected, err := ExecBuilder(ctx, exec,
		NewQueryBuilder().Delete(dbmodels.TABLE_REVIEWS).Where(squirrel.Eq{"id": reviewId}))
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.Wrap(models.NotFoundError, "Review not found")
	}
	return nil
}

// GetReaction returns the current reaction of the user on the review, or nil.
func (repo *StoreDbRepository) GetReaction(ctx context.Context, exec Executor, reviewId, userId int64) (*models.Reaction, error) {
	query, args, err := NewQueryBuilder().
		Select("reaction").
		From(dbmodels.TABLE_REVIEW_REACTIONS).
		Where(squirrel.Eq{"review_id": reviewId, "user_id": userId}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "can't build sql query")
	}

	var reaction int16
	err = exec.QueryRow(ctx, query, args...).Scan(&reaction)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "error reading review reaction")
	}
	r := models.Reaction(reaction)
	return &r, nil
}

func (repo *StoreDbRepository) UpsertReaction(ctx context.Context, exec Executor,
	reviewId, userId int64, reaction models.Reaction,
) error {
	_, err := ExecBuilder(ctx, exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_REVIEW_REACTIONS).
			Columns("review_id", "user_id", "reaction").
			Values(reviewId, userId, int16(reaction)).
			Suffix("ON CONFLICT (review_id, user_id) DO UPDATE SET reaction = EXCLUDED.reaction"),
	)
	return err
}

// AdjustReactionCounts moves the like / dislike counters, never below zero.
func (repo *StoreDbRepository) AdjustReactionCounts(ctx context.Context, exec Executor,
	reviewId int64, likesDelta, dislikesDelta int,
) (models.Review, error) {
	review, err := SqlToModel(ctx, exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_REVIEWS).
			Set("likes_count", squirrel.Expr("GREATEST(likes_count + ?, 0)", likesDelta)).
			Set("dislikes_count", squirrel.Expr("GREATEST(dislikes_count + ?, 0)", dislikesDelta)).
			Where(squirrel.Eq{"id": reviewId}).
			Suffix("RETURNING "+columnList(dbmodels.ReviewFields)),
		dbmodels.AdaptReview,
	)
	if errors.Is(err, models.NotFoundError) {
		return models.Review{}, errors.Wrap(models.NotFoundError, "Review not found")
	}
	return review, err
}
