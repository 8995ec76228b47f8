package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"

	"github.com/storefront/storefront-backend/models"
)

func NewQueryBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// executes the sql query with the given executor and returns a list of models using the provided adapter
func SqlToListOfModels[DBModel, Model any](
	ctx context.Context,
	exec Executor,
	query squirrel.Sqlizer,
	adapter func(dbModel DBModel) (Model, error),
) ([]Model, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "can't build sql query")
	}

	rows, err := exec.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error executing sql query")
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Model, error) {
		dbModel, err := pgx.RowToStructByName[DBModel](row)
		if err != nil {
			var zeroModel Model
			return zeroModel, errors.Wrapf(err, "error scanning row to struct %T", dbModel)
		}
		return adapter(dbModel)
	})
}

// returns nil when the query has no result
func SqlToOptionalModel[DBModel, Model any](
	ctx context.Context,
	exec Executor,
	query squirrel.Sqlizer,
	adapter func(dbModel DBModel) (Model, error),
) (*Model, error) {
	list, err := SqlToListOfModels(ctx, exec, query, adapter)
	if err != nil {
		return nil, err
	}

	switch len(list) {
	case 0:
		return nil, nil
	case 1:
		return &list[0], nil
	default:
		return nil, errors.Newf("expected 1 or 0 %T, got %d rows", list[0], len(list))
	}
}

// returns a NotFoundError when the query has no result
func SqlToModel[DBModel, Model any](
	ctx context.Context,
	exec Executor,
	query squirrel.Sqlizer,
	adapter func(dbModel DBModel) (Model, error),
) (Model, error) {
	model, err := SqlToOptionalModel(ctx, exec, query, adapter)
	var zeroModel Model
	if err != nil {
		return zeroModel, err
	}
	if model == nil {
		return zeroModel, errors.Wrap(models.NotFoundError, fmt.Sprintf("found no object of type %T", zeroModel))
	}
	return *model, nil
}

func ExecBuilder(ctx context.Context, exec Executor, builder squirrel.Sqlizer) (rowsAffected int64, err error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "can't build sql query")
	}

	tag, err := exec.Exec(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrapf(err, "error executing sql query: %s", query)
	}
	return tag.RowsAffected(), nil
}

// QueryScalar scans the single column of a single row, used for counts and aggregates.
func QueryScalar[T any](ctx context.Context, exec Executor, builder squirrel.Sqlizer) (T, error) {
	var value T
	query, args, err := builder.ToSql()
	if err != nil {
		return value, errors.Wrap(err, "can't build sql query")
	}
	if err := exec.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		return value, errors.Wrap(err, "error scanning scalar")
	}
	return value, nil
}

func columnList(columns []string) string {
	return strings.Join(columns, ", ")
}
