package merge

import (
	"context"
	"log/slog"

	"corpusmeta/internal/logging"
)

// Merger loads two sources, joins them and logs shape diagnostics.
type Merger struct {
	opts   Options
	logger *slog.Logger
}

// NewMerger returns a Merger using opts for every join.
func NewMerger(opts Options, logger *slog.Logger) *Merger {
	return &Merger{opts: opts, logger: logging.NewComponentLogger(logger, "merge")}
}

// Merge loads left and right and joins them. Load and schema failures are
// returned before any output is produced.
func (m *Merger) Merge(ctx context.Context, left, right Source) (*Result, error) {
	logger := logging.WithContext(ctx, m.logger)

	lt, err := left.Load(ctx)
	if err != nil {
		return nil, err
	}
	rt, err := right.Load(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded inputs",
		logging.String("left", left.Name()),
		logging.String("left_shape", shapeOf(lt).String()),
		logging.String("right", right.Name()),
		logging.String("right_shape", shapeOf(rt).String()),
	)

	keys := requestedKeys(lt, rt, m.opts)
	logger.Info("partitioned columns",
		logging.Strings("keys", keys),
		logging.Strings("left_unique", uniqueColumns(lt, keys)),
		logging.Strings("right_unique", uniqueColumns(rt, keys)),
	)

	result, err := Join(lt, rt, m.opts)
	if err != nil {
		logging.ErrorWithContext(logger, "merge failed", "schema_mismatch",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check that both tables carry every key column"),
		)
		return nil, err
	}

	logger.Info("merge complete",
		logging.String("shape", result.Shape().String()),
		logging.Strings("columns", result.Table.Columns),
	)
	if len(result.Table.Rows) == 0 && len(lt.Rows) > 0 && len(rt.Rows) > 0 {
		logging.WarnWithContext(logger, "no rows matched", "empty_join",
			logging.String(logging.FieldErrorHint, "key values differ between the inputs"),
		)
	}
	return result, nil
}
