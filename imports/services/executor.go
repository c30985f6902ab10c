package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Upper bound on concurrent store writes per commit, so one large batch
// cannot overwhelm the database.
const defaultCommitWorkers = 8

// CommitExecutor creates one persisted record per approved row. Rows fail
// independently: a store rejection for one row never aborts the rest. A
// business-key collision detected only at commit time is recorded as a
// per-row failure, or as a skip when the operator chose to skip
// duplicates, so re-committing an already-committed batch with
// skipDuplicates set is a no-op rather than a wall of failures.
type CommitExecutor struct {
	store   RecordStore
	workers int
	logger  *zap.Logger
}

func NewCommitExecutor(store RecordStore, logger *zap.Logger) *CommitExecutor {
	return &CommitExecutor{
		store:   store,
		workers: defaultCommitWorkers,
		logger:  logger,
	}
}

type rowOutcome struct {
	rowNumber int
	createdID string
	skipped   bool
	failure   *FieldError
}

// Execute commits the operator-approved rows. The summary always
// satisfies SuccessCount + SkippedCount + FailedCount == len(rows), and
// CreatedIDs and Failures are ordered by ascending row number regardless
// of worker scheduling.
func (e *CommitExecutor) Execute(ctx context.Context, spec ImportSpec, rows []ValidatedRow, opts ExecutionOptions, createdBy string) ExecutionSummary {
	outcomes := make([]rowOutcome, len(rows))

	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := e.workers
	if workers > len(rows) {
		workers = len(rows)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = e.commitRow(ctx, spec, rows[i], opts, createdBy)
			}
		}()
	}

	for i := range rows {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	sort.Slice(outcomes, func(a, b int) bool {
		return outcomes[a].rowNumber < outcomes[b].rowNumber
	})

	summary := ExecutionSummary{
		CreatedIDs: []string{},
		Failures:   []FieldError{},
	}
	for _, outcome := range outcomes {
		switch {
		case outcome.skipped:
			summary.SkippedCount++
		case outcome.failure != nil:
			summary.FailedCount++
			summary.Failures = append(summary.Failures, *outcome.failure)
		default:
			summary.SuccessCount++
			summary.CreatedIDs = append(summary.CreatedIDs, outcome.createdID)
		}
	}

	return summary
}

func (e *CommitExecutor) commitRow(ctx context.Context, spec ImportSpec, row ValidatedRow, opts ExecutionOptions, createdBy string) rowOutcome {
	outcome := rowOutcome{rowNumber: row.RowNumber}
	key := row.NormalizedFields[spec.BusinessKey]

	if opts.SkipDuplicates && row.IsDuplicate {
		outcome.skipped = true
		return outcome
	}

	if err := ctx.Err(); err != nil {
		// Rows already created stay created; there is no rollback on a
		// client disconnect. Unattempted rows are reported, not dropped.
		outcome.failure = &FieldError{
			RowNumber:    row.RowNumber,
			Field:        spec.BusinessKey,
			Message:      "commit cancelled before this row was attempted",
			InvalidValue: key,
		}
		return outcome
	}

	id, err := e.store.CreateRecord(ctx, spec.EntityType, row, createdBy)
	if err != nil {
		var dup *DuplicateKeyError
		if errors.As(err, &dup) {
			// The preview's duplicate flag can be stale; the store is the
			// authority. Honor the operator's choice here too.
			if opts.SkipDuplicates {
				outcome.skipped = true
				return outcome
			}
		} else {
			e.logger.Warn("Row commit failed",
				zap.String("entity_type", spec.EntityType),
				zap.Int("row_number", row.RowNumber),
				zap.Error(err),
			)
		}
		outcome.failure = &FieldError{
			RowNumber:    row.RowNumber,
			Field:        spec.BusinessKey,
			Message:      err.Error(),
			InvalidValue: key,
		}
		return outcome
	}

	outcome.createdID = id
	return outcome
}
