package worker

import (
	"context"
	"fmt"

	"github.com/vytor/funzone/internal/logger"
	"github.com/vytor/funzone/internal/models"
	"github.com/vytor/funzone/internal/repository"
)

// RecordResultJob stores one finished game run.
type RecordResultJob struct {
	Results repository.ResultRepository
	Result  models.GameResult
}

func (j *RecordResultJob) Name() string { return "record_result" }

func (j *RecordResultJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"game":    j.Result.GameID,
		"session": j.Result.SessionID,
	})
	id, err := j.Results.Insert(ctx, j.Result)
	if err != nil {
		return fmt.Errorf("record result %s: %w", j.Result.SessionID, err)
	}
	log.Debug("result recorded: id=%d, score=%d", id, j.Result.Score)
	return nil
}
