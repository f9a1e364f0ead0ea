package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/funzone/internal/models"
	"github.com/vytor/funzone/internal/repository"
	"github.com/vytor/funzone/internal/repository/sqlite"
	"github.com/vytor/funzone/internal/testutil"
)

type ResultRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ResultRepository
}

func (s *ResultRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewResultRepository(s.db)
}

func (s *ResultRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func result(session, visitor, game, key string, score int, won bool, offset time.Duration) models.GameResult {
	r := testutil.Result(session, visitor, game, key, score, won)
	r.FinishedAt = r.FinishedAt.Add(offset)
	return r
}

func (s *ResultRepositorySuite) TestInsertAndList() {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, result("s1", "v1", "quiz", "beginner", 700, true, 0))
	s.Require().NoError(err)
	s.Assert().Greater(id, int64(0))
	_, err = s.repo.Insert(ctx, result("s2", "v1", "quiz", "expert", 300, false, time.Minute))
	s.Require().NoError(err)
	_, err = s.repo.Insert(ctx, result("s3", "v2", "quiz", "beginner", 100, true, 0))
	s.Require().NoError(err)

	list, err := s.repo.List(ctx, models.ResultFilter{VisitorID: "v1"})
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Assert().Equal("s2", list[0].SessionID, "newest first")
	s.Assert().False(list[0].Won)
	s.Assert().True(list[1].Won)
	s.Assert().True(testutil.FinishedAt.Equal(list[1].FinishedAt))

	list, err = s.repo.List(ctx, models.ResultFilter{VisitorID: "v1", Limit: 1, Offset: 1})
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Assert().Equal("s1", list[0].SessionID)
}

func (s *ResultRepositorySuite) TestInsert_SameSessionOnce() {
	ctx := context.Background()
	r := result("s1", "v1", "memory", "easy", 1500, true, 0)

	first, err := s.repo.Insert(ctx, r)
	s.Require().NoError(err)
	second, err := s.repo.Insert(ctx, r)
	s.Require().NoError(err)

	s.Assert().Equal(first, second)
	list, err := s.repo.List(ctx, models.ResultFilter{VisitorID: "v1"})
	s.Require().NoError(err)
	s.Assert().Len(list, 1)
}

func (s *ResultRepositorySuite) TestStats() {
	ctx := context.Background()
	for _, r := range []models.GameResult{
		result("s1", "v1", "quiz", "beginner", 700, true, 0),
		result("s2", "v1", "quiz", "beginner", 300, false, time.Minute),
		result("s3", "v1", "quiz", "expert", 1200, true, 2*time.Minute),
		result("s4", "v1", "whack", "easy-classic", 40, true, 0),
		result("s5", "v2", "quiz", "beginner", 9999, true, 0),
	} {
		_, err := s.repo.Insert(ctx, r)
		s.Require().NoError(err)
	}

	games, err := s.repo.GameStats(ctx, "v1")
	s.Require().NoError(err)
	s.Require().Len(games, 2)
	quiz := games[0]
	s.Assert().Equal("quiz", quiz.GameID)
	s.Assert().Equal(3, quiz.Plays)
	s.Assert().Equal(2, quiz.Wins)
	s.Assert().InDelta(733.33, quiz.AvgScore, 0.01)
	s.Assert().Equal(12, quiz.BestStreak)
	s.Assert().Equal(int64(180000), quiz.TotalDurationMs)

	keys, err := s.repo.KeyStats(ctx, "v1")
	s.Require().NoError(err)
	s.Require().Len(keys, 3)
	s.Assert().Equal(models.KeyStat{GameID: "quiz", ScoreKey: "beginner", Plays: 2, AvgScore: 500}, keys[0])

	none, err := s.repo.GameStats(ctx, "nobody")
	s.Require().NoError(err)
	s.Assert().Empty(none)
}

func TestResultRepositorySuite(t *testing.T) {
	suite.Run(t, new(ResultRepositorySuite))
}
