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

type ScoreRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ScoreRepository
}

func (s *ScoreRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewScoreRepository(s.db)
}

func (s *ScoreRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func record(visitor, game, key string, value int) models.ScoreRecord {
	return models.ScoreRecord{VisitorID: visitor, GameID: game, Key: key, Value: value}
}

func (s *ScoreRepositorySuite) TestGet_NotFound() {
	rec, err := s.repo.Get(context.Background(), "v1", "quiz", "beginner")
	s.Assert().ErrorIs(err, repository.ErrNotFound)
	s.Assert().Nil(rec)
}

func (s *ScoreRepositorySuite) TestWrite_HigherIsBetter() {
	ctx := context.Background()

	stored, changed, err := s.repo.Write(ctx, record("v1", "quiz", "beginner", 700), false)
	s.Require().NoError(err)
	s.Assert().True(changed)
	s.Assert().Equal(700, stored.Value)

	stored, changed, err = s.repo.Write(ctx, record("v1", "quiz", "beginner", 500), false)
	s.Require().NoError(err)
	s.Assert().False(changed)
	s.Assert().Equal(700, stored.Value)

	stored, changed, err = s.repo.Write(ctx, record("v1", "quiz", "beginner", 900), false)
	s.Require().NoError(err)
	s.Assert().True(changed)
	s.Assert().Equal(900, stored.Value)

	got, err := s.repo.Get(ctx, "v1", "quiz", "beginner")
	s.Require().NoError(err)
	s.Assert().Equal(900, got.Value)
}

func (s *ScoreRepositorySuite) TestWrite_LowerIsBetter() {
	ctx := context.Background()

	_, _, err := s.repo.Write(ctx, record("v1", "reaction", "best", 230), true)
	s.Require().NoError(err)

	stored, changed, err := s.repo.Write(ctx, record("v1", "reaction", "best", 300), true)
	s.Require().NoError(err)
	s.Assert().False(changed)
	s.Assert().Equal(230, stored.Value)

	stored, changed, err = s.repo.Write(ctx, record("v1", "reaction", "best", 190), true)
	s.Require().NoError(err)
	s.Assert().True(changed)
	s.Assert().Equal(190, stored.Value)
}

func (s *ScoreRepositorySuite) TestWrite_EqualValueKeepsTimestamp() {
	ctx := context.Background()
	first := record("v1", "memory", "easy", 1200)
	first.UpdatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, _, err := s.repo.Write(ctx, first, false)
	s.Require().NoError(err)

	stored, changed, err := s.repo.Write(ctx, record("v1", "memory", "easy", 1200), false)
	s.Require().NoError(err)
	s.Assert().False(changed)
	s.Assert().True(first.UpdatedAt.Equal(stored.UpdatedAt))
}

func (s *ScoreRepositorySuite) TestRecordsAreIsolated() {
	ctx := context.Background()
	for _, rec := range []models.ScoreRecord{
		record("v1", "typing", "beginner-time", 40),
		record("v1", "typing", "advanced-time", 25),
		record("v2", "typing", "beginner-time", 80),
		record("v1", "whack", "easy-classic", 31),
	} {
		_, _, err := s.repo.Write(ctx, rec, false)
		s.Require().NoError(err)
	}

	list, err := s.repo.List(ctx, "v1")
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Assert().Equal("advanced-time", list[0].Key)
	s.Assert().Equal("beginner-time", list[1].Key)
	s.Assert().Equal(40, list[1].Value)
	s.Assert().Equal("whack", list[2].GameID)

	got, err := s.repo.Get(ctx, "v2", "typing", "beginner-time")
	s.Require().NoError(err)
	s.Assert().Equal(80, got.Value)
}

func TestScoreRepositorySuite(t *testing.T) {
	suite.Run(t, new(ScoreRepositorySuite))
}
