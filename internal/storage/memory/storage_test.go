package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/singhit/internal/model"
	"github.com/mcoot/singhit/internal/testutil"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestSaveAndLoadState() {
	state := testutil.VerifyingState()

	err := s.storage.SaveState(s.ctx, &state)
	s.Require().NoError(err)

	loaded, err := s.storage.LoadState(s.ctx)
	s.Require().NoError(err)
	s.Equal(state, *loaded)
}

func (s *StorageSuite) TestLoadEmpty() {
	_, err := s.storage.LoadState(s.ctx)
	s.ErrorIs(err, model.ErrStateNotFound)
}

func (s *StorageSuite) TestSaveReplaces() {
	first := testutil.VerifyingState()
	second := testutil.RunningState()
	s.Require().NoError(s.storage.SaveState(s.ctx, &first))
	s.Require().NoError(s.storage.SaveState(s.ctx, &second))

	loaded, err := s.storage.LoadState(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.PhaseActive, loaded.Phase)
}

func (s *StorageSuite) TestSavedStateIsDetached() {
	state := testutil.VerifyingState()
	s.Require().NoError(s.storage.SaveState(s.ctx, &state))

	state.Players[0].Score = 99
	state.WordsQueue[0] = "changed"

	loaded, err := s.storage.LoadState(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, loaded.Players[0].Score)
	s.Equal("amore", loaded.WordsQueue[0])
}

func (s *StorageSuite) TestDeleteState() {
	state := testutil.VerifyingState()
	s.Require().NoError(s.storage.SaveState(s.ctx, &state))

	s.Require().NoError(s.storage.DeleteState(s.ctx))
	s.Require().NoError(s.storage.DeleteState(s.ctx))

	_, err := s.storage.LoadState(s.ctx)
	s.ErrorIs(err, model.ErrStateNotFound)
}

func (s *StorageSuite) TestCorruptRecord() {
	s.storage.SetRaw([]byte("{broken"))

	_, err := s.storage.LoadState(s.ctx)
	s.ErrorIs(err, model.ErrMalformedState)
}
