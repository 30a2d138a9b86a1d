package game

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleship/internal/model"
	"github.com/mcoot/battleship/internal/testutil"
)

type GameSuite struct {
	suite.Suite
	alice  model.User
	bob    model.User
	events []model.Event
	game   *Game
}

func TestGameSuite(t *testing.T) {
	suite.Run(t, new(GameSuite))
}

func (s *GameSuite) SetupTest() {
	s.alice = model.User{ID: "alice", Name: "Alice"}
	s.bob = model.User{ID: "bob", Name: "Bob"}
	s.events = nil
	s.game = New(
		s.alice, model.NewPositionField(testutil.ValidFleet()),
		s.bob, model.NewPositionField(testutil.MirroredFleet()),
		func(e model.Event) { s.events = append(s.events, e) },
	)
}

func (s *GameSuite) eventTypes() []model.EventType {
	types := make([]model.EventType, len(s.events))
	for i, e := range s.events {
		types[i] = e.Type
	}
	return types
}

func (s *GameSuite) TestPlayer1MovesFirst() {
	s.Equal(s.alice.ID, s.game.MovingPlayerID())
	s.False(s.game.Ended())
}

func (s *GameSuite) TestMissPassesTurn() {
	s.game.Move(s.alice.ID, model.Index{Row: 0, Col: 0})

	s.Equal([]model.EventType{model.EventGameMiss}, s.eventTypes())
	s.Equal(model.GameShotPayload{UserID: s.alice.ID, Position: model.Index{Row: 0, Col: 0}}, s.events[0].Payload)
	s.Equal(s.bob.ID, s.game.MovingPlayerID())
	s.Equal(model.AttackMiss, s.game.Player1().Attacks()[0][0])
}

func (s *GameSuite) TestHitKeepsTurn() {
	s.game.Move(s.alice.ID, model.Index{Row: 9, Col: 6})

	s.Equal([]model.EventType{model.EventGameHit}, s.eventTypes())
	s.Equal(s.alice.ID, s.game.MovingPlayerID())
	s.Equal(model.AttackHit, s.game.Player1().Attacks()[9][6])
}

func (s *GameSuite) TestDestroyMarksRingWithoutMissEvents() {
	s.game.Move(s.alice.ID, model.Index{Row: 5, Col: 0})

	s.Equal([]model.EventType{model.EventGameHit, model.EventGameDestroy}, s.eventTypes())
	s.Equal(model.GameDestroyPayload{UserID: s.alice.ID, Ship: model.Ship{{Row: 5, Col: 0}}}, s.events[1].Payload)
	s.Equal(s.alice.ID, s.game.MovingPlayerID())

	attacks := s.game.Player1().Attacks()
	for _, i := range []model.Index{{Row: 4, Col: 0}, {Row: 4, Col: 1}, {Row: 5, Col: 1}, {Row: 6, Col: 0}, {Row: 6, Col: 1}} {
		s.Equal(model.AttackMiss, attacks[i.Row][i.Col], "ring cell %v", i)
	}
}

func (s *GameSuite) TestDestroyMultiDeckShip() {
	s.game.Move(s.alice.ID, model.Index{Row: 7, Col: 1})
	s.game.Move(s.alice.ID, model.Index{Row: 7, Col: 2})

	s.Equal([]model.EventType{model.EventGameHit, model.EventGameHit, model.EventGameDestroy}, s.eventTypes())
	payload := s.events[2].Payload.(model.GameDestroyPayload)
	s.Equal(model.Ship{{Row: 7, Col: 1}, {Row: 7, Col: 2}}, payload.Ship)
}

func (s *GameSuite) TestMoveOutOfTurnIsIgnored() {
	s.game.Move(s.bob.ID, model.Index{Row: 0, Col: 0})

	s.Empty(s.events)
	s.Equal(s.alice.ID, s.game.MovingPlayerID())
}

func (s *GameSuite) TestMoveByStrangerIsIgnored() {
	s.game.Move("mallory", model.Index{Row: 0, Col: 0})
	s.Empty(s.events)
}

func (s *GameSuite) TestRepeatedCellIsIgnored() {
	s.game.Move(s.alice.ID, model.Index{Row: 0, Col: 0}) // miss, bob's turn
	s.game.Move(s.bob.ID, model.Index{Row: 9, Col: 0})   // miss, alice's turn
	s.events = nil

	s.game.Move(s.alice.ID, model.Index{Row: 0, Col: 0})

	s.Empty(s.events)
	s.Equal(s.alice.ID, s.game.MovingPlayerID())
}

func (s *GameSuite) TestAutoMarkedCellIsIgnored() {
	s.game.Move(s.alice.ID, model.Index{Row: 5, Col: 0})
	s.events = nil

	s.game.Move(s.alice.ID, model.Index{Row: 6, Col: 0})

	s.Empty(s.events)
	s.Equal(s.alice.ID, s.game.MovingPlayerID())
}

func (s *GameSuite) TestOutOfRangeIsIgnored() {
	s.game.Move(s.alice.ID, model.Index{Row: 10, Col: 0})
	s.game.Move(s.alice.ID, model.Index{Row: 0, Col: -1})

	s.Empty(s.events)
}

func (s *GameSuite) TestTurnInvariant() {
	moves := []struct {
		user  model.UserID
		index model.Index
	}{
		{s.alice.ID, model.Index{Row: 0, Col: 0}}, // miss
		{s.bob.ID, model.Index{Row: 0, Col: 0}},   // hit
		{s.bob.ID, model.Index{Row: 9, Col: 9}},   // miss
		{s.alice.ID, model.Index{Row: 5, Col: 2}}, // hit and destroy
		{s.alice.ID, model.Index{Row: 3, Col: 3}}, // miss
	}

	for _, m := range moves {
		before := s.game.MovingPlayerID()
		s.events = nil
		s.game.Move(m.user, m.index)
		s.Require().NotEmpty(s.events)

		if s.events[0].Type == model.EventGameMiss {
			s.NotEqual(before, s.game.MovingPlayerID())
		} else {
			s.Equal(before, s.game.MovingPlayerID())
		}
	}
}

func (s *GameSuite) TestWinWhenAllShipsHit() {
	cells := testutil.FleetCells(testutil.MirroredFleet())
	for i, c := range cells {
		_, won := s.game.Winner()
		s.False(won, "winner set before shot %d", i)
		s.game.Move(s.alice.ID, c)
	}

	winner, won := s.game.Winner()
	s.Require().True(won)
	s.Equal(s.alice, winner)
	s.True(s.game.Ended())

	last := s.events[len(s.events)-1]
	s.Equal(model.EventGameEnd, last.Type)
	s.Equal(model.GameEndPayload{Winner: s.alice}, last.Payload)

	ends := 0
	for _, e := range s.events {
		if e.Type == model.EventGameEnd {
			ends++
		}
	}
	s.Equal(1, ends)
}

func (s *GameSuite) TestNoMovesAfterEnd() {
	for _, c := range testutil.FleetCells(testutil.MirroredFleet()) {
		s.game.Move(s.alice.ID, c)
	}
	s.events = nil

	s.game.Move(s.alice.ID, model.Index{Row: 0, Col: 0})
	s.game.Move(s.bob.ID, model.Index{Row: 0, Col: 0})

	s.Empty(s.events)
}

func (s *GameSuite) TestView() {
	s.game.Move(s.alice.ID, model.Index{Row: 0, Col: 0})

	view := s.game.View()

	s.Equal(s.alice, view.Player1.User)
	s.Equal(s.bob, view.Player2.User)
	s.Equal(s.bob.ID, view.MovingPlayerID)
	s.Equal(model.AttackMiss, view.Player1.Attacks[0][0])
	s.Equal(model.AttackEmpty, view.Player2.Attacks[0][0])
	s.Nil(view.Winner)
}

func (s *GameSuite) TestAttacksByUser() {
	s.game.Move(s.alice.ID, model.Index{Row: 0, Col: 0})

	attacks, ok := s.game.Attacks(s.alice.ID)
	s.Require().True(ok)
	s.Equal(model.AttackMiss, attacks[0][0])

	_, ok = s.game.Attacks("mallory")
	s.False(ok)
}
