package game

import (
	"github.com/mcoot/battleship/internal/model"
	"github.com/mcoot/battleship/internal/services/fleet"
)

// Player is one side of a game
type Player struct {
	User      model.User
	positions *model.PositionField // never shown to the opponent
	attacks   *model.AttackField   // this player's shots, public
	ships     []model.Ship
}

// newPlayer creates a player with a fresh attack board
func newPlayer(user model.User, positions *model.PositionField) *Player {
	return &Player{
		User:      user,
		positions: positions,
		attacks:   model.NewAttackField(),
		ships:     fleet.ExtractShips(positions),
	}
}

// Attacks returns a copy of the player's shot board
func (p *Player) Attacks() model.Matrix[model.AttackCell] {
	return p.attacks.Snapshot()
}

// Game is the turn engine for one match
// Positions must be final before construction
type Game struct {
	player1        *Player
	player2        *Player
	movingPlayerID model.UserID
	winner         *model.User
	emit           model.Emitter
}

// New creates a game where player1 moves first
func New(user1 model.User, positions1 *model.PositionField, user2 model.User, positions2 *model.PositionField, emit model.Emitter) *Game {
	if emit == nil {
		emit = func(model.Event) {}
	}
	return &Game{
		player1:        newPlayer(user1, positions1),
		player2:        newPlayer(user2, positions2),
		movingPlayerID: user1.ID,
		emit:           emit,
	}
}

// Move fires at index on behalf of userID
// Moves out of turn, after the end, outside the field or at an already attacked cell are ignored
func (g *Game) Move(userID model.UserID, index model.Index) {
	if g.winner != nil || userID != g.movingPlayerID || !model.InRange(index) {
		return
	}

	attacker, defender := g.sides(userID)
	if attacker.attacks.At(index) != model.AttackEmpty {
		return
	}

	if defender.positions.At(index) != model.PositionShip {
		attacker.attacks.Set(index, model.AttackMiss)
		g.emit(model.Event{
			Type:    model.EventGameMiss,
			Payload: model.GameShotPayload{UserID: userID, Position: index},
		})
		g.movingPlayerID = defender.User.ID
		return
	}

	attacker.attacks.Set(index, model.AttackHit)
	g.emit(model.Event{
		Type:    model.EventGameHit,
		Payload: model.GameShotPayload{UserID: userID, Position: index},
	})

	if ship, ok := fleet.ShipAt(defender.ships, index); ok && isSunk(ship, attacker.attacks) {
		// Mark the ring around a sunk ship so nobody shoots there
		for _, c := range fleet.SurroundingCells(ship) {
			if attacker.attacks.At(c) == model.AttackEmpty {
				attacker.attacks.Set(c, model.AttackMiss)
			}
		}
		g.emit(model.Event{
			Type:    model.EventGameDestroy,
			Payload: model.GameDestroyPayload{UserID: userID, Ship: append(model.Ship(nil), ship...)},
		})
	}

	if allDestroyed(defender.positions, attacker.attacks) {
		winner := attacker.User
		g.winner = &winner
		g.emit(model.Event{
			Type:    model.EventGameEnd,
			Payload: model.GameEndPayload{Winner: winner},
		})
	}
}

// MovingPlayerID returns the id of the player allowed to move
func (g *Game) MovingPlayerID() model.UserID {
	return g.movingPlayerID
}

// Winner returns the winner once the game has ended
func (g *Game) Winner() (model.User, bool) {
	if g.winner == nil {
		return model.User{}, false
	}
	return *g.winner, true
}

// Ended returns true once a winner is set
func (g *Game) Ended() bool {
	return g.winner != nil
}

// Player1 returns the player who moves first
func (g *Game) Player1() *Player {
	return g.player1
}

// Player2 returns the player who moves second
func (g *Game) Player2() *Player {
	return g.player2
}

// Attacks returns the shot board of the given player
func (g *Game) Attacks(userID model.UserID) (model.Matrix[model.AttackCell], bool) {
	switch userID {
	case g.player1.User.ID:
		return g.player1.Attacks(), true
	case g.player2.User.ID:
		return g.player2.Attacks(), true
	}
	return model.Matrix[model.AttackCell]{}, false
}

// View returns the public state of the game
func (g *Game) View() model.GameView {
	view := model.GameView{
		Player1:        model.GamePlayerView{User: g.player1.User, Attacks: g.player1.Attacks()},
		Player2:        model.GamePlayerView{User: g.player2.User, Attacks: g.player2.Attacks()},
		MovingPlayerID: g.movingPlayerID,
	}
	if g.winner != nil {
		winner := *g.winner
		view.Winner = &winner
	}
	return view
}

// sides returns the attacker and defender for a move by userID
func (g *Game) sides(userID model.UserID) (*Player, *Player) {
	if userID == g.player1.User.ID {
		return g.player1, g.player2
	}
	return g.player2, g.player1
}

func isSunk(ship model.Ship, attacks *model.AttackField) bool {
	for _, c := range ship {
		if attacks.At(c) != model.AttackHit {
			return false
		}
	}
	return true
}

// allDestroyed returns true if every ship cell has been hit
func allDestroyed(positions *model.PositionField, attacks *model.AttackField) bool {
	for _, i := range model.Indices() {
		if positions.At(i) == model.PositionShip && attacks.At(i) != model.AttackHit {
			return false
		}
	}
	return true
}
