package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/mcoot/battleship/internal/dependencies/random"
	"github.com/mcoot/battleship/internal/model"
	"github.com/mcoot/battleship/internal/services/bot"
	"github.com/mcoot/battleship/internal/services/fleet"
	"github.com/mcoot/battleship/internal/ws"
)

const playHelp = `Commands:
  create <name> [password]     create a room
  join <roomId> [password]     join a room
  leave [roomId]               leave a room
  positions random [roomId]    submit a random fleet
  start [roomId]               start the game once both fleets are set
  move <row> <col> [roomId]    fire at a cell
  move auto [roomId]           let the strategy pick the cell
  rooms                        list rooms
  help                         show this help
  quit                         disconnect
The room you last created or joined is used when roomId is omitted.`

var errNoRoom = errors.New("no room selected, pass a roomId")

func newPlayCmd() *cobra.Command {
	var strategyName string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play over one websocket session",
		Long:  "Open an interactive session reading commands from stdin.\n\n" + playHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rnd := random.New()
			strategy, err := bot.New(strategyName, rnd)
			if err != nil {
				return err
			}

			var me User
			if err := client.Get(ctx, "/api/v1/users/me", &me); err != nil {
				return err
			}

			conn, err := client.Dial(ctx)
			if err != nil {
				return err
			}

			s := &playSession{
				conn:     conn,
				me:       me.ID,
				out:      NewOutput(cfg.Output, cmd.OutOrStdout()),
				rnd:      rnd,
				strategy: strategy,
			}
			return s.run(ctx, cmd.InOrStdin())
		},
	}

	cmd.Flags().StringVar(&strategyName, "strategy", bot.StrategyHunt, "Targeting for move auto: random, hunt")

	return cmd
}

// command is one parsed REPL line
// Local commands are handled without sending a frame
type command struct {
	local   string
	msgType ws.MessageType
	payload any
	auto    bool // move target left to the strategy
}

// playSession is an interactive connection
type playSession struct {
	conn *websocket.Conn
	me   string
	out  *Output
	rnd      random.Random
	strategy bot.Strategy

	mu      sync.Mutex
	current string
	attacks model.Matrix[model.AttackCell] // own shots in the current game
}

func (s *playSession) run(ctx context.Context, in io.Reader) error {
	defer func() { _ = s.conn.Close() }()

	done := make(chan error, 1)
	go func() {
		done <- readFrames(s.conn, s.observe)
	}()

	lines := make(chan string)
	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stopped:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return s.close()
		case err := <-done:
			return err
		case line, ok := <-lines:
			if !ok {
				return s.close()
			}
			if quit, err := s.exec(ctx, line); err != nil {
				s.out.PrintMessage("error: " + err.Error())
			} else if quit {
				return s.close()
			}
		}
	}
}

// exec runs one line and reports whether the session should end
func (s *playSession) exec(ctx context.Context, line string) (bool, error) {
	cmd, err := parseCommand(line, s.room(), s.rnd)
	if err != nil {
		return false, err
	}

	switch cmd.local {
	case "":
	case "quit":
		return true, nil
	case "help":
		s.out.PrintMessage(playHelp)
		return false, nil
	case "rooms":
		var rooms []ws.RoomDTO
		if err := client.Get(ctx, "/api/v1/rooms", &rooms); err != nil {
			return false, err
		}
		s.out.Print(rooms)
		return false, nil
	default:
		return false, nil
	}

	if cmd.auto {
		move := cmd.payload.(ws.MoveGamePayload)
		target, ok := s.strategy.ChooseTarget(s.board())
		if !ok {
			return false, errors.New("no cells left to fire at")
		}
		move.Position = ws.NewPosition(target)
		cmd.payload = move
	}

	payload, err := json.Marshal(cmd.payload)
	if err != nil {
		return false, err
	}
	data, err := json.Marshal(ws.Frame{Type: cmd.msgType, Payload: payload})
	if err != nil {
		return false, err
	}
	return false, s.conn.WriteMessage(websocket.TextMessage, data)
}

// observe prints a frame and tracks the room this user sits in
func (s *playSession) observe(frame ws.Frame) {
	s.out.PrintFrame(time.Now(), frame)

	s.mu.Lock()
	defer s.mu.Unlock()

	switch frame.Type {
	case ws.TypeExistingRooms:
		var rooms []ws.RoomDTO
		if json.Unmarshal(frame.Payload, &rooms) == nil {
			for _, room := range rooms {
				if room.Player1.ID == s.me || (room.Player2 != nil && room.Player2.ID == s.me) {
					s.current = room.ID
					if room.Game != nil {
						s.adopt(*room.Game)
					}
				}
			}
		}
	case ws.TypeRoomCreate:
		var room ws.RoomDTO
		if json.Unmarshal(frame.Payload, &room) == nil && room.Player1.ID == s.me {
			s.current = room.ID
		}
	case ws.TypeRoomJoin:
		var join ws.RoomJoinDTO
		if json.Unmarshal(frame.Payload, &join) == nil && join.User.ID == s.me {
			s.current = join.RoomID
		}
	case ws.TypeRoomLeave:
		var leave ws.RoomUserDTO
		if json.Unmarshal(frame.Payload, &leave) == nil && leave.UserID == s.me && leave.RoomID == s.current {
			s.current = ""
		}
	case ws.TypeRoomDelete:
		var del ws.RoomDeleteDTO
		if json.Unmarshal(frame.Payload, &del) == nil && del.RoomID == s.current {
			s.current = ""
		}
	case ws.TypeGameStart:
		var start ws.GameStartDTO
		if json.Unmarshal(frame.Payload, &start) == nil && start.RoomID == s.current {
			s.adopt(start.Game)
		}
	case ws.TypeGameHit, ws.TypeGameMiss:
		var shot ws.GameShotDTO
		if json.Unmarshal(frame.Payload, &shot) == nil && shot.RoomID == s.current && shot.UserID == s.me {
			cell := model.AttackMiss
			if frame.Type == ws.TypeGameHit {
				cell = model.AttackHit
			}
			i := shot.Position.Index()
			if model.InRange(i) {
				s.attacks[i.Row][i.Col] = cell
			}
		}
	case ws.TypeGameDestroy:
		var destroy ws.GameDestroyDTO
		if json.Unmarshal(frame.Payload, &destroy) == nil && destroy.RoomID == s.current && destroy.UserID == s.me {
			s.markSunk(destroy.Ship)
		}
	}
}

// adopt takes this user's shot board from a game snapshot
func (s *playSession) adopt(game ws.GameDTO) {
	switch s.me {
	case game.Player1.ID:
		s.attacks = game.Player1.Attacks
	case game.Player2.ID:
		s.attacks = game.Player2.Attacks
	}
}

// markSunk mirrors the ring of misses the server draws around a sunk ship
func (s *playSession) markSunk(ship []ws.Position) {
	cells := make([]model.Index, 0, len(ship))
	for _, p := range ship {
		cells = append(cells, p.Index())
	}
	for _, c := range fleet.SurroundingCells(cells) {
		if s.attacks[c.Row][c.Col] == model.AttackEmpty {
			s.attacks[c.Row][c.Col] = model.AttackMiss
		}
	}
}

func (s *playSession) board() model.Matrix[model.AttackCell] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attacks
}

func (s *playSession) room() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *playSession) close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return nil
}

// parseCommand turns a REPL line into a frame to send
func parseCommand(line, current string, rnd random.Random) (command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command{local: "noop"}, nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "quit", "exit":
		return command{local: "quit"}, nil
	case "help":
		return command{local: "help"}, nil
	case "rooms":
		return command{local: "rooms"}, nil

	case "create":
		if len(args) < 1 || len(args) > 2 {
			return command{}, errors.New("usage: create <name> [password]")
		}
		return command{msgType: ws.TypeCreateRoom, payload: ws.CreateRoomPayload{
			Name:     args[0],
			Password: optional(args, 1),
		}}, nil

	case "join":
		if len(args) < 1 || len(args) > 2 {
			return command{}, errors.New("usage: join <roomId> [password]")
		}
		return command{msgType: ws.TypeJoinRoom, payload: ws.JoinRoomPayload{
			RoomID:   args[0],
			Password: optional(args, 1),
		}}, nil

	case "leave", "start":
		room, err := roomArg(args, 0, current)
		if err != nil {
			return command{}, err
		}
		msgType := ws.TypeLeaveRoom
		if name == "start" {
			msgType = ws.TypeStartGame
		}
		return command{msgType: msgType, payload: ws.RoomPayload{RoomID: room}}, nil

	case "positions":
		if len(args) < 1 || args[0] != "random" {
			return command{}, errors.New("usage: positions random [roomId]")
		}
		room, err := roomArg(args, 1, current)
		if err != nil {
			return command{}, err
		}
		return command{msgType: ws.TypeSetPositions, payload: ws.SetPositionsPayload{
			RoomID:    room,
			Positions: fleet.RandomLayout(rnd).Snapshot(),
		}}, nil

	case "move":
		if len(args) >= 1 && args[0] == "auto" {
			room, err := roomArg(args, 1, current)
			if err != nil {
				return command{}, err
			}
			return command{msgType: ws.TypeMoveGame, payload: ws.MoveGamePayload{RoomID: room}, auto: true}, nil
		}
		if len(args) < 2 {
			return command{}, errors.New("usage: move <row> <col> [roomId]")
		}
		row, err := cell(args[0])
		if err != nil {
			return command{}, err
		}
		col, err := cell(args[1])
		if err != nil {
			return command{}, err
		}
		room, err := roomArg(args, 2, current)
		if err != nil {
			return command{}, err
		}
		return command{msgType: ws.TypeMoveGame, payload: ws.MoveGamePayload{
			RoomID:   room,
			Position: ws.NewPosition(model.Index{Row: row, Col: col}),
		}}, nil

	default:
		return command{}, fmt.Errorf("unknown command %q, try help", name)
	}
}

func optional(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func roomArg(args []string, i int, current string) (string, error) {
	if room := optional(args, i); room != "" {
		return room, nil
	}
	if current == "" {
		return "", errNoRoom
	}
	return current, nil
}

func cell(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n >= model.FieldSize {
		return 0, fmt.Errorf("cell coordinate must be 0..%d, got %q", model.FieldSize-1, s)
	}
	return n, nil
}
