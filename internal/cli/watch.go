package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/mcoot/battleship/internal/ws"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream lobby and game events",
		Long: `Connect to the game websocket and print every frame the server sends.

The stream starts with ExistingRooms and ExistingPositions, followed by
room and game events:
  - RoomCreate, RoomJoin, RoomLeave, RoomDelete, RoomPositionsSet
  - GameStart, GameHit, GameMiss, GameDestroy, GameEnd

Watching counts as a connection of your user, so leaving the watch does not
unseat you while another connection of yours stays open.

Press Ctrl+C to disconnect.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return watch(ctx, NewOutput(cfg.Output, cmd.OutOrStdout()), cfg.Output != "json")
		},
	}
}

func watch(ctx context.Context, out *Output, banner bool) error {
	conn, err := client.Dial(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	if banner {
		out.PrintMessage("Connected")
	}

	// Unblock ReadMessage on cancellation
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	err = readFrames(conn, func(frame ws.Frame) {
		out.PrintFrame(time.Now(), frame)
	})
	if ctx.Err() != nil {
		if banner {
			out.PrintMessage("Disconnected")
		}
		return nil
	}
	return err
}

// readFrames calls fn for every frame until the connection ends
func readFrames(conn *websocket.Conn, fn func(ws.Frame)) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			if errors.Is(err, websocket.ErrCloseSent) {
				return nil
			}
			return fmt.Errorf("stream error: %w", err)
		}

		var frame ws.Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			return fmt.Errorf("malformed frame: %w", err)
		}
		fn(frame)
	}
}
