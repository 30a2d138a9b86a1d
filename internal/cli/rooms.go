package cli

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/battleship/internal/ws"
)

func newRoomsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rooms [id]",
		Short: "List rooms, or show one room",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output, cmd.OutOrStdout())

			if len(args) == 1 {
				var room ws.RoomDTO
				if err := client.Get(cmd.Context(), "/api/v1/rooms/"+url.PathEscape(args[0]), &room); err != nil {
					return err
				}
				out.Print(room)
				return nil
			}

			var rooms []ws.RoomDTO
			if err := client.Get(cmd.Context(), "/api/v1/rooms", &rooms); err != nil {
				return err
			}
			out.Print(rooms)
			return nil
		},
	}
}
