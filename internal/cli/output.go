package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mcoot/battleship/internal/model"
	"github.com/mcoot/battleship/internal/ws"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

// PrintFrame outputs one websocket frame as it arrives
func (o *Output) PrintFrame(at time.Time, frame ws.Frame) {
	if o.format == "json" {
		data, _ := json.Marshal(struct {
			Time time.Time `json:"time"`
			ws.Frame
		}{at, frame})
		fmt.Fprintln(o.w, string(data))
		return
	}

	payload := string(frame.Payload)
	if len(payload) > 120 {
		payload = payload[:120] + "..."
	}
	fmt.Fprintf(o.w, "[%s] %s %s\n", at.Format("15:04:05"), frame.Type, payload)
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case AuthResult:
		o.printAuthResult(v)
	case ws.RoomDTO:
		o.printRoom(v)
	case []ws.RoomDTO:
		o.printRooms(v)
	case model.Matrix[model.PositionCell]:
		o.printPositions(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Guest bool   `json:"guest"`
}

// AuthResult combines user and token
type AuthResult struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// HealthResult response type
type HealthResult struct {
	Status      string `json:"status"`
	Rooms       int    `json:"rooms"`
	Connections int    `json:"connections"`
}

func (o *Output) printUser(u User) {
	kind := "registered"
	if u.Guest {
		kind = "guest"
	}
	fmt.Fprintf(o.w, "User: %s (%s)\n", u.Name, kind)
	fmt.Fprintf(o.w, "ID: %s\n", u.ID)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printUser(a.User)
	fmt.Fprintf(o.w, "Token expires: %s\n", a.ExpiresAt.Format(time.RFC3339))
	fmt.Fprintln(o.w, "Token saved")
}

func (o *Output) printRoom(r ws.RoomDTO) {
	lock := ""
	if r.HasPassword {
		lock = " [locked]"
	}
	fmt.Fprintf(o.w, "Room %s: %s%s\n", r.ID, r.Name, lock)
	fmt.Fprintf(o.w, "  Player 1: %s\n", seatLine(r.Player1))
	if r.Player2 != nil {
		fmt.Fprintf(o.w, "  Player 2: %s\n", seatLine(*r.Player2))
	} else {
		fmt.Fprintln(o.w, "  Player 2: (waiting)")
	}

	if g := r.Game; g != nil {
		switch {
		case g.Winner != nil:
			fmt.Fprintf(o.w, "  Game over, winner: %s\n", g.Winner.Name)
		case g.MovingPlayerID == g.Player1.ID:
			fmt.Fprintf(o.w, "  Game in progress, %s to move\n", g.Player1.Name)
		default:
			fmt.Fprintf(o.w, "  Game in progress, %s to move\n", g.Player2.Name)
		}
	}
}

func (o *Output) printRooms(rooms []ws.RoomDTO) {
	if len(rooms) == 0 {
		fmt.Fprintln(o.w, "No rooms")
		return
	}
	for _, r := range rooms {
		o.printRoom(r)
	}
}

func seatLine(p ws.RoomPlayerDTO) string {
	if p.HasPositions {
		return p.Name + " (ready)"
	}
	return p.Name
}

func (o *Output) printPositions(m model.Matrix[model.PositionCell]) {
	var b strings.Builder

	b.WriteString("   ")
	for col := range model.FieldSize {
		fmt.Fprintf(&b, " %d", col)
	}
	b.WriteString("\n")

	for row := range model.FieldSize {
		fmt.Fprintf(&b, " %d ", row)
		for col := range model.FieldSize {
			if m[row][col] == model.PositionShip {
				b.WriteString(" #")
			} else {
				b.WriteString(" .")
			}
		}
		b.WriteString("\n")
	}

	fmt.Fprint(o.w, b.String())
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	fmt.Fprintf(o.w, "Rooms: %d, connections: %d\n", h.Rooms, h.Connections)
}
