package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Game:
		o.printGame(v)
	case []Game:
		o.printGames(v)
	case Player:
		o.printPlayer(v)
	case []Player:
		o.printPlayers(v)
	case Message:
		o.printChatMessage(v)
	case []Message:
		o.printChatMessages(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Game response type (matches API)
type Game struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Started     bool      `json:"started"`
	JokerTarget int       `json:"joker_target"`
	HasPassword bool      `json:"has_password"`
	CreatedAt   time.Time `json:"created_at"`
}

// Player response type
type Player struct {
	ID          string  `json:"id"`
	GameID      string  `json:"game_id"`
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	DisguisedAs *string `json:"disguised_as"`
}

// Message response type
type Message struct {
	ID         string    `json:"id"`
	PlayerID   string    `json:"player_id"`
	ToPlayerID *string   `json:"to_player_id"`
	Content    string    `json:"content"`
	IsPrivate  bool      `json:"is_private"`
	CreatedAt  time.Time `json:"created_at"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printGame(g Game) {
	state := "lobby"
	if g.Started {
		state = "in progress"
	}
	fmt.Printf("Game: %s (%s)\n", g.Code, g.ID)
	fmt.Printf("State: %s\n", state)
	fmt.Printf("Jokers: %d\n", g.JokerTarget)
	if g.HasPassword {
		fmt.Println("Password: yes")
	}
}

func (o *Output) printGames(games []Game) {
	if len(games) == 0 {
		fmt.Println("No games")
		return
	}
	fmt.Printf("Games (%d):\n", len(games))
	for _, g := range games {
		state := "lobby"
		if g.Started {
			state = "in progress"
		}
		fmt.Printf("  - %s [%s]\n", g.Code, state)
	}
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.Name, p.ID)
	fmt.Printf("Role: %s\n", p.Role)
	if p.DisguisedAs != nil {
		fmt.Printf("Disguised as: %s\n", *p.DisguisedAs)
	}
}

func (o *Output) printPlayers(players []Player) {
	if len(players) == 0 {
		fmt.Println("No players")
		return
	}
	fmt.Printf("Players (%d):\n", len(players))
	for i, p := range players {
		hostStr := ""
		if i == 0 {
			hostStr = " [host]"
		}
		fmt.Printf("  - %s (%s)%s\n", p.Name, p.ID, hostStr)
	}
}

func (o *Output) printChatMessage(m Message) {
	o.printChatMessages([]Message{m})
}

func (o *Output) printChatMessages(msgs []Message) {
	if len(msgs) == 0 {
		fmt.Println("No messages")
		return
	}
	for _, m := range msgs {
		privateStr := ""
		if m.IsPrivate {
			privateStr = " [private]"
		}
		fmt.Printf("[%s] %s%s: %s\n", m.CreatedAt.Format(time.Kitchen), m.PlayerID, privateStr, m.Content)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
