package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
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
	case RegisterResult:
		o.printRegisterResult(v)
	case UserList:
		o.printUserList(v)
	case GroupCreated:
		o.printGroupCreated(v)
	case GroupDetails:
		o.printGroupDetails(v)
	case []GroupDetails:
		o.printGroupDetailsList(v)
	case Group:
		o.printGroup(v)
	case []Group:
		for i, g := range v {
			if i > 0 {
				fmt.Println()
			}
			o.printGroup(g)
		}
	case []Game:
		o.printGames(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// RegisterResult response type (matches API)
type RegisterResult struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// UserList response type
type UserList struct {
	Users []string `json:"users"`
}

// GroupCreated response type
type GroupCreated struct {
	ID int64 `json:"id"`
}

// GroupDetails response type
type GroupDetails struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Games       []string `json:"games"`
}

// Group response type
type Group struct {
	ID          int64  `json:"id"`
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Games       []Game `json:"games"`
}

// Game response type
type Game struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Price string `json:"price"`
}

// GameAdded response type
type GameAdded struct {
	ID string `json:"id"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printRegisterResult(r RegisterResult) {
	fmt.Printf("User: %s\n", r.Username)
	fmt.Printf("Token: %s\n", r.Token)
}

func (o *Output) printUserList(u UserList) {
	fmt.Printf("Users (%d):\n", len(u.Users))
	for _, name := range u.Users {
		fmt.Printf("  - %s\n", name)
	}
}

func (o *Output) printGroupCreated(g GroupCreated) {
	fmt.Printf("Group created: %d\n", g.ID)
}

func (o *Output) printGroupDetails(d GroupDetails) {
	fmt.Printf("Group: %s (%d)\n", d.Name, d.ID)
	fmt.Printf("Description: %s\n", d.Description)
	if len(d.Games) == 0 {
		fmt.Println("Games: none")
	} else {
		fmt.Printf("Games: %s\n", strings.Join(d.Games, ", "))
	}
}

func (o *Output) printGroupDetailsList(list []GroupDetails) {
	fmt.Printf("Groups (%d):\n", len(list))
	for _, d := range list {
		fmt.Printf("  - %s (%d): %d games\n", d.Name, d.ID, len(d.Games))
	}
}

func (o *Output) printGroup(g Group) {
	fmt.Printf("Group: %s (%d)\n", g.Name, g.ID)
	fmt.Printf("Owner: %s\n", g.Owner)
	fmt.Printf("Description: %s\n", g.Description)
	fmt.Printf("Games (%d):\n", len(g.Games))
	for _, game := range g.Games {
		fmt.Printf("  - %s (%s)\n", game.Name, game.ID)
	}
}

func (o *Output) printGames(games []Game) {
	fmt.Printf("Games (%d):\n", len(games))
	for _, g := range games {
		line := fmt.Sprintf("  - %s (%s)", g.Name, g.ID)
		if g.Price != "" {
			line += " $" + g.Price
		}
		fmt.Println(line)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
