package handlers

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *PrefixRegistry {
	r := NewPrefixRegistry("!")
	r.Register(
		PrefixCommand{Name: "ping", Run: func(*PrefixContext) error { return nil }},
		PrefixCommand{Name: "roll", Usage: "[sides]", Run: func(*PrefixContext) error { return nil }},
		PrefixCommand{Name: "echo", Usage: "<text>", MinArgs: 1, Run: func(*PrefixContext) error { return nil }},
	)
	return r
}

func TestPrefixRegistryParse(t *testing.T) {
	r := newTestRegistry()

	tests := []struct {
		content  string
		wantName string
		wantArgs []string
		wantOK   bool
	}{
		{content: "!ping", wantName: "ping", wantArgs: []string{}, wantOK: true},
		{content: "!ROLL  20", wantName: "roll", wantArgs: []string{"20"}, wantOK: true},
		{content: "!echo hello  world", wantName: "echo", wantArgs: []string{"hello", "world"}, wantOK: true},
		{content: "ping", wantOK: false},
		{content: "!", wantOK: false},
		{content: "!   ", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			name, args, ok := r.Parse(tt.content)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantName, name)
				assert.Equal(t, tt.wantArgs, args)
			}
		})
	}
}

func TestPrefixRegistryResolve(t *testing.T) {
	r := newTestRegistry()

	cmd, err := r.Resolve("roll", nil)
	require.NoError(t, err)
	assert.Equal(t, "roll", cmd.Name)

	_, err = r.Resolve("dance", nil)
	var notFound *CommandNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "dance", notFound.Name)

	_, err = r.Resolve("echo", nil)
	var missing *MissingArgumentsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "!echo <text>", missing.Command.Signature("!"))
}

func TestPrefixRegistryCommandsSorted(t *testing.T) {
	names := []string{}
	for _, cmd := range newTestRegistry().Commands() {
		names = append(names, cmd.Name)
	}
	assert.Equal(t, []string{"echo", "ping", "roll"}, names)
}

func TestPrefixRegistryNotice(t *testing.T) {
	r := newTestRegistry()
	echo, _ := r.Lookup("echo")

	tests := []struct {
		name      string
		err       error
		wantTitle string
		wantDesc  string
		wantDelay time.Duration
	}{
		{
			name:      "not found",
			err:       &CommandNotFoundError{Name: "dance"},
			wantTitle: "Command Not Found ❌",
			wantDesc:  "The command `dance` doesn't exist. Type `!help` to see available commands.",
			wantDelay: 10 * time.Second,
		},
		{
			name:      "missing arguments",
			err:       &MissingArgumentsError{Command: echo},
			wantTitle: "Missing Arguments ❌",
			wantDesc:  "You're missing required arguments for this command.\nUsage: `!echo <text>`",
			wantDelay: 15 * time.Second,
		},
		{
			name:      "bad argument",
			err:       fmt.Errorf("roll: %w", &BadArgumentError{Reason: "❌ Dice must have at least 1 side!"}),
			wantTitle: "Invalid Argument ❌",
			wantDesc:  "❌ Dice must have at least 1 side!",
			wantDelay: 10 * time.Second,
		},
		{
			name:      "guild only",
			err:       ErrGuildOnly,
			wantTitle: "Server Only ❌",
			wantDelay: 10 * time.Second,
		},
		{
			name:      "unexpected",
			err:       errors.New("connection reset"),
			wantTitle: "An Error Occurred ❌",
			wantDelay: 10 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			embed, delay := r.Notice(tt.err)
			assert.Equal(t, tt.wantTitle, embed.Title)
			if tt.wantDesc != "" {
				assert.Equal(t, tt.wantDesc, embed.Description)
			}
			assert.Equal(t, tt.wantDelay, delay)
		})
	}
}

func TestNewPrefixRegistryDefault(t *testing.T) {
	assert.Equal(t, "!", NewPrefixRegistry("").Prefix())
}
