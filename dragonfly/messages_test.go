package dragonfly

import (
	"testing"

	"github.com/oriumgames/arena"
	"golang.org/x/text/language"
)

func TestCatalogRender(t *testing.T) {
	t.Parallel()

	c := NewCatalog()
	tests := []struct {
		name string
		tag  language.Tag
		msg  arena.Message
		want string
	}{
		{"english", language.English, arena.Msg("arena.joined", "steve", "red"), "§7steve joined team §ered"},
		{"german", language.German, arena.Msg("arena.joined", "steve", "red"), "§7steve ist Team §ered beigetreten"},
		{"numbers", language.English, arena.Msg("ready.missing_players", 3, 4), "§cWaiting for players (3/4)"},
		{"unknown key", language.English, arena.Msg("custom.key", 1, "a"), "custom.key 1 a"},
		{"unknown bare", language.English, arena.Msg("custom.key"), "custom.key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Render(tt.tag, tt.msg); got != tt.want {
				t.Fatalf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCatalogRegisterOverrides(t *testing.T) {
	t.Parallel()

	c := NewCatalog()
	c.Register(language.English, map[string]string{
		"arena.started": "§6Go!",
		"custom.hello":  "hello %[1]s",
	})
	if got := c.Render(language.English, arena.Msg("arena.started")); got != "§6Go!" {
		t.Fatalf("override = %q", got)
	}
	if got := c.Render(language.English, arena.Msg("custom.hello", "alex")); got != "hello alex" {
		t.Fatalf("custom = %q", got)
	}
}

func TestEveryCodeHasEnglishText(t *testing.T) {
	t.Parallel()

	for _, code := range []arena.Code{
		arena.CodeArenaLocked, arena.CodeArenaFull, arena.CodeArenaRunning,
		arena.CodeAlreadyInArena, arena.CodeNotInArena, arena.CodeTeamUnknown,
		arena.CodeTeamFull, arena.CodeNoSpawn, arena.CodeSpectateOff,
		arena.CodeUnknownArena, arena.CodeLoadoutUnknown, arena.CodeStatusForbidden,
		arena.CodeAlone, arena.CodeMissingPlayers, arena.CodePlayerNotReady,
		arena.CodeTeamAlone, arena.CodeWaitingEqualTeams, arena.CodeMissingTeamPlayers,
		arena.CodeNoLoadout, arena.CodeNotEnoughReady, arena.CodeAlreadyRunning,
		arena.CodeRejectedByModule,
	} {
		if _, ok := messagesEN[string(code)]; !ok {
			t.Errorf("no English text for %q", code)
		}
	}
}
