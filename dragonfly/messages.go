package dragonfly

import (
	"fmt"
	"strings"

	"github.com/oriumgames/arena"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Catalog renders arena message keys into localised chat text.
type Catalog struct {
	builder *catalog.Builder
	keys    map[string]bool
}

// NewCatalog creates a catalog with the built in English and German texts.
func NewCatalog() *Catalog {
	c := &Catalog{
		builder: catalog.NewBuilder(catalog.Fallback(language.English)),
		keys:    make(map[string]bool),
	}
	c.Register(language.English, messagesEN)
	c.Register(language.German, messagesDE)
	return c
}

// Register adds or overrides texts for a language. Texts are fmt formats
// applied to the message arguments.
func (c *Catalog) Register(tag language.Tag, texts map[string]string) {
	for key, text := range texts {
		if err := c.builder.SetString(tag, key, text); err != nil {
			continue
		}
		c.keys[key] = true
	}
}

// Render formats the message for the language. Unknown keys are rendered raw
// so they stay visible.
func (c *Catalog) Render(tag language.Tag, msg arena.Message) string {
	if !c.keys[msg.Key] {
		if len(msg.Args) == 0 {
			return msg.Key
		}
		parts := make([]string, len(msg.Args))
		for i, a := range msg.Args {
			parts[i] = fmt.Sprint(a)
		}
		return msg.Key + " " + strings.Join(parts, " ")
	}
	p := message.NewPrinter(tag, message.Catalog(c.builder))
	return p.Sprintf(msg.Key, msg.Args...)
}

var messagesEN = map[string]string{
	// Lifecycle
	"arena.joined":              "§7%[1]s joined team §e%[2]s",
	"arena.left":                "§7%[1]s left the arena",
	"arena.ready":               "§a%[1]s is ready",
	"arena.countdown":           "§eMatch starts in %[1]d seconds",
	"arena.countdown_cancelled": "§cCountdown cancelled",
	"arena.started":             "§6The match has started!",
	"arena.killed":              "§c%[1]s §7was killed by §c%[2]s",
	"arena.died":                "§c%[1]s §7died",
	"arena.eliminated":          "§cYou have been eliminated",
	"arena.loadout_chosen":      "§aLoadout selected: %[1]s",
	"arena.time_up":             "§eTime is up!",
	"arena.draw":                "§7The match ended in a draw",
	"arena.team_won":            "§6Team %[1]s won the match!",
	"arena.player_won":          "§6%[1]s won the match!",

	// Rejections
	"arena.locked":            "§cArena %[1]s is locked",
	"arena.full":              "§cArena %[1]s is full",
	"arena.running":           "§cA match is running in %[1]s",
	"arena.already_joined":    "§cYou are already in arena %[1]s",
	"arena.not_joined":        "§cYou are not in an arena",
	"arena.team_unknown":      "§cUnknown team %[1]s",
	"arena.team_full":         "§cTeam %[1]s is full",
	"arena.no_spawn":          "§cNo spawn available in %[1]s",
	"arena.spectate_disabled": "§cSpectating is disabled in %[1]s",
	"arena.unknown":           "§cUnknown arena %[1]s",
	"arena.loadout_unknown":   "§cUnknown loadout %[1]s",
	"arena.status_forbidden":  "§cYou cannot do that now",

	"ready.alone":                "§cYou need at least one opponent",
	"ready.missing_players":      "§cWaiting for players (%[1]d/%[2]d)",
	"ready.player_not_ready":     "§c%[1]s is not ready",
	"ready.team_alone":           "§cAll players are on the same team",
	"ready.waiting_equal_teams":  "§cWaiting for equal teams",
	"ready.missing_team_players": "§cTeam %[1]s needs %[2]d players",
	"ready.no_loadout":           "§c%[1]s has no loadout",
	"ready.not_enough_ready":     "§cNot enough players are ready (%[1]d/%[2]d)",
	"ready.already_running":      "§cThe match is already running",
	"workflow.rejected":          "§cThat is not possible right now",

	// Goals and modules
	"goal.team_out":            "§cTeam %[1]s ran out of lives",
	"domination.claiming":      "§eTeam %[1]s is claiming %[2]s",
	"domination.unclaiming":    "§eTeam %[1]s is losing %[2]s",
	"domination.claimed":       "§aTeam %[1]s claimed %[2]s",
	"domination.unclaimed":     "§cTeam %[1]s lost %[2]s",
	"domination.secured":       "§aTeam %[1]s secured %[2]s",
	"flags.taken":              "§e%[1]s took the flag of team %[2]s",
	"flags.captured":           "§a%[1]s captured the flag of team %[2]s",
	"flags.returned":           "§7The flag of team %[1]s returned",
	"spectate.watching":        "§7You are watching %[1]s",
	"spectate.eliminated":      "§7You are now spectating",
	"rewards.received":         "§aYou received %[1]s",
	"celebration.victory":      "§6%[1]s are victorious!",
	"celebration.cheer":        "§6GG %[1]s!",

	// Statistics
	"stats.summary":     "§6%[1]s§7: kills §f%[2]d§7, deaths §f%[3]d§7, wins §f%[4]d§7, losses §f%[5]d§7, played §f%[6]d",
	"stats.unavailable": "§cStatistics are unavailable right now",
}

var messagesDE = map[string]string{
	"arena.joined":              "§7%[1]s ist Team §e%[2]s beigetreten",
	"arena.left":                "§7%[1]s hat die Arena verlassen",
	"arena.ready":               "§a%[1]s ist bereit",
	"arena.countdown":           "§eDas Spiel beginnt in %[1]d Sekunden",
	"arena.countdown_cancelled": "§cCountdown abgebrochen",
	"arena.started":             "§6Das Spiel hat begonnen!",
	"arena.killed":              "§c%[1]s §7wurde von §c%[2]s §7getötet",
	"arena.died":                "§c%[1]s §7ist gestorben",
	"arena.eliminated":          "§cDu bist ausgeschieden",
	"arena.team_won":            "§6Team %[1]s hat gewonnen!",
	"arena.player_won":          "§6%[1]s hat gewonnen!",
	"arena.draw":                "§7Unentschieden",
	"arena.full":                "§cArena %[1]s ist voll",
	"ready.waiting_equal_teams": "§cWarte auf gleich große Teams",
	"workflow.rejected":         "§cDas ist gerade nicht möglich",
	"stats.summary":             "§6%[1]s§7: Kills §f%[2]d§7, Tode §f%[3]d§7, Siege §f%[4]d§7, Niederlagen §f%[5]d§7, Spiele §f%[6]d",
}
