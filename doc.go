// Package arena runs competitive arena matches on Dragonfly servers.
//
// An arena is a bounded match: participants join teams (or a free-for-all
// team), wait in a lounge, start after a countdown or once everyone is ready,
// fight against a pluggable win condition, and are sent back out when the
// arena resets for the next match. The package provides:
//   - A match state machine with per-participant statuses
//   - Pluggable goals (win conditions) and modules (lifecycle extensions)
//   - A priority ordered workflow that dispatches every lifecycle trigger
//   - Spawn selection, including a farthest-point "smart" strategy
//   - A single goroutine tick scheduler for timers and serialised host calls
//
// # Quick Start
//
// Create a manager for your host and register arenas with a builder:
//
//	mngr := arena.NewManager(host, arena.WithStats(store))
//
//	_, err := mngr.Add(arena.NewBuilder("castle").
//	    Settings(settings).
//	    Goal(goal.NewTeamLives(3)).
//	    Module(module.NewSpectate(), module.NewRewards(rewards)))
//
//	mngr.Runner().(*arena.TickScheduler).Start()
//	defer mngr.Close()
//
// Players then join through the manager:
//
//	err := mngr.Join("castle", arena.Identity{ID: id, Name: name}, "")
//
// # Statuses
//
// Participants move through None, Lounge, Ready, Fight and then Watch, Dead
// or Lost before returning to None on leave or reset. Illegal transitions are
// ignored and logged.
//
// # Goals and Modules
//
// A Goal owns its lives or score state and decides when the match ends. A
// Module implements Module plus any hook interface (JoinChecker, DeathHandler,
// EndClaimer, ...). The Workflow calls modules by descending priority: the
// first check error rejects, the first handler returning true owns the
// action, and the goal hook runs afterwards.
//
// # Settings
//
// Arenas are configured from key/value settings:
//
//	MIN_PLAYERS=4
//	TEAMS=red,blue:aqua
//	SPAWN_STRATEGY=smart
//	SPAWN_RED=0,64,0;8,64,0
//	SPAWN_BLUE=0,64,40;8,64,40
//	SPAWN_LOUNGE=lobby@0,80,0
//	REGION_SPECTATOR=0,70,0;40,90,40
//
// Goals and modules read their own keys from the same settings with a prefix,
// for example GOAL_LIVES=3.
//
// # Concurrency
//
// Arena state is owned by one goroutine. Manager methods submit work through
// the TickScheduler's executor; timers run on the same goroutine, so hooks
// never race with each other.
package arena
