package dragonfly

import (
	"github.com/df-mc/dragonfly/server/item"
	"github.com/df-mc/dragonfly/server/player"
)

// Kit is a loadout: inventory items by slot plus armour.
type Kit struct {
	Items []item.Stack

	Helmet     item.Stack
	Chestplate item.Stack
	Leggings   item.Stack
	Boots      item.Stack
}

// Apply places the kit into the player's inventory and armour slots.
func (k Kit) Apply(p *player.Player) {
	inv := p.Inventory()
	for slot, it := range k.Items {
		if it.Empty() {
			continue
		}
		_ = inv.SetItem(slot, it)
	}
	armour := p.Armour()
	armour.SetHelmet(k.Helmet)
	armour.SetChestplate(k.Chestplate)
	armour.SetLeggings(k.Leggings)
	armour.SetBoots(k.Boots)
}

// Give adds the kit's items to the player's inventory without replacing
// anything. Armour is added as items.
func (k Kit) Give(p *player.Player) {
	inv := p.Inventory()
	for _, it := range append(append([]item.Stack(nil), k.Items...), k.Helmet, k.Chestplate, k.Leggings, k.Boots) {
		if it.Empty() {
			continue
		}
		_, _ = inv.AddItem(it)
	}
}

// DefaultKits returns the built in loadouts.
func DefaultKits() map[string]Kit {
	iron := item.ArmourTierIron{}
	leather := item.ArmourTierLeather{}
	return map[string]Kit{
		"fighter": {
			Items: []item.Stack{
				item.NewStack(item.Sword{Tier: item.ToolTierIron}, 1),
				item.NewStack(item.GoldenApple{}, 2),
			},
			Helmet:     item.NewStack(item.Helmet{Tier: iron}, 1),
			Chestplate: item.NewStack(item.Chestplate{Tier: iron}, 1),
			Leggings:   item.NewStack(item.Leggings{Tier: iron}, 1),
			Boots:      item.NewStack(item.Boots{Tier: iron}, 1),
		},
		"archer": {
			Items: []item.Stack{
				item.NewStack(item.Sword{Tier: item.ToolTierStone}, 1),
				item.NewStack(item.Bow{}, 1),
				item.NewStack(item.Arrow{}, 32),
			},
			Helmet:     item.NewStack(item.Helmet{Tier: leather}, 1),
			Chestplate: item.NewStack(item.Chestplate{Tier: leather}, 1),
			Leggings:   item.NewStack(item.Leggings{Tier: leather}, 1),
			Boots:      item.NewStack(item.Boots{Tier: leather}, 1),
		},
		"reward": {
			Items: []item.Stack{
				item.NewStack(item.GoldIngot{}, 3),
			},
		},
	}
}
