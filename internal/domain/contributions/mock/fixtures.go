package mock

import (
	"time"

	models "github.com/guildforge/ledgerbot/ledgerbot/database/models"
)

var Materials = []models.Material{
	{ID: 1, Name: "ironOre", DisplayName: "Iron Ore", Value: 10},
	{ID: 2, Name: "ironIngot", DisplayName: "Iron Ingot", Value: 40},
	{ID: 3, Name: "spiceMelange", DisplayName: "Spice Melange", Value: 2500},
	{ID: 4, Name: "spiceSand", DisplayName: "Spice Sand", Value: 50},
	{ID: 5, Name: "steelIngot", DisplayName: "Steel Ingot", Value: 40},
}

var Entries = []models.MemberContribution{
	{ID: 1, MaterialName: "ironIngot", MaterialDisplayName: "Iron Ingot", Amount: 10, UnitValue: 40, Points: 400, CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
	{ID: 2, MaterialName: "ironIngot", MaterialDisplayName: "Iron Ingot", Amount: 20, UnitValue: 40, Points: 800, CreatedAt: time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC)},
	{ID: 3, MaterialName: "ironIngot", MaterialDisplayName: "Iron Ingot", Amount: 70, UnitValue: 40, Points: 2800, CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
}
