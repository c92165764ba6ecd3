package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/guildforge/ledgerbot/ledgerbot/database/models"
	"github.com/guildforge/ledgerbot/ledgerbot/economy"
	"github.com/uptrace/bun"
)

// DefaultMaterials returns the contribution catalog. Values are points per
// unit scaled by 100.
func DefaultMaterials() []models.Material {
	return []models.Material{
		{Name: "ironOre", DisplayName: "Iron Ore", Value: 10},
		{Name: "ironIngot", DisplayName: "Iron Ingot", Value: 40},
		{Name: "carbonOre", DisplayName: "Carbon Ore", Value: 10},
		{Name: "steelIngot", DisplayName: "Steel Ingot", Value: 40},
		{Name: "aluminiumOre", DisplayName: "Aluminium Ore", Value: 10},
		{Name: "aluminiumIngot", DisplayName: "Aluminium Ingot", Value: 40},
		{Name: "copperOre", DisplayName: "Copper Ore", Value: 10},
		{Name: "copperIngot", DisplayName: "Copper Ingot", Value: 40},
		{Name: "jasmiumCrystal", DisplayName: "Jasmium Crystal", Value: 200},
		{Name: "duraluminumIngot", DisplayName: "Duraluminum Ingot", Value: 350},
		{Name: "etheriteCrystal", DisplayName: "Etherite Crystal", Value: 230},
		{Name: "basaltStone", DisplayName: "Basalt Stone", Value: 5},
		{Name: "plastone", DisplayName: "Plastone", Value: 5},
		{Name: "siliconBlock", DisplayName: "Silicon Block", Value: 10},
		{Name: "titaniumOre", DisplayName: "Titanium Ore", Value: 250},
		{Name: "plastaniumIngot", DisplayName: "Plastanium Ingot", Value: 1000},
		{Name: "stravidiumMass", DisplayName: "Stravidium Mass", Value: 250},
		{Name: "stravidiumFibre", DisplayName: "Stravidium Fibre", Value: 700},
		{Name: "spiceSand", DisplayName: "Spice Sand", Value: 50},
		{Name: "spiceMelange", DisplayName: "Spice Melange", Value: 2500},
		{Name: "deadBody", DisplayName: "Dead Body", Value: 200},
		{Name: "agaveSeeds", DisplayName: "Agave Seeds", Value: 5},
		{Name: "cobaltPaste", DisplayName: "Cobalt Paste", Value: 100},
		{Name: "flourSand", DisplayName: "Flour Sand", Value: 5},
		{Name: "fuelCell", DisplayName: "Fuel Cell", Value: 150},
		{Name: "graniteStone", DisplayName: "Granite Stone", Value: 5},
		{Name: "vehicleFuelCell", DisplayName: "Vehicle Fuel Cell", Value: 200},
		{Name: "spiceInfusedDuraluminiumDust", DisplayName: "Spice Infused Duraluminium Dust", Value: 1500},
		{Name: "spiceInfusedPlastaniumDust", DisplayName: "Spice Infused Plastanium Dust", Value: 4500},
	}
}

// SeedMaterials inserts the catalog, skipping names that already exist. It is
// safe to call concurrently.
func SeedMaterials(ctx context.Context, db bun.IDB, catalog []models.Material) error {
	if len(catalog) == 0 {
		return nil
	}
	rows := make([]models.Material, len(catalog))
	copy(rows, catalog)
	for i := range rows {
		rows[i].ID = 0
	}
	_, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (name) DO NOTHING").
		Returning("NULL").
		Exec(ctx)
	return err
}

var ErrMaterialNotFound = errors.New("material not found")

// SetMaterialValue reprices a material. Existing contributions are valued at
// the new price from the next read on.
// SeedMaterialsIfEmpty seeds catalog only when the materials table has no
// rows, so materials an operator removed stay removed.
func SeedMaterialsIfEmpty(ctx context.Context, db bun.IDB, catalog []models.Material) (bool, error) {
	count, err := db.NewSelect().Model((*models.Material)(nil)).Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	return true, SeedMaterials(ctx, db, catalog)
}

func SetMaterialValue(ctx context.Context, db bun.IDB, name string, value int) error {
	if value < 0 || value > economy.MaxMaterialValue {
		return fmt.Errorf("material value must be between 0 and %d, got %d", economy.MaxMaterialValue, value)
	}
	res, err := db.NewUpdate().
		Model((*models.Material)(nil)).
		Set("value = ?", value).
		Where("name = ?", name).
		Exec(ctx)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrMaterialNotFound, name)
	}
	return nil
}
