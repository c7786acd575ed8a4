package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func burgerCatalog() (map[int64]Product, map[int64]Ingredient) {
	products := map[int64]Product{
		1: {ID: 1, Name: "X-Salada", Price: decimal.NewFromInt(25), Recipe: []RecipeLine{
			{IngredientID: 10, Quantity: 1},
			{IngredientID: 11, Quantity: 2},
		}},
		2: {ID: 2, Name: "X-Bacon", Price: decimal.NewFromInt(28), Recipe: []RecipeLine{
			{IngredientID: 10, Quantity: 1},
			{IngredientID: 12, Quantity: 3},
		}},
	}
	ingredients := map[int64]Ingredient{
		10: {ID: 10, Name: "Pão", Quantity: 5, MinQuantity: 20, Unit: "un"},
		11: {ID: 11, Name: "Queijo Prato", Quantity: 100, MinQuantity: 40, Unit: "fatia"},
		12: {ID: 12, Name: "Bacon", Quantity: 2, MinQuantity: 30, Unit: "fatia"},
	}
	return products, ingredients
}

func TestConsumptionAggregatesAcrossLines(t *testing.T) {
	products, _ := burgerCatalog()

	need := Consumption(products, []OrderItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	})

	assert.Equal(t, 3.0, need[10])
	assert.Equal(t, 4.0, need[11])
	assert.Equal(t, 3.0, need[12])
}

func TestCheckStockReportsShortages(t *testing.T) {
	products, ingredients := burgerCatalog()

	shortages := CheckStock(products, ingredients, []OrderItem{{ProductID: 2, Quantity: 1}})
	require.Len(t, shortages, 1)
	assert.Equal(t, int64(12), shortages[0].IngredientID)
	assert.Equal(t, "Bacon", shortages[0].Name)
	assert.Equal(t, 3.0, shortages[0].Required)
	assert.Equal(t, 2.0, shortages[0].Available)

	assert.Empty(t, CheckStock(products, ingredients, []OrderItem{{ProductID: 1, Quantity: 1}}))
}

func TestIngredientLowStock(t *testing.T) {
	_, ingredients := burgerCatalog()

	assert.True(t, ingredients[10].IsLowStock())
	assert.False(t, ingredients[11].IsLowStock())
	assert.True(t, Ingredient{Quantity: 20, MinQuantity: 20}.IsLowStock())
}

func TestProductValidate(t *testing.T) {
	p := Product{Name: "X-Tudo", Description: "Completo", Price: decimal.NewFromInt(30),
		Recipe: []RecipeLine{{IngredientID: 1, Quantity: 1}}}
	require.NoError(t, p.Validate())

	noRecipe := p
	noRecipe.Recipe = nil
	assert.ErrorIs(t, noRecipe.Validate(), ErrValidation)

	dup := p
	dup.Recipe = []RecipeLine{{IngredientID: 1, Quantity: 1}, {IngredientID: 1, Quantity: 2}}
	assert.ErrorIs(t, dup.Validate(), ErrValidation)

	free := p
	free.Price = decimal.Zero
	assert.ErrorIs(t, free.Validate(), ErrValidation)
}
