// Package catalog holds the raw records returned by the catalog lookups.
package catalog

import "github.com/google/uuid"

// RecipeMode distinguishes the normal and expensive variant of a recipe.
type RecipeMode string

// Recipe modes.
const (
	ModeNormal    RecipeMode = "normal"
	ModeExpensive RecipeMode = "expensive"
)

// Item is a named entity of a given type, such as an item or a fluid.
type Item struct {
	ID   uuid.UUID
	Type string
	Name string
}

// Recipe is one mode of a named recipe.
type Recipe struct {
	ID   uuid.UUID
	Name string
	Mode RecipeMode
}

// Translation is the localized label of an item or recipe.
type Translation struct {
	Locale string
	Type   string
	Name   string
	Value  string
}

// ProductRecipe links a recipe to an item it produces.
type ProductRecipe struct {
	ItemID uuid.UUID
	Recipe Recipe
}
