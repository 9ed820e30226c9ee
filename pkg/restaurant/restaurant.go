// Package restaurant holds the category and dish handlers and keeps dish
// references to categories consistent.
//
// A dish names its category by value. Adding or re-categorizing a dish
// creates the category when it is missing. Renaming or removing a category
// computes the affected dishes and asks a Decider whether to carry the
// change over to them; declining leaves the dishes pointing at the old name.
package restaurant

import "github.com/aretw0/carte/pkg/handler"

// Model kinds.
const (
	KindCategory = "category"
	KindDish     = "dish"
)

// Attribute names.
const (
	AttrName     = "name"
	AttrCategory = KindCategory
	AttrPrice    = "price"
)

// CategorySchema is the schema of category records.
var CategorySchema = handler.Schema{
	{Name: AttrName, Type: handler.String},
}

// DishSchema is the schema of dish records.
var DishSchema = handler.Schema{
	{Name: AttrName, Type: handler.String},
	{Name: AttrCategory, Type: handler.String},
	{Name: AttrPrice, Type: handler.Number},
}
