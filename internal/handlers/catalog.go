package handlers

import (
	"fmt"
	"strings"
)

// Category is a section of the menu
type Category struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Nutrition per item
type Nutrition struct {
	Calories  int     `json:"calories"`
	Fat       float64 `json:"fat"`
	Saturates float64 `json:"saturates"`
	Sugar     float64 `json:"sugar"`
	Salt      float64 `json:"salt"`
	Protein   float64 `json:"protein"`
}

// Item is a menu item
type Item struct {
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Vegan       bool      `json:"vegan"`
	Vegetarian  bool      `json:"vegetarian"`
	OutOfStock  bool      `json:"outOfStock"`
	Allergens   []string  `json:"allergens"`
	Nutrition   Nutrition `json:"nutrition"`
}

// PriceLabel formats the price in pounds
func (i Item) PriceLabel() string {
	return fmt.Sprintf("£%.2f", i.Price)
}

// ImageURL is where the item's picture is served
func (i Item) ImageURL() string {
	return "/images/" + i.Slug + ".png"
}

// Contains reports whether the item lists allergen
func (i Item) Contains(allergen string) bool {
	for _, a := range i.Allergens {
		if strings.EqualFold(a, allergen) {
			return true
		}
	}
	return false
}

// Catalog is everything the fixture menu sells
type Catalog struct {
	Categories []Category
	Items      []Item
	Allergens  []string
}

// Filter narrows a catalog listing
type Filter struct {
	Query string
	// Diet is "vegan" or "vegetarian"
	Diet string
	// Exclude lists allergens the items must not contain.
	Exclude  []string
	Category string
}

// Find returns the item with slug
func (c Catalog) Find(slug string) (Item, bool) {
	for _, it := range c.Items {
		if it.Slug == slug {
			return it, true
		}
	}
	return Item{}, false
}

// CategoryName returns the display name of a category slug
func (c Catalog) CategoryName(slug string) string {
	for _, cat := range c.Categories {
		if cat.Slug == slug {
			return cat.Name
		}
	}
	return slug
}

// List returns the items matching f in catalog order
func (c Catalog) List(f Filter) []Item {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]Item, 0, len(c.Items))
	for _, it := range c.Items {
		if q != "" && !strings.Contains(strings.ToLower(it.Name), q) {
			continue
		}
		if f.Category != "" && f.Category != "all" && it.Category != f.Category {
			continue
		}
		switch f.Diet {
		case "vegan":
			if !it.Vegan {
				continue
			}
		case "vegetarian":
			if !it.Vegetarian && !it.Vegan {
				continue
			}
		}
		excluded := false
		for _, a := range f.Exclude {
			if it.Contains(a) {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		out = append(out, it)
	}
	return out
}

// DefaultCatalog is the fixture menu
func DefaultCatalog() Catalog {
	return Catalog{
		Categories: []Category{
			{"breakfast", "Breakfast"},
			{"savouries-bakes", "Savouries & Bakes"},
			{"drinks-snacks", "Drinks & Snacks"},
			{"sandwiches-salads", "Sandwiches & Salads"},
			{"sweet-treats", "Sweet Treats"},
			{"hot-food", "Hot Food"},
		},
		Allergens: []string{"gluten", "dairy", "eggs", "nuts", "soya", "sesame"},
		Items: []Item{
			{Slug: "bacon-breakfast-roll", Name: "Bacon Breakfast Roll", Category: "breakfast", Price: 2.85,
				Description: "Smoked bacon in a freshly baked roll.", Allergens: []string{"gluten"},
				Nutrition: Nutrition{Calories: 321, Fat: 9.8, Saturates: 3.4, Sugar: 2.9, Salt: 2.1, Protein: 17}},
			{Slug: "sausage-breakfast-roll", Name: "Sausage Breakfast Roll", Category: "breakfast", Price: 2.95,
				Description: "Two sausages in a soft white roll.", Allergens: []string{"gluten", "soya"},
				Nutrition: Nutrition{Calories: 402, Fat: 17, Saturates: 6.1, Sugar: 3.2, Salt: 2.4, Protein: 16}},
			{Slug: "egg-muffin", Name: "Free Range Egg Muffin", Category: "breakfast", Price: 2.40, Vegetarian: true,
				Description: "Free range egg and cheese in a toasted muffin.", Allergens: []string{"gluten", "eggs", "dairy"},
				Nutrition: Nutrition{Calories: 276, Fat: 11, Saturates: 4.8, Sugar: 2.1, Salt: 1.3, Protein: 14}},
			{Slug: "hash-brown", Name: "Hash Brown", Category: "breakfast", Price: 0.95, Vegan: true, Vegetarian: true,
				Description: "Crispy golden potato hash brown.",
				Nutrition: Nutrition{Calories: 140, Fat: 7.6, Saturates: 0.7, Sugar: 0.4, Salt: 0.6, Protein: 1.5}},
			{Slug: "sausage-roll", Name: "Sausage Roll", Category: "savouries-bakes", Price: 1.25,
				Description: "Seasoned sausage meat wrapped in golden puff pastry.", Allergens: []string{"gluten"},
				Nutrition: Nutrition{Calories: 328, Fat: 22, Saturates: 10, Sugar: 0.9, Salt: 1.5, Protein: 9}},
			{Slug: "vegan-sausage-roll", Name: "Vegan Sausage Roll", Category: "savouries-bakes", Price: 1.35, Vegan: true, Vegetarian: true,
				Description: "Meat free filling in vegan puff pastry.", Allergens: []string{"gluten", "soya"},
				Nutrition: Nutrition{Calories: 312, Fat: 20, Saturates: 9.8, Sugar: 1.1, Salt: 1.4, Protein: 12}},
			{Slug: "steak-bake", Name: "Steak Bake", Category: "savouries-bakes", Price: 2.10,
				Description: "Diced beef in a rich gravy inside puff pastry.", Allergens: []string{"gluten"},
				Nutrition: Nutrition{Calories: 401, Fat: 24, Saturates: 12, Sugar: 1.5, Salt: 1.6, Protein: 13}},
			{Slug: "cheese-onion-bake", Name: "Cheese & Onion Bake", Category: "savouries-bakes", Price: 1.95, Vegetarian: true, OutOfStock: true,
				Description: "Cheese, onion and potato in puff pastry.", Allergens: []string{"gluten", "dairy"},
				Nutrition: Nutrition{Calories: 439, Fat: 29, Saturates: 15, Sugar: 2.3, Salt: 1.5, Protein: 11}},
			{Slug: "americano-coffee", Name: "Americano Coffee", Category: "drinks-snacks", Price: 1.60, Vegan: true, Vegetarian: true,
				Description: "Freshly ground Fairtrade coffee.",
				Nutrition: Nutrition{Calories: 5, Salt: 0.01, Protein: 0.3}},
			{Slug: "latte-coffee", Name: "Latte Coffee", Category: "drinks-snacks", Price: 2.25, Vegetarian: true,
				Description: "Espresso with steamed milk.", Allergens: []string{"dairy"},
				Nutrition: Nutrition{Calories: 123, Fat: 4.3, Saturates: 2.8, Sugar: 11, Salt: 0.3, Protein: 8.2}},
			{Slug: "orange-juice", Name: "Orange Juice", Category: "drinks-snacks", Price: 1.70, Vegan: true, Vegetarian: true,
				Description: "Pure squeezed orange juice.",
				Nutrition: Nutrition{Calories: 90, Fat: 0.1, Sugar: 18, Protein: 1.4}},
			{Slug: "ham-cheese-sandwich", Name: "Ham & Cheese Sandwich", Category: "sandwiches-salads", Price: 3.20,
				Description: "Ham and mature cheddar on malted bread.", Allergens: []string{"gluten", "dairy"},
				Nutrition: Nutrition{Calories: 382, Fat: 15, Saturates: 8.1, Sugar: 3.6, Salt: 2.2, Protein: 22}},
			{Slug: "chicken-salad-sandwich", Name: "Chicken Salad Sandwich", Category: "sandwiches-salads", Price: 3.45,
				Description: "Chicken, lettuce and tomato on oatmeal bread.", Allergens: []string{"gluten", "eggs"},
				Nutrition: Nutrition{Calories: 356, Fat: 12, Saturates: 2.1, Sugar: 3.1, Salt: 1.4, Protein: 25}},
			{Slug: "falafel-salad", Name: "Falafel Salad", Category: "sandwiches-salads", Price: 3.75, Vegan: true, Vegetarian: true,
				Description: "Falafel, houmous and mixed leaves.", Allergens: []string{"sesame"},
				Nutrition: Nutrition{Calories: 298, Fat: 14, Saturates: 1.5, Sugar: 5.2, Salt: 1.2, Protein: 9.4}},
			{Slug: "yum-yum", Name: "Yum Yum", Category: "sweet-treats", Price: 1.10, Vegetarian: true,
				Description: "Twisted glazed dough.", Allergens: []string{"gluten", "soya"},
				Nutrition: Nutrition{Calories: 290, Fat: 17, Saturates: 8.2, Sugar: 13, Salt: 0.4, Protein: 3.3}},
			{Slug: "chocolate-doughnut", Name: "Chocolate Doughnut", Category: "sweet-treats", Price: 1.20, Vegetarian: true,
				Description: "Ring doughnut with chocolate icing.", Allergens: []string{"gluten", "dairy", "soya"},
				Nutrition: Nutrition{Calories: 242, Fat: 13, Saturates: 6.3, Sugar: 12, Salt: 0.3, Protein: 3.6}},
			{Slug: "caramel-custard-doughnut", Name: "Caramel Custard Doughnut", Category: "sweet-treats", Price: 1.45, Vegetarian: true,
				Description: "Filled with caramel custard.", Allergens: []string{"gluten", "dairy", "eggs"},
				Nutrition: Nutrition{Calories: 305, Fat: 14, Saturates: 7, Sugar: 18, Salt: 0.4, Protein: 4.5}},
			{Slug: "pepperoni-pizza", Name: "Pepperoni Pizza Slice", Category: "hot-food", Price: 2.50,
				Description: "Pepperoni and mozzarella on a stone baked base.", Allergens: []string{"gluten", "dairy"},
				Nutrition: Nutrition{Calories: 389, Fat: 16, Saturates: 7.4, Sugar: 4.4, Salt: 2.2, Protein: 17}},
			{Slug: "chicken-goujons", Name: "Southern Fried Chicken Goujons", Category: "hot-food", Price: 3.10,
				Description: "Crispy chicken goujons.", Allergens: []string{"gluten"},
				Nutrition: Nutrition{Calories: 311, Fat: 15, Saturates: 1.4, Sugar: 0.5, Salt: 1.6, Protein: 21}},
			{Slug: "potato-wedges", Name: "Spicy Potato Wedges", Category: "hot-food", Price: 1.80, Vegan: true, Vegetarian: true,
				Description: "Seasoned potato wedges.",
				Nutrition: Nutrition{Calories: 214, Fat: 8.6, Saturates: 0.8, Sugar: 0.6, Salt: 0.9, Protein: 3.2}},
		},
	}
}
