package domain

const unsplash = "https://images.unsplash.com/"

// DefaultMenu is the built-in menu used when no persisted or remote copy exists.
func DefaultMenu() Menu {
	return Menu{
		{
			ID: "hot", Title: "Hot Drinks", Icon: "🔥", Tag: "hot",
			Items: []Item{
				{ID: "double-espresso", Name: "Double Espresso", Price: 40000, Ingredients: "2 espresso shots", Tags: []string{"hot", "sugar-free"}, Img: unsplash + "photo-1517705008128-361805f42e86?q=80&w=1200&auto=format&fit=crop"},
				{ID: "cappuccino", Name: "Cappuccino", Price: 50000, Discount: 10, Ingredients: "espresso, milk", Tags: []string{"hot"}, Img: unsplash + "photo-1529676468690-d2cbca0df7d8?q=80&w=1200&auto=format&fit=crop"},
				{ID: "mocha", Name: "Mocha", Price: 65000, Ingredients: "espresso, milk, chocolate", Tags: []string{"hot"}, Img: unsplash + "photo-1497935586351-b67a49e012bf?q=80&w=1200&auto=format&fit=crop"},
			},
		},
		{
			ID: "cold", Title: "Cold Drinks", Icon: "🧊", Tag: "cold",
			Items: []Item{
				{ID: "iced-latte", Name: "Iced Latte", Price: 60000, Discount: 5, Ingredients: "espresso, milk, ice", Tags: []string{"cold"}, Img: unsplash + "photo-1561882468-9110e03e0f78?q=80&w=1200&auto=format&fit=crop"},
				{ID: "fresh-lemonade", Name: "Fresh Lemonade", Price: 95000, Ingredients: "fresh lemon, stevia, sparkling water", Tags: []string{"cold", "sugar-free"}, Img: unsplash + "photo-1524593802650-05d131d6f3f9?q=80&w=1200&auto=format&fit=crop"},
			},
		},
		{
			ID: "smoothie", Title: "Smoothies", Icon: "🍹", Tag: "smoothie",
			Items: []Item{
				{ID: "green-smoothie", Name: "Green Smoothie", Price: 50000, Ingredients: "spinach, green apple, kiwi, water", Tags: []string{"smoothie", "sugar-free"}, Img: unsplash + "photo-1525385133512-2f3bdd039054?q=80&w=1200&auto=format&fit=crop"},
				{ID: "red-berry-smoothie", Name: "Red Berry Smoothie", Price: 55000, Discount: 15, Ingredients: "strawberry, raspberry, sour cherry, ice", Tags: []string{"smoothie"}, Img: unsplash + "photo-1512621776951-a57141f2eefd?q=80&w=1200&auto=format&fit=crop"},
			},
		},
		{
			ID: "food", Title: "Food & Snacks", Icon: "🥪", Tag: "food",
			Items: []Item{
				{ID: "protein-salad", Name: "Protein Salad", Price: 80000, Ingredients: "chicken, lettuce, cucumber, corn, light dressing", Tags: []string{"food"}, Img: unsplash + "photo-1555939594-58d7cb561ad1?q=80&w=1200&auto=format&fit=crop"},
				{ID: "tuna-sandwich", Name: "Tuna Sandwich", Price: 70000, Ingredients: "wholegrain bread, tuna, vegetables", Tags: []string{"food"}, Img: unsplash + "photo-1481070555726-e2fe8357725c?q=80&w=1200&auto=format&fit=crop"},
			},
		},
	}
}
