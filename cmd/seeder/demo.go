package main

// demoCorpus is a small built-in corpus for trying the system without a
// seed file.
var demoCorpus = seedDocument{
	Ingredients: []seedIngredient{
		{Name: "tomato", Variants: []string{"tomatoes", "cherry tomatoes", "roma tomato"}},
		{Name: "egg", Variants: []string{"eggs", "large eggs"}},
		{Name: "chicken", Variants: []string{"chicken breast", "chicken thighs"}},
		{Name: "black beans", Variants: []string{"canned black beans"}},
		{Name: "rice", Variants: []string{"white rice", "long-grain rice"}},
		{Name: "pasta", Variants: []string{"spaghetti", "penne"}},
		{Name: "garlic", Variants: []string{"garlic cloves", "minced garlic"}},
		{Name: "onion", Variants: []string{"onions", "yellow onion", "red onion"}},
		{Name: "cheddar", Variants: []string{"cheddar cheese", "shredded cheddar"}},
		{Name: "mushroom", Variants: []string{"mushrooms", "button mushrooms", "cremini"}},
		{Name: "spinach", Variants: []string{"baby spinach", "fresh spinach"}},
		{Name: "peanuts", Variants: []string{"roasted peanuts", "peanut"}},
		{Name: "tofu", Variants: []string{"firm tofu", "extra-firm tofu"}},
		{Name: "oats", Variants: []string{"rolled oats", "old-fashioned oats"}},
		{Name: "banana", Variants: []string{"bananas", "ripe bananas"}},
		{Name: "tortilla", Variants: []string{"tortillas", "corn tortillas", "flour tortillas"}},
		{Name: "bell pepper", Variants: []string{"bell peppers", "red pepper", "green pepper"}},
		{Name: "coconut milk", Variants: []string{"canned coconut milk"}},
	},
	Tags: []string{
		"TIME_DURATION:15-minutes-or-less",
		"TIME_DURATION:30-minutes-or-less",
		"TIME_DURATION:60-minutes-or-less",
		"DIFFICULTY_SCALE:easy",
		"DIFFICULTY_SCALE:beginner-cook",
		"DIETARY_HEALTH:vegetarian",
		"DIETARY_HEALTH:vegan",
		"DIETARY_HEALTH:gluten-free",
		"DIETARY_HEALTH:nut-free",
		"CUISINES_REGIONAL:mexican",
		"CUISINES_REGIONAL:italian",
		"CUISINES_REGIONAL:thai",
		"MEAL_COURSES:breakfast",
		"MEAL_COURSES:main-dish",
		"MEAL_COURSES:side-dishes",
		"PREPARATION_METHOD:stove-top",
		"PREPARATION_METHOD:oven",
	},
	Recipes: []seedRecipe{
		{
			Name:        "spinach and mushroom omelette",
			Description: "A quick vegetarian omelette with sauteed mushrooms and wilted spinach.",
			Ingredients: []string{"egg", "mushroom", "spinach", "cheddar"},
			RawIngredients: []string{
				"3 large eggs", "1 cup sliced mushrooms",
				"1 handful baby spinach", "1/4 cup shredded cheddar",
			},
			Tags: []string{
				"TIME_DURATION:15-minutes-or-less", "DIFFICULTY_SCALE:easy",
				"DIETARY_HEALTH:vegetarian", "DIETARY_HEALTH:gluten-free",
				"MEAL_COURSES:breakfast", "PREPARATION_METHOD:stove-top",
			},
			Steps: []string{
				"Saute the mushrooms until browned, then wilt the spinach.",
				"Beat the eggs, pour over the vegetables, and cook until just set.",
				"Fold over the cheddar and serve.",
			},
			Servings: 1,
		},
		{
			Name:        "banana oatmeal",
			Description: "Creamy stovetop oats sweetened with ripe banana.",
			Ingredients: []string{"oats", "banana", "coconut milk"},
			RawIngredients: []string{
				"1 cup rolled oats", "1 ripe banana, mashed", "1 cup coconut milk",
			},
			Tags: []string{
				"TIME_DURATION:15-minutes-or-less", "DIFFICULTY_SCALE:beginner-cook",
				"DIETARY_HEALTH:vegan", "DIETARY_HEALTH:nut-free",
				"MEAL_COURSES:breakfast", "PREPARATION_METHOD:stove-top",
			},
			Steps: []string{
				"Simmer the oats in coconut milk for five minutes.",
				"Stir in the mashed banana and cook until creamy.",
			},
			Servings: 2,
		},
		{
			Name:        "black bean tacos",
			Description: "Weeknight tacos with spiced black beans and peppers.",
			Ingredients: []string{"black beans", "tortilla", "onion", "bell pepper"},
			RawIngredients: []string{
				"1 can black beans, drained", "8 corn tortillas",
				"1 onion, diced", "1 bell pepper, sliced",
			},
			Tags: []string{
				"TIME_DURATION:30-minutes-or-less", "DIFFICULTY_SCALE:easy",
				"DIETARY_HEALTH:vegan", "CUISINES_REGIONAL:mexican",
				"MEAL_COURSES:main-dish", "PREPARATION_METHOD:stove-top",
			},
			Steps: []string{
				"Cook the onion and pepper until soft.",
				"Add the beans with cumin and chili powder, warm through.",
				"Serve in warmed tortillas.",
			},
			Servings: 4,
		},
		{
			Name:        "garlic butter pasta",
			Description: "Spaghetti tossed in a simple garlic butter sauce.",
			Ingredients: []string{"pasta", "garlic"},
			RawIngredients: []string{
				"12 oz spaghetti", "6 garlic cloves, thinly sliced", "4 tbsp butter",
			},
			Tags: []string{
				"TIME_DURATION:30-minutes-or-less", "DIFFICULTY_SCALE:beginner-cook",
				"DIETARY_HEALTH:vegetarian", "CUISINES_REGIONAL:italian",
				"MEAL_COURSES:main-dish", "PREPARATION_METHOD:stove-top",
			},
			Steps: []string{
				"Boil the spaghetti until al dente.",
				"Melt the butter, toast the garlic gently, and toss with the pasta.",
			},
			Servings: 4,
		},
		{
			Name:        "chicken fajita skillet",
			Description: "Seared chicken with peppers and onions, ready for tortillas.",
			Ingredients: []string{"chicken", "bell pepper", "onion", "tortilla"},
			RawIngredients: []string{
				"1 lb chicken breast, sliced", "2 bell peppers, sliced",
				"1 onion, sliced", "8 flour tortillas",
			},
			Tags: []string{
				"TIME_DURATION:30-minutes-or-less", "CUISINES_REGIONAL:mexican",
				"MEAL_COURSES:main-dish", "PREPARATION_METHOD:stove-top",
			},
			Steps: []string{
				"Sear the chicken in a hot skillet and set aside.",
				"Cook the peppers and onion, return the chicken, and season.",
				"Serve with warmed tortillas.",
			},
			Servings: 4,
		},
		{
			Name:        "thai peanut noodles",
			Description: "Noodles in a savory peanut sauce with crunchy toppings.",
			Ingredients: []string{"pasta", "peanuts", "garlic"},
			RawIngredients: []string{
				"8 oz noodles", "1/2 cup roasted peanuts, chopped",
				"2 garlic cloves, minced", "3 tbsp peanut butter",
			},
			Tags: []string{
				"TIME_DURATION:30-minutes-or-less", "DIETARY_HEALTH:vegetarian",
				"CUISINES_REGIONAL:thai", "MEAL_COURSES:main-dish",
				"PREPARATION_METHOD:stove-top",
			},
			Steps: []string{
				"Cook the noodles and reserve a cup of pasta water.",
				"Whisk the peanut butter with garlic and pasta water into a sauce.",
				"Toss the noodles in the sauce and top with peanuts.",
			},
			Servings: 3,
		},
		{
			Name:        "coconut tofu curry",
			Description: "A gentle vegan curry with tofu, spinach and coconut milk.",
			Ingredients: []string{"tofu", "coconut milk", "spinach", "onion", "garlic", "rice"},
			RawIngredients: []string{
				"14 oz firm tofu, cubed", "1 can coconut milk",
				"2 cups spinach", "1 onion, diced", "3 garlic cloves",
				"2 cups cooked rice",
			},
			Tags: []string{
				"TIME_DURATION:60-minutes-or-less", "DIETARY_HEALTH:vegan",
				"DIETARY_HEALTH:gluten-free", "DIETARY_HEALTH:nut-free",
				"CUISINES_REGIONAL:thai", "MEAL_COURSES:main-dish",
				"PREPARATION_METHOD:stove-top",
			},
			Steps: []string{
				"Brown the tofu and set aside.",
				"Soften the onion and garlic, add curry paste and coconut milk.",
				"Simmer with the tofu, wilt in the spinach, serve over rice.",
			},
			Servings: 4,
		},
		{
			Name:        "baked tomato rice",
			Description: "Oven-baked rice with roasted tomatoes and garlic.",
			Ingredients: []string{"rice", "tomato", "garlic", "onion"},
			RawIngredients: []string{
				"1.5 cups rice", "1 lb cherry tomatoes",
				"4 garlic cloves", "1 onion, diced",
			},
			Tags: []string{
				"TIME_DURATION:60-minutes-or-less", "DIETARY_HEALTH:vegan",
				"DIETARY_HEALTH:gluten-free", "MEAL_COURSES:side-dishes",
				"PREPARATION_METHOD:oven",
			},
			Steps: []string{
				"Roast the tomatoes and garlic until blistered.",
				"Stir in the rice and stock, cover, and bake until tender.",
			},
			Servings: 6,
		},
		{
			Name:        "cheesy baked pasta",
			Description: "Penne baked with tomato sauce and a cheddar crust.",
			Ingredients: []string{"pasta", "tomato", "cheddar", "garlic", "onion"},
			RawIngredients: []string{
				"12 oz penne", "2 cups tomato sauce",
				"1.5 cups shredded cheddar", "2 garlic cloves", "1 onion, diced",
			},
			Tags: []string{
				"TIME_DURATION:60-minutes-or-less", "DIETARY_HEALTH:vegetarian",
				"CUISINES_REGIONAL:italian", "MEAL_COURSES:main-dish",
				"PREPARATION_METHOD:oven",
			},
			Steps: []string{
				"Cook the penne just short of al dente.",
				"Simmer the sauce with onion and garlic, fold in the pasta.",
				"Top with cheddar and bake until bubbling.",
			},
			Servings: 6,
		},
		{
			Name:        "huevos rancheros",
			Description: "Fried eggs over tortillas with warm salsa and beans.",
			Ingredients: []string{"egg", "tortilla", "black beans", "tomato", "onion"},
			RawIngredients: []string{
				"4 eggs", "4 corn tortillas", "1 cup black beans",
				"2 tomatoes, chopped", "1/2 onion, diced",
			},
			Tags: []string{
				"TIME_DURATION:30-minutes-or-less", "DIETARY_HEALTH:vegetarian",
				"DIETARY_HEALTH:gluten-free", "CUISINES_REGIONAL:mexican",
				"MEAL_COURSES:breakfast", "PREPARATION_METHOD:stove-top",
			},
			Steps: []string{
				"Simmer the tomatoes and onion into a quick salsa.",
				"Fry the eggs and warm the tortillas and beans.",
				"Stack tortillas, beans and eggs, spoon over the salsa.",
			},
			Servings: 2,
		},
		{
			Name:        "stuffed bell peppers",
			Description: "Peppers filled with rice, beans and melted cheddar.",
			Ingredients: []string{"bell pepper", "rice", "black beans", "cheddar", "onion"},
			RawIngredients: []string{
				"4 bell peppers, halved", "2 cups cooked rice",
				"1 cup black beans", "1 cup shredded cheddar", "1 onion, diced",
			},
			Tags: []string{
				"TIME_DURATION:60-minutes-or-less", "DIETARY_HEALTH:vegetarian",
				"DIETARY_HEALTH:gluten-free", "MEAL_COURSES:main-dish",
				"PREPARATION_METHOD:oven",
			},
			Steps: []string{
				"Mix the rice, beans and onion, and fill the pepper halves.",
				"Top with cheddar and bake until the peppers are tender.",
			},
			Servings: 4,
		},
		{
			Name:        "mushroom risotto",
			Description: "Slow-stirred risotto with browned mushrooms.",
			Ingredients: []string{"rice", "mushroom", "onion", "garlic"},
			RawIngredients: []string{
				"1.5 cups arborio rice", "12 oz mushrooms, sliced",
				"1 onion, minced", "2 garlic cloves",
			},
			Tags: []string{
				"TIME_DURATION:60-minutes-or-less", "DIETARY_HEALTH:vegetarian",
				"DIETARY_HEALTH:gluten-free", "CUISINES_REGIONAL:italian",
				"MEAL_COURSES:main-dish", "PREPARATION_METHOD:stove-top",
			},
			Steps: []string{
				"Brown the mushrooms and set aside.",
				"Toast the rice with onion and garlic, then add stock a ladle at a time.",
				"Fold in the mushrooms once the rice is creamy.",
			},
			Servings: 4,
		},
	},
}
