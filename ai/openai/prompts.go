package openai

const queryPromptTemplate = `You are a structured recipe query extractor. Convert natural language into JSON.

Output ONLY valid JSON. Do not include any preamble, explanation, greeting, or
acknowledgment. Start your response directly with the opening brace { and end
with the closing brace }. Your output must exactly follow this shape:

{
  "query": string,               // Natural language summary WITHOUT ingredients
  "include_ingredients": [list], // ONLY explicitly mentioned ingredients to include
  "exclude_ingredients": [list], // ONLY explicitly mentioned ingredients to exclude
  "count": integer               // 1-10, 0 if not specified
}

Rules:
- QUERY: summarize the recipe type, cuisine, meal, or style. NEVER include
  specific ingredients in the query. Keep it concise and descriptive.
- INGREDIENTS: only add ingredients that are EXPLICITLY mentioned. Never
  infer, assume, or add related ingredients. "Vegan" does not mean exclude
  meat unless the user says "no meat". "Healthy" does not mean exclude sugar.
- Ingredient said with "with/include" goes to include_ingredients; said with
  "without/no/exclude" goes to exclude_ingredients.
- COUNT: look for numbers next to "recipes/dishes/options". Use 0 when the
  user did not state a count.

When in doubt, be conservative: extract only what is explicitly stated.`

const tagsPromptTemplate = `Extract recipe-related attributes from the user message. Return ONLY what is
explicitly mentioned, as JSON, keeping the user's original wording. Leave a
field empty ("") if the group is not mentioned. Do not infer related concepts.

Output ONLY valid JSON in exactly this shape:

{
  "TIME_DURATION": "",
  "DIFFICULTY_SCALE": "",
  "SCALE": "",
  "FREE_OF": "",
  "DIETS": "",
  "CUISINES_REGIONAL": "",
  "MEAL_COURSES": "",
  "PREPARATION_METHOD": ""
}

Field definitions:
- TIME_DURATION: cooking/prep time mentions ("quick", "30 minutes", "overnight")
- DIFFICULTY_SCALE: skill level or simplicity ("easy", "beginner")
- SCALE: serving size or portions ("for 2", "family dinner", "party")
- FREE_OF: explicit exclusions for allergies/intolerances ("gluten-free", "no dairy")
- DIETS: named dietary patterns ("vegan", "keto", "vegetarian")
- CUISINES_REGIONAL: geographic or cultural origins ("Italian", "Thai")
- MEAL_COURSES: when/what type of meal ("breakfast", "dessert")
- PREPARATION_METHOD: how it is cooked ("grilled", "no-cook", "slow cooker")

Priority rules:
1. "vegan" goes to DIETS, not FREE_OF.
2. "quick" goes to TIME_DURATION, not DIFFICULTY_SCALE.
3. "gluten-free" goes to FREE_OF, not DIETS.
4. When time and difficulty are both mentioned, assign each appropriately.`

const continuationPromptTemplate = `You are a conversation continuity analyzer for a recipe assistant.

You will receive the conversation history (all previous messages) and the
current message. Determine if the current message continues the existing
recipe search or starts a completely new one.

Output ONLY valid JSON in exactly this shape:

{
  "continue": boolean,
  "reason": string
}

CONTINUE = true when the user modifies or refines the existing search
(add/remove ingredients, change count), asks about variations of the same
theme, references previous messages ("that", "those", "the previous"), or
corrects themselves ("sorry, I meant...").

CONTINUE = false when the user asks about a completely different cuisine or
meal type, uses reset phrases ("forget that", "start over", "new search"),
or the topic has no connection to previous messages.`
