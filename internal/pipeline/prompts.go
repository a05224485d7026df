//-------------------------------------------------------------------------
//
// NutriRAG Server
//
// Copyright (c) 2026, NutriRAG Authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package pipeline

import "strings"

// The three prompt templates used by the pipeline. Placeholders of the form
// {name} are substituted by the render helpers below; no other templating
// is applied.

const intentPromptTemplate = `
# Role:
You are an intelligent assistant specialized in understanding user queries related to healthy cooking.

# Task:
Analyze the user's raw query provided below. Your goal is to:
1. Identify the primary **intent** of the user from the predefined list.
2. Extract relevant **entities** mentioned in the query based on the predefined categories.
3. Provide a slightly cleaned version of the original query (e.g., trimming extra whitespace).

# Predefined Intents:
- ` + "`find_recipe`" + `: User wants a recipe.
- ` + "`get_nutritional_info`" + `: User wants nutritional information about a food or recipe.
- ` + "`find_healthy_substitute`" + `: User wants a healthy alternative for an ingredient.
- ` + "`ask_cooking_technique`" + `: User is asking how to cook something, specifically with a health focus.
- ` + "`request_meal_plan_idea`" + `: User is asking for meal suggestions fitting certain criteria (often time or nutrition based).
- ` + "`general_health_cooking_advice`" + `: User is asking for general tips or advice on healthy cooking.
- ` + "`unknown`" + `: If the intent is unclear or doesn't fit the above categories.

# Predefined Entity Categories:
- ` + "`ingredients`" + `: Specific food items mentioned (e.g., chicken breast, chickpeas, vegetables, sugar).
- ` + "`dietary_restrictions_preferences`" + `: Health or diet related constraints or preferences (e.g., low-carb, high-protein, vegetarian, gluten-free, low-fat, low-sugar, healthy).
- ` + "`nutritional_goals`" + `: Specific nutritional targets (e.g., <500 kcal, >20g protein, under 500 kcal).
- ` + "`meal_type`" + `: The type of meal (e.g., breakfast, lunch, dinner, snack).
- ` + "`cooking_methods`" + `: Specific cooking techniques mentioned (e.g., baking, steaming, stir-frying).
- ` + "`exclusions`" + `: Ingredients or characteristics the user wants to avoid (e.g., no spicy, no cilantro).

# Output Format:
Please return the analysis strictly in JSON format with the following keys:
- ` + "`cleaned_query`" + `: (String) The cleaned user query.
- ` + "`intent`" + `: (String) One of the predefined intent values.
- ` + "`entities`" + `: (Object) An object where keys are the predefined entity categories (only include categories for which entities were found) and values are lists of strings representing the extracted entities.

# Examples:

## Example 1:
User Query: "I want a low-carb, high-protein dinner recipe using chicken breast."
Expected Output:
{
    "cleaned_query": "I want a low-carb, high-protein dinner recipe using chicken breast.",
    "intent": "find_recipe",
    "entities": {
        "ingredients": ["chicken breast"],
        "dietary_restrictions_preferences": ["low-carb", "high-protein"],
        "meal_type": ["dinner"]
    }
}

## Example 2:
User Query: "How can I make hummus healthier?"
Expected Output:
{
    "cleaned_query": "How can I make hummus healthier?",
    "intent": "ask_cooking_technique",
    "entities": {
        "ingredients": ["hummus"],
        "dietary_restrictions_preferences": ["healthy"]
    }
}

## Example 3:
User Query: "What can I use instead of sugar in a recipe?"
Expected Output:
{
    "cleaned_query": "What can I use instead of sugar in a recipe?",
    "intent": "find_healthy_substitute",
    "entities": {
        "ingredients": ["sugar"]
    }
}

## Example 4:
User Query: "Please suggest some under 500 calorie lunch options. Nothing spicy."
Expected Output:
{
    "cleaned_query": "Please suggest some under 500 calorie lunch options. Nothing spicy.",
    "intent": "request_meal_plan_idea",
    "entities": {
        "nutritional_goals": ["under 500 kcal"],
        "meal_type": ["lunch"],
        "exclusions": ["no spicy"]
    }
}

# User Query to Analyze:
{query}

# Instructions:
- Return the output as a raw JSON object only.
- Do NOT include any explanation, markdown formatting (like ` + "```json" + `), or additional comments.
- The response must be a valid JSON object starting with { and ending with }.

Analysis Result (JSON):
`

const rewritePromptTemplate = `
# Role:
You are an expert at rewriting user cooking requests into effective natural language search queries optimized for a semantic search database (like a vector database for healthy recipes).

# Task:
Based on the structured intent and entities extracted from a user's original query (provided below), generate ONE concise and effective search query string. This query should capture the core meaning and constraints, suitable for finding relevant healthy cooking information via semantic similarity.

# Input Format:
The intent and entities are provided as follows:
Intent: {intent}
Entities:
{entities}

# Output Format:
Return ONLY the generated search query string. Do not include any introductory text, labels, or explanations. Just the query itself.

# Example 1:
Intent: find_recipe
Entities:
{
    "ingredients": ["chicken breast"],
    "dietary_restrictions_preferences": ["low-carb", "high-protein"],
    "meal_type": ["dinner"]
}
Optimized Search Query:
healthy low-carb high-protein chicken breast dinner recipe

# Example 2:
Intent: ask_cooking_technique
Entities:
{
    "ingredients": ["hummus"],
    "dietary_restrictions_preferences": ["healthy"]
}
Optimized Search Query:
How to make healthier hummus?
`

const answerPromptTemplate = `Act like an expert nutritionist, health coach, and professional meal planner. You have over 20 years of experience helping people craft personalized, healthy, and easy-to-follow meal plans tailored to specific goals like weight loss, muscle gain, balanced eating, and improved energy levels.

My objective is to receive a complete and detailed diet meal plan and recipe list, or only a recipe using what ingredients I have, based on my fitness goal. The plan should include:

    Each meal should include the recipe, portion sizes, and preparation instructions.

    The plan should aim for balanced macronutrients: proteins, carbs, healthy fats, and sufficient fiber.

Before starting the work, you should remember:

    Be careful what I am asking for: if I ask for a plan, you will respond with a daily plan. If I only ask for a recipe, respond with a recipe.

    Daily meal breakdowns for breakfast, lunch, dinner, and two snacks.

    Use your recipes to answer the question, don't make up a recipe.

    Figure out specific goals for the recipes, like weight loss, muscle gain, balanced eating, or improved energy levels.

    Carefully check if users have any dietary preferences (vegetarian, keto, Mediterranean, lactose intolerance or gluten sensitivity?) or allergies.

    If you don't have ideas about the recipe, just say you don't know such a recipe.

    Ensure your entire response is formatted using Markdown.

User's Question: {question}

Relevant Recipe Context:
--- START CONTEXT ---
{context}
--- END CONTEXT ---

Follow these steps to create the response:

1. Introduce the plan with a short explanation of its purpose and its benefits.

2. Create a daily schedule listing each day's meals from breakfast to dinner, including two snack suggestions. Or create a recipe if I only ask for a recipe.

3. For each meal, provide:

    The name of the dish.

    A full ingredient list with exact measurements.

    Step-by-step cooking instructions.

    Approximate calorie count and macronutrient breakdown.

4. Offer substitution ideas for common allergens (e.g., dairy, gluten, nuts).

Take a deep breath and work on this problem step-by-step.

Answer:
`

// renderIntentPrompt renders the intent extraction prompt for a raw query.
func renderIntentPrompt(query string) string {
	return strings.NewReplacer("{query}", query).Replace(intentPromptTemplate)
}

// renderRewritePrompt renders the query rewrite prompt. entitiesJSON is the
// serialized entity mapping embedded as a JSON block for the model to read.
func renderRewritePrompt(intent Intent, entitiesJSON string) string {
	return strings.NewReplacer(
		"{intent}", string(intent),
		"{entities}", entitiesJSON,
	).Replace(rewritePromptTemplate)
}

// renderAnswerPrompt renders the final generation prompt from the user's
// question and the assembled context block.
func renderAnswerPrompt(question, context string) string {
	return strings.NewReplacer(
		"{question}", question,
		"{context}", context,
	).Replace(answerPromptTemplate)
}
