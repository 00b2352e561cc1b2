package stories

import (
	"math/rand/v2"
	"strings"
)

var writingPrompts = []string{
	"Describe a moment that changed your life.",
	"Write about a time you overcame a challenge.",
	"What is a lesson you learned the hard way?",
	"Recall a childhood memory that makes you smile.",
	"Write about a person who inspired you.",
	"Describe your proudest professional achievement.",
	"Write about a time you felt truly at peace.",
	"What is a risk you took that paid off?",
	"Describe a place that feels like home.",
	"Write about a time you helped someone in need.",
	"What is a dream you have for your future?",
	"Describe a failure that taught you something important.",
	"Write about a time you felt out of your comfort zone.",
	"What is a tradition that is important to you?",
	"Describe a time you made a difficult decision.",
	"Write about a moment of unexpected joy.",
	"What is something you wish you could tell your younger self?",
	"Describe a time you stood up for yourself or someone else.",
	"Write about a journey: physical, emotional, or spiritual.",
	"What is a value you try to live by?",
	"Describe a time you felt misunderstood.",
	"Write about a mentor or teacher who impacted you.",
	"What is a goal you are working toward?",
	"Describe a time you had to start over.",
	"Write about a moment of connection with another person.",
}

// Prompts returns a copy of the writing prompt list.
func Prompts() []string {
	return append([]string(nil), writingPrompts...)
}

// RandomPrompt picks a prompt from list that differs from exclude when possible.
// intn defaults to math/rand when nil.
func RandomPrompt(list []string, exclude string, intn func(int) int) string {
	if len(list) == 0 {
		return ""
	}
	if intn == nil {
		intn = rand.IntN
	}
	exclude = strings.TrimSpace(exclude)
	candidates := list
	if exclude != "" && len(list) > 1 {
		candidates = make([]string, 0, len(list))
		for _, p := range list {
			if p != exclude {
				candidates = append(candidates, p)
			}
		}
		if len(candidates) == 0 {
			candidates = list
		}
	}
	return candidates[intn(len(candidates))]
}
