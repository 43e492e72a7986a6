package generator

import "edu_video_generator/analyzer"

// fallbackScenes holds the preconfigured script used when the remote call
// fails. One entry per pattern so the downstream blueprint still matches the
// detected layout.
var fallbackScenes = map[analyzer.Pattern][]string{
	analyzer.PatternComparison: {
		"Two options, one decision. Let's put them side by side.",
		"On the left, the first approach and what it does best.",
		"On the right, the second approach and where it shines.",
		"The key differences come down to cost, speed, and flexibility.",
		"Neither wins everywhere; the context decides.",
		"Pick the one that matches your constraints, and revisit as they change.",
	},
	analyzer.PatternProcess: {
		"Every process is just a sequence of small, repeatable steps.",
		"Step one: understand the input you are starting from.",
		"Step two: apply the transformation that moves you forward.",
		"Step three: check the result before continuing.",
		"Repeat until the output meets the goal.",
		"Follow the steps in order and the process takes care of itself.",
	},
	analyzer.PatternHierarchy: {
		"Complex systems organize into layers, each building on the one below.",
		"At the top sits the part you interact with directly.",
		"Beneath it, the components that do the coordinating work.",
		"At the base, the foundations everything else depends on.",
		"Each layer only needs to trust the layer directly below it.",
		"Understand the layers and the whole structure becomes readable.",
	},
	analyzer.PatternRelationship: {
		"Nothing here works in isolation; the connections are the story.",
		"First, meet the pieces involved.",
		"Each piece affects its neighbors in a specific, predictable way.",
		"Some connections are strong and direct, others loose and occasional.",
		"Change one piece and watch the effect ripple through the links.",
		"Map the relationships and you can predict the system.",
	},
	analyzer.PatternTimeline: {
		"To understand where we are, start with where it began.",
		"In the early days, the first version solved one narrow problem.",
		"Adoption grew, and with it the pressure to do more.",
		"A turning point changed the approach entirely.",
		"Refinement followed, year over year.",
		"Today's version carries all of that history inside it.",
	},
	analyzer.PatternStatistics: {
		"The numbers tell the story better than words can.",
		"Start with the headline figure and what it measures.",
		"Break it down by category and the pattern emerges.",
		"Outliers matter: they show where the average misleads.",
		"Trends over time reveal where this is heading.",
		"Read the data carefully and the conclusion follows.",
	},
	analyzer.PatternConcept: {
		"Some ideas look complicated until you find the right angle.",
		"At its core, this concept is a single simple claim.",
		"A concrete example makes the abstract part click.",
		"The common misunderstanding comes from skipping one assumption.",
		"With the assumption stated, the edge cases resolve themselves.",
		"That's the whole idea; everything else is application.",
	},
}

// FallbackScript returns the static script for a pattern, trimmed or padded
// to sceneCount. It is always non-empty.
func FallbackScript(topic string, pattern analyzer.Pattern, sceneCount int, reason string) Script {
	scenes, ok := fallbackScenes[pattern]
	if !ok {
		scenes = fallbackScenes[analyzer.DefaultPattern]
	}
	out := make([]string, len(scenes))
	copy(out, scenes)

	if sceneCount > 0 {
		if len(out) > sceneCount {
			out = out[:sceneCount]
		}
		for len(out) < sceneCount {
			out = append(out, "Let's recap what we have covered so far.")
		}
	}

	return Script{
		Topic:          topic,
		Pattern:        pattern,
		Scenes:         out,
		UsedFallback:   true,
		FallbackReason: reason,
	}
}
