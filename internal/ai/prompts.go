package ai

import (
	"fmt"

	"frameflow-cli/internal/model"
)

// ScriptTemplateShortForm is the five-part skeleton every generated script follows.
const ScriptTemplateShortForm = `HOOK: (A captivating sentence to grab attention in the first 3 seconds)

SELLING THE SOLUTION: (Briefly describe the problem and hint at the solution you'll provide)

GIVING THE PRINCIPLE: (Explain the core concept or 'how-to' part of the video)

MAKING IT APPLICABLE: (Give a concrete example or show how the viewer can apply it themselves)

CTA: (Tell the viewer what to do next - like, follow, comment, etc.)`

const strategistInstruction = `You are FrameFlow's production strategist. You are helpful, creative, and concise. ` +
	`Prefer low-budget, phone-friendly setups. For TikTok/IG Reels, suggest vertical framing (9:16); for YouTube, 16:9. ` +
	`You MUST structure scripts using these exact headings (without markdown hashes): ` +
	`HOOK, SELLING THE SOLUTION, GIVING THE PRINCIPLE, MAKING IT APPLICABLE, CTA. ` +
	`The content should be SEO-friendly and engaging.`

const (
	titlesInstruction   = "You are a viral marketing expert specializing in video titles."
	hashtagsInstruction = "You are a social media expert who knows all about trending hashtags."
	ideasInstruction    = "You are a creative assistant for video creators, specializing in brainstorming viral video ideas."
)

func strategyPrompt(title, idea string, ct model.ContentType, pl model.Platform) string {
	return fmt.Sprintf("Generate a full production strategy for the following video idea:\n\nTitle: %s\nIdea: %s\nContent Type: %s\nPlatform: %s",
		title, idea, ct, pl)
}

func refinePrompt(script, instruction string, form ScriptForm) string {
	return fmt.Sprintf("You are a script doctor. The user wants to refine their script.\n\n"+
		"USER'S GOAL: %q\n\nSCRIPT FORM: %q\n\nEXISTING SCRIPT:\n---\n%s\n---\n\n"+
		"Return the complete, revised script. If generating a long-form script, expand on each of the 5 sections to create a more detailed narrative. "+
		"If editing, apply the user's goal to the entire script. Ensure the output is only the new script text, following the required 5-part structure.",
		instruction, string(form), script)
}

func shotsPrompt(script string) string {
	return "You are a Director of Photography. Analyze the following video script and generate a comprehensive shot list. " +
		"For each shot, suggest a scene name (linked to the script part), camera angle, location, necessary gear, and brief notes. " +
		"The script provides the narrative context. Return ONLY a JSON array of shot objects.\n\n---\n\nSCRIPT:\n" + script + "\n\n---\n\nNew shots (JSON Array):"
}

func titlesPrompt(topic string) string {
	return fmt.Sprintf("Generate 5 catchy, SEO-friendly video titles for the following topic: %q. Return a simple JSON array of strings.", topic)
}

func hashtagsPrompt(topic string) string {
	return fmt.Sprintf("Generate a list of 10-15 relevant and trending hashtags for a video about %q. "+
		"Include a mix of broad and niche tags. Return a simple JSON array of strings, each starting with '#'.", topic)
}

func ideasPrompt(topic string) string {
	return fmt.Sprintf("Generate 5 unique and engaging video script prompts based on the user's topic: %q. "+
		"The prompts should be actionable ideas for a creator. Return a JSON array of strings.", topic)
}
