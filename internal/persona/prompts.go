package persona

const systemPrompt = `You are an AI assistant specialized in creating detailed user personas from text data.`

// personaPrompt takes the username (twice) and the rendered content block.
const personaPrompt = `Analyze the Reddit user content below (posts and comments) and construct a comprehensive user persona.

Instructions:
- Only include information that can be directly inferred from the provided content. If a field cannot be filled, write exactly: "Not enough information."
- Every inferred detail MUST be followed by a citation to the URL of the supporting post or comment.
- Use bullet points for all lists. Be concise and factual.
- Follow the output format below exactly:

---
### User Persona: %s

**Demographics:**
* Age: [Inferred age or age range] (Citation: [Link])
* Gender: [Inferred gender] (Citation: [Link])
* Location: [Inferred location] (Citation: [Link])
* Occupation/Status: [Inferred occupation or status] (Citation: [Link])
* Archetype: [Inferred archetype] (Citation: [Link])

**Behavior & Habits:**
- [Habit] (Citation: [Link])

**Frustrations:**
- [Frustration] (Citation: [Link])

**Goals & Needs:**
- [Goal or need] (Citation: [Link])

**Motivations:**
- [Motivation] (Citation: [Link])

**Personality Traits:**
- [Trait] (Citation: [Link])

**Online Behavior:**
* Frequency of Posting/Commenting: [Inferred frequency] (Citation: [Link])
* Subreddits Engaged In: [Comma-separated subreddits] (Citation: [Link])
* Tone of Communication: [Description] (Citation: [Link])

**Quote:**
"[A representative quote from their content]" (Citation: [Link])
---

Content from u/%s to analyze:
%s`

const (
	noContentDocument = "### User Persona: %s\n\nNo sufficient content: no public posts or comments with usable text were found.\n"
	emptyDocument     = "### User Persona: %s\n\nCould not generate persona: the language model returned an empty response.\n"
	failedDocument    = "### User Persona: %s\n\nPersona generation for u/%s failed due to a language model error: %v\n"
)
