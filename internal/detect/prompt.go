package detect

import "strings"

const erdSystemPrompt = `You read hand-drawn and tool-drawn entity-relationship diagrams and transcribe them as JSON. Report only what is drawn. Do not correct, complete or improve the design.`

const erdUserPrompt = `Transcribe every element of the ER diagram in the image.

Return a JSON object {"elements": [...]} where each element has:
- id: a short unique id such as "e1"
- name: the label exactly as written
- type: "entity", "relationship" or "attribute"
- subType:
  - entity: "strong" (single rectangle), "weak" (double rectangle) or "associative" (rectangle around a diamond)
  - relationship: "strong" (single diamond) or "weak" (double diamond, identifying)
  - attribute: "primary_key" (underlined), "foreign_key", "derived" (dashed oval), "multivalued" (double oval), "composite" (oval with child ovals) or "regular"
- from, to: entity names a relationship connects, in reading order (relationships only)
- cardinalityFrom, cardinalityTo: the participation on the from and to sides written as "min..max", for example "0..M", "1..1", "1..N" (relationships only; use "" when none is drawn)
- belongsTo: the name of the entity, relationship or attribute an attribute hangs off (attributes only)
- belongsToType: "entity", "relationship" or "attribute" (attributes only)
- confidence: 0.0 to 1.0

Convert crow's foot, Chen and min-max notation to "min..max". Use M for "many".
Return only the JSON object.`

const rubricSystemPrompt = `You convert grading rubrics for ER diagram assignments into structured JSON. Keep the instructor's categories, point values and wording.`

func buildRubricUserMessage(text string, hasImage bool) string {
	var b strings.Builder

	if hasImage {
		b.WriteString("The rubric is shown in the attached image.\n")
	}
	if text != "" {
		b.WriteString("Rubric text:\n")
		b.WriteString(text)
		b.WriteString("\n")
	}

	b.WriteString(`
Instructions:
Return a JSON object {"totalPoints": number, "criteria": [...], "notes": string} where each criterion has:
- category: the category name, e.g. "Entities", "Attributes", "Primary Keys", "Relationships", "Cardinality"
- maxPoints: the points available for that category
- description: the instructor's description. Keep any per-item formula written as "<points> x <count>", for example "0.5 x 16".
Set totalPoints to the rubric's stated total, or the sum of maxPoints when none is stated.
Put anything that is not a scoring category in notes.
Return only the JSON object.`)

	return b.String()
}
