package feedback

import (
	"bytes"
	"strconv"
	"text/template"

	"github.com/abhisek/erdgrade/internal/grading"
)

const feedbackSystemPrompt = `You are a database design instructor writing feedback on a student's entity-relationship diagram. The diagram has already been graded.

Rules:
- The scores below are final. Do not recompute, question or contradict them, and do not mention point values other than those given.
- Only talk about the items listed under Correct, Missing and Incorrect. Do not invent entities, attributes or relationships.
- Write one short sentence per listed item, in the same order.
- Address the student directly in a supportive, specific tone.
- Return a comment for every category, using the category name exactly as given.`

type promptCategory struct {
	Name      string
	Earned    string
	Max       string
	Correct   []string
	Missing   []string
	Incorrect []string
}

type promptData struct {
	Total      string
	Max        string
	Categories []promptCategory
}

var feedbackUserTemplate = template.Must(template.New("feedback").Parse(`Final score: {{.Total}} / {{.Max}}
{{range .Categories}}
Category: {{.Name}} ({{.Earned}} / {{.Max}})
Correct:
{{range .Correct}}- {{.}}
{{else}}- none
{{end}}Missing:
{{range .Missing}}- {{.}}
{{else}}- none
{{end}}Incorrect:
{{range .Incorrect}}- {{.}}
{{else}}- none
{{end}}{{end}}`))

func buildFeedbackMessage(res *grading.Result) (string, error) {
	data := promptData{
		Total: formatPoints(res.TotalScore),
		Max:   formatPoints(res.MaxScore),
	}
	for _, row := range res.Breakdown {
		data.Categories = append(data.Categories, promptCategory{
			Name:      row.Category,
			Earned:    formatPoints(row.Earned),
			Max:       formatPoints(row.Max),
			Correct:   res.CorrectElements[row.Category],
			Missing:   res.MissingElements[row.Category],
			Incorrect: res.IncorrectElements[row.Category],
		})
	}

	var buf bytes.Buffer
	if err := feedbackUserTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
