package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/erdgrade/internal/erd"
	"github.com/abhisek/erdgrade/internal/feedback"
	"github.com/abhisek/erdgrade/internal/grading"
	"github.com/abhisek/erdgrade/internal/llm"
	"github.com/abhisek/erdgrade/internal/report"
	"github.com/abhisek/erdgrade/internal/rubric"
)

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Grade a student diagram against a reference answer",
	Long: "Grade reads element lists as JSON (a bare array or an object with an\n" +
		"\"elements\" array) and an optional rubric, then prints the score.",
	Example: "  erdgrade grade --student student.json --answer answer.json --rubric rubric.json\n" +
		"  erdgrade grade --student student.json --answer answer.json --feedback --json",
	RunE: func(cmd *cobra.Command, args []string) error {
		studentPath, _ := cmd.Flags().GetString("student")
		answerPath, _ := cmd.Flags().GetString("answer")
		rubricPath, _ := cmd.Flags().GetString("rubric")
		withFeedback, _ := cmd.Flags().GetBool("feedback")
		asJSON, _ := cmd.Flags().GetBool("json")
		debug, _ := cmd.Flags().GetBool("debug")
		width, _ := cmd.Flags().GetInt("width")

		student, err := readElements(studentPath)
		if err != nil {
			return fmt.Errorf("student diagram: %w", err)
		}
		correct, err := readElements(answerPath)
		if err != nil {
			return fmt.Errorf("reference answer: %w", err)
		}

		var rb *rubric.Rubric
		if rubricPath != "" {
			data, err := os.ReadFile(rubricPath)
			if err != nil {
				return fmt.Errorf("read rubric: %w", err)
			}
			if rb, err = rubric.DecodeRubric(data); err != nil {
				return fmt.Errorf("rubric %s: %w", rubricPath, err)
			}
		}

		res, err := grading.Grade(correct, student, rb)
		if err != nil {
			return fmt.Errorf("grading failed: %w", err)
		}

		fb := feedback.Fallback(res)
		if withFeedback {
			provider, closeFn, err := openProvider(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			ctx := llm.WithRunID(cmd.Context(), newRunID())
			r := feedback.NewRenderer(provider, feedback.DefaultConfig(), nil)
			if rendered, usedFallback := r.RenderOrFallback(ctx, res); !usedFallback {
				fb = rendered
			}
		}

		out := feedback.Compose(res, fb)
		if debug {
			out.WithDebug(res)
		}

		if asJSON {
			return printJSON(cmd, out)
		}
		return report.Write(cmd.OutOrStdout(), out, width)
	},
}

func readElements(path string) ([]erd.Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	els, err := erd.DecodeElements(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return els, nil
}

func init() {
	gradeCmd.Flags().String("student", "", "Student element list (JSON file)")
	gradeCmd.Flags().String("answer", "", "Reference answer element list (JSON file)")
	gradeCmd.Flags().String("rubric", "", "Rubric (JSON file); the default rubric is used when omitted")
	gradeCmd.Flags().Bool("feedback", false, "Ask the model for feedback prose")
	gradeCmd.Flags().Bool("json", false, "Print the grading response as JSON")
	gradeCmd.Flags().Bool("debug", false, "Include grader debug data")
	gradeCmd.Flags().Int("width", report.DefaultWidth, "Report width in columns")

	_ = gradeCmd.MarkFlagRequired("student")
	_ = gradeCmd.MarkFlagRequired("answer")
}
