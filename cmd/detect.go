package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/erdgrade/internal/detect"
	"github.com/abhisek/erdgrade/internal/llm"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Read diagrams and rubrics with the vision model",
}

var detectERDCmd = &cobra.Command{
	Use:   "erd <image>",
	Short: "Transcribe an ER diagram image to an element list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		img := llm.NewImage(data, "")
		if !strings.HasPrefix(img.MIMEType, "image/") {
			return fmt.Errorf("%s does not look like an image (%s)", args[0], img.MIMEType)
		}

		provider, closeFn, err := openProvider(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		d := detect.NewDetector(provider, detect.DefaultConfig(), nil)
		els, err := d.DetectERD(llm.WithRunID(cmd.Context(), newRunID()), img)
		if err != nil {
			return err
		}
		return printJSON(cmd, map[string]any{"elements": els})
	},
}

var detectRubricCmd = &cobra.Command{
	Use:   "rubric <file>",
	Short: "Convert a rubric image or text file to a structured rubric",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read rubric: %w", err)
		}

		var in detect.RubricInput
		if img := llm.NewImage(data, ""); strings.HasPrefix(img.MIMEType, "image/") {
			in.Image = &img
		} else {
			in.Text = string(data)
		}

		provider, closeFn, err := openProvider(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		d := detect.NewDetector(provider, detect.DefaultConfig(), nil)
		rb, err := d.DetectRubric(llm.WithRunID(cmd.Context(), newRunID()), in)
		if err != nil {
			return err
		}
		return printJSON(cmd, rb)
	},
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newRunID tags the model calls of one CLI invocation.
func newRunID() string {
	return "cli-" + uuid.NewString()
}

func init() {
	detectCmd.AddCommand(detectERDCmd)
	detectCmd.AddCommand(detectRubricCmd)
}
