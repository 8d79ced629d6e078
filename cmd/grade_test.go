package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestGradeCommandJSON(t *testing.T) {
	dir := t.TempDir()
	answer := writeFile(t, dir, "answer.json", `{"elements": [
		{"name": "Student", "type": "entity"},
		{"name": "Course", "type": "entity"}
	]}`)
	student := writeFile(t, dir, "student.json", `[{"name": "Students", "type": "entity"}]`)
	rb := writeFile(t, dir, "rubric.json", `{"totalPoints": 4, "criteria": [
		{"category": "Entities", "maxPoints": 4, "description": "2 x 2"}
	]}`)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"grade", "--student", student, "--answer", answer, "--rubric", rb, "--json"})
	t.Cleanup(func() { rootCmd.SetOut(nil); rootCmd.SetArgs(nil) })

	require.NoError(t, Execute(context.Background()))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp), out.String())
	assert.Equal(t, 2.0, resp["totalScore"])
	assert.Equal(t, 4.0, resp["maxScore"])
	assert.Contains(t, resp["overallComment"], "You scored 2 out of 4")
}
