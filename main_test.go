package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidecomposer/config"
	"slidecomposer/datasource"
	"slidecomposer/plan"
	"slidecomposer/pptx"
)

// run executes the CLI with args, resetting flag variables left over from
// earlier runs.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, langFlag, logDirFlag = "", "", ""
	demoOut, buildOut, buildTables, outlineMax = "", "", "", 0
	buildWatch, configForce = false, false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := Execute()
	return buf.String(), err
}

func demoDeck(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "example_presentation.pptx")
	_, err := run(t, "--lang", "en", "demo", "--out", path)
	require.NoError(t, err)
	return path
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")

	assert.NoError(t, err)
	assert.Contains(t, out, "slidecomposer version dev")
}

func TestDemoCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.pptx")

	out, err := run(t, "--lang", "en", "demo", "--out", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Created slide 1: Slide Composer Demo")
	assert.Contains(t, out, "Created slide 10: ")
	assert.Contains(t, out, "Presentation saved: "+path)
	assert.Contains(t, out, "Available slide layouts:")
	assert.Contains(t, out, "  6: Blank")

	d, err := pptx.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 10, d.SlideCount())
	assert.Equal(t, "slidecomposer", d.Properties.Creator)
}

func TestDemoCmdChinese(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.pptx")

	out, err := run(t, "--lang", "zh", "demo", "--out", path)

	require.NoError(t, err)
	assert.Contains(t, out, "已创建第 2 张幻灯片：项目概述")
	assert.Contains(t, out, "可用的幻灯片布局：")
}

func TestModifyCmd(t *testing.T) {
	path := demoDeck(t)

	out, err := run(t, "--lang", "en", "modify", path)

	require.NoError(t, err)
	modified := filepath.Join(filepath.Dir(path), "example_presentation_modified.pptx")
	assert.Contains(t, out, "Modified presentation saved: "+modified)
	d, err := pptx.Open(modified)
	require.NoError(t, err)
	assert.Equal(t, 11, d.SlideCount())
	assert.Equal(t, "Modified Title", d.Slides[0].Title())
}

func TestModifyCmdMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.pptx")

	_, err := run(t, "--lang", "en", "modify", path)

	require.Error(t, err)
	assert.Equal(t, "File not found: "+path, err.Error())
}

func TestModifyCmdRequiresArg(t *testing.T) {
	_, err := run(t, "modify")

	assert.Error(t, err)
}

const testPlan = `title: Quarterly Review
author: Finance
output: review.pptx
slides:
  - type: title
    title: Q3
    subtitle: Results
  - type: bullets
    title: Highlights
    items:
      - Revenue up
      - text: EMEA
        level: 1
  - type: table
    title: Figures
    header: [Region, Revenue]
    rows:
      - [EMEA, "12"]
      - [APAC, "9"]
`

func TestBuildCmd(t *testing.T) {
	dir := t.TempDir()
	planPath := filepath.Join(dir, "review.yaml")
	require.NoError(t, os.WriteFile(planPath, []byte(testPlan), 0644))

	out, err := run(t, "--lang", "en", "build", planPath)

	require.NoError(t, err)
	deckPath := filepath.Join(dir, "review.pptx")
	assert.Contains(t, out, "Built 3 slides from "+deckPath)
	d, err := pptx.Open(deckPath)
	require.NoError(t, err)
	assert.Equal(t, 3, d.SlideCount())
	assert.Equal(t, "Quarterly Review", d.Properties.Title)
	assert.Equal(t, "Finance", d.Properties.Creator)
	assert.Equal(t, "Q3", d.Slides[0].Title())
	require.Len(t, d.Slides[2].Tables(), 1)
	assert.Equal(t, 3, d.Slides[2].Tables()[0].Rows())
}

func TestBuildCmdExportTables(t *testing.T) {
	dir := t.TempDir()
	planPath := filepath.Join(dir, "review.yaml")
	require.NoError(t, os.WriteFile(planPath, []byte(testPlan), 0644))
	book := filepath.Join(dir, "tables.xlsx")

	out, err := run(t, "--lang", "en", "build", planPath, "--export-tables", book)

	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 tables to "+book)
	tbl, err := datasource.Load(book, datasource.Options{Sheet: "Slide 3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Region", "Revenue"}, tbl.Header)
	assert.Equal(t, [][]string{{"EMEA", "12"}, {"APAC", "9"}}, tbl.Rows)
}

func TestBuildCmdExportWithoutTables(t *testing.T) {
	dir := t.TempDir()
	planPath := filepath.Join(dir, "plain.yaml")
	require.NoError(t, os.WriteFile(planPath, []byte("slides:\n  - type: title\n    title: Only\n"), 0644))
	book := filepath.Join(dir, "tables.xlsx")

	out, err := run(t, "--lang", "en", "build", planPath, "--export-tables", book)

	require.NoError(t, err)
	assert.Contains(t, out, "The deck has no tables to export")
	assert.NoFileExists(t, book)
}

func TestBuildCmdOutFlag(t *testing.T) {
	dir := t.TempDir()
	planPath := filepath.Join(dir, "review.yaml")
	require.NoError(t, os.WriteFile(planPath, []byte(testPlan), 0644))
	target := filepath.Join(dir, "elsewhere.pptx")

	_, err := run(t, "--lang", "en", "build", planPath, "--out", target)

	require.NoError(t, err)
	assert.FileExists(t, target)
	assert.NoFileExists(t, filepath.Join(dir, "review.pptx"))
}

func TestBuildCmdInvalidPlan(t *testing.T) {
	planPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(planPath, []byte("slides:\n  - type: chart\n"), 0644))

	_, err := run(t, "build", planPath)

	require.Error(t, err)
	assert.True(t, errors.Is(err, plan.ErrInvalidPlan))
	assert.True(t, strings.HasPrefix(err.Error(), "failed to load plan"))
}

func TestWatchPlanRebuilds(t *testing.T) {
	dir := t.TempDir()
	planPath := filepath.Join(dir, "review.yaml")
	require.NoError(t, os.WriteFile(planPath, []byte(testPlan), 0644))
	_, err := run(t, "--lang", "en", "build", planPath)
	require.NoError(t, err)
	p, err := plan.Load(planPath)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watchPlan(ctx, planPath, p) }()

	time.Sleep(200 * time.Millisecond)
	extra := testPlan + "  - type: section\n    title: Outlook\n"
	require.NoError(t, os.WriteFile(planPath, []byte(extra), 0644))

	deckPath := filepath.Join(dir, "review.pptx")
	assert.Eventually(t, func() bool {
		d, err := pptx.Open(deckPath)
		return err == nil && d.SlideCount() == 4
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestBuildOutput(t *testing.T) {
	buildOut = ""
	assert.Equal(t, filepath.Join("plans", "deck.pptx"), buildOutput(filepath.Join("plans", "deck.yaml"), ""))
	assert.Equal(t, filepath.Join("plans", "out", "x.pptx"), buildOutput(filepath.Join("plans", "deck.yaml"), filepath.Join("out", "x.pptx")))
	abs := filepath.Join(t.TempDir(), "abs.pptx")
	assert.Equal(t, abs, buildOutput("deck.yaml", abs))

	buildOut = "flag.pptx"
	defer func() { buildOut = "" }()
	assert.Equal(t, "flag.pptx", buildOutput("deck.yaml", abs))
}

func TestLayoutsCmd(t *testing.T) {
	path := demoDeck(t)

	out, err := run(t, "--lang", "en", "layouts", path)

	require.NoError(t, err)
	assert.Contains(t, out, "  0: Title Slide")
	assert.Contains(t, out, "  1: Title and Content")
}

func TestOutlineCmd(t *testing.T) {
	path := demoDeck(t)

	out, err := run(t, "outline", path, "--max", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "1. Slide Composer Demo")
	assert.Contains(t, out, "2. Project Overview")
	assert.Contains(t, out, "... 8 more slides")
}

func TestRenderCmd(t *testing.T) {
	path := demoDeck(t)
	pattern := filepath.Join(t.TempDir(), "png", "slide_%d.png")

	out, err := run(t, "--lang", "en", "render", path, "--pattern", pattern, "--width", "200")

	require.NoError(t, err)
	assert.Contains(t, out, "Rendered 10 slides")
	assert.FileExists(t, fmt.Sprintf(pattern, 10))
}

func TestRenderCmdRejectsPattern(t *testing.T) {
	path := demoDeck(t)

	_, err := run(t, "render", path, "--pattern", "slide.png")

	assert.Error(t, err)
}

func TestLogDirWritesRunLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	_, err := run(t, "--log-dir", dir, "version")

	require.NoError(t, err)
	matches, err := filepath.Glob(filepath.Join(dir, "slidecomposer_*.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "command slidecomposer version")
	assert.Contains(t, string(data), "Run finished.")
}

func TestBadConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))

	_, err := run(t, "--config", path, "version")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestWrapOperationError(t *testing.T) {
	assert.NoError(t, WrapOperationError("save deck", nil))
	assert.NoError(t, WrapOperationErrorf("read %s", nil, "x"))

	cause := errors.New("disk full")
	err := WrapOperationError("save deck", cause)
	assert.EqualError(t, err, "failed to save deck: disk full")
	assert.ErrorIs(t, err, cause)

	err = WrapOperationErrorf("read plan %s", cause, "a.yaml")
	assert.EqualError(t, err, "failed to read plan a.yaml: disk full")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slidecomposer.json")

	out, err := run(t, "--lang", "zh", "config", "init", path)

	require.NoError(t, err)
	assert.Contains(t, out, "配置已写入："+path)
	written, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "zh", written.Language)
	assert.Equal(t, config.DefaultTheme(), written.Theme)

	_, err = run(t, "config", "init", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = run(t, "--lang", "en", "config", "init", path, "--force")
	require.NoError(t, err)
	written, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "en", written.Language)
}

func TestConfigInitUsesConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")

	_, err := run(t, "--config", path, "config", "init")

	require.NoError(t, err)
	assert.FileExists(t, path)
}
