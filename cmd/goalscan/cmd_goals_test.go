package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarreach/goalscan/internal/goals"
	"github.com/solarreach/goalscan/internal/models"
)

func TestGoalsList(t *testing.T) {
	root := writeProject(t, healthyProject)

	out, err := runCommand(t, newGoalsCommand(), "list", "--root", root)
	require.NoError(t, err)

	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "encoding-clean")
	assert.Contains(t, out, "No mojibake")
	assert.Contains(t, out, "2 goal(s) in")
}

func TestGoalsList_JSON(t *testing.T) {
	root := writeProject(t, healthyProject)

	out, err := runCommand(t, newGoalsCommand(), "list", "--root", root, "--json")
	require.NoError(t, err)

	var doc map[string][]models.Goal
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc["goals"], 2)
	assert.Equal(t, "custom-goal", doc["goals"][1].ID)
}

func TestGoalsList_Empty(t *testing.T) {
	root := writeProject(t, map[string]string{"data/feature-goals.json": "[]"})

	out, err := runCommand(t, newGoalsCommand(), "list", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "No goals in")
}

func TestGoalsValidate(t *testing.T) {
	root := writeProject(t, healthyProject)

	out, err := runCommand(t, newGoalsCommand(), "validate", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
}

func TestGoalsValidate_Duplicate(t *testing.T) {
	root := writeProject(t, map[string]string{
		"data/feature-goals.json": `[{"id":"a"},{"id":"a"}]`,
	})

	_, err := runCommand(t, newGoalsCommand(), "validate", "--root", root)
	require.Error(t, err)
	assert.ErrorIs(t, err, goals.ErrValidation)
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestGoalsValidate_NotAnArray(t *testing.T) {
	root := writeProject(t, map[string]string{
		"data/feature-goals.json": `{"id":"a"}`,
	})

	_, err := runCommand(t, newGoalsCommand(), "validate", "--root", root)
	require.Error(t, err)
	assert.ErrorIs(t, err, goals.ErrValidation)
}

func TestGoalsValidate_ExplicitGoalsPath(t *testing.T) {
	root := writeProject(t, map[string]string{"elsewhere/goals.json": `[{"id":"x"}]`})

	out, err := runCommand(t, newGoalsCommand(), "validate", "--goals", filepath.Join(root, "elsewhere", "goals.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "goals.json is valid")
}

func TestGoalsAdd_FromFlags(t *testing.T) {
	root := writeProject(t, healthyProject)

	out, err := runCommand(t, newGoalsCommand(), "add", "--root", root,
		"--title", "Heat map legend", "--category", "seo", "--guidance", "one bucket table")
	require.NoError(t, err)
	assert.Contains(t, out, `Added goal "heat-map-legend"`)

	list, err := goals.NewFileStore(filepath.Join(root, "data", "feature-goals.json")).Load()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, models.Goal{
		ID:       "heat-map-legend",
		Title:    "Heat map legend",
		Category: "seo",
		Guidance: "one bucket table",
	}, list[2])
}

func TestGoalsAdd_CreatesDocument(t *testing.T) {
	root := t.TempDir()

	_, err := runCommand(t, newGoalsCommand(), "add", "--root", root, "--id", "first", "--title", "First goal")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "data", "feature-goals.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id": "first"`)
}

func TestGoalsAdd_RejectsDuplicate(t *testing.T) {
	root := writeProject(t, healthyProject)

	_, err := runCommand(t, newGoalsCommand(), "add", "--root", root, "--id", "custom-goal", "--title", "Again")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
