package insertrecords

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func withDirectory(t *testing.T, content string) {
	t.Helper()

	directory := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(directory, "records.yaml"), []byte(content), 0o644))

	previous := Directory
	Directory = directory
	t.Cleanup(func() {
		Directory = previous
	})
}

func TestLoad(t *testing.T) {
	withDirectory(t, `Collection: fare_bands
Match:
  category: EXPRESS
  minkm: 0
Data:
  maxkm: 3.2
  adultcardcents: 199
---
Collection: stops
Match:
  primaryidentifier: "01012"
Data:
  roadname: Victoria St
`)

	definitions, err := Load()
	require.NoError(t, err)
	require.Len(t, definitions, 2)

	assert.Equal(t, "fare_bands", definitions[0].Collection)
	assert.Equal(t, bson.M{"category": "EXPRESS", "minkm": 0}, definitions[0].Filter())
	assert.Equal(t, bson.M{"primaryidentifier": "01012"}, definitions[1].Filter())
}

func TestLoadRejectsUnknownCollection(t *testing.T) {
	withDirectory(t, "Collection: journeys\nMatch:\n  a: b\nData:\n  c: d\n")

	_, err := Load()
	assert.ErrorContains(t, err, "unknown collection journeys")
}

func TestLoadWithoutDirectory(t *testing.T) {
	previous := Directory
	Directory = filepath.Join(t.TempDir(), "missing")
	t.Cleanup(func() {
		Directory = previous
	})

	definitions, err := Load()
	require.NoError(t, err)
	assert.Empty(t, definitions)
}
