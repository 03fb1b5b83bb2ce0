package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourdesk/internal/models"
)

func TestBuildTree(t *testing.T) {
	rows := []showRow{
		{Region: "ASIA-PACIFIC", Country: "Japan", Show: models.Show{ID: "tokyo-04-17"}},
		{Region: "ASIA-PACIFIC", Country: "Japan", Show: models.Show{ID: "tokyo-04-18"}},
		{Region: "ASIA-PACIFIC", Country: "Thailand", Show: models.Show{ID: "bangkok-12-03"}},
		{Region: "EUROPE", Country: "France", Show: models.Show{ID: "paris-06-27"}},
	}

	tree := buildTree(rows)
	require.Len(t, tree, 2)
	require.Len(t, tree[0].Countries, 2)
	assert.Len(t, tree[0].Countries[0].Shows, 2)
	assert.Equal(t, "bangkok-12-03", tree[0].Countries[1].Shows[0].ID)
	assert.Equal(t, "EUROPE", tree[1].Name)
}

func TestBuildTreeEmpty(t *testing.T) {
	tree := buildTree(nil)
	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}
