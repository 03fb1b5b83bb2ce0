package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourdesk/internal/catalog"
)

func unreachableClient() *ValkeyClient {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	return newValkeyClient(rdb, time.Second)
}

func TestCachedSourceFallsBackWhenCacheIsDown(t *testing.T) {
	client := unreachableClient()
	defer client.Close()

	src := NewCachedSource(catalog.NewStatic(), client)
	regions, err := src.Regions(context.Background())
	require.NoError(t, err)

	want, _ := catalog.NewStatic().Regions(context.Background())
	assert.Equal(t, catalog.Summarize(want), catalog.Summarize(regions))
}

func TestGetCatalogReportsErrors(t *testing.T) {
	client := unreachableClient()
	defer client.Close()

	regions, err := client.GetCatalog(context.Background())
	assert.Error(t, err)
	assert.Nil(t, regions)
}
