package api

import (
	"context"
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savorly/savorly-server/internal/service"
)

func TestListTags_SortedByName(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	_, err := ts.services.Tag.Create(ctx, service.CreateTagRequest{Name: "Lunch", Color: "#FFAA00", Slug: "lunch"})
	require.NoError(t, err)
	_, err = ts.services.Tag.Create(ctx, service.CreateTagRequest{Name: "Breakfast", Color: "#00AAFF", Slug: "breakfast"})
	require.NoError(t, err)

	resp := ts.api.Get("/api/v1/tags")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ListTagsResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	require.Len(t, envelope.Data.Tags, 2)
	assert.Equal(t, "Breakfast", envelope.Data.Tags[0].Name)
	assert.Equal(t, "breakfast", envelope.Data.Tags[0].Slug)
	assert.Equal(t, "Lunch", envelope.Data.Tags[1].Name)
}

func TestGetTag(t *testing.T) {
	ts := setupTestServer(t)
	tagID, _, _ := ts.seedCatalog(t)

	resp := ts.api.Get("/api/v1/tags/" + tagID)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[TagResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, tagID, envelope.Data.ID)
	assert.Equal(t, "Dinner", envelope.Data.Name)
	assert.Equal(t, "#00AA00", envelope.Data.Color)
}

func TestGetTag_UnknownNotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/tags/tag-missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
