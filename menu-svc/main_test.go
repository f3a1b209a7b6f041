package main

import (
	"context"
	"testing"

	"github.com/MozaAdirafi/tabletap/menu-svc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuStore(t *testing.T) {
	tests := []struct {
		env      string
		expected string
		wantErr  bool
	}{
		{env: "", expected: storePostgres},
		{env: "postgres", expected: storePostgres},
		{env: "Mongo", expected: storeMongo},
		{env: "dynamo", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.env, func(t *testing.T) {
			t.Setenv("MENU_STORE", testCase.env)
			store, err := menuStore()
			if testCase.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, store)
		})
	}
}

func TestNewRepositories_MemoryWithoutDatabase(t *testing.T) {
	t.Setenv("DB_HOST", "")
	repos := newRepositories(context.Background(), storeMongo)
	defer repos.close()

	assert.IsType(t, &storage.MemoryRepository{}, repos.restaurants)
	assert.Same(t, repos.restaurants, repos.menu)
	assert.Same(t, repos.menu, repos.tables)
}
