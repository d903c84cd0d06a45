package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wineconfig/core"
)

type TestData struct {
	Name  string
	Value int
}

func TestCacheDatastore_StoreAndFetch(t *testing.T) {
	ds := core.NewCacheDatastore[TestData]()

	testData := TestData{
		Name:  "Test",
		Value: 42,
	}
	ds.Store("test", testData)

	fetchedData, ok := ds.Fetch("test")
	assert.True(t, ok)
	assert.Equal(t, testData, fetchedData)

	ds.Delete("test")
	_, ok = ds.Fetch("test")
	assert.False(t, ok)
}

func TestCacheDatastore_FetchMissing(t *testing.T) {
	ds := core.NewCacheDatastore[TestData]()

	fetchedData, ok := ds.Fetch("nonexistent")
	assert.False(t, ok)
	assert.Equal(t, TestData{}, fetchedData)
}
