package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
}

func twoRowCSV() string {
	return header + "\n" +
		"o1,c1,p1,r1,10,5,SP,sao paulo,toys,,,,,2018-01-01,,,\n" +
		"o2,c2,p2,r2,20,4,RJ,rio,pets,,,,,2018-01-05,,,\n"
}

func TestStoreLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main_data.csv")
	writeCSV(t, path, twoRowCSV())

	store := NewStore(NewLoader(path, testLogger()), testLogger())
	require.NoError(t, store.Load(context.Background()))

	assert.Equal(t, 2, store.RowCount())
	assert.False(t, store.LoadedAt().IsZero())

	bounds, ok := store.Bounds()
	require.True(t, ok)
	assert.Equal(t, "2018-01-01", bounds.Start.Format("2006-01-02"))
	assert.Equal(t, "2018-01-05", bounds.End.Format("2006-01-02"))
}

func TestStoreLoadFatalWithoutDeliveryDates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main_data.csv")
	writeCSV(t, path, header+"\n"+"o1,c1,p1,r1,10,5,SP,sao paulo,toys,,,,,,,,\n")

	store := NewStore(NewLoader(path, testLogger()), testLogger())
	err := store.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no parseable")
}

func TestStoreReloadPicksUpNewRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main_data.csv")
	writeCSV(t, path, twoRowCSV())

	store := NewStore(NewLoader(path, testLogger()), testLogger())
	require.NoError(t, store.Load(context.Background()))

	writeCSV(t, path, twoRowCSV()+"o3,c3,p3,r3,30,3,MG,belo horizonte,toys,,,,,2018-02-01,,,\n")
	require.NoError(t, store.Reload(context.Background()))

	assert.Equal(t, 3, store.RowCount())
	bounds, _ := store.Bounds()
	assert.Equal(t, "2018-02-01", bounds.End.Format("2006-01-02"))
}

func TestStoreReloadFailureKeepsPreviousTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main_data.csv")
	writeCSV(t, path, twoRowCSV())

	store := NewStore(NewLoader(path, testLogger()), testLogger())
	require.NoError(t, store.Load(context.Background()))
	require.NoError(t, os.Remove(path))

	require.Error(t, store.Reload(context.Background()))
	assert.Equal(t, 2, store.RowCount(), "previous table must survive")
	_, ok := store.Bounds()
	assert.True(t, ok)
}
