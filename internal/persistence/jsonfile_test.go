package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"contractor-leads/internal/logger"
	"contractor-leads/internal/models"
)

func TestLoad_MissingFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", DefaultPath)
	file := NewJSONFile(path, logger.NoOpLogger{})

	store, report := file.Load()

	assert.Equal(t, 0, store.Len())
	assert.Equal(t, StateMissing, report.State)
	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoad_CorruptFileYieldsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(`[{"Name": "A",`), 0o644))
	file := NewJSONFile(path, logger.NoOpLogger{})

	store, report := file.Load()

	assert.Equal(t, 0, store.Len())
	assert.Equal(t, StateCorrupt, report.State)
	assert.Error(t, report.Cause)
	require.NotEmpty(t, report.BackupPath)
	backup, err := os.ReadFile(report.BackupPath)
	require.NoError(t, err)
	assert.Equal(t, `[{"Name": "A",`, string(backup))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLoad_TrailingDataIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	doc := `[{"Name":"A"}][{"Name":"B"}]`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	store, report := NewJSONFile(path, nil).Load()

	assert.Equal(t, 0, store.Len())
	assert.Equal(t, StateCorrupt, report.State)
	require.NotEmpty(t, report.BackupPath)
	backup, err := os.ReadFile(report.BackupPath)
	require.NoError(t, err)
	assert.Equal(t, doc, string(backup))
}

func TestDecode_AllowsTrailingWhitespace(t *testing.T) {
	leads, err := Decode(strings.NewReader("[{\"Name\":\"A\"}]\n\n"))

	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "A", leads[0].Name)
}

func TestLoad_ReadOnlyLeavesCorruptFileInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(`[{"Name": "A",`), 0o644))

	store, report := NewJSONFile(path, nil, ReadOnly()).Load()

	assert.Equal(t, 0, store.Len())
	assert.Equal(t, StateCorrupt, report.State)
	assert.Empty(t, report.BackupPath)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[{"Name": "A",`, string(data))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoad_ReadOnlyMissingFileCreatesNothing(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "nested")
	path := filepath.Join(parent, DefaultPath)

	store, report := NewJSONFile(path, nil, ReadOnly()).Load()

	assert.Equal(t, 0, store.Len())
	assert.Equal(t, StateMissing, report.State)
	_, err := os.Stat(parent)
	assert.True(t, os.IsNotExist(err))
}

func TestSave_ReadOnlyRefused(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	file := NewJSONFile(path, nil, ReadOnly())

	err := file.Save(models.NewLeadStore())

	assert.ErrorIs(t, err, ErrReadOnly)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoad_WrongShapeIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(`{"Name": "A"}`), 0o644))

	store, report := NewJSONFile(path, nil).Load()

	assert.Equal(t, 0, store.Len())
	assert.Equal(t, StateCorrupt, report.State)
}

func TestLoad_DefaultsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	doc := `[{"Name":"A","Address":"1 St","Phone":"555","Email":"a@x","Notes":"n","Referred By":"","Job Type":"Unknown"}]`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	store, report := NewJSONFile(path, nil).Load()

	require.Equal(t, StateLoaded, report.State)
	require.Equal(t, 1, store.Len())
	lead := store.All()[0]
	assert.Equal(t, models.StatusInSystem, lead.Status)
	assert.Equal(t, "", lead.ReferredTo)
	assert.Equal(t, models.JobUnknown, lead.JobType)
}

func TestSave_UsesDisplayKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	store := models.NewLeadStoreFrom([]models.Lead{{
		Name: "A", Address: "1 St", Phone: "555", Email: "a@x", Notes: "n",
		ReferredBy: "Ann", ReferredTo: "Bob", JobType: models.JobCommercial,
	}})

	require.NoError(t, NewJSONFile(path, nil).Save(store))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw []map[string]string
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, map[string]string{
		"Name":        "A",
		"Address":     "1 St",
		"Phone":       "555",
		"Email":       "a@x",
		"Notes":       "n",
		"Referred By": "Ann",
		"Referred To": "Bob",
		"Job Type":    "Commercial",
		"Lead Status": "In System",
	}, raw[0])
}

func TestSave_EmptyStoreWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)

	require.NoError(t, NewJSONFile(path, nil).Save(models.NewLeadStore()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(data)))
}

func TestSave_OverwritesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	file := NewJSONFile(path, nil)
	require.NoError(t, file.Save(models.NewLeadStoreFrom([]models.Lead{{Name: "A"}, {Name: "B"}})))

	require.NoError(t, file.Save(models.NewLeadStoreFrom([]models.Lead{{Name: "C"}})))

	store, _ := file.Load()
	require.Equal(t, 1, store.Len())
	assert.Equal(t, "C", store.All()[0].Name)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[A-Za-z0-9 ,"\n<>&@.-]{0,30}`)
		leads := rapid.SliceOf(rapid.Custom(func(t *rapid.T) models.Lead {
			return models.Lead{
				Name:       text.Draw(t, "name"),
				Address:    text.Draw(t, "address"),
				Phone:      text.Draw(t, "phone"),
				Email:      text.Draw(t, "email"),
				Notes:      text.Draw(t, "notes"),
				ReferredBy: text.Draw(t, "referred_by"),
				ReferredTo: text.Draw(t, "referred_to"),
				JobType:    rapid.SampledFrom(models.JobTypes).Draw(t, "job_type"),
				Status:     rapid.SampledFrom(models.Statuses).Draw(t, "status"),
			}
		})).Draw(t, "leads")

		file := NewJSONFile(filepath.Join(dir, "roundtrip.json"), nil)
		original := models.NewLeadStoreFrom(leads)
		if err := file.Save(original); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		loaded, report := file.Load()
		if report.State != StateLoaded {
			t.Fatalf("expected loaded state, got %s", report.State)
		}

		want, got := original.All(), loaded.All()
		if len(want) != len(got) {
			t.Fatalf("length mismatch: expected %d, got %d", len(want), len(got))
		}
		for i := range want {
			if !want[i].SameFields(got[i]) {
				t.Fatalf("lead %d mismatch: expected %+v, got %+v", i, want[i], got[i])
			}
		}
	})
}
