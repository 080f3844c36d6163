package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func sampleLead(name string) Lead {
	return Lead{
		Name:    name,
		Address: "1 St",
		Phone:   "555",
		Email:   name + "@x",
		Notes:   "n",
		JobType: JobResidential,
	}
}

func TestAppend_DefaultsStatusAndAssignsID(t *testing.T) {
	s := NewLeadStore()

	stored := s.Append(sampleLead("A"))

	assert.Equal(t, StatusInSystem, stored.Status)
	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, 1, s.Len())
}

func TestAppend_KeepsExplicitStatus(t *testing.T) {
	s := NewLeadStore()
	lead := sampleLead("A")
	lead.Status = StatusClosed

	stored := s.Append(lead)

	assert.Equal(t, StatusClosed, stored.Status)
}

func TestAppend_NoDedup(t *testing.T) {
	s := NewLeadStore()
	first := s.Append(sampleLead("A"))
	second := s.Append(sampleLead("A"))

	assert.Equal(t, 2, s.Len())
	assert.NotEqual(t, first.ID, second.ID)
}

func TestAppend_ReplacesDuplicateID(t *testing.T) {
	s := NewLeadStore()
	first := s.Append(sampleLead("A"))

	again := sampleLead("B")
	again.ID = first.ID
	second := s.Append(again)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestUpdateField(t *testing.T) {
	s := NewLeadStoreFrom([]Lead{sampleLead("A"), sampleLead("B")})

	require.NoError(t, s.UpdateField(1, FieldEmail, "not-an-email"))

	got, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "not-an-email", got.Email)
}

func TestUpdateField_OutOfRange(t *testing.T) {
	s := NewLeadStoreFrom([]Lead{sampleLead("A")})

	for _, index := range []int{-1, 1, 42} {
		err := s.UpdateField(index, FieldName, "x")
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", index)
	}
}

func TestUpdateField_UnknownField(t *testing.T) {
	s := NewLeadStoreFrom([]Lead{sampleLead("A")})

	err := s.UpdateField(0, Field("Actions"), "x")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestUpdateFieldByID(t *testing.T) {
	s := NewLeadStore()
	lead := s.Append(sampleLead("A"))

	require.NoError(t, s.UpdateFieldByID(lead.ID, FieldReferredTo, "Bob"))
	got, err := s.GetByID(lead.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.ReferredTo)

	assert.ErrorIs(t, s.UpdateFieldByID("ld-missing", FieldName, "x"), ErrLeadNotFound)
}

func TestRemove_ShiftsLaterIndices(t *testing.T) {
	s := NewLeadStoreFrom([]Lead{sampleLead("A"), sampleLead("B"), sampleLead("C"), sampleLead("D")})
	before := s.All()

	require.NoError(t, s.Remove(1))

	after := s.All()
	require.Len(t, after, 3)
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[2], after[1])
	assert.Equal(t, before[3], after[2])
}

func TestRemove_OutOfRange(t *testing.T) {
	s := NewLeadStore()
	assert.ErrorIs(t, s.Remove(0), ErrIndexOutOfRange)
}

func TestRemoveByID(t *testing.T) {
	s := NewLeadStore()
	a := s.Append(sampleLead("A"))
	b := s.Append(sampleLead("B"))

	require.NoError(t, s.RemoveByID(a.ID))

	index, ok := s.IndexOf(b.ID)
	assert.True(t, ok)
	assert.Equal(t, 0, index)
	assert.ErrorIs(t, s.RemoveByID(a.ID), ErrLeadNotFound)
}

func TestAll_ObservesMutations(t *testing.T) {
	s := NewLeadStoreFrom([]Lead{sampleLead("A")})

	require.NoError(t, s.UpdateField(0, FieldName, "Alice"))

	assert.Equal(t, "Alice", s.All()[0].Name)
}

func TestAll_ReturnsCopies(t *testing.T) {
	s := NewLeadStoreFrom([]Lead{sampleLead("A")})

	leads := s.All()
	leads[0].Name = "mutated"

	assert.Equal(t, "A", s.All()[0].Name)
}

func TestUpdateField_EmptyStatusFallsBackToDefault(t *testing.T) {
	lead := sampleLead("A")
	lead.Status = StatusClosed
	s := NewLeadStoreFrom([]Lead{lead})

	require.NoError(t, s.UpdateField(0, FieldLeadStatus, ""))

	got, err := s.Get(0)
	require.NoError(t, err)
	assert.Equal(t, StatusInSystem, got.Status)
}

func TestJobTypeChoice(t *testing.T) {
	assert.Equal(t, JobResidential, JobResidential.Choice())
	assert.Equal(t, JobCommercial, JobCommercial.Choice())
	assert.Equal(t, JobOther, JobOther.Choice())
	assert.Equal(t, JobOther, JobUnknown.Choice())
	assert.Equal(t, JobOther, JobType("").Choice())
}

func TestLeadGetSet_CoversEveryField(t *testing.T) {
	var lead Lead
	for _, field := range Fields {
		require.NoError(t, lead.Set(field, string(field)+"-v"))
	}
	for _, field := range Fields {
		got, err := lead.Get(field)
		require.NoError(t, err)
		assert.Equal(t, string(field)+"-v", got)
	}
}

// Generators for property-based testing

func textGenerator() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just(""),
		rapid.StringMatching(`[A-Za-z0-9 .,@#-]{1,40}`),
	)
}

func leadGenerator() *rapid.Generator[Lead] {
	return rapid.Custom(func(t *rapid.T) Lead {
		return Lead{
			Name:       textGenerator().Draw(t, "name"),
			Address:    textGenerator().Draw(t, "address"),
			Phone:      textGenerator().Draw(t, "phone"),
			Email:      textGenerator().Draw(t, "email"),
			Notes:      textGenerator().Draw(t, "notes"),
			ReferredBy: textGenerator().Draw(t, "referred_by"),
			ReferredTo: textGenerator().Draw(t, "referred_to"),
			JobType:    rapid.SampledFrom(JobTypes).Draw(t, "job_type"),
			Status:     rapid.SampledFrom(Statuses).Draw(t, "status"),
		}
	})
}

func TestAppendThenRemoveLast_RestoresStore(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := NewLeadStoreFrom(rapid.SliceOf(leadGenerator()).Draw(t, "leads"))
		before := s.All()

		s.Append(leadGenerator().Draw(t, "extra"))
		if err := s.Remove(s.Len() - 1); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}

		after := s.All()
		if len(after) != len(before) {
			t.Fatalf("length mismatch: expected %d, got %d", len(before), len(after))
		}
		for i := range before {
			if before[i] != after[i] {
				t.Fatalf("lead %d changed: expected %+v, got %+v", i, before[i], after[i])
			}
		}
	})
}

func TestUpdateStatus_TouchesOnlyThatField(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		leads := rapid.SliceOfN(leadGenerator(), 1, 8).Draw(t, "leads")
		s := NewLeadStoreFrom(leads)
		before := s.All()

		index := rapid.IntRange(0, len(leads)-1).Draw(t, "index")
		status := rapid.OneOf(rapid.SampledFrom(Statuses), rapid.Just(LeadStatus(""))).Draw(t, "status")
		if err := s.UpdateField(index, FieldLeadStatus, string(status)); err != nil {
			t.Fatalf("UpdateField failed: %v", err)
		}
		if status == "" {
			status = DefaultStatus
		}

		after := s.All()
		for i := range before {
			want := before[i]
			if i == index {
				want.Status = status
			}
			if after[i] != want {
				t.Fatalf("lead %d: expected %+v, got %+v", i, want, after[i])
			}
		}
	})
}

func TestRemove_ShiftProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		leads := rapid.SliceOfN(leadGenerator(), 1, 10).Draw(t, "leads")
		s := NewLeadStoreFrom(leads)
		before := s.All()

		k := rapid.IntRange(0, len(leads)-1).Draw(t, "k")
		if err := s.Remove(k); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}

		after := s.All()
		for i := 0; i < k; i++ {
			if after[i] != before[i] {
				t.Fatalf("lead %d before removed row changed", i)
			}
		}
		for i := k + 1; i < len(before); i++ {
			if after[i-1] != before[i] {
				t.Fatalf("lead %d did not shift down to %d", i, i-1)
			}
		}
	})
}
