package odml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/g-node/odml-go/pkg/errors"
	"github.com/g-node/odml-go/pkg/odml"
)

func TestParseMergePolicy(t *testing.T) {
	tests := []struct {
		in   string
		want odml.MergePolicy
	}{
		{"this-overrides-other", odml.ThisOverridesOther},
		{"THIS", odml.ThisOverridesOther},
		{"other-overrides-this", odml.OtherOverridesThis},
		{"other", odml.OtherOverridesThis},
		{" combine ", odml.Combine},
	}
	for _, tt := range tests {
		got, err := odml.ParseMergePolicy(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := odml.ParseMergePolicy("barter")
	assert.Error(t, err)
}

func TestMergePreconditions(t *testing.T) {
	t.Run("nil other", func(t *testing.T) {
		p, err := odml.NewPropertyWithValue("Amplitude", 5.3)
		require.NoError(t, err)
		assert.Error(t, p.Merge(nil, odml.Combine))
	})

	t.Run("name mismatch aborts", func(t *testing.T) {
		p, err := odml.NewPropertyWithValue("Amplitude", 5.3)
		require.NoError(t, err)
		other, err := odml.NewPropertyWithValue("Duration", 300)
		require.NoError(t, err)

		err = p.Merge(other, odml.Combine)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsMergeConflict(err))
	})

	t.Run("name comparison is case-insensitive", func(t *testing.T) {
		p, err := odml.NewPropertyWithValue("amplitude", 5.3)
		require.NoError(t, err)
		other, err := odml.NewPropertyWithValue("Amplitude", 5.3)
		require.NoError(t, err)
		assert.NoError(t, p.Merge(other, odml.ThisOverridesOther))
	})

	t.Run("type mismatch aborts without mutation", func(t *testing.T) {
		p, err := odml.NewPropertyWithValue("Amplitude", 5.3)
		require.NoError(t, err)
		p.SetDefinition("local definition")
		other, err := odml.NewPropertyWithValue("Amplitude", "five", odml.WithType(odml.TypeText))
		require.NoError(t, err)
		other.SetDependency("Stimulus")

		err = p.Merge(other, odml.Combine)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsMergeConflict(err))

		assert.Equal(t, []any{5.3}, p.Values())
		assert.Equal(t, "local definition", p.Definition())
		assert.Empty(t, p.Dependency(), "a failed gate must leave the property untouched")
	})

	t.Run("unit mismatch aborts", func(t *testing.T) {
		p, err := odml.NewPropertyWithValue("Amplitude", 5.3, odml.WithUnit("mV"))
		require.NoError(t, err)
		other, err := odml.NewPropertyWithValue("Amplitude", 7.1, odml.WithUnit("ms"))
		require.NoError(t, err)

		err = p.Merge(other, odml.Combine)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsMergeConflict(err))
	})

	t.Run("definition mismatch aborts", func(t *testing.T) {
		p, err := odml.NewPropertyWithValue("Amplitude", 5.3)
		require.NoError(t, err)
		p.SetDefinition("peak amplitude")
		other, err := odml.NewPropertyWithValue("Amplitude", 5.3)
		require.NoError(t, err)
		other.SetDefinition("trough amplitude")

		assert.Error(t, p.Merge(other, odml.Combine))
	})

	t.Run("mapping fragments are ignored", func(t *testing.T) {
		p, err := odml.NewPropertyWithValue("Amplitude", 5.3)
		require.NoError(t, err)
		require.True(t, p.SetMappingString("https://terms.example.org/signal#amplitude"))
		other, err := odml.NewPropertyWithValue("Amplitude", 7.1)
		require.NoError(t, err)
		require.True(t, other.SetMappingString("https://terms.example.org/signal#peak"))

		assert.NoError(t, p.Merge(other, odml.ThisOverridesOther))
	})

	t.Run("mapping target mismatch aborts", func(t *testing.T) {
		p, err := odml.NewPropertyWithValue("Amplitude", 5.3)
		require.NoError(t, err)
		require.True(t, p.SetMappingString("https://terms.example.org/signal"))
		other, err := odml.NewPropertyWithValue("Amplitude", 7.1)
		require.NoError(t, err)
		require.True(t, other.SetMappingString("https://terms.example.org/noise"))

		assert.Error(t, p.Merge(other, odml.Combine))
	})
}

func TestMergeFillsMissingScalars(t *testing.T) {
	p, err := odml.NewPropertyWithValue("Amplitude", 5.3)
	require.NoError(t, err)
	other, err := odml.NewPropertyWithValue("Amplitude", 5.3, odml.WithUnit("mV"))
	require.NoError(t, err)
	other.SetDefinition("peak amplitude")
	other.SetDependency("Stimulus")
	other.SetDependencyValue("flash")
	require.True(t, other.SetMappingString("https://terms.example.org/amplitude"))

	require.NoError(t, p.Merge(other, odml.ThisOverridesOther))

	assert.Equal(t, "peak amplitude", p.Definition())
	assert.Equal(t, "mV", p.UnitAt(0))
	assert.Equal(t, "Stimulus", p.Dependency())
	assert.Equal(t, "flash", p.DependencyValue())
	require.NotNil(t, p.Mapping())
	assert.Equal(t, "https://terms.example.org/amplitude", p.Mapping().String())
}

func TestMergeCombine(t *testing.T) {
	t.Run("disjoint values form the union", func(t *testing.T) {
		p, err := odml.NewPropertyWithValue("Electrodes", "el-1")
		require.NoError(t, err)
		other, err := odml.NewPropertyWithValue("Electrodes", "el-2")
		require.NoError(t, err)
		require.True(t, other.AddValue("el-3"))

		require.NoError(t, p.Merge(other, odml.Combine))
		assert.Equal(t, []any{"el-1", "el-2", "el-3"}, p.Values())
	})

	t.Run("repeating the merge adds nothing", func(t *testing.T) {
		p, err := odml.NewPropertyWithValue("Electrodes", "el-1")
		require.NoError(t, err)
		other, err := odml.NewPropertyWithValue("Electrodes", "el-2")
		require.NoError(t, err)

		require.NoError(t, p.Merge(other, odml.Combine))
		require.NoError(t, p.Merge(other, odml.Combine))
		assert.Equal(t, []any{"el-1", "el-2"}, p.Values())
	})

	t.Run("matching values concatenate definitions", func(t *testing.T) {
		p, err := odml.NewPropertyWithValue("Electrodes", "el-1", odml.WithDefinition("left"))
		require.NoError(t, err)
		other, err := odml.NewPropertyWithValue("Electrodes", "el-1", odml.WithDefinition("medial"))
		require.NoError(t, err)

		require.NoError(t, p.Merge(other, odml.Combine))
		assert.Equal(t, "left\nmedial", p.ValueDefinitionAt(0))

		// The concatenation itself is not idempotent.
		require.NoError(t, p.Merge(other, odml.Combine))
		assert.Equal(t, "left\nmedial\nmedial", p.ValueDefinitionAt(0))
	})

	t.Run("appended values carry their side fields", func(t *testing.T) {
		p, err := odml.NewPropertyWithValue("Electrodes", "el-1")
		require.NoError(t, err)
		other, err := odml.NewPropertyWithValue("Electrodes", "el-2",
			odml.WithReference("batch-9"),
			odml.WithUncertainty(0.01),
			odml.WithDefinition("replacement electrode"))
		require.NoError(t, err)

		require.NoError(t, p.Merge(other, odml.Combine))
		assert.Equal(t, "batch-9", p.ReferenceAt(1))
		assert.Equal(t, 0.01, p.UncertaintyAt(1))
		assert.Equal(t, "replacement electrode", p.ValueDefinitionAt(1))
	})
}

func TestMergeThisOverridesOther(t *testing.T) {
	p, err := odml.NewPropertyWithValue("Comment", "local", odml.WithDefinition("kept"))
	require.NoError(t, err)
	other, err := odml.NewPropertyWithValue("Comment", "remote", odml.WithDefinition("ignored"))
	require.NoError(t, err)

	require.NoError(t, p.Merge(other, odml.ThisOverridesOther))
	assert.Equal(t, []any{"local"}, p.Values(), "unmatched incoming values are not introduced")
	assert.Equal(t, "kept", p.ValueDefinitionAt(0))
}

func TestMergeOtherOverridesThis(t *testing.T) {
	t.Run("single value is replaced", func(t *testing.T) {
		p, err := odml.NewPropertyWithValue("Comment", "local")
		require.NoError(t, err)
		other, err := odml.NewPropertyWithValue("Comment", "remote",
			odml.WithDefinition("authoritative"), odml.WithReference("rev-2"))
		require.NoError(t, err)

		require.NoError(t, p.Merge(other, odml.OtherOverridesThis))
		assert.Equal(t, []any{"remote"}, p.Values())
		assert.Equal(t, "authoritative", p.ValueDefinitionAt(0))
		assert.Equal(t, "rev-2", p.ReferenceAt(0))
	})

	t.Run("last unmatched incoming value wins", func(t *testing.T) {
		p, err := odml.NewPropertyWithValue("Comment", "local")
		require.NoError(t, err)
		other, err := odml.NewPropertyWithValue("Comment", "first")
		require.NoError(t, err)
		require.True(t, other.AddValue("second"))

		require.NoError(t, p.Merge(other, odml.OtherOverridesThis))
		assert.Equal(t, []any{"second"}, p.Values(),
			"each unmatched incoming value replaces the same single slot")
	})

	t.Run("matching value side fields are overridden", func(t *testing.T) {
		p, err := odml.NewPropertyWithValue("Comment", "same",
			odml.WithDefinition("old"), odml.WithUncertainty(0.5))
		require.NoError(t, err)
		other, err := odml.NewPropertyWithValue("Comment", "same",
			odml.WithDefinition("new"))
		require.NoError(t, err)

		require.NoError(t, p.Merge(other, odml.OtherOverridesThis))
		assert.Equal(t, "new", p.ValueDefinitionAt(0))
		assert.Equal(t, 0.5, p.UncertaintyAt(0), "absent incoming fields do not erase local ones")
	})

	t.Run("dependency fields are overridden", func(t *testing.T) {
		p, err := odml.NewPropertyWithValue("Comment", "same")
		require.NoError(t, err)
		p.SetDependency("Stimulus")
		p.SetDependencyValue("flash")
		other, err := odml.NewPropertyWithValue("Comment", "same")
		require.NoError(t, err)
		other.SetDependency("Protocol")
		other.SetDependencyValue("gratings")

		require.NoError(t, p.Merge(other, odml.OtherOverridesThis))
		assert.Equal(t, "Protocol", p.Dependency())
		assert.Equal(t, "gratings", p.DependencyValue(),
			"the incoming dependency value must win, not the dependency name")
	})
}
