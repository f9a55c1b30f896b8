package matchmaking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAreCompatibleRules(t *testing.T) {
	tests := []struct {
		name string
		a, b WaitingEntry
		want bool
	}{
		{
			name: "same user never pairs",
			a:    WaitingEntry{ConnID: "c1", UserID: 1},
			b:    WaitingEntry{ConnID: "c2", UserID: 1},
			want: false,
		},
		{
			name: "no filters, different users",
			a:    WaitingEntry{ConnID: "c1", UserID: 1},
			b:    WaitingEntry{ConnID: "c2", UserID: 2},
			want: true,
		},
		{
			name: "a filters, bands differ",
			a:    WaitingEntry{ConnID: "c1", UserID: 1, AgeBand: "18-25", WantsAgeFilter: true},
			b:    WaitingEntry{ConnID: "c2", UserID: 2, AgeBand: "26-35"},
			want: false,
		},
		{
			name: "b filters, bands differ",
			a:    WaitingEntry{ConnID: "c1", UserID: 1, AgeBand: "18-25"},
			b:    WaitingEntry{ConnID: "c2", UserID: 2, AgeBand: "26-35", WantsAgeFilter: true},
			want: false,
		},
		{
			name: "a filters, bands equal",
			a:    WaitingEntry{ConnID: "c1", UserID: 1, AgeBand: "18-25", WantsAgeFilter: true},
			b:    WaitingEntry{ConnID: "c2", UserID: 2, AgeBand: "18-25"},
			want: true,
		},
		{
			name: "a filters but own band missing",
			a:    WaitingEntry{ConnID: "c1", UserID: 1, WantsAgeFilter: true},
			b:    WaitingEntry{ConnID: "c2", UserID: 2, AgeBand: "26-35"},
			want: true,
		},
		{
			name: "a filters but candidate band missing",
			a:    WaitingEntry{ConnID: "c1", UserID: 1, AgeBand: "18-25", WantsAgeFilter: true},
			b:    WaitingEntry{ConnID: "c2", UserID: 2},
			want: true,
		},
		{
			name: "both filter, bands differ",
			a:    WaitingEntry{ConnID: "c1", UserID: 1, AgeBand: "18-25", WantsAgeFilter: true},
			b:    WaitingEntry{ConnID: "c2", UserID: 2, AgeBand: "36-50", WantsAgeFilter: true},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AreCompatible(tt.a, tt.b))
		})
	}
}

// Without any filter request the predicate is symmetric and always
// true for distinct users, whatever the bands.
func TestAreCompatibleSymmetricWithoutFilters(t *testing.T) {
	bands := []string{"", "18-25", "26-35"}
	for _, bandA := range bands {
		for _, bandB := range bands {
			a := WaitingEntry{ConnID: "c1", UserID: 1, AgeBand: bandA}
			b := WaitingEntry{ConnID: "c2", UserID: 2, AgeBand: bandB}
			assert.True(t, AreCompatible(a, b), "a=%q b=%q", bandA, bandB)
			assert.True(t, AreCompatible(b, a), "b=%q a=%q", bandB, bandA)
		}
	}
}

func TestAreCompatibleChecksBothDirections(t *testing.T) {
	filtered := WaitingEntry{ConnID: "c1", UserID: 1, AgeBand: "18-25", WantsAgeFilter: true}
	other := WaitingEntry{ConnID: "c2", UserID: 2, AgeBand: "26-35"}

	// The filtering side blocks the pairing regardless of argument
	// order.
	assert.False(t, AreCompatible(filtered, other))
	assert.False(t, AreCompatible(other, filtered))
}
