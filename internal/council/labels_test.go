package council

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCouncil_ResponseLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		slot int
		want string
	}{
		{0, "A"},
		{1, "B"},
		{2, "C"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, responseLabel(tt.slot), "slot %d", tt.slot)
	}
}

func TestCouncil_ResponseLabel_UniqueAcrossLargeCouncil(t *testing.T) {
	t.Parallel()

	seen := make(map[string]int)
	for i := 0; i < 1000; i++ {
		label := responseLabel(i)
		prev, dup := seen[label]
		require.False(t, dup, "label %q assigned to both slot %d and slot %d", label, prev, i)
		seen[label] = i
	}
}
