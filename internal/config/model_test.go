package config

import (
	"context"
	"testing"

	"github.com/specialistvlad/superlumen/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		model   Model
		wantErr error
	}{
		{
			name:  "defaults are valid",
			model: *Defaults(),
		},
		{
			name: "two networks",
			model: Model{Networks: []Network{
				{Name: "public", URL: "https://a", Default: true},
				{Name: "test", URL: "https://b"},
			}},
		},
		{
			name:    "negative timeout",
			model:   Model{Host: Host{Timeout: -1}},
			wantErr: errs.ErrInvalidArgument,
		},
		{
			name:    "network without url",
			model:   Model{Networks: []Network{{Name: "public"}}},
			wantErr: errs.ErrInvalidArgument,
		},
		{
			name: "duplicate name",
			model: Model{Networks: []Network{
				{Name: "public", URL: "https://a"},
				{Name: "public", URL: "https://b"},
			}},
			wantErr: errs.ErrConflict,
		},
		{
			name: "two defaults",
			model: Model{Networks: []Network{
				{Name: "a", URL: "https://a", Default: true},
				{Name: "b", URL: "https://b", Default: true},
			}},
			wantErr: errs.ErrConflict,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.model.Validate()
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestSnapshot_DefaultNetwork(t *testing.T) {
	_, ok := Snapshot{}.DefaultNetwork()
	assert.False(t, ok)

	s := Snapshot{Networks: []Network{{Label: "A"}, {Label: "B", Default: true}}}
	nw, ok := s.DefaultNetwork()
	require.True(t, ok)
	assert.Equal(t, "B", nw.Label)

	s.Networks[1].Default = false
	nw, _ = s.DefaultNetwork()
	assert.Equal(t, "A", nw.Label)
}

func TestModel_SnapshotCopies(t *testing.T) {
	m := &Model{Networks: []Network{{Label: "A"}}}
	snap := m.Snapshot()
	snap.Networks[0].Label = "changed"
	assert.Equal(t, "A", m.Networks[0].Label)

	got, err := Static(snap).ReadConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}
