package warehouse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Location
	}{
		{
			name:     "Cell Only",
			raw:      "A1",
			expected: Location{Cell: "A1"},
		},
		{
			name:     "Box Name",
			raw:      "A1:Box1",
			expected: Location{Cell: "A1", BoxName: "Box1"},
		},
		{
			name:     "Box Name With Box Number",
			raw:      "A1:BoxName1(/2/3)",
			expected: Location{Cell: "A1", BoxName: "BoxName1", BoxNumber: 2},
		},
		{
			name:     "Color Group",
			raw:      "C3:green2",
			expected: Location{Cell: "C3", Color: "green", GroupNumber: 2},
		},
		{
			name:     "Color Group Single Digit",
			raw:      "B2:red1",
			expected: Location{Cell: "B2", Color: "red", GroupNumber: 1},
		},
		{
			name:     "Malformed Suffix Falls Back To Box Name",
			raw:      "B4:odd-name(/x)",
			expected: Location{Cell: "B4", BoxName: "odd-name(/x)"},
		},
		{
			name:     "Invalid Cell Still Decodes",
			raw:      "Z9:foo",
			expected: Location{Cell: "Z9", BoxName: "foo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decode(tt.raw))
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		location Location
	}{
		{
			name:     "Box Shape",
			location: Location{Cell: "A1", BoxName: "Box1"},
		},
		{
			name:     "Color Shape",
			location: Location{Cell: "B2", Color: "red", GroupNumber: 1},
		},
		{
			name:     "Bare Cell",
			location: Location{Cell: "C6"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.location, Decode(Encode(tt.location)))
		})
	}
}

func TestEncode(t *testing.T) {
	assert.Equal(t, "A1:Box1", Encode(Location{Cell: "A1", BoxName: "Box1"}))
	assert.Equal(t, "B2:red1", Encode(Location{Cell: "B2", Color: "red", GroupNumber: 1}))
	assert.Equal(t, "C3", Encode(Location{Cell: "C3"}))
}

func TestLocationValid(t *testing.T) {
	assert.True(t, Location{Cell: "A1"}.Valid())
	assert.True(t, Location{Cell: "C6"}.Valid())
	assert.False(t, Location{Cell: "Z9"}.Valid())
	assert.False(t, Location{Cell: "A7"}.Valid())
	assert.False(t, Location{Cell: "D1"}.Valid())
	assert.False(t, Location{Cell: "a1"}.Valid())
}
