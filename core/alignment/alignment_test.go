package alignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	a, err := Parse("ctg\t350\t100\t150\t+\tref\t158\t10\t58\t27\t48\t60\tcg:Z:4=1X2I2=1X10D1X2=10I1X1=5D5=1X4=5I3=1X6=\ttp:A:P\tde:f:0.12\n")
	require.NoError(t, err)

	assert.Equal(t, "ctg", a.QueryName)
	assert.Equal(t, 350, a.QueryLength)
	assert.Equal(t, Forward, a.Strand)
	assert.Equal(t, "ref", a.RefName)
	assert.Equal(t, Interval{Start: 101, End: 150}, a.QuerySpan())
	assert.Equal(t, Interval{Start: 11, End: 58}, a.RefSpan())
	assert.Equal(t, 27, a.Matches)
	assert.Equal(t, 48, a.BlockLength)
	assert.Equal(t, 60, a.MapQ)
	assert.True(t, a.IsPrimary())
	assert.Equal(t, "0.12", a.Tags["de:f"])
	assert.Len(t, a.Cigar, 19)
}

func TestParseShortNumericRun(t *testing.T) {
	// mapping quality omitted
	a, err := Parse("ctg2\t30\t21\t27\t-\tctg1\t30\t20\t27\t5\t7\tcg:Z:3=2D1X1I1=\ttp:A:S")
	require.NoError(t, err)
	assert.Equal(t, Reverse, a.Strand)
	assert.Equal(t, 5, a.Matches)
	assert.Equal(t, 7, a.BlockLength)
	assert.Equal(t, MissingMapQ, a.MapQ)
	assert.False(t, a.IsPrimary())
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"too few columns": "ctg\t350\t100\t150\t+\tref\t158\t10",
		"bad number":      "ctg\t350\tx\t150\t+\tref\t158\t10\t58\tcg:Z:50=",
		"bad strand":      "ctg\t350\t100\t150\t*\tref\t158\t10\t58\tcg:Z:50=",
		"no cigar":        "ctg\t350\t100\t150\t+\tref\t158\t10\t58\t27\t48\t60\ttp:A:P",
		"bad cigar":       "ctg\t350\t100\t150\t+\tref\t158\t10\t58\tcg:Z:50Q",
		"out of range":    "ctg\t120\t100\t150\t+\tref\t158\t10\t60\tcg:Z:50=",
		"malformed tag":   "ctg\t350\t100\t150\t+\tref\t158\t10\t60\t1\t2\t3\tjunk\tcg:Z:50=",
		"start after end": "ctg\t350\t150\t100\t+\tref\t158\t10\t58\tcg:Z:48=",
		"negative start":  "ctg\t350\t100\t150\t+\tref\t158\t-2\t48\tcg:Z:50=",
	}
	for name, line := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(line)
			assert.Error(t, err)
		})
	}

	_, err := Parse("ctg\t350\t100\t150\t+\tref\t158\t10\t58\tcg:Z:49=")
	assert.ErrorIs(t, err, ErrScriptCoordinateMismatch)
}

func TestInterval(t *testing.T) {
	a := Interval{Start: 5, End: 10}
	assert.Equal(t, 6, a.Len())
	assert.True(t, a.Contains(Interval{Start: 6, End: 10}))
	assert.False(t, a.Contains(Interval{Start: 4, End: 6}))

	got, ok := a.Intersect(Interval{Start: 8, End: 20})
	assert.True(t, ok)
	assert.Equal(t, Interval{Start: 8, End: 10}, got)
	_, ok = a.Intersect(Interval{Start: 11, End: 20})
	assert.False(t, ok)

	assert.Equal(t, Interval{Start: 11, End: 16}, a.Mirror(20))
	assert.Equal(t, a, a.Mirror(20).Mirror(20))
	assert.Equal(t, "5-10", a.String())

	s, err := ParseStrand("-")
	require.NoError(t, err)
	assert.Equal(t, "-", s.String())
	assert.Equal(t, "", Strand(0).String())
}
