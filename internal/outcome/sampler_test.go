package outcome

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/markd315/football-vibes-sub000/data"
	"github.com/markd315/football-vibes-sub000/internal/dice"
	"github.com/markd315/football-vibes-sub000/internal/rates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollCategoryBoundaries(t *testing.T) {
	v := rates.Vector{Havoc: 11, Explosive: 13, Success: 45}
	cases := []struct {
		roll int
		want Category
	}{
		{1, Havoc},
		{11, Havoc},
		{12, Explosive},
		{24, Explosive},
		{25, Success},
		{69, Success},
		{70, Unsuccessful},
		{100, Unsuccessful},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RollCategory(tc.roll, v), "roll=%d", tc.roll)
	}

	frac := rates.Vector{Havoc: 10.5, Explosive: 2, Success: 10}
	assert.Equal(t, Havoc, RollCategory(10, frac))
	assert.Equal(t, Explosive, RollCategory(11, frac))
	assert.Equal(t, Explosive, RollCategory(12, frac))
	assert.Equal(t, Success, RollCategory(13, frac))
}

func TestRollCategoryOvercommitted(t *testing.T) {
	v := rates.Vector{Havoc: 30, Explosive: 30, Success: 60}
	for r := 61; r <= 100; r++ {
		assert.Equal(t, Success, RollCategory(r, v))
	}
}

func newTestSampler(rng dice.RandomSource) *Sampler {
	return NewSampler(NewFileRepository(data.FS), DefaultConfig(), rng)
}

func TestSampleHavocSack(t *testing.T) {
	s := newTestSampler(dice.Fixed(5, 20, 50))
	res, err := s.Sample(context.Background(), rates.Pass, rates.Default())
	require.NoError(t, err)
	assert.Equal(t, Havoc, res.Category)
	assert.Equal(t, HavocSack, res.Bucket)
	assert.Equal(t, -7, res.Yards)
	assert.False(t, res.Turnover)
	assert.True(t, res.Complete)
	assert.Equal(t, "Sacked! The quarterback goes down for -7 yards.", res.Description)
}

func TestSampleHavocTurnover(t *testing.T) {
	s := newTestSampler(dice.Fixed(5, 40, 50))
	res, err := s.Sample(context.Background(), rates.Run, rates.Default())
	require.NoError(t, err)
	assert.Equal(t, HavocTurnover, res.Bucket)
	assert.Equal(t, 0, res.Yards)
	assert.True(t, res.Turnover)
	assert.Equal(t, "fumble", res.TurnoverType)
}

func TestSampleIncompletionSkipsYardage(t *testing.T) {
	// category 90 -> unsuccessful, completion roll 41 > 40, turnover roll 100
	s := newTestSampler(dice.Fixed(90, 41, 100))
	res, err := s.Sample(context.Background(), rates.Pass, rates.Default())
	require.NoError(t, err)
	assert.Equal(t, Unsuccessful, res.Category)
	assert.Equal(t, UnsuccessfulPass, res.Bucket)
	assert.False(t, res.Complete)
	assert.Equal(t, 0, res.Yards)
	assert.False(t, res.Turnover)
	assert.Equal(t, "Pass falls incomplete.", res.Description)
}

func TestSampleSuccessUsesYACProfileAboveThreshold(t *testing.T) {
	s := newTestSampler(dice.Fixed(30, 73, 50, 100))
	res, err := s.Sample(context.Background(), rates.Run, rates.Default())
	require.NoError(t, err)
	assert.Equal(t, Success, res.Category)
	assert.Equal(t, YACRun, res.Bucket)
	assert.Equal(t, 4, res.Yards)

	s = newTestSampler(dice.Fixed(30, 72, 50, 100))
	res, err = s.Sample(context.Background(), rates.Pass, rates.Default())
	require.NoError(t, err)
	assert.Equal(t, SuccessfulPass, res.Bucket, "threshold roll stays on the primary profile")
	assert.Equal(t, 6, res.Yards)
}

func TestSampleMissingProfileFails(t *testing.T) {
	s := NewSampler(NewFileRepository(fstest.MapFS{}), DefaultConfig(), dice.Fixed(30))
	res, err := s.Sample(context.Background(), rates.Run, rates.Default())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.Equal(t, 0, res.Yards)
}

func TestSampleCategoryCustomPath(t *testing.T) {
	fsys := fstest.MapFS{
		"custom/boom.json": {Data: []byte(`{"outcome":"boom","description":"Boom {yards}","average-yards-gained":40,"standard-deviation":1,"skewness":0,"turnover-probability":0,"turnover-type":"none"}`)},
	}
	cfg := DefaultConfig()
	cfg.Paths = map[Bucket]string{ExplosiveRun: "custom/boom.json"}
	s := NewSampler(NewFileRepository(fsys), cfg, dice.Fixed(100))
	res, err := s.SampleCategory(context.Background(), rates.Run, Explosive)
	require.NoError(t, err)
	assert.Equal(t, 50, res.Yards)
	assert.Equal(t, "Boom 50", res.Description)
}
