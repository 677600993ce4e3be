package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReduceDurations(t *testing.T) {
	testCases := []struct {
		name            string
		durations       []int64
		expectedAverage float64
		expectedMin     int64
		expectedMax     int64
		expectedMedian  float64
	}{
		{
			name:            "Even count median is mean of middle pair",
			durations:       []int64{10, 20, 30, 40},
			expectedAverage: 25,
			expectedMin:     10,
			expectedMax:     40,
			expectedMedian:  25,
		},
		{
			name:            "Odd count median is middle element",
			durations:       []int64{10, 20, 30},
			expectedAverage: 20,
			expectedMin:     10,
			expectedMax:     30,
			expectedMedian:  20,
		},
		{
			name:            "Single element",
			durations:       []int64{7200000},
			expectedAverage: 7200000,
			expectedMin:     7200000,
			expectedMax:     7200000,
			expectedMedian:  7200000,
		},
		{
			name:            "Unsorted input",
			durations:       []int64{40, 10, 30, 20},
			expectedAverage: 25,
			expectedMin:     10,
			expectedMax:     40,
			expectedMedian:  25,
		},
		{
			name:            "Fractional average",
			durations:       []int64{1, 2},
			expectedAverage: 1.5,
			expectedMin:     1,
			expectedMax:     2,
			expectedMedian:  1.5,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			metrics := ReduceDurations(tc.durations)

			assert.NotNil(t, metrics)
			assert.Equal(t, tc.expectedAverage, metrics.AverageMs)
			assert.Equal(t, tc.expectedMin, metrics.MinMs)
			assert.Equal(t, tc.expectedMax, metrics.MaxMs)
			assert.Equal(t, tc.expectedMedian, metrics.MedianMs)
		})
	}
}

func TestReduceDurationsEmpty(t *testing.T) {
	assert.Nil(t, ReduceDurations(nil), "empty collection must yield absence, not zeros")
	assert.Nil(t, ReduceDurations([]int64{}))
}

func TestReduceDurationsDoesNotMutateInput(t *testing.T) {
	input := []int64{30, 10, 20}
	ReduceDurations(input)
	assert.Equal(t, []int64{30, 10, 20}, input)
}
