package commands

import (
	"reflect"
	"testing"
)

func TestUniqueIDs(t *testing.T) {
	tests := []struct {
		name string
		in   []int
		want []int
	}{
		{"no duplicates", []int{5, 7, 9}, []int{5, 7, 9}},
		{"repeated id kept once", []int{5, 5, 7}, []int{5, 7}},
		{"order follows first mention", []int{9, 7, 9, 5, 7}, []int{9, 7, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := uniqueIDs(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("uniqueIDs(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
