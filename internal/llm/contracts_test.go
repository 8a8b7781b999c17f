package llm

import (
	"errors"
	"testing"

	"github.com/jklim/schoolcal/internal/common"
)

func TestValidatePageCount(t *testing.T) {
	tests := []struct {
		n    int
		want error
	}{
		{0, common.ErrNoImages},
		{1, nil},
		{10, nil},
		{11, common.ErrTooManyPages},
	}
	for _, tc := range tests {
		err := ValidatePageCount(tc.n)
		if tc.want == nil {
			if err != nil {
				t.Errorf("ValidatePageCount(%d) = %v, want nil", tc.n, err)
			}
			continue
		}
		if !errors.Is(err, tc.want) {
			t.Errorf("ValidatePageCount(%d) = %v, want %v", tc.n, err, tc.want)
		}
	}
}
