package scaffold

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureReporter records diagnostics for assertions.
type captureReporter struct {
	errors []string
}

func (r *captureReporter) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func TestValidateForCrud(t *testing.T) {
	tests := []struct {
		name      string
		model     *ModelShapeDescriptor
		want      bool
		wantDiags int
	}{
		{
			name:      "absent shape fails silently",
			model:     nil,
			want:      false,
			wantDiags: 0,
		},
		{
			name:      "unnamed shape fails silently",
			model:     &ModelShapeDescriptor{},
			want:      false,
			wantDiags: 0,
		},
		{
			name:      "no members",
			model:     &ModelShapeDescriptor{TypeName: "Product"},
			want:      false,
			wantDiags: 1,
		},
		{
			name: "no primary key",
			model: &ModelShapeDescriptor{
				TypeName: "Product",
				Members:  []MemberDescriptor{{Name: "Name", Type: "string"}},
			},
			want:      false,
			wantDiags: 1,
		},
		{
			name: "usable shape",
			model: &ModelShapeDescriptor{
				TypeName:       "Product",
				PrimaryKeyName: "Id",
				Members:        []MemberDescriptor{{Name: "Id", Type: "int"}},
			},
			want:      true,
			wantDiags: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reporter := &captureReporter{}
			got := ValidateForCrud(tt.model, reporter)

			assert.Equal(t, tt.want, got)
			require.Len(t, reporter.errors, tt.wantDiags)
			if tt.wantDiags > 0 {
				assert.Contains(t, reporter.errors[0], "Product",
					"diagnostic must name the model type")
			}
		})
	}
}
