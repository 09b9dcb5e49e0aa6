package book

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)


func TestCreateBookPayload_Validate(t *testing.T) {
	tests := []struct {
		name    string
		fields  Fields
		invalid []string
	}{
		{"complete", Fields{Title: "Dune", Author: "Frank Herbert", PublishYear: NewYear(1965)}, nil},
		{"zero year", Fields{Title: "Dune", Author: "Frank Herbert", PublishYear: NewYear(0)}, nil},
		{"negative year", Fields{Title: "Epic of Gilgamesh", Author: "Unknown", PublishYear: NewYear(-1800)}, nil},
		{"missing year", Fields{Title: "Dune", Author: "Frank Herbert"}, []string{"publishYear"}},
		{"empty", Fields{}, []string{"title", "author", "publishYear"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&CreateBookPayload{Fields: tt.fields}).Validate()
			if tt.invalid == nil {
				assert.NoError(t, err)
				return
			}

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)

			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			assert.ElementsMatch(t, tt.invalid, fields)
		})
	}
}

func TestPayloadsRequireID(t *testing.T) {
	valid := Fields{Title: "Dune", Author: "Frank Herbert", PublishYear: NewYear(1965)}

	assert.Error(t, (&GetBookByIDPayload{}).Validate())
	assert.Error(t, (&DeleteBookPayload{}).Validate())
	assert.Error(t, (&UpdateBookPayload{Fields: valid}).Validate())

	assert.NoError(t, (&GetBookByIDPayload{ID: "abc"}).Validate())
	assert.NoError(t, (&UpdateBookPayload{ID: "abc", Fields: valid}).Validate())
}

func TestFieldsYear(t *testing.T) {
	assert.Equal(t, 0, Fields{}.Year())
	assert.Equal(t, 1965, Fields{PublishYear: NewYear(1965)}.Year())
}

func TestValidationMessages(t *testing.T) {
	assert.Equal(t, MsgMissingFields, (&CreateBookPayload{}).ValidationMessage())
	assert.Equal(t, MsgMissingFields, (&UpdateBookPayload{}).ValidationMessage())
}

func TestYear_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: `1965`, want: 1965},
		{in: `1965.0`, want: 1965},
		{in: `-1800`, want: -1800},
		{in: `0`, want: 0},
		{in: `1965.5`, wantErr: true},
		{in: `"1965"`, wantErr: true},
		{in: `1e12`, wantErr: true},
		{in: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var f Fields
			err := json.Unmarshal([]byte(`{"publishYear":`+tt.in+`}`), &f)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrYearNotWhole)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Year())
		})
	}
}
