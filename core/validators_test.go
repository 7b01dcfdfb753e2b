package core_test

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/katalog/core"
)

type validatedForm struct {
	Name     string      `json:"name" validate:"notblank"`
	Year     string      `json:"academic_year" validate:"omitempty,academic_year"`
	Website  null.String `json:"website" validate:"omitempty,url"`
	Required string      `json:"required" validate:"required"`
}

func newTestTranslator() ut.Translator {
	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	return translator
}

func TestNewValidate(t *testing.T) {
	translator := newTestTranslator()
	validate := core.NewValidate(translator)

	tests := []struct {
		name    string
		form    validatedForm
		wantErr map[string]string
	}{
		{
			name: "valid",
			form: validatedForm{Name: "Katalog", Year: "2023/2024", Website: null.StringFrom("https://katalog-fm.tul.cz"), Required: "x"},
		},
		{
			name: "optional values left out",
			form: validatedForm{Name: "Katalog", Required: "x"},
		},
		{
			name: "invalid",
			form: validatedForm{Name: "  ", Year: "2024", Website: null.StringFrom("not a url")},
			wantErr: map[string]string{
				"name":          "this field cannot be blank",
				"academic_year": "academic year must look like 2023/2024",
				"website":       "website must be a valid URL",
				"required":      "this field is required",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.form)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			var vErrs validator.ValidationErrors
			require.ErrorAs(t, err, &vErrs)
			got := make(map[string]string, len(vErrs))
			for _, fe := range vErrs {
				got[fe.Field()] = fe.Translate(translator)
			}
			assert.Equal(t, tt.wantErr, got)
		})
	}
}
