package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email string  `json:"email" validate:"required,email"`
	Type  string  `json:"biodataType" validate:"omitempty,oneof=Male Female"`
	Age   int     `json:"age" validate:"omitempty,gte=18"`
	Stars float64 `json:"reviewStar" validate:"lte=5"`
}

func TestStruct(t *testing.T) {
	assert.Nil(t, Struct(&sample{Email: "a@b.com", Type: "Male", Age: 20, Stars: 4}))

	errs := Struct(&sample{Type: "Other", Age: 12, Stars: 6})
	assert.Equal(t, "email is required!", errs["email"])
	assert.Equal(t, "biodataType must be one of: Male, Female!", errs["biodataType"])
	assert.Equal(t, "age must be at least 18!", errs["age"])
	assert.Equal(t, "reviewStar must be at most 5!", errs["reviewStar"])

	errs = Struct(&sample{Email: "not-an-email"})
	assert.Equal(t, "Invalid email!", errs["email"])
}

func TestMerge(t *testing.T) {
	assert.Nil(t, Merge(nil, nil))
	assert.Equal(t, map[string]string{"a": "1"}, Merge(nil, map[string]string{"a": "1"}))
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, Merge(map[string]string{"a": "1"}, map[string]string{"b": "2"}))
}
