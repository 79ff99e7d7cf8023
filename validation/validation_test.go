package validation

import (
	"errors"
	"testing"

	"github.com/Traorelacina/Glory-event/apperror"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Parfum Élégance 50ml":   "parfum-elegance-50ml",
		"  Décoration  Mariage ": "decoration-mariage",
		"Événementiel & Co.":     "evenementiel-co",
		"":                       "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestPrice(t *testing.T) {
	v := Violations{}
	assert.True(t, Price("price", "0", v).IsZero())
	assert.True(t, v.Empty())

	Price("price", "-1", v)
	assert.Equal(t, "must be greater than or equal to 0", v["price"])

	v = Violations{}
	Price("price", "abc", v)
	assert.Equal(t, "must be a number", v["price"])
}

func TestPriceFitsColumn(t *testing.T) {
	for _, ok := range []string{"99999999.99", "10.50", "10.500", "12"} {
		v := Violations{}
		Price("price", ok, v)
		assert.True(t, v.Empty(), ok)
	}

	v := Violations{}
	Price("price", "100000000", v)
	assert.Equal(t, "must be less than 100000000", v["price"])

	v = Violations{}
	Price("price", "10.999", v)
	assert.Equal(t, "must have at most 2 decimal places", v["price"])
}

func TestViolationsErr(t *testing.T) {
	v := Violations{}
	assert.NoError(t, v.Err())

	Required("name", " ", v)
	MaxLen("category", "abcdef", 3, v)
	err := v.Err()
	require.Error(t, err)

	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Len(t, appErr.Fields, 2)
}

type bindTarget struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Items []struct {
		Quantity int `json:"quantity" binding:"min=1"`
	} `json:"items" binding:"dive"`
}

func TestFromBindErrorListsEveryField(t *testing.T) {
	target := bindTarget{Email: "not-an-email"}
	target.Items = append(target.Items, struct {
		Quantity int `json:"quantity" binding:"min=1"`
	}{Quantity: 0})

	err := FromBindError(binding.Validator.ValidateStruct(&target))

	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "is required", appErr.Fields["name"])
	assert.Equal(t, "must be a valid email address", appErr.Fields["email"])
	assert.Equal(t, "must be at least 1", appErr.Fields["items[0].quantity"])
}

func TestFromBindErrorOnMalformedBody(t *testing.T) {
	err := FromBindError(errors.New("unexpected EOF"))
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, ok := BindViolations(errors.New("unexpected EOF"))
	assert.False(t, ok)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, raw := range []string{"", "0", "-3", "abc"} {
		_, err := ParseID(raw)
		assert.True(t, apperror.Is(err, apperror.KindValidation), raw)
	}
}
