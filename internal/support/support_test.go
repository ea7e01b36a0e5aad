package support

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/issue"
)

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "hello world", SanitizeText("  <b>hello</b> world  "))
	assert.Equal(t, "Tom  Jerry", SanitizeText(`Tom & "Jerry"`))
	assert.Equal(t, "alert(1)", SanitizeText("<script>alert(1)</script>"))
	assert.Equal(t, "", SanitizeText("   "))

	long := strings.Repeat("a", MaxTextLength+100)
	assert.Len(t, SanitizeText(long), MaxTextLength)
}

func TestPhoneValidation(t *testing.T) {
	assert.Equal(t, "+919876543210", CleanPhone("+91 (987) 654-3210"))
	assert.True(t, ValidPhone("+91 98765 43210"))
	assert.True(t, ValidPhone("9876543210"))
	assert.False(t, ValidPhone("0123456789"))
	assert.False(t, ValidPhone("+1"))
	assert.False(t, ValidPhone("phone"))
	assert.False(t, ValidPhone("+1234567890123456"))
}

func TestDateValidation(t *testing.T) {
	assert.True(t, ValidDate("2024-02-29"))
	assert.False(t, ValidDate("2023-02-29"))
	assert.False(t, ValidDate("2024-13-01"))
	assert.False(t, ValidDate("2024-1-01"))
	assert.False(t, ValidDate("01/02/2024"))
	assert.False(t, ValidDate(""))
}

func TestEmailValidation(t *testing.T) {
	assert.True(t, ValidEmail("user@example.com"))
	assert.False(t, ValidEmail("user@example"))
	assert.False(t, ValidEmail("user example.com"))
}

func TestDetectCategory(t *testing.T) {
	cases := map[string]issue.Category{
		"My warranty has expired":                     issue.CategoryWarranty,
		"Can I book a technician visit?":              issue.CategoryBooking,
		"Where is my ORDER? Need to track delivery":   issue.CategoryOrder,
		"Hello there":                                 issue.CategoryGeneral,
		"Service under warranty for my order please": issue.CategoryWarranty,
		"I need service for the thing I bought":       issue.CategoryBooking,
	}
	for msg, want := range cases {
		assert.Equal(t, want, DetectCategory(msg), msg)
	}
}

func TestMissingFields(t *testing.T) {
	missing := MissingFields([2]string{"first_name", "A"}, [2]string{"last_name", " "}, [2]string{"phone", ""})
	assert.Equal(t, []string{"last_name", "phone"}, missing)
	assert.Empty(t, MissingFields([2]string{"x", "y"}))
}

func TestAbsentFieldsKeepsWhitespaceValues(t *testing.T) {
	missing := AbsentFields([2]string{"customer_id", " "}, [2]string{"message", ""})
	assert.Equal(t, []string{"message"}, missing)
	assert.Empty(t, AbsentFields([2]string{"x", "\t"}))
}
