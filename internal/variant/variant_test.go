package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSKUAndSignature(t *testing.T) {
	selections := []Selection{
		{AttributeCode: "color", ValueCode: "red"},
		{AttributeCode: "size", ValueCode: "large"},
	}

	assert.Equal(t, "t-shirt-red-large", SKU("t-shirt", selections))
	assert.Equal(t, "color:red;size:large;", Signature(selections))
}

func TestOrderIndependence(t *testing.T) {
	forward := []Selection{
		{AttributeCode: "color", ValueCode: "red"},
		{AttributeCode: "size", ValueCode: "large"},
	}
	reversed := []Selection{
		{AttributeCode: "size", ValueCode: "large"},
		{AttributeCode: "color", ValueCode: "red"},
	}

	assert.Equal(t, SKU("t-shirt", forward), SKU("t-shirt", reversed))
	assert.Equal(t, Signature(forward), Signature(reversed))
}

func TestDeterminism(t *testing.T) {
	selections := []Selection{
		{AttributeCode: "material", ValueCode: "cotton"},
		{AttributeCode: "color", ValueCode: "navy-blue"},
		{AttributeCode: "size", ValueCode: "xl"},
	}

	first := Signature(selections)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Signature(selections))
	}
	assert.Equal(t, "color:navy-blue;material:cotton;size:xl;", first)
	assert.Equal(t, "hoodie-navy-blue-cotton-xl", SKU("hoodie", selections))
}

func TestSingleSelection(t *testing.T) {
	selections := []Selection{{AttributeCode: "size", ValueCode: "small"}}

	assert.Equal(t, "mug-small", SKU("mug", selections))
	assert.Equal(t, "size:small;", Signature(selections))
}

func TestEmptySelections(t *testing.T) {
	assert.Equal(t, "mug", SKU("mug", nil))
	assert.Equal(t, "", Signature(nil))
}

func TestCanonicalizeDoesNotMutateInput(t *testing.T) {
	selections := []Selection{
		{AttributeCode: "size", ValueCode: "large"},
		{AttributeCode: "color", ValueCode: "red"},
	}

	_ = Canonicalize(selections)
	assert.Equal(t, "size", selections[0].AttributeCode)
}

func TestCanonicalizeTiesOnValueCode(t *testing.T) {
	// Same attribute twice sorts by value code.
	selections := []Selection{
		{AttributeCode: "color", ValueCode: "red"},
		{AttributeCode: "color", ValueCode: "blue"},
	}

	got := Canonicalize(selections)
	assert.Equal(t, "blue", got[0].ValueCode)
	assert.Equal(t, "red", got[1].ValueCode)
}
