package amazon

import (
	"testing"

	"github.com/davidbard1226/amazon-buybox-tracker/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		seller string
		mine   string
		want   models.BuyboxStatus
	}{
		{"Amazon.co.za", "Bonolo Online", models.StatusAmazon},
		{"Amazon", "Bonolo Online", models.StatusAmazon},
		{"Bonolo Online", "Bonolo Online", models.StatusWinning},
		{"bonolo online", "Bonolo Online", models.StatusWinning},
		{"Other Seller", "Bonolo Online", models.StatusLosing},
		{models.UnknownSeller, "Bonolo Online", models.StatusUnknown},
		{"", "Bonolo Online", models.StatusUnknown},
		// Unknown wins over everything, amazon wins over self-match
		{"Amazon.co.za", "Amazon.co.za", models.StatusAmazon},
		// No own seller configured: any third party is losing
		{"Other Seller", "", models.StatusLosing},
	}
	for _, tt := range tests {
		got := Classify(tt.seller, tt.mine)
		assert.Equal(t, tt.want, got, "Classify(%q, %q)", tt.seller, tt.mine)
	}
}

func TestIsOperatorSeller(t *testing.T) {
	assert.True(t, IsOperatorSeller("Amazon.co.za"))
	assert.True(t, IsOperatorSeller("amazon"))
	assert.True(t, IsOperatorSeller("Amazon Warehouse"))
	assert.False(t, IsOperatorSeller("Bonolo Online"))
	assert.False(t, IsOperatorSeller(models.UnknownSeller))
	assert.False(t, IsOperatorSeller(""))
}

func TestOperatorName(t *testing.T) {
	assert.Equal(t, "Amazon.co.za", OperatorName("amazon.co.za"))
	assert.Equal(t, "Amazon.com", OperatorName("amazon.com"))
}

func TestCurrencyForMarketplace(t *testing.T) {
	assert.Equal(t, "ZAR", CurrencyForMarketplace("amazon.co.za"))
	assert.Equal(t, "GBP", CurrencyForMarketplace("amazon.co.uk"))
	assert.Equal(t, "EUR", CurrencyForMarketplace("amazon.de"))
	assert.Equal(t, "USD", CurrencyForMarketplace("amazon.com"))
	assert.Equal(t, "USD", CurrencyForMarketplace("amazon.example"))
}
