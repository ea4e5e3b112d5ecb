package notify

import (
	"strings"
	"testing"

	"reservapro-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeLink(t *testing.T) {
	link, err := ComposeLink("11 98765-4321", "Oi")
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/5511987654321?text=Oi", link)
}

func TestComposeLinkKeepsExistingCountryCode(t *testing.T) {
	link, err := ComposeLink("+55 (11) 98765-4321", "Oi")
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/5511987654321?text=Oi", link)
}

func TestComposeLinkEncodesMessage(t *testing.T) {
	link, err := ComposeLink("5511987654321", "Olá! Tudo bem?")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://wa.me/5511987654321?text="))
	assert.NotContains(t, link, " ")
	assert.NotContains(t, link, "?text=Olá! Tudo bem?")
}

func TestComposeLinkRejectsShortNumber(t *testing.T) {
	_, err := ComposeLink("123", "Oi")
	assert.Error(t, err)
}

func testCustomer() *models.Customer {
	return &models.Customer{
		WorkspaceID: string(models.StoreA),
		Name:        "Maria",
		Phone:       "11987654321",
		Model:       "Air Max 90",
		Reference:   "AM90-123",
		Size:        "37",
		Color:       "branco",
	}
}

func TestStoreInquiryUsesStorePhone(t *testing.T) {
	composer := NewComposer(nil)
	store := models.Workspace{ID: string(models.StoreB), Name: "Loja B", Phone: "5511999990002"}

	n, err := composer.StoreInquiry(testCustomer(), store)
	require.NoError(t, err)
	assert.Equal(t, models.KindStoreInquiry, n.Kind)
	assert.Equal(t, "5511999990002", n.Recipient)
	assert.Contains(t, n.Message, "Air Max 90")
	assert.Contains(t, n.Message, "AM90-123")
	assert.Contains(t, n.Message, "37")
	assert.True(t, strings.HasPrefix(n.URL, "https://wa.me/5511999990002?text="))
}

func TestTransferOfferAddressesCustomer(t *testing.T) {
	composer := NewComposer(nil)

	n, err := composer.TransferOffer(testCustomer(), "Loja B")
	require.NoError(t, err)
	assert.Equal(t, models.KindTransferOffer, n.Kind)
	assert.Contains(t, n.Message, "Maria")
	assert.Contains(t, n.Message, "Loja B")
	assert.True(t, strings.HasPrefix(n.URL, "https://wa.me/5511987654321?text="))
}

func TestReadyForPickupAddressesCustomer(t *testing.T) {
	composer := NewComposer(nil)

	n, err := composer.ReadyForPickup(testCustomer())
	require.NoError(t, err)
	assert.Equal(t, models.KindReadyForPickup, n.Kind)
	assert.Contains(t, n.Message, "Maria")
	assert.Contains(t, n.Message, "Air Max 90")
	assert.True(t, strings.HasPrefix(n.URL, "https://wa.me/5511987654321?text="))
}

func TestDefaultBodyCoversAllKinds(t *testing.T) {
	for _, kind := range []models.MessageKind{
		models.KindStoreInquiry, models.KindTransferOffer, models.KindReadyForPickup,
	} {
		assert.NotEmpty(t, DefaultBody(kind))
	}
}
