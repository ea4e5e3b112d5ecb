// Package notify composes WhatsApp messages as wa.me links. There is no
// delivery integration: the link is handed back to the operator, who opens
// it and presses send.
package notify

import (
	"errors"
	"net/url"
	"strings"

	"reservapro-backend/models"
	"reservapro-backend/utils"

	"gorm.io/gorm"
)

// Notification is a composed message ready to be opened by the operator.
type Notification struct {
	Kind      models.MessageKind `json:"kind"`
	Recipient string             `json:"recipient"`
	Message   string             `json:"message"`
	URL       string             `json:"url"`
}

var defaultBodies = map[models.MessageKind]string{
	models.KindStoreInquiry:   "Olá! Vocês têm o modelo [Model] (ref. [Reference]), tamanho [Size], cor [Color] em estoque? Temos uma reserva aguardando aqui.",
	models.KindTransferOffer:  "Olá [ClientName]! Encontramos o seu [Model] tamanho [Size] na [Store]. Podemos trazer para a nossa loja? A transferência leva alguns dias.",
	models.KindReadyForPickup: "Olá [ClientName]! Seu [Model] tamanho [Size] chegou e já está pronto para retirada. 🎉",
}

// DefaultBody returns the built-in template for a notification kind.
func DefaultBody(kind models.MessageKind) string {
	return defaultBodies[kind]
}

// ComposeLink builds the wa.me compose URL for a phone number and message.
// Numbers without a country code default to Brazil (55).
func ComposeLink(phone, message string) (string, error) {
	digits := utils.DigitsOnly(phone)
	if len(digits) < 8 {
		return "", errors.New("notify: phone number too short")
	}
	if !strings.HasPrefix(digits, "55") {
		digits = "55" + digits
	}
	q := url.Values{}
	q.Set("text", message)
	return "https://wa.me/" + digits + "?" + q.Encode(), nil
}

// Composer renders notification messages, honoring per-workspace template
// overrides stored in the database.
type Composer struct {
	db *gorm.DB
}

func NewComposer(db *gorm.DB) *Composer {
	return &Composer{db: db}
}

func (n *Composer) body(workspaceID string, kind models.MessageKind) string {
	if n.db != nil {
		var tpl models.MessageTemplate
		err := n.db.Where("workspace_id = ? AND kind = ? AND is_active = true", workspaceID, kind).
			First(&tpl).Error
		if err == nil && tpl.Body != "" {
			return tpl.Body
		}
	}
	return defaultBodies[kind]
}

func render(body string, c *models.Customer, storeName string) string {
	r := strings.NewReplacer(
		"[ClientName]", c.Name,
		"[Model]", c.Model,
		"[Reference]", c.Reference,
		"[Size]", c.Size,
		"[Color]", c.Color,
		"[Store]", storeName,
	)
	return r.Replace(body)
}

// StoreInquiry addresses the consulted store's WhatsApp number, asking
// whether the reserved pair is in stock.
func (n *Composer) StoreInquiry(c *models.Customer, store models.Workspace) (Notification, error) {
	msg := render(n.body(c.WorkspaceID, models.KindStoreInquiry), c, store.Name)
	link, err := ComposeLink(store.Phone, msg)
	if err != nil {
		return Notification{}, err
	}
	return Notification{
		Kind:      models.KindStoreInquiry,
		Recipient: store.Phone,
		Message:   msg,
		URL:       link,
	}, nil
}

// TransferOffer addresses the customer, offering to bring the pair over from
// the store that confirmed stock.
func (n *Composer) TransferOffer(c *models.Customer, storeName string) (Notification, error) {
	msg := render(n.body(c.WorkspaceID, models.KindTransferOffer), c, storeName)
	link, err := ComposeLink(c.Phone, msg)
	if err != nil {
		return Notification{}, err
	}
	return Notification{
		Kind:      models.KindTransferOffer,
		Recipient: c.Phone,
		Message:   msg,
		URL:       link,
	}, nil
}

// ReadyForPickup addresses the customer once the pair is on the shelf.
func (n *Composer) ReadyForPickup(c *models.Customer) (Notification, error) {
	msg := render(n.body(c.WorkspaceID, models.KindReadyForPickup), c, "")
	link, err := ComposeLink(c.Phone, msg)
	if err != nil {
		return Notification{}, err
	}
	return Notification{
		Kind:      models.KindReadyForPickup,
		Recipient: c.Phone,
		Message:   msg,
		URL:       link,
	}, nil
}
