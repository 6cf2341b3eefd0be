// internal/adapters/out/mail/lowstock_mailer.go
package mail

import (
	"context"
	"fmt"
	"log"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"

	"padoca/internal/application/stats"
)

// LowStockMailer mails the account owner when a recompute raises the
// low-stock count. Best-effort by contract: every failure path only
// logs, the aggregation pipeline never sees an error.
type LowStockMailer struct {
	client EmailClient
	auth   *fbauth.Client
	from   string
}

var _ stats.AlertNotifier = (*LowStockMailer)(nil)

func NewLowStockMailer(client EmailClient, auth *fbauth.Client, from string) *LowStockMailer {
	return &LowStockMailer{
		client: client,
		auth:   auth,
		from:   strings.TrimSpace(from),
	}
}

func (m *LowStockMailer) NotifyLowStock(ctx context.Context, ownerID string, snap stats.Snapshot) {
	if m == nil || m.client == nil || m.auth == nil {
		return
	}

	uid := strings.TrimSpace(ownerID)
	if uid == "" {
		return
	}

	// uid -> account email
	user, err := m.auth.GetUser(ctx, uid)
	if err != nil {
		log.Printf("[lowstock_mail] user lookup failed uid=%s err=%v", uid, err)
		return
	}
	to := strings.TrimSpace(user.Email)
	if to == "" {
		log.Printf("[lowstock_mail] uid=%s has no email, skipping", uid)
		return
	}

	subject := fmt.Sprintf("Padoca: %d ingrediente(s) com estoque baixo", snap.LowStock)
	body := fmt.Sprintf(
		"Olá!\n\n"+
			"Seu estoque tem agora %d item(ns) abaixo do limite mínimo.\n"+
			"Total de ingredientes: %d\n"+
			"Valor em estoque: R$ %.2f\n\n"+
			"Acesse o painel para repor os itens ou peça uma receita ao Chef para aproveitar o que resta.",
		snap.LowStock, snap.TotalItems, snap.TotalValue,
	)

	if err := m.client.Send(ctx, m.from, to, subject, body); err != nil {
		log.Printf("[lowstock_mail] send failed uid=%s err=%v", uid, err)
		return
	}
	log.Printf("[lowstock_mail] alert sent uid=%s lowStock=%d", uid, snap.LowStock)
}
