package routes

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/meridian-pay/meridian_pay/internal/cheque"
	"github.com/meridian-pay/meridian_pay/internal/notification"
	"github.com/meridian-pay/meridian_pay/internal/partner"
	"github.com/meridian-pay/meridian_pay/internal/transfer"
)

// RegisterWebhookRoutes mounts the partner push receiver. The partner retries
// deliveries on non-2xx responses, so dispatch failures are logged and
// acknowledged rather than surfaced.
func RegisterWebhookRoutes(r fiber.Router, chequeSvc *cheque.Service, transferSvc *transfer.Service, notifier notification.Notifier, logger *slog.Logger) {
	h := webhookHandler{
		cheques:   chequeSvc,
		transfers: transferSvc,
		notifier:  notifier,
		logger:    logger,
	}
	r.Post("/webhooks/partner", h.receive)
}

type webhookHandler struct {
	cheques   *cheque.Service
	transfers *transfer.Service
	notifier  notification.Notifier
	logger    *slog.Logger
}

type pushEnvelope struct {
	Object        string         `json:"object"`
	ObjectID      string         `json:"object_id"`
	ObjectPayload map[string]any `json:"object_payload"`
}

func (h webhookHandler) receive(c *fiber.Ctx) error {
	var env pushEnvelope
	if err := c.BodyParser(&env); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if env.Object == "" || env.ObjectPayload == nil {
		return fiber.NewError(http.StatusBadRequest, "missing object or object_payload")
	}

	if err := h.dispatch(c, env); err != nil {
		h.logger.Error("webhook dispatch failed",
			"object", env.Object,
			"object_id", env.ObjectID,
			"error", err,
		)
	}
	return c.JSON(fiber.Map{"status": "accepted"})
}

func (h webhookHandler) dispatch(c *fiber.Ctx, env pushEnvelope) error {
	ctx := c.UserContext()

	switch env.Object {
	case "payin":
		payin, err := partner.PayinFromPush(env.ObjectPayload)
		if err != nil {
			return err
		}
		return h.cheques.ApplyPayinUpdate(ctx, payin)

	case "payout":
		payout, err := partner.PayoutFromPush(env.ObjectPayload)
		if err != nil {
			return err
		}
		return h.transfers.ApplyPayoutUpdate(ctx, payout)

	case "payoutRefund":
		refund, err := partner.PayoutRefundFromPush(env.ObjectPayload)
		if err != nil {
			return err
		}
		return h.transfers.ApplyRefund(ctx, refund)

	case "sddReject":
		reject, err := partner.DirectDebitRejectFromPush(env.ObjectPayload)
		if err != nil {
			return err
		}
		return h.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindDirectDebitRejected,
			Destination: reject.DebtorName,
			Body:        fmt.Sprintf("direct debit %s rejected: %s", reject.TransactionID, reject.RejectReason),
		})

	case "cardtransaction":
		tx, err := partner.CardTransactionFromPush(env.ObjectPayload)
		if err != nil {
			return err
		}
		h.logger.Info("card transaction received",
			"card_id", tx.CardID,
			"transaction_id", tx.ID,
		)
		return nil

	case "user":
		user, err := partner.UserFromPush(env.ObjectPayload)
		if err != nil {
			return err
		}
		h.logger.Info("partner user update received", "partner_user_id", user.ID)
		return nil

	case "payinRefund":
		refund, err := partner.PayinRefundFromPush(env.ObjectPayload)
		if err != nil {
			return err
		}
		h.logger.Info("payin refund received", "payin_id", refund.PayinID)
		return nil

	default:
		h.logger.Info("ignoring unhandled webhook object", "object", env.Object)
		return nil
	}
}
