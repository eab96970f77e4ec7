package routes

import (
	"orcafacil/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathProposals = "/proposals"
	PathSignature = "/signature"
	PathPayments  = "/payments"
)

func addProposalRoutes(rg *gin.RouterGroup, proposalHandler *handlers.ProposalHandler, documentHandler *handlers.DocumentHandler) {
	proposals := rg.Group(PathProposals)
	{
		proposals.POST("", proposalHandler.CreateProposal)
		proposals.GET("", proposalHandler.ListProposals)
		proposals.GET("/:id", proposalHandler.GetProposal)
		proposals.PATCH("/:id", proposalHandler.UpdateProposal)
		proposals.DELETE("/:id", proposalHandler.DeleteProposal)
		proposals.PATCH("/:id/status", proposalHandler.SetStatus)
		proposals.GET("/:id/palette", proposalHandler.GetPalette)
		proposals.GET("/:id/document", documentHandler.DownloadDocument)
	}
}

// addSignatureRoutes exposes the share link; it carries no owner header.
func addSignatureRoutes(rg *gin.RouterGroup, signatureHandler *handlers.SignatureHandler) {
	signature := rg.Group(PathSignature)
	{
		signature.GET("/:proposal_id", signatureHandler.GetShareView)
		signature.POST("/:proposal_id", signatureHandler.CaptureSignature)
	}
}

func addPaymentRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("/:proposal_id", paymentHandler.CreatePaymentByProposalID)
		payments.GET("/:proposal_id", paymentHandler.GetPaymentByProposalID)
	}
}
