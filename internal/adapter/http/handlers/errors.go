package handlers

import (
	"errors"
	"net/http"
	"strings"

	"orcafacil/internal/domain/errs"
	"orcafacil/internal/usecase"
	"orcafacil/pkg"

	"github.com/gin-gonic/gin"
)

// HeaderUserID carries the authenticated account id, set by the auth layer in
// front of this service.
const HeaderUserID = "X-User-ID"

var (
	errInvalidRequest  = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	errMissingUserID   = pkg.NewDomainErrorSimple("MISSING_USER_ID", "Missing "+HeaderUserID+" header", http.StatusUnauthorized)
	errPaymentNotFound = pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
)

func ownerID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.GetHeader(HeaderUserID))
	return id, id != ""
}

func abortWith(c *gin.Context, appErr *pkg.AppError) {
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// mapError turns a use case error into the HTTP envelope. Known sentinels get
// their own code; anything else is mapped by category.
func mapError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrProposalNotFound):
		return pkg.NewDomainErrorSimple("PROPOSAL_NOT_FOUND", "Proposal not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrSignatureNotFound):
		return pkg.NewDomainErrorSimple("SIGNATURE_NOT_FOUND", "Signature not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return errPaymentNotFound
	case errors.Is(err, usecase.ErrSignatureAlreadyExists):
		return pkg.NewDomainErrorSimple("SIGNATURE_ALREADY_EXISTS", "Proposal already signed", http.StatusConflict)
	case errors.Is(err, usecase.ErrProposalNotAccepted):
		return pkg.NewDomainErrorSimple("PROPOSAL_NOT_ACCEPTED", "Proposal not accepted", http.StatusConflict)
	case errors.Is(err, usecase.ErrNotProposalOwner):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Proposal belongs to another user", http.StatusForbidden)
	case errors.Is(err, usecase.ErrMissingSignerIdentity):
		return pkg.NewDomainErrorSimple("MISSING_SIGNER_IDENTITY", "Signer name and email are required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEmptySignature):
		return pkg.NewDomainErrorSimple("EMPTY_SIGNATURE", "Signature is empty", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return pkg.NewDomainErrorSimple("INVALID_STATUS", "Status must be pending, accepted or rejected", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	}

	switch errs.Category(err) {
	case errs.ErrValidation, errs.ErrDecode:
		// Validation messages name the offending field and are safe to echo.
		return pkg.NewDomainError("INVALID_REQUEST", err.Error(), err, http.StatusBadRequest)
	case errs.ErrNotFound:
		return pkg.NewDomainError("NOT_FOUND", "Resource not found", err, http.StatusNotFound)
	case errs.ErrConflict:
		return pkg.NewDomainError("CONFLICT", "Resource conflict", err, http.StatusConflict)
	case errs.ErrForbidden:
		return pkg.NewDomainError("FORBIDDEN", "Forbidden", err, http.StatusForbidden)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
