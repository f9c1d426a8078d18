package designs

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/kingcapco/salesops-backend/api/middleware"
	"github.com/kingcapco/salesops-backend/api/responses"
	"github.com/kingcapco/salesops-backend/api/validators"
	"github.com/kingcapco/salesops-backend/internal/designquotes"
	"github.com/kingcapco/salesops-backend/internal/export"
	"github.com/kingcapco/salesops-backend/pkg/enums"
	pkgerrors "github.com/kingcapco/salesops-backend/pkg/errors"
	"github.com/kingcapco/salesops-backend/pkg/logger"
)

func requesterID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid credentials")
	}
	return id, nil
}

// Create registers a new design owned by the authenticated user.
func Create(svc designquotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "design service unavailable"))
			return
		}

		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req CreateDesignRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		design, err := svc.CreateDesign(r.Context(), userID, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newDesignResponse(design))
	}
}

// List pages through designs, newest first.
func List(svc designquotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "design service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1_000_000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		designs, err := svc.ListDesigns(r.Context(), limit, offset)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newDesignListResponse(designs))
	}
}

// Get returns a single design by id.
func Get(svc designquotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "design service unavailable"))
			return
		}

		designID, err := validators.ParseUUIDParam(r, "designId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		design, err := svc.GetDesign(r.Context(), designID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newDesignResponse(design))
	}
}

// Delete removes a design and its saved quote.
func Delete(svc designquotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "design service unavailable"))
			return
		}

		designID, err := validators.ParseUUIDParam(r, "designId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteDesign(r.Context(), designID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"deleted": designID})
	}
}

// SaveQuote computes and stores the quote for a design, replacing any
// existing one.
func SaveQuote(svc designquotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "design service unavailable"))
			return
		}

		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		designID, err := validators.ParseUUIDParam(r, "designId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req QuoteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.SaveQuote(r.Context(), designID, userID, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newDesignQuoteResponse(quote))
	}
}

// PatchQuote merges partial changes into the stored configuration and
// recomputes the snapshot.
func PatchQuote(svc designquotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "design service unavailable"))
			return
		}

		designID, err := validators.ParseUUIDParam(r, "designId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req QuotePatchRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.PatchQuote(r.Context(), designID, req.toPatch())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newDesignQuoteResponse(quote))
	}
}

// GetQuote returns the cached snapshot without repricing.
func GetQuote(svc designquotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "design service unavailable"))
			return
		}

		designID, err := validators.ParseUUIDParam(r, "designId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.GetQuote(r.Context(), designID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newDesignQuoteResponse(quote))
	}
}

// DeleteQuote removes the saved quote, keeping the design.
func DeleteQuote(svc designquotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "design service unavailable"))
			return
		}

		designID, err := validators.ParseUUIDParam(r, "designId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteQuote(r.Context(), designID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"deleted": designID})
	}
}

// ExportQuote renders the cached snapshot as a document download. The format
// query parameter defaults to xlsx.
func ExportQuote(svc designquotes.Service, exporter *export.Exporter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || exporter == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "export unavailable"))
			return
		}

		designID, err := validators.ParseUUIDParam(r, "designId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		format := enums.ExportFormatXLSX
		if raw := r.URL.Query().Get("format"); raw != "" {
			format, err = enums.ParseExportFormat(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unsupported export format"))
				return
			}
		}

		design, err := svc.GetDesign(r.Context(), designID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quote, err := svc.GetQuote(r.Context(), designID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		doc, err := exporter.DesignQuote(r.Context(), format, design, quote)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteDocument(w, doc.ContentType, doc.Filename, doc.Data)
	}
}
